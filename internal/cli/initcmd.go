package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/infra/config"
)

func initCmd() *cobra.Command {
	var dir string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a predprobe.yaml profile in the current directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			target := dir
			if target == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				target = wd
			}

			abs, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("invalid directory: %w", err)
			}

			if err := config.Scaffold(abs, force); err != nil {
				return err
			}

			fmt.Printf("initialized probe profile in %s\n", abs)
			fmt.Println("edit secrets.local.yaml with your local passwords, then run `predprobe all`")
			return nil
		},
	}

	c.Flags().StringVarP(&dir, "dir", "d", "", "Target directory (defaults to the working directory)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}
