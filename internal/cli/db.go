package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/infra/mysqlprobe"
	"github.com/Yumouqianxia/predprobe/internal/usecase"
)

func dbCmd() *cobra.Command {
	var profile string
	var format string
	var noReport bool
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "db",
		Short: "Probe the users schema and leaderboard ordering in MySQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := loadProbe(cmd, profile)
			if err != nil {
				return err
			}
			defer pc.close()

			inspector, err := mysqlprobe.Open(pc.profile.DB)
			if err != nil {
				return err
			}
			defer inspector.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			uc := usecase.NewCheckDB(inspector)
			suite := uc.Execute(ctx, pc.profile)

			return emitReport(os.Stdout, pc, format, noReport, suite)
		},
	}

	addProbeFlags(c, &profile, &format, &noReport, &timeout)
	return c
}
