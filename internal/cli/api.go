package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/usecase"
)

func apiCmd() *cobra.Command {
	var profile string
	var format string
	var noReport bool
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "api",
		Short: "Probe the leaderboard API endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := loadProbe(cmd, profile)
			if err != nil {
				return err
			}
			defer pc.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			uc := usecase.NewCheckAPI(newCaller(pc.profile))
			suite := uc.Execute(ctx, pc.profile)

			return emitReport(os.Stdout, pc, format, noReport, suite)
		},
	}

	addProbeFlags(c, &profile, &format, &noReport, &timeout)
	return c
}
