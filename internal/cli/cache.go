package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/infra/redisprobe"
	"github.com/Yumouqianxia/predprobe/internal/usecase"
)

func cacheCmd() *cobra.Command {
	var profile string
	var format string
	var noReport bool
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "cache",
		Short: "Probe the Redis leaderboard cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := loadProbe(cmd, profile)
			if err != nil {
				return err
			}
			defer pc.close()

			inspector := redisprobe.New(pc.profile.Redis)
			defer inspector.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			uc := usecase.NewCheckCache(inspector)
			suite := uc.Execute(ctx, pc.profile)

			return emitReport(os.Stdout, pc, format, noReport, suite)
		},
	}

	addProbeFlags(c, &profile, &format, &noReport, &timeout)
	return c
}
