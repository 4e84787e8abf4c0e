package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/infra/logger"
	"github.com/Yumouqianxia/predprobe/internal/infra/mysqlprobe"
	"github.com/Yumouqianxia/predprobe/internal/infra/redisprobe"
	"github.com/Yumouqianxia/predprobe/internal/usecase"
)

func allCmd() *cobra.Command {
	var profile string
	var format string
	var noReport bool
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "all",
		Short: "Run every probe suite: db, api, login, cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc, err := loadProbe(cmd, profile)
			if err != nil {
				return err
			}
			defer pc.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var suites []domain.SuiteResult

			inspector, err := mysqlprobe.Open(pc.profile.DB)
			if err != nil {
				// A malformed DSN still should not stop the HTTP suites.
				logger.L().Error("db.open_failed", "err", err)
				suites = append(suites, domain.SuiteResult{
					Suite:  "db",
					Target: pc.profile.DB.Addr() + "/" + pc.profile.DB.Name,
					Checks: []domain.CheckResult{{
						Name:    "open database",
						Message: err.Error(),
					}},
				})
			} else {
				suites = append(suites, usecase.NewCheckDB(inspector).Execute(ctx, pc.profile))
				inspector.Close()
			}

			caller := newCaller(pc.profile)
			suites = append(suites, usecase.NewCheckAPI(caller).Execute(ctx, pc.profile))
			suites = append(suites, usecase.NewCheckLogin(caller).Execute(ctx, pc.profile))

			cache := redisprobe.New(pc.profile.Redis)
			suites = append(suites, usecase.NewCheckCache(cache).Execute(ctx, pc.profile))
			cache.Close()

			return emitReport(os.Stdout, pc, format, noReport, suites...)
		},
	}

	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile file or directory (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&noReport, "no-report", false, "Do not save a report artifact under reports/")
	c.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall probe timeout")
	return c
}
