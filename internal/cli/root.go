package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predprobe",
		Short: "predprobe — manual verification probes for the prediction backend",
		Long: `predprobe runs quick diagnostic probes against a locally running
prediction-system backend: the MySQL users schema, the leaderboard API,
the login flow and the Redis leaderboard cache.

It is a disposable development aid, not a monitoring system: each command
runs once, prints what it saw, and exits non-zero if anything failed.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable verbose logging to .predprobe/logs/predprobe.log")

	cmd.AddCommand(
		dbCmd(),
		apiCmd(),
		loginCmd(),
		cacheCmd(),
		allCmd(),
		initCmd(),
		versionCmd(),
	)

	return cmd
}
