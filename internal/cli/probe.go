package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/infra/config"
	"github.com/Yumouqianxia/predprobe/internal/infra/endpoint"
	"github.com/Yumouqianxia/predprobe/internal/infra/httpclient"
	"github.com/Yumouqianxia/predprobe/internal/infra/logger"
	"github.com/Yumouqianxia/predprobe/internal/infra/reportstore"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

// probeCtx bundles everything a probe command needs: the loaded profile,
// the directory it was found in, and the report store rooted there.
type probeCtx struct {
	root    string
	profile domain.Profile
	store   ports.ReportStore
	cleanup func() error
}

func (pc *probeCtx) close() {
	if pc.cleanup != nil {
		_ = pc.cleanup()
	}
}

// loadProbe resolves the profile (--profile flag, or predprobe.yaml found
// upward from the working directory), sets up the file logger next to it,
// and wires the report store.
func loadProbe(cmd *cobra.Command, profileFlag string) (*probeCtx, error) {
	path, err := resolveProfilePath(profileFlag)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)

	loader := config.NewLoader()
	profile, err := loader.LoadProfile(path)
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	cleanup, _ := logger.Setup(logger.Config{Root: root, Debug: debug})

	logger.L().Info("profile.loaded", "path", path, "name", profile.Name)

	store := reportstore.NewJSONStore(root, profile,
		reportstore.WithIndex(true),
		reportstore.WithSecrets(profileSecrets(profile)),
	)

	return &probeCtx{
		root:    root,
		profile: profile,
		store:   store,
		cleanup: cleanup,
	}, nil
}

func resolveProfilePath(profileFlag string) (string, error) {
	p := strings.TrimSpace(profileFlag)
	if p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("invalid profile path: %w", err)
		}
		info, statErr := os.Stat(abs)
		if statErr == nil && info.IsDir() {
			abs = filepath.Join(abs, config.ProfileFile)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("profile %q not found", abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	finder := config.NewFinder()
	path, err := finder.FindProfile(wd)
	if err != nil {
		return "", fmt.Errorf("no %s found from %q (tip: run `predprobe init`): %w", config.ProfileFile, wd, err)
	}
	return path, nil
}

// profileSecrets collects every credential that must be masked in artifacts.
func profileSecrets(p domain.Profile) []string {
	secrets := []string{p.DB.Password, p.Redis.Password}
	for _, cred := range p.Logins {
		secrets = append(secrets, cred.Password)
	}
	return secrets
}

// emitReport prints the report, persists it unless --no-report, and turns
// failed checks into a non-zero exit.
func emitReport(w io.Writer, pc *probeCtx, format string, noReport bool, suites ...domain.SuiteResult) error {
	report := domain.Report{
		Profile:    pc.profile.Name,
		FinishedAt: time.Now(),
		Suites:     suites,
	}
	for i, s := range suites {
		if i == 0 || s.StartedAt.Before(report.StartedAt) {
			report.StartedAt = s.StartedAt
		}
	}

	savedPath := ""
	if !noReport {
		path, err := pc.store.SaveReport(report)
		if err != nil {
			// Still print what we have; the probe result matters more
			// than the artifact.
			logger.L().Error("report.save_failed", "err", err)
		} else {
			savedPath = path
		}
	}

	if err := printReport(w, report, savedPath, format); err != nil {
		return err
	}

	if fails := report.Failures(); fails > 0 {
		return fmt.Errorf("probe failed (%d failed check(s))", fails)
	}
	return nil
}

// newCaller builds the endpoint caller used by the HTTP-facing suites.
func newCaller(profile domain.Profile) *endpoint.Caller {
	cfg := httpclient.DefaultConfig()
	if profile.API.Timeout > 0 {
		cfg.Timeout = profile.API.Timeout
	}
	return endpoint.New(httpclient.New(cfg))
}

func addProbeFlags(c *cobra.Command, profile *string, format *string, noReport *bool, timeout *time.Duration) {
	c.Flags().StringVarP(profile, "profile", "p", "", "Profile file or directory (optional; autodetected if omitted)")
	c.Flags().StringVar(format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(noReport, "no-report", false, "Do not save a report artifact under reports/")
	c.Flags().DurationVar(timeout, "timeout", 30*time.Second, "Overall probe timeout")
}
