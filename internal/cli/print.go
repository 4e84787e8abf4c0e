package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

type theme struct {
	Title lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Skip  lipgloss.Style
	Dim   lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Skip:  lipgloss.NewStyle().Faint(true),
		Dim:   lipgloss.NewStyle().Faint(true),
	}
}

func printReport(w io.Writer, report domain.Report, savedPath string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report":      report,
			"report_path": savedPath,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, savedPath)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.Report, savedPath string) {
	th := defaultTheme()

	for _, suite := range report.Suites {
		total := suite.EndedAt.Sub(suite.StartedAt)
		if suite.StartedAt.IsZero() || suite.EndedAt.IsZero() {
			total = 0
		}

		fmt.Fprintln(w, th.Title.Render(fmt.Sprintf("=== %s (%s) ===", suite.Suite, suite.Target)))
		fmt.Fprintln(w, th.Dim.Render(fmt.Sprintf("started %s, took %s",
			suite.StartedAt.Format(time.RFC3339), total.Round(time.Millisecond))))
		fmt.Fprintln(w)

		for _, c := range suite.Checks {
			fmt.Fprintf(w, "%s %s", renderMark(th, c), c.Name)
			if c.LatencyMS > 0 {
				fmt.Fprintf(w, " %s", th.Dim.Render(fmt.Sprintf("(%dms)", c.LatencyMS)))
			}
			fmt.Fprintln(w)

			if c.Message != "" {
				fmt.Fprintf(w, "  %s\n", c.Message)
			}
			if c.Error != nil {
				fmt.Fprintf(w, "  %s\n", th.Fail.Render(fmt.Sprintf("error: %s (%s)", c.Error.Message, c.Error.Kind)))
			}
			for _, d := range c.Details {
				fmt.Fprintf(w, "    %s\n", d)
			}
			fmt.Fprintln(w)
		}
	}

	fails := report.Failures()
	if fails == 0 {
		fmt.Fprintln(w, th.Pass.Render("all checks passed"))
	} else {
		fmt.Fprintln(w, th.Fail.Render(fmt.Sprintf("%d check(s) failed", fails)))
	}
	if savedPath != "" {
		fmt.Fprintln(w, th.Dim.Render("report: "+savedPath))
	}
}

func renderMark(th theme, c domain.CheckResult) string {
	switch {
	case c.Skipped:
		return th.Skip.Render("-")
	case c.Passed:
		return th.Pass.Render("✓")
	default:
		return th.Fail.Render("✗")
	}
}
