package ports

import "github.com/Yumouqianxia/predprobe/internal/domain"

// ReportStore persists probe reports for later comparison.
type ReportStore interface {
	// SaveReport writes the report and returns the path it was saved to.
	SaveReport(report domain.Report) (string, error)
}
