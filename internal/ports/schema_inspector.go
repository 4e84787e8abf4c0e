package ports

import (
	"context"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

// SchemaInspector issues the direct database checks against the backend's
// MySQL instance.
type SchemaInspector interface {
	// DescribeTable returns the column layout of a table.
	DescribeTable(ctx context.Context, table string) ([]domain.ColumnInfo, error)

	// TopUsersByPoints runs the leaderboard ordering query (points DESC,
	// createdAt ASC) and returns the first limit rows.
	TopUsersByPoints(ctx context.Context, limit int) ([]domain.RankedUser, error)

	// ProbeLegacyOrdering runs the ordering query against the legacy
	// snake_case column name. It is expected to fail on a healthy schema.
	ProbeLegacyOrdering(ctx context.Context) error

	Close() error
}
