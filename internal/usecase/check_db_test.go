package usecase

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

type stubInspector struct {
	columns   []domain.ColumnInfo
	columnErr error

	users    []domain.RankedUser
	usersErr error

	legacyErr error
}

func (s *stubInspector) DescribeTable(ctx context.Context, table string) ([]domain.ColumnInfo, error) {
	return s.columns, s.columnErr
}

func (s *stubInspector) TopUsersByPoints(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	return s.users, s.usersErr
}

func (s *stubInspector) ProbeLegacyOrdering(ctx context.Context) error {
	return s.legacyErr
}

func (s *stubInspector) Close() error { return nil }

func healthySchema() []domain.ColumnInfo {
	return []domain.ColumnInfo{
		{Field: "id", Type: "int unsigned"},
		{Field: "username", Type: "varchar(50)"},
		{Field: "nickname", Type: "varchar(50)"},
		{Field: "points", Type: "int"},
		{Field: "createdAt", Type: "datetime"},
	}
}

// mysqlError stands in for a driver-level error (query reached the server).
var mysqlError = errors.New("Error 1054 (42S22): Unknown column 'created_at' in 'order clause'")

func TestCheckDB_AllHealthy(t *testing.T) {
	insp := &stubInspector{
		columns: healthySchema(),
		users: []domain.RankedUser{
			{ID: 1, Username: "alice", Nickname: "Alice", Points: 120},
			{ID: 2, Username: "bob", Nickname: "Bob", Points: 95},
		},
		legacyErr: mysqlError,
	}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	if suite.Suite != "db" {
		t.Fatalf("unexpected suite name: %q", suite.Suite)
	}
	if len(suite.Checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(suite.Checks))
	}
	if n := suite.Failures(); n != 0 {
		t.Fatalf("expected no failures, got %d: %+v", n, suite.Checks)
	}

	ordering := suite.Checks[1]
	if len(ordering.Details) != 2 {
		t.Fatalf("expected 2 ordered rows, got %v", ordering.Details)
	}
	if ordering.Details[0] != "1. alice (Alice) - 120 points" {
		t.Fatalf("unexpected row rendering: %q", ordering.Details[0])
	}
}

func TestCheckDB_MissingTimestampColumn(t *testing.T) {
	cols := healthySchema()[:4] // no createdAt
	insp := &stubInspector{columns: cols, legacyErr: mysqlError}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	schema := suite.Checks[0]
	if schema.Passed {
		t.Fatal("schema check should fail without createdAt")
	}
	if !strings.Contains(schema.Message, "createdAt") {
		t.Fatalf("message should name the missing column: %q", schema.Message)
	}
}

func TestCheckDB_DescribeFails(t *testing.T) {
	insp := &stubInspector{
		columnErr: errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"),
		legacyErr: mysqlError,
	}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	schema := suite.Checks[0]
	if schema.Passed {
		t.Fatal("schema check should fail when DESCRIBE fails")
	}
	if schema.Error == nil {
		t.Fatal("expected a classified error on the check")
	}
}

func TestCheckDB_LegacyColumnStillPresent(t *testing.T) {
	insp := &stubInspector{
		columns:   healthySchema(),
		legacyErr: nil, // legacy query succeeded: regression
	}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	legacy := suite.Checks[2]
	if legacy.Passed {
		t.Fatal("legacy check must fail when the snake_case query succeeds")
	}
	if !strings.Contains(legacy.Message, "regressed") {
		t.Fatalf("unexpected message: %q", legacy.Message)
	}
}

func TestCheckDB_LegacyProbeConnectionError(t *testing.T) {
	connErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	insp := &stubInspector{
		columns:   healthySchema(),
		legacyErr: connErr,
	}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	legacy := suite.Checks[2]
	if legacy.Passed {
		t.Fatal("a connectivity failure must not count as a rejected query")
	}
	if !strings.Contains(legacy.Message, "could not reach") {
		t.Fatalf("unexpected message: %q", legacy.Message)
	}
}

func TestCheckDB_LegacyRejectedPasses(t *testing.T) {
	insp := &stubInspector{
		columns:   healthySchema(),
		legacyErr: mysqlError,
	}

	suite := NewCheckDB(insp).Execute(context.Background(), domain.DefaultProfile())

	legacy := suite.Checks[2]
	if !legacy.Passed {
		t.Fatalf("legacy rejection should pass: %+v", legacy)
	}
	if !strings.Contains(legacy.Message, "rejected as expected") {
		t.Fatalf("unexpected message: %q", legacy.Message)
	}
}
