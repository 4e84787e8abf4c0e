package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

// usersTimestampColumn is the camelCase column the leaderboard ordering
// depends on; its legacy snake_case spelling must be gone.
const usersTimestampColumn = "createdAt"

// CheckDB verifies the users table schema and the leaderboard ordering
// query directly against MySQL, bypassing the API.
type CheckDB struct {
	inspector ports.SchemaInspector
}

func NewCheckDB(inspector ports.SchemaInspector) *CheckDB {
	return &CheckDB{inspector: inspector}
}

func (uc *CheckDB) Execute(ctx context.Context, profile domain.Profile) domain.SuiteResult {
	suite := domain.SuiteResult{
		Suite:     "db",
		Target:    profile.DB.Addr() + "/" + profile.DB.Name,
		StartedAt: time.Now(),
	}

	suite.Checks = append(suite.Checks, uc.checkSchema(ctx))
	suite.Checks = append(suite.Checks, uc.checkOrdering(ctx, profile.Checks.Limit))
	suite.Checks = append(suite.Checks, uc.checkLegacyColumn(ctx))

	suite.EndedAt = time.Now()
	return suite
}

func (uc *CheckDB) checkSchema(ctx context.Context) domain.CheckResult {
	start := time.Now()
	columns, err := uc.inspector.DescribeTable(ctx, "users")
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return domain.CheckResult{
			Name:      "users table schema",
			Message:   "DESCRIBE users failed",
			LatencyMS: latency,
			Error:     domain.NewSQLCheckError(err),
		}
	}

	check := domain.CheckResult{
		Name:      "users table schema",
		LatencyMS: latency,
	}

	hasTimestamp := false
	for _, col := range columns {
		if col.Field == usersTimestampColumn {
			hasTimestamp = true
		}
		check.Details = append(check.Details, fmt.Sprintf("%s - %s", col.Field, col.Type))
	}

	if !hasTimestamp {
		check.Message = fmt.Sprintf("users table is missing the %s column", usersTimestampColumn)
		return check
	}

	check.Passed = true
	check.Message = fmt.Sprintf("users has %d columns (%s present)", len(columns), usersTimestampColumn)
	return check
}

func (uc *CheckDB) checkOrdering(ctx context.Context, limit int) domain.CheckResult {
	start := time.Now()
	users, err := uc.inspector.TopUsersByPoints(ctx, limit)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return domain.CheckResult{
			Name:      "leaderboard ordering",
			Message:   "ordering query failed",
			LatencyMS: latency,
			Error:     domain.NewSQLCheckError(err),
		}
	}

	check := domain.CheckResult{
		Name:      "leaderboard ordering",
		Passed:    true,
		Message:   fmt.Sprintf("ordering query returned %d rows", len(users)),
		LatencyMS: latency,
	}
	for i, u := range users {
		check.Details = append(check.Details, fmt.Sprintf("%d. %s (%s) - %d points", i+1, u.Username, u.Nickname, u.Points))
	}
	return check
}

// checkLegacyColumn inverts the error sense: the snake_case ordering query
// failing is the healthy outcome.
func (uc *CheckDB) checkLegacyColumn(ctx context.Context) domain.CheckResult {
	start := time.Now()
	err := uc.inspector.ProbeLegacyOrdering(ctx)
	latency := time.Since(start).Milliseconds()

	if err == nil {
		return domain.CheckResult{
			Name:      "legacy created_at rejected",
			Message:   "legacy snake_case ordering query unexpectedly succeeded; schema has regressed",
			LatencyMS: latency,
		}
	}

	// A connectivity failure proves nothing about the schema.
	if ce := domain.NewSQLCheckError(err); ce.Kind != domain.CheckErrorSQL {
		return domain.CheckResult{
			Name:      "legacy created_at rejected",
			Message:   "could not reach the database",
			LatencyMS: latency,
			Error:     ce,
		}
	}

	return domain.CheckResult{
		Name:      "legacy created_at rejected",
		Passed:    true,
		Message:   fmt.Sprintf("rejected as expected: %v", err),
		LatencyMS: latency,
	}
}
