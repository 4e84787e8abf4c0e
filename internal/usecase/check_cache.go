package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

// CheckCache verifies the Redis leaderboard cache: connectivity plus a
// listing of cached snapshots and their TTLs.
type CheckCache struct {
	inspector ports.CacheInspector
}

func NewCheckCache(inspector ports.CacheInspector) *CheckCache {
	return &CheckCache{inspector: inspector}
}

func (uc *CheckCache) Execute(ctx context.Context, profile domain.Profile) domain.SuiteResult {
	suite := domain.SuiteResult{
		Suite:     "cache",
		Target:    profile.Redis.Addr,
		StartedAt: time.Now(),
	}

	reachable, pingCheck := uc.checkPing(ctx)
	suite.Checks = append(suite.Checks, pingCheck)

	if reachable {
		suite.Checks = append(suite.Checks, uc.checkKeys(ctx, profile.Redis.KeyPattern))
	} else {
		suite.Checks = append(suite.Checks, domain.CheckResult{
			Name:    "leaderboard keys",
			Skipped: true,
			Message: "skipped: redis is not reachable",
		})
	}

	suite.EndedAt = time.Now()
	return suite
}

func (uc *CheckCache) checkPing(ctx context.Context) (bool, domain.CheckResult) {
	rtt, err := uc.inspector.Ping(ctx)
	if err != nil {
		return false, domain.CheckResult{
			Name:    "redis ping",
			Message: "redis is not reachable",
			Error:   domain.NewCheckError(err),
		}
	}

	return true, domain.CheckResult{
		Name:      "redis ping",
		Passed:    true,
		Message:   "PONG",
		LatencyMS: rtt.Milliseconds(),
	}
}

func (uc *CheckCache) checkKeys(ctx context.Context, pattern string) domain.CheckResult {
	start := time.Now()
	keys, err := uc.inspector.LeaderboardKeys(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return domain.CheckResult{
			Name:      "leaderboard keys",
			Message:   "listing cache keys failed",
			LatencyMS: latency,
			Error:     domain.NewCheckError(err),
		}
	}

	check := domain.CheckResult{
		Name:      "leaderboard keys",
		Passed:    true,
		LatencyMS: latency,
	}

	if len(keys) == 0 {
		// A cold cache is not a failure; the backend fills it lazily.
		check.Message = fmt.Sprintf("no keys match %s (cache is cold)", pattern)
		return check
	}

	check.Message = fmt.Sprintf("%d cached snapshot(s)", len(keys))
	for _, k := range keys {
		ttl := "no expiry"
		if k.TTLSeconds >= 0 {
			ttl = fmt.Sprintf("ttl %ds", k.TTLSeconds)
		}
		check.Details = append(check.Details, fmt.Sprintf("%s (%s)", k.Key, ttl))
	}
	return check
}
