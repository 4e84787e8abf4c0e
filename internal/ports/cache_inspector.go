package ports

import (
	"context"
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

// CacheInspector inspects the backend's Redis leaderboard cache.
type CacheInspector interface {
	// Ping checks connectivity and returns the round-trip time.
	Ping(ctx context.Context) (time.Duration, error)

	// LeaderboardKeys lists cache keys matching the profile pattern with
	// their TTLs.
	LeaderboardKeys(ctx context.Context) ([]domain.CacheKey, error)

	Close() error
}
