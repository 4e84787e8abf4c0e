package ports

import (
	"context"

	"github.com/Yumouqianxia/predprobe/internal/domain"
)

// EndpointCaller executes a single endpoint spec with a resolved variable set.
type EndpointCaller interface {
	Call(ctx context.Context, spec domain.EndpointSpec, vars domain.Vars) (domain.CallResult, error)
}
