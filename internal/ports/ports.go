package ports

import (
	"context"
	"time"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/rational"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// GenerateRequest bounds the input space: every multiset of Size values from
// [Min, Max] inclusive is enumerated.
type GenerateRequest struct {
	Min  int
	Max  int
	Size int
}

// Generator builds the full pool map offline.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (domain.PoolMap, Stats, error)
}

// PoolStore persists the pool map. Exists is the only freshness check.
type PoolStore interface {
	Prepare(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
	Save(ctx context.Context, m domain.PoolMap) error
	Load(ctx context.Context) (domain.PoolMap, error)
}

// Sampler draws boards from a pool map without reusing a multiset per call.
type Sampler interface {
	Sample(pools domain.PoolMap, cfg domain.SetConfig) ([]domain.Board, error)
}

// Solver finds one sequence of steps reducing input to target.
type Solver interface {
	Solve(ctx context.Context, input []rational.Value, target rational.Value) ([]domain.Step, Stats, error)
}

// UniquenessChecker is implemented by solvers that can tell whether exactly
// one sequence of steps reaches the target.
type UniquenessChecker interface {
	Unique(ctx context.Context, input []rational.Value, target rational.Value) (bool, Stats, error)
}

// Hinter suggests the next step from a partially reduced hand.
type Hinter interface {
	Hint(ctx context.Context, hand []rational.Value, target rational.Value) (domain.Step, bool, error)
}
