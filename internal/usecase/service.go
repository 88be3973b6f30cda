package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

type Service struct {
	Generator ports.Generator
	Store     ports.PoolStore
	Sampler   ports.Sampler
	Solver    ports.Solver
	Hinter    ports.Hinter
	Logger    *slog.Logger

	mu    sync.RWMutex
	pools domain.PoolMap
	// sampleMu serialises Sample calls; samplers own their random source.
	sampleMu sync.Mutex
}

func NewService(g ports.Generator, st ports.PoolStore, sa ports.Sampler, s ports.Solver, h ports.Hinter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Generator: g, Store: st, Sampler: sa, Solver: s, Hinter: h, Logger: logger}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// InitRequest controls pool preparation. Force regenerates even when a pool
// already exists.
type InitRequest struct {
	Min   int
	Max   int
	Size  int
	Force bool
}

// Init makes sure a pool exists in the store, generating and saving one when
// it is absent or Force is set. Callers treat a Prepare failure as fatal.
func (u *Service) Init(ctx context.Context, req InitRequest) (ports.Stats, error) {
	if u.Store == nil {
		return ports.Stats{}, errNotConfigured
	}
	if err := u.Store.Prepare(ctx); err != nil {
		return ports.Stats{}, fmt.Errorf("prepare pool store: %w", err)
	}
	exists, err := u.Store.Exists(ctx)
	if err != nil {
		return ports.Stats{}, err
	}
	if exists && !req.Force {
		u.Logger.Info("pool file present, skipping generation")
		return ports.Stats{}, nil
	}
	if u.Generator == nil {
		return ports.Stats{}, errNotConfigured
	}
	m, st, err := u.Generator.Generate(ctx, ports.GenerateRequest{Min: req.Min, Max: req.Max, Size: req.Size})
	if err != nil {
		return st, err
	}
	if err := u.Store.Save(ctx, m); err != nil {
		return st, fmt.Errorf("save pools: %w", err)
	}
	u.setPools(m)
	u.Logger.Info("pools generated", "targets", len(m), "nodes", st.Nodes, "dur", st.Duration)
	return st, nil
}

// Pools returns the master pool map, loading it from the store on first use.
// The returned map is shared; callers must not modify it.
func (u *Service) Pools(ctx context.Context) (domain.PoolMap, error) {
	u.mu.RLock()
	m := u.pools
	u.mu.RUnlock()
	if m != nil {
		return m, nil
	}
	return u.Reload(ctx)
}

// Reload reads the pool map from the store again, replacing the cached copy.
func (u *Service) Reload(ctx context.Context) (domain.PoolMap, error) {
	if u.Store == nil {
		return nil, errNotConfigured
	}
	m, err := u.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u.setPools(m)
	u.Logger.Debug("pools loaded", "targets", len(m))
	return m, nil
}

func (u *Service) setPools(m domain.PoolMap) {
	u.mu.Lock()
	u.pools = m
	u.mu.Unlock()
}

// Targets lists the canonical targets present in the pools.
func (u *Service) Targets(ctx context.Context) ([]string, error) {
	m, err := u.Pools(ctx)
	if err != nil {
		return nil, err
	}
	return m.Targets(), nil
}

func (u *Service) Boards(ctx context.Context, cfg domain.SetConfig) ([]domain.Board, error) {
	if u.Sampler == nil {
		return nil, errNotConfigured
	}
	m, err := u.Pools(ctx)
	if err != nil {
		return nil, err
	}
	u.sampleMu.Lock()
	defer u.sampleMu.Unlock()
	return u.Sampler.Sample(m, cfg)
}

func (u *Service) Solve(ctx context.Context, input []rational.Value, target rational.Value) ([]domain.Step, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, input, target)
}

// Unique reports whether exactly one step sequence reaches target. ok is
// false when the configured solver cannot answer.
func (u *Service) Unique(ctx context.Context, input []rational.Value, target rational.Value) (unique, ok bool, err error) {
	uc, ok := u.Solver.(ports.UniquenessChecker)
	if !ok {
		return false, false, nil
	}
	unique, _, err = uc.Unique(ctx, input, target)
	return unique, err == nil, err
}

func (u *Service) Hint(ctx context.Context, hand []rational.Value, target rational.Value) (domain.Step, bool, error) {
	if u.Hinter == nil {
		return domain.Step{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, hand, target)
}
