// Package sampler draws playable boards out of a generated pool map.
package sampler

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/metrics"
	"svw.info/any4/internal/rational"
)

var (
	// ErrImpossible means the requested set cannot be built from the pools.
	ErrImpossible = errors.New("board set cannot be generated")
	// ErrInvalidConfig means the request itself is malformed.
	ErrInvalidConfig = errors.New("invalid set config")
)

// Sampler draws boards at random. It is not safe for concurrent use because
// it owns its random source.
type Sampler struct {
	rng   *rand.Rand
	NewID func() string
}

// New returns a sampler seeded with seed; 0 seeds from the clock.
func New(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed)), NewID: uuid.NewString}
}

// Sample returns exactly cfg.Size boards or an error, never a partial set.
// The caller's pools are not modified: a deep copy is consumed instead, so a
// multiset is used at most once per target within one call.
func (s *Sampler) Sample(pools domain.PoolMap, cfg domain.SetConfig) ([]domain.Board, error) {
	fixed, err := validate(cfg)
	if err != nil {
		metrics.SampleFailures.WithLabelValues("invalid_config").Inc()
		return nil, err
	}

	work := candidatesFor(pools, cfg.Difficulties)
	available := supply(work, fixed)
	if cfg.Size > available {
		metrics.SampleFailures.WithLabelValues("insufficient_supply").Inc()
		return nil, fmt.Errorf("%w: %d boards requested, at most %d available", ErrImpossible, cfg.Size, available)
	}
	keys := work.Targets()
	out := make([]domain.Board, 0, cfg.Size)

	for len(out) < cfg.Size {
		want := cfg.Difficulties[s.rng.Intn(len(cfg.Difficulties))]

		target := fixed
		if target == "" {
			target, err = s.pickTarget(keys, cfg.Validator)
			if err != nil {
				metrics.SampleFailures.WithLabelValues("no_targets").Inc()
				return nil, err
			}
		}

		p, ok := work[target]
		var got domain.Difficulty
		if ok {
			got, ok = p.ClosestPopulated(want)
		}
		if !ok {
			if fixed != "" {
				metrics.SampleFailures.WithLabelValues("fixed_target_exhausted").Inc()
				return nil, fmt.Errorf("%w: no %s input left for target %s", ErrImpossible, want, target)
			}
			delete(work, target)
			keys = without(keys, target)
			if len(keys) == 0 {
				metrics.SampleFailures.WithLabelValues("no_targets").Inc()
				return nil, fmt.Errorf("%w: every target exhausted after %d of %d boards", ErrImpossible, len(out), cfg.Size)
			}
			continue
		}

		list := p.Pool(got)
		idx := s.rng.Intn(len(*list))
		input := (*list)[idx]
		*list = append((*list)[:idx], (*list)[idx+1:]...)

		tv, err := rational.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("pool key %q: %w", target, err)
		}
		out = append(out, domain.Board{
			ID:         s.NewID(),
			Input:      input,
			Target:     tv,
			Difficulty: got,
		})
		metrics.BoardsSampled.WithLabelValues(got.String()).Inc()
	}
	return out, nil
}

// validate checks cfg and returns the canonical fixed target, if any.
func validate(cfg domain.SetConfig) (string, error) {
	if cfg.Size < 0 {
		return "", fmt.Errorf("%w: negative size %d", ErrInvalidConfig, cfg.Size)
	}
	if len(cfg.Difficulties) == 0 {
		return "", fmt.Errorf("%w: no difficulties requested", ErrInvalidConfig)
	}
	if cfg.Target == "" {
		return "", nil
	}
	t, err := rational.Canonical(cfg.Target)
	if err != nil {
		return "", fmt.Errorf("%w: target: %v", ErrInvalidConfig, err)
	}
	return t, nil
}

// candidatesFor copies the targets that have at least one populated tier
// among ds.
func candidatesFor(pools domain.PoolMap, ds []domain.Difficulty) domain.PoolMap {
	out := make(domain.PoolMap, len(pools))
	for k, p := range pools {
		if p != nil && p.HasAny(ds) {
			out[k] = p.Clone()
		}
	}
	return out
}

// supply is an upper bound on the boards work can yield. Fallback may draw
// from any tier, so every tier of a candidate target counts.
func supply(work domain.PoolMap, fixed string) int {
	if fixed != "" {
		if p, ok := work[fixed]; ok {
			return p.Len()
		}
		return 0
	}
	n := 0
	for _, p := range work {
		n += p.Len()
	}
	return n
}

// pickTarget draws a target uniformly, discarding candidates the validator
// rejects until one passes. Rejections only apply to this draw.
func (s *Sampler) pickTarget(keys []string, v domain.TargetValidator) (string, error) {
	cand := append([]string(nil), keys...)
	for len(cand) > 0 {
		i := s.rng.Intn(len(cand))
		k := cand[i]
		if v == nil {
			return k, nil
		}
		tv, err := rational.Parse(k)
		if err == nil && v(tv.Float64()) {
			return k, nil
		}
		cand = append(cand[:i], cand[i+1:]...)
	}
	return "", fmt.Errorf("%w: ran out of viable targets", ErrImpossible)
}

func without(keys []string, k string) []string {
	i := sort.SearchStrings(keys, k)
	if i < len(keys) && keys[i] == k {
		return append(keys[:i], keys[i+1:]...)
	}
	return keys
}
