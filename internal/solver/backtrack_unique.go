package solver

import (
	"context"
	"time"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

// Unique counts paths to target up to 2 and reports whether exactly one exists.
func (s *BacktrackingSolver) Unique(ctx context.Context, input []rational.Value, target rational.Value) (bool, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	count := 0

	var dfs func(hand []rational.Value) bool
	dfs = func(hand []rational.Value) bool {
		if ctx.Err() != nil || count >= 2 {
			return true // stop early
		}
		if len(hand) == 1 {
			if hand[0].Equal(target) {
				count++
			}
			return count >= 2
		}
		for i := range hand {
			for j := range hand {
				if i == j {
					continue
				}
				for _, op := range domain.Ops {
					next, _, ok := combine(hand, i, j, op)
					if !ok {
						continue
					}
					nodes++
					if dfs(next) {
						return true
					}
				}
			}
		}
		return false
	}
	_ = dfs(input)
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}
