package solver

import (
	"context"
	"time"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

// Solve returns the first sequence of steps, in generator order, that reduces
// input to exactly target.
func (s *BacktrackingSolver) Solve(ctx context.Context, input []rational.Value, target rational.Value) ([]domain.Step, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	steps := make([]domain.Step, 0, len(input))
	var dfs func(hand []rational.Value) bool
	dfs = func(hand []rational.Value) bool {
		if ctx.Err() != nil {
			return false
		}
		if len(hand) == 1 {
			return hand[0].Equal(target)
		}
		for i := range hand {
			for j := range hand {
				if i == j {
					continue
				}
				for _, op := range domain.Ops {
					next, step, ok := combine(hand, i, j, op)
					if !ok {
						continue
					}
					nodes++
					steps = append(steps, step)
					if dfs(next) {
						return true
					}
					steps = steps[:len(steps)-1]
				}
			}
		}
		return false
	}
	if len(input) == 0 || !dfs(input) {
		st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		return nil, st, ErrNoSolution
	}
	return steps, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
