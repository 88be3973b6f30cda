package hint

import (
	"context"
	"errors"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
	"svw.info/any4/internal/solver"
)

// Next implements a minimal Hinter that suggests the first step of any
// solution reachable from the current hand.
type Next struct {
	Solver ports.Solver
}

func NewNext(s ports.Solver) *Next { return &Next{Solver: s} }

// Hint returns the first step of a solution. found is false when the hand is
// already solved or the target is no longer reachable.
func (h *Next) Hint(ctx context.Context, hand []rational.Value, target rational.Value) (domain.Step, bool, error) {
	if len(hand) < 2 {
		return domain.Step{}, false, nil
	}
	steps, _, err := h.Solver.Solve(ctx, hand, target)
	if errors.Is(err, solver.ErrNoSolution) {
		return domain.Step{}, false, nil
	}
	if err != nil {
		return domain.Step{}, false, err
	}
	return steps[0], true, nil
}
