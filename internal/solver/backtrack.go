package solver

import (
	"errors"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/rational"
)

// ErrNoSolution is returned when no sequence of steps reaches the target.
var ErrNoSolution = errors.New("no solution")

// BacktrackingSolver is a straightforward recursive solver over the same
// ordered-pair by operator space the pool generator enumerates, without
// materialising the tree.
type BacktrackingSolver struct{}

func NewBacktrackingSolver() *BacktrackingSolver { return &BacktrackingSolver{} }

// --- helpers used by Solve/Unique (in other files) ---

// combine applies op to hand[i], hand[j] and returns the reduced hand with the
// result first, mirroring how the generator builds child nodes.
func combine(hand []rational.Value, i, j int, op domain.Op) ([]rational.Value, domain.Step, bool) {
	res, ok := op.Apply(hand[i], hand[j])
	if !ok {
		return nil, domain.Step{}, false
	}
	next := make([]rational.Value, 0, len(hand)-1)
	next = append(next, res)
	for k, v := range hand {
		if k != i && k != j {
			next = append(next, v)
		}
	}
	return next, domain.Step{Left: hand[i], Op: op, Right: hand[j], Result: res}, true
}

// Replay applies steps to input in order and returns the final hand. It fails
// when a step uses a value the hand does not hold.
func Replay(input []rational.Value, steps []domain.Step) ([]rational.Value, error) {
	hand := append([]rational.Value(nil), input...)
	for _, s := range steps {
		i := indexOf(hand, s.Left, -1)
		j := indexOf(hand, s.Right, i)
		if i < 0 || j < 0 {
			return nil, errors.New("step " + s.String() + " uses a value not in hand")
		}
		next, got, ok := combine(hand, i, j, s.Op)
		if !ok || !got.Result.Equal(s.Result) {
			return nil, errors.New("step " + s.String() + " does not evaluate")
		}
		hand = next
	}
	return hand, nil
}

func indexOf(hand []rational.Value, v rational.Value, skip int) int {
	for k, h := range hand {
		if k != skip && h.Equal(v) {
			return k
		}
	}
	return -1
}

// The implementations for Solve and Unique are in backtrack_solve.go and backtrack_unique.go,
// and use the helpers above.
