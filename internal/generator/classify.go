package generator

import (
	"fmt"

	"svw.info/any4/internal/domain"
)

// Thresholds maps path counts to difficulty. Counts up to HardMax are Hard,
// up to ModerateMax are Moderate, anything above is Easy. Fewer ways to reach
// a value means the player has a narrower solution to find.
type Thresholds struct {
	HardMax     int `yaml:"hard_max" validate:"gte=1"`
	ModerateMax int `yaml:"moderate_max" validate:"gtefield=HardMax"`
}

// DefaultThresholds matches the content shipped with existing pool files.
func DefaultThresholds() Thresholds {
	return Thresholds{HardMax: 2, ModerateMax: 5}
}

func (th Thresholds) Validate() error {
	if th.HardMax < 1 || th.ModerateMax < th.HardMax {
		return fmt.Errorf("invalid thresholds: hard<=%d moderate<=%d", th.HardMax, th.ModerateMax)
	}
	return nil
}

// Classify returns the difficulty for a value reached by paths distinct paths.
func (th Thresholds) Classify(paths int) domain.Difficulty {
	switch {
	case paths <= th.HardMax:
		return domain.Hard
	case paths <= th.ModerateMax:
		return domain.Moderate
	default:
		return domain.Easy
	}
}

// Rank emits one ranking per distinct value in freq, ordered by value.
func Rank(input []int, freq Frequency, th Thresholds) []domain.InputRanking {
	out := make([]domain.InputRanking, 0, len(freq))
	for _, t := range freq.Sorted() {
		if t.Paths <= 0 {
			continue
		}
		out = append(out, domain.InputRanking{
			Input:      append([]int(nil), input...),
			Target:     t.Value,
			Difficulty: th.Classify(t.Paths),
		})
	}
	return out
}

// Assemble files every ranking into a fresh pool map.
func Assemble(rankings []domain.InputRanking) domain.PoolMap {
	m := domain.PoolMap{}
	for _, r := range rankings {
		m.Insert(r)
	}
	return m
}
