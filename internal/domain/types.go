package domain

import (
	"fmt"
	"sort"

	"svw.info/any4/internal/rational"
)

// DifficultyPools holds the input multisets for one target, split by tier.
type DifficultyPools struct {
	Easy     [][]int `json:"easy"`
	Moderate [][]int `json:"moderate"`
	Hard     [][]int `json:"hard"`
}

// NewDifficultyPools returns pools whose lists encode as [] rather than null.
func NewDifficultyPools() *DifficultyPools {
	return &DifficultyPools{Easy: [][]int{}, Moderate: [][]int{}, Hard: [][]int{}}
}

// Pool returns the list for d so callers can append to or shrink it.
func (p *DifficultyPools) Pool(d Difficulty) *[][]int {
	switch d {
	case Easy:
		return &p.Easy
	case Hard:
		return &p.Hard
	default:
		return &p.Moderate
	}
}

func (p *DifficultyPools) Add(d Difficulty, input []int) {
	l := p.Pool(d)
	*l = append(*l, append([]int(nil), input...))
}

// HasAny reports whether any of the given tiers is populated.
func (p *DifficultyPools) HasAny(ds []Difficulty) bool {
	for _, d := range ds {
		if len(*p.Pool(d)) > 0 {
			return true
		}
	}
	return false
}

// ClosestPopulated returns the first populated tier in d's fallback order.
func (p *DifficultyPools) ClosestPopulated(d Difficulty) (Difficulty, bool) {
	for _, c := range d.FallbackOrder() {
		if len(*p.Pool(c)) > 0 {
			return c, true
		}
	}
	return d, false
}

// Len is the number of multisets across all tiers.
func (p *DifficultyPools) Len() int {
	return len(p.Easy) + len(p.Moderate) + len(p.Hard)
}

func (p *DifficultyPools) Clone() *DifficultyPools {
	out := NewDifficultyPools()
	for _, d := range Difficulties {
		for _, in := range *p.Pool(d) {
			out.Add(d, in)
		}
	}
	return out
}

// normalize replaces nil lists, which decoding a null produces.
func (p *DifficultyPools) normalize() {
	for _, d := range Difficulties {
		if l := p.Pool(d); *l == nil {
			*l = [][]int{}
		}
	}
}

// PoolMap maps a canonical target string to its difficulty pools.
type PoolMap map[string]*DifficultyPools

// Insert files r under its target, creating the entry on first sight.
func (m PoolMap) Insert(r InputRanking) {
	key := r.Target.Key()
	p, ok := m[key]
	if !ok {
		p = NewDifficultyPools()
		m[key] = p
	}
	p.Add(r.Difficulty, r.Input)
}

// Targets returns the keys in sorted order.
func (m PoolMap) Targets() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m PoolMap) Clone() PoolMap {
	out := make(PoolMap, len(m))
	for k, p := range m {
		if p == nil {
			continue
		}
		out[k] = p.Clone()
	}
	return out
}

// Normalize drops nil entries and replaces nil lists after decoding.
func (m PoolMap) Normalize() {
	for k, p := range m {
		if p == nil {
			delete(m, k)
			continue
		}
		p.normalize()
	}
}

// InputRanking is one (multiset, reachable target, difficulty) classification.
type InputRanking struct {
	Input      []int
	Target     rational.Value
	Difficulty Difficulty
}

// TargetValidator decides whether a target value is acceptable for a board set.
type TargetValidator func(float64) bool

// SetConfig is a request for a set of boards.
type SetConfig struct {
	Size int
	// Target is a canonical rational string; empty means any target.
	Target       string
	Validator    TargetValidator
	Difficulties []Difficulty
}

// NewSetConfig builds a SetConfig; a nil target means any target.
func NewSetConfig(size int, target *rational.Value, v TargetValidator, ds ...Difficulty) SetConfig {
	cfg := SetConfig{Size: size, Validator: v, Difficulties: ds}
	if target != nil {
		cfg.Target = target.Key()
	}
	return cfg
}

// Board is one playable puzzle.
type Board struct {
	ID         string         `json:"id"`
	Input      []int          `json:"input"`
	Target     rational.Value `json:"target"`
	Difficulty Difficulty     `json:"difficulty"`
}

func (b Board) Info() string {
	return fmt.Sprintf("Input: %v, Target: %s, Difficulty: %s", b.Input, b.Target, b.Difficulty)
}

// Step is one move: Left Op Right = Result.
type Step struct {
	Left   rational.Value `json:"left"`
	Op     Op             `json:"op"`
	Right  rational.Value `json:"right"`
	Result rational.Value `json:"result"`
}

func (s Step) String() string {
	return fmt.Sprintf("%s %s %s = %s", s.Left, s.Op, s.Right, s.Result)
}
