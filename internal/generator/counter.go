package generator

import (
	"sort"

	"svw.info/any4/internal/rational"
)

// Tally is the number of root-to-leaf paths ending in Value.
type Tally struct {
	Value rational.Value
	Paths int
}

// Frequency maps a canonical value key to its tally. Absent keys count zero.
type Frequency map[string]Tally

// Add records n more paths ending in v.
func (f Frequency) Add(v rational.Value, n int) {
	k := v.Key()
	t, ok := f[k]
	if !ok {
		t.Value = v
	}
	t.Paths += n
	f[k] = t
}

// Merge sums other into f.
func (f Frequency) Merge(other Frequency) {
	for _, t := range other {
		f.Add(t.Value, t.Paths)
	}
}

// Paths is the number of leaves holding v, zero when v never appears.
func (f Frequency) Paths(v rational.Value) int { return f[v.Key()].Paths }

// Total is the sum of all path counts.
func (f Frequency) Total() int {
	n := 0
	for _, t := range f {
		n += t.Paths
	}
	return n
}

// Sorted returns the tallies ordered by value.
func (f Frequency) Sorted() []Tally {
	out := make([]Tally, 0, len(f))
	for _, t := range f {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value.Cmp(out[j].Value) < 0 })
	return out
}

// CountLeaves walks the subtree rooted at id and counts, per final value, the
// number of distinct operation sequences reaching it. Operand order matters:
// a+b and b+a are two paths.
func CountLeaves(t *Tree, id NodeID) Frequency {
	freq := Frequency{}
	for _, c := range t.Children(id) {
		if t.IsLeaf(c) {
			freq.Add(t.Marker(c).Values[0], 1)
			continue
		}
		freq.Merge(CountLeaves(t, c))
	}
	return freq
}
