package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTreeDepthTracksHandSize(t *testing.T) {
	inputs := [][]int{{5}, {1, 2}, {1, 2, 3}, {0, 0, 4}, {1, 2, 3, 4}}
	for _, in := range inputs {
		tree := BuildTree(rational.Ints(in))
		n := len(in)
		for i := 0; i < tree.Len(); i++ {
			id := NodeID(i)
			d := tree.Depth(id)
			assert.Equal(t, n-d, len(tree.Marker(id).Values), "input %v node %d", in, i)
			if len(tree.Children(id)) == 0 {
				assert.Equal(t, n-1, d, "input %v: leaf %d at wrong depth", in, i)
			}
		}
	}
}

func TestTreeTwoValues(t *testing.T) {
	tree := BuildTree(rational.Ints([]int{1, 2}))
	// (1,2) and (2,1), four operators each, no zero divisors
	require.Len(t, tree.Children(Root), 8)
	assert.Equal(t, 8, tree.Leaves())
	assert.Equal(t, domain.OpNone, tree.Marker(Root).Op)

	var got []string
	for _, c := range tree.Children(Root) {
		got = append(got, tree.Marker(c).Op.String()+tree.Marker(c).Values[0].String())
	}
	assert.Equal(t, []string{"+3", "--1", "x2", "/1/2", "+3", "-1", "x2", "/2"}, got)
}

func TestTreeSkipsDivisionByZero(t *testing.T) {
	tree := BuildTree(rational.Ints([]int{0, 3}))
	// 3/0 is skipped, 0/3 is kept
	assert.Len(t, tree.Children(Root), 7)

	// 2-2 leaves [0 5]; of its eight candidates only 5/0 is dropped
	tree = BuildTree(rational.Ints([]int{2, 2, 5}))
	var zeroNode NodeID = -1
	for _, c := range tree.Children(Root) {
		m := tree.Marker(c)
		if m.Op == domain.OpSub && m.Values[0].Sign() == 0 && m.Values[1].Equal(rational.FromInt(5)) {
			zeroNode = c
			break
		}
	}
	require.NotEqual(t, NodeID(-1), zeroNode)
	assert.Len(t, tree.Children(zeroNode), 7)
}

func TestTreePath(t *testing.T) {
	tree := BuildTree(rational.Ints([]int{1, 2, 3}))
	leaf := NodeID(-1)
	for i := 0; i < tree.Len(); i++ {
		if tree.IsLeaf(NodeID(i)) {
			leaf = NodeID(i)
			break
		}
	}
	require.NotEqual(t, NodeID(-1), leaf)
	assert.Equal(t, []domain.Op{domain.OpAdd, domain.OpAdd}, tree.Path(leaf))
	assert.Equal(t, "6", tree.Marker(leaf).Values[0].String())
}

func TestCountLeavesScenario(t *testing.T) {
	tree := BuildTree(rational.Ints([]int{1, 2}))
	freq := CountLeaves(tree, Root)

	assert.Equal(t, 2, freq.Paths(rational.FromInt(3)))
	assert.Equal(t, 1, freq.Paths(rational.FromInt(-1)))
	assert.Equal(t, 1, freq.Paths(rational.FromInt(1)))
	assert.Equal(t, 3, freq.Paths(rational.FromInt(2)), "x twice and / once")
	assert.Equal(t, 1, freq.Paths(rational.MustParse("1/2")))
	assert.Equal(t, 0, freq.Paths(rational.FromInt(42)))
	assert.Len(t, freq, 5)

	ranked := Rank([]int{1, 2}, freq, DefaultThresholds())
	byTarget := map[string]domain.Difficulty{}
	for _, r := range ranked {
		byTarget[r.Target.Key()] = r.Difficulty
	}
	assert.Equal(t, domain.Moderate, byTarget["2"])
	assert.Equal(t, domain.Hard, byTarget["3"])
	assert.Equal(t, domain.Hard, byTarget["1/2"])
}

func TestCountLeavesTotalsMatchLeaves(t *testing.T) {
	inputs := [][]int{{1, 2}, {1, 1, 1}, {0, 2, 3}, {1, 2, 3, 4}, {3, 3, 8, 8}}
	for _, in := range inputs {
		tree := BuildTree(rational.Ints(in))
		freq := CountLeaves(tree, Root)
		assert.Equal(t, tree.Leaves(), freq.Total(), "input %v", in)
	}
}

func TestSingleValueRootHasNoPaths(t *testing.T) {
	tree := BuildTree(rational.Ints([]int{7}))
	assert.Equal(t, 1, tree.Len())
	assert.Empty(t, CountLeaves(tree, Root))
	assert.Zero(t, tree.Leaves())
}

func TestFrequencyMerge(t *testing.T) {
	a := Frequency{}
	a.Add(rational.FromInt(1), 2)
	b := Frequency{}
	b.Add(rational.FromInt(1), 3)
	b.Add(rational.MustParse("1/2"), 1)
	a.Merge(b)
	assert.Equal(t, 5, a.Paths(rational.FromInt(1)))
	assert.Equal(t, 1, a.Paths(rational.MustParse("2/4")))
	assert.Equal(t, 6, a.Total())
}

func TestClassifyThresholds(t *testing.T) {
	th := DefaultThresholds()
	cases := map[int]domain.Difficulty{
		1:   domain.Hard,
		2:   domain.Hard,
		3:   domain.Moderate,
		5:   domain.Moderate,
		6:   domain.Easy,
		100: domain.Easy,
	}
	for paths, want := range cases {
		assert.Equal(t, want, th.Classify(paths), "paths=%d", paths)
	}

	custom := Thresholds{HardMax: 1, ModerateMax: 1}
	assert.Equal(t, domain.Hard, custom.Classify(1))
	assert.Equal(t, domain.Easy, custom.Classify(2))
	assert.Error(t, Thresholds{HardMax: 3, ModerateMax: 2}.Validate())
	assert.Error(t, Thresholds{}.Validate())
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]int{{1, 1}, {1, 2}, {1, 3}, {2, 2}, {2, 3}, {3, 3}}, Combinations(1, 3, 2))
	assert.Len(t, Combinations(1, 9, 4), 495)
	assert.Equal(t, [][]int{{4}}, Combinations(4, 4, 1))
	assert.Nil(t, Combinations(3, 1, 2))
	assert.Nil(t, Combinations(1, 3, 0))
}

func TestGenerateAssemblesPools(t *testing.T) {
	g := NewPoolGenerator(DefaultThresholds(), 2, quietLogger())
	pools, st, err := g.Generate(context.Background(), ports.GenerateRequest{Min: 1, Max: 3, Size: 2})
	require.NoError(t, err)
	assert.Positive(t, st.Nodes)

	p, ok := pools["2"]
	require.True(t, ok)
	assert.Contains(t, p.Moderate, []int{1, 2})

	// each multiset appears at most once per target
	for target, dp := range pools {
		seen := map[string]bool{}
		for _, d := range domain.Difficulties {
			for _, in := range *dp.Pool(d) {
				k := fmt.Sprint(in)
				assert.False(t, seen[k], "target %s lists %v twice", target, in)
				seen[k] = true
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewPoolGenerator(DefaultThresholds(), 4, quietLogger())
	req := ports.GenerateRequest{Min: 1, Max: 4, Size: 3}
	a, _, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	b, _, err := NewPoolGenerator(DefaultThresholds(), 1, quietLogger()).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	g := NewPoolGenerator(DefaultThresholds(), 1, quietLogger())
	_, _, err := g.Generate(context.Background(), ports.GenerateRequest{Min: 5, Max: 1, Size: 2})
	assert.Error(t, err)
	_, _, err = g.Generate(context.Background(), ports.GenerateRequest{Min: 1, Max: 5, Size: 0})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = g.Generate(ctx, ports.GenerateRequest{Min: 1, Max: 3, Size: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
