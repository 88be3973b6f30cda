package generator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/metrics"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

// PoolGenerator enumerates every input multiset of a range, ranks each one and
// assembles the results into a pool map.
type PoolGenerator struct {
	Thresholds Thresholds
	// Workers bounds the number of trees built concurrently; <= 0 uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// NewPoolGenerator wires a generator with the given thresholds.
func NewPoolGenerator(th Thresholds, workers int, logger *slog.Logger) *PoolGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PoolGenerator{Thresholds: th, Workers: workers, Logger: logger}
}

// Generate builds the pool map for req. Roots are ranked in parallel and
// merged in enumeration order, so the output is deterministic.
func (g *PoolGenerator) Generate(ctx context.Context, req ports.GenerateRequest) (domain.PoolMap, ports.Stats, error) {
	start := time.Now()
	if req.Min > req.Max {
		return nil, ports.Stats{}, fmt.Errorf("invalid range: min %d > max %d", req.Min, req.Max)
	}
	if req.Size < 1 {
		return nil, ports.Stats{}, fmt.Errorf("invalid combination size %d", req.Size)
	}
	if err := g.Thresholds.Validate(); err != nil {
		return nil, ports.Stats{}, err
	}

	roots := Combinations(req.Min, req.Max, req.Size)
	g.Logger.Info("generating pools",
		"min", req.Min, "max", req.Max, "size", req.Size, "roots", len(roots))

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	rankings := make([][]domain.InputRanking, len(roots))
	nodes := make([]int, len(roots))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, root := range roots {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rankings[i], nodes[i] = g.rankRoot(root)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, ports.Stats{}, err
	}

	pools := domain.PoolMap{}
	total := 0
	for i := range roots {
		for _, r := range rankings[i] {
			pools.Insert(r)
			metrics.Rankings.WithLabelValues(r.Difficulty.String()).Inc()
		}
		total += nodes[i]
	}
	st := ports.Stats{Nodes: total, Duration: time.Since(start)}
	metrics.GenerationDuration.Observe(st.Duration.Seconds())
	g.Logger.Info("pools generated",
		"targets", len(pools), "nodes", st.Nodes, "dur", st.Duration.Round(time.Millisecond))
	return pools, st, nil
}

// rankRoot builds, counts and classifies a single input multiset.
func (g *PoolGenerator) rankRoot(input []int) ([]domain.InputRanking, int) {
	t := BuildTree(rational.Ints(input))
	metrics.TreesBuilt.Inc()
	metrics.TreeNodes.Add(float64(t.Len()))
	freq := CountLeaves(t, Root)
	g.Logger.Debug("ranked input", "input", input, "nodes", t.Len(), "targets", len(freq))
	return Rank(input, freq, g.Thresholds), t.Len()
}

// Combinations returns every non-decreasing multiset of size values drawn
// from [lo, hi] inclusive, in lexicographic order.
func Combinations(lo, hi, size int) [][]int {
	if size < 1 || lo > hi {
		return nil
	}
	var out [][]int
	cur := make([]int, size)
	for i := range cur {
		cur[i] = lo
	}
	for {
		out = append(out, append([]int(nil), cur...))
		// find the rightmost position that can still grow
		k := size - 1
		for k >= 0 && cur[k] == hi {
			k--
		}
		if k < 0 {
			return out
		}
		cur[k]++
		for i := k + 1; i < size; i++ {
			cur[i] = cur[k]
		}
	}
}
