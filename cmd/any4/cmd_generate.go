package main

import (
	"github.com/spf13/cobra"
)

var (
	genMin, genMax, genSize, genWorkers int
	genForce                            bool

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Build the difficulty pools and write them to the data dir",
		RunE:  runGenerate,
	}
)

func init() {
	f := generateCmd.Flags()
	f.IntVar(&genMin, "min", 1, "smallest input value")
	f.IntVar(&genMax, "max", 9, "largest input value")
	f.IntVar(&genSize, "size", 4, "numbers per board")
	f.IntVar(&genWorkers, "workers", 0, "roots ranked in parallel, 0 for GOMAXPROCS")
	f.BoolVar(&genForce, "force", false, "regenerate even if a pool file exists")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	overrideInt(f, "min", &cfg.Generator.Min, genMin)
	overrideInt(f, "max", &cfg.Generator.Max, genMax)
	overrideInt(f, "size", &cfg.Generator.Size, genSize)
	overrideInt(f, "workers", &cfg.Generator.Workers, genWorkers)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := newApp(0)
	if err != nil {
		return err
	}
	defer a.close()

	st, err := a.init(cmd.Context(), genForce)
	if err != nil {
		return err
	}
	pools, err := a.uc.Pools(cmd.Context())
	if err != nil {
		return err
	}
	total := 0
	for _, p := range pools {
		total += p.Len()
	}
	logger.Info("pools ready", "path", cfg.PoolPath(), "targets", len(pools), "entries", total, "nodes", st.Nodes, "dur", st.Duration)
	return nil
}
