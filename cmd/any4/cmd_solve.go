package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"svw.info/any4/internal/rational"
)

var (
	solveTarget string

	solveCmd = &cobra.Command{
		Use:   "solve N N [N...]",
		Short: "Find one way to reach the target from the given numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSolve,
	}
)

func init() {
	solveCmd.Flags().StringVarP(&solveTarget, "target", "t", "24", "value to reach")
}

func runSolve(cmd *cobra.Command, args []string) error {
	in := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("input %q: not an integer", a)
		}
		in = append(in, n)
	}
	target, err := rational.Parse(solveTarget)
	if err != nil {
		return err
	}

	a, err := newApp(0)
	if err != nil {
		return err
	}
	defer a.close()

	steps, st, err := a.uc.Solve(cmd.Context(), rational.Ints(in), target)
	if err != nil {
		return fmt.Errorf("%v to %s: %w", in, target, err)
	}
	out := cmd.OutOrStdout()
	for _, s := range steps {
		fmt.Fprintln(out, s)
	}
	logger.Debug("solved", "nodes", st.Nodes, "dur", st.Duration)
	return nil
}
