package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	boardsSize       int
	boardsTarget     string
	boardsValidator  string
	boardsDifficulty string
	boardsSeed       int64
	boardsJSON       bool

	boardsCmd = &cobra.Command{
		Use:   "boards",
		Short: "Draw a set of boards from the pools",
		RunE:  runBoards,
	}
)

func init() {
	f := boardsCmd.Flags()
	f.IntVarP(&boardsSize, "size", "n", 10, "number of boards")
	f.StringVarP(&boardsTarget, "target", "t", "", "fixed target such as 24 or 1/2")
	f.StringVar(&boardsValidator, "validator", "", "target filter: any|integer|positive-integer")
	f.StringVarP(&boardsDifficulty, "difficulty", "d", "", "comma separated tiers (default all)")
	f.Int64Var(&boardsSeed, "seed", 0, "random seed, 0 for the clock")
	f.BoolVar(&boardsJSON, "json", false, "print boards as JSON")
}

// sessionFlags folds the board flags over the session config.
func sessionFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	s := &cfg.Session
	overrideInt(f, "size", &s.Size, boardsSize)
	overrideString(f, "target", &s.Target, boardsTarget)
	overrideString(f, "validator", &s.Validator, boardsValidator)
	overrideString(f, "difficulty", &s.Difficulties, boardsDifficulty)
	if f.Changed("seed") {
		s.Seed = boardsSeed
	}
	return cfg.Validate()
}

func runBoards(cmd *cobra.Command, args []string) error {
	if err := sessionFlags(cmd); err != nil {
		return err
	}
	s := cfg.Session
	sc, err := setConfig(s.Size, s.Target, s.Validator, s.Difficulties)
	if err != nil {
		return err
	}

	a, err := newApp(s.Seed)
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.init(cmd.Context(), false); err != nil {
		return err
	}

	boards, err := a.uc.Boards(cmd.Context(), sc)
	if err != nil {
		return err
	}
	if boardsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(boards)
	}
	for _, b := range boards {
		fmt.Fprintln(cmd.OutOrStdout(), b.Info())
	}
	return nil
}
