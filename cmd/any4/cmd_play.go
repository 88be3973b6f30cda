package main

import (
	"github.com/spf13/cobra"

	"svw.info/any4/internal/game"
	"svw.info/any4/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func init() {
	// play shares the board selection flags
	f := playCmd.Flags()
	f.IntVarP(&boardsSize, "size", "n", 10, "boards drawn per refill")
	f.StringVarP(&boardsTarget, "target", "t", "", "fixed target such as 24 or 1/2")
	f.StringVar(&boardsValidator, "validator", "", "target filter: any|integer|positive-integer")
	f.StringVarP(&boardsDifficulty, "difficulty", "d", "", "comma separated tiers (default all)")
	f.Int64Var(&boardsSeed, "seed", 0, "random seed, 0 for the clock")
}

func runPlay(cmd *cobra.Command, args []string) error {
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
	pools, err := a.uc.Pools(cmd.Context())
	if err != nil {
		return err
	}

	ctl := game.NewController(game.NewContainer(a.uc.Sampler, pools, sc), a.uc.Hinter)
	return tui.Run(cmd.Context(), ctl)
}
