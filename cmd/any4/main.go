package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/any4/internal/config"
)

var (
	configPath  string
	logLevel    string
	dataDir     string
	storageKind string

	cfg    config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "any4",
		Short:         "Generate and play any4 arithmetic puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("storage") {
				cfg.Storage = storageKind
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = newLogger(cfg.LogLevel)
			slog.SetDefault(logger)
			return nil
		},
	}
)

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	pf.StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	pf.StringVar(&dataDir, "data-dir", "", "directory holding the pool file")
	pf.StringVar(&storageKind, "storage", "", "pool storage: json|sqlite")

	rootCmd.AddCommand(generateCmd, boardsCmd, solveCmd, serveCmd, playCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "any4:", err)
		os.Exit(1)
	}
}
