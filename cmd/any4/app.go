package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/generator"
	"svw.info/any4/internal/hint"
	"svw.info/any4/internal/infrastructure/storage"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
	"svw.info/any4/internal/sampler"
	"svw.info/any4/internal/solver"
	"svw.info/any4/internal/usecase"
	"svw.info/any4/internal/validator"
)

// app bundles the service with the resources that must be released on exit.
type app struct {
	uc    *usecase.Service
	store ports.PoolStore
	close func() error
}

func newApp(seed int64) (*app, error) {
	var store ports.PoolStore
	closer := func() error { return nil }
	switch cfg.Storage {
	case "sqlite":
		db, err := storage.NewSQLite(cfg.PoolPath())
		if err != nil {
			return nil, err
		}
		store, closer = db, db.Close
	default:
		store = storage.NewFSFile(cfg.DataDir, cfg.PoolFile)
	}

	sv := solver.NewBacktrackingSolver()
	gen := generator.NewPoolGenerator(cfg.Generator.Thresholds, cfg.Generator.Workers, logger)
	uc := usecase.NewService(gen, store, sampler.New(seed), sv, hint.NewNext(sv), logger)
	return &app{uc: uc, store: store, close: closer}, nil
}

// init makes sure the pool exists, generating it with the configured bounds.
func (a *app) init(ctx context.Context, force bool) (ports.Stats, error) {
	g := cfg.Generator
	return a.uc.Init(ctx, usecase.InitRequest{Min: g.Min, Max: g.Max, Size: g.Size, Force: force || g.Force})
}

// setConfig builds a board request from session settings.
func setConfig(size int, target, validatorName, difficulties string) (domain.SetConfig, error) {
	ds, err := domain.ParseDifficulties(difficulties)
	if err != nil {
		return domain.SetConfig{}, err
	}
	v, err := validator.Lookup(validatorName)
	if err != nil {
		return domain.SetConfig{}, err
	}
	var tp *rational.Value
	if target != "" {
		t, err := rational.Parse(target)
		if err != nil {
			return domain.SetConfig{}, fmt.Errorf("target: %w", err)
		}
		tp = &t
	}
	return domain.NewSetConfig(size, tp, v, ds...), nil
}

// overrideInt copies a flag value over the config only when the user set it.
func overrideInt(f *pflag.FlagSet, name string, dst *int, v int) {
	if f.Changed(name) {
		*dst = v
	}
}

func overrideString(f *pflag.FlagSet, name string, dst *string, v string) {
	if f.Changed(name) {
		*dst = v
	}
}
