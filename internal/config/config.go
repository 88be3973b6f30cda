package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/generator"
	"svw.info/any4/internal/rational"
	targetvalidator "svw.info/any4/internal/validator"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "any4.yaml"

type Config struct {
	DataDir   string          `yaml:"data_dir" validate:"required"`
	PoolFile  string          `yaml:"pool_file" validate:"required"`
	Storage   string          `yaml:"storage" validate:"oneof=json sqlite"`
	LogLevel  string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	Generator GeneratorConfig `yaml:"generator"`
	Session   SessionConfig   `yaml:"session"`
	Server    ServerConfig    `yaml:"server"`
}

type GeneratorConfig struct {
	Min        int                  `yaml:"min"`
	Max        int                  `yaml:"max" validate:"gtefield=Min"`
	Size       int                  `yaml:"size" validate:"gte=1,lte=6"`
	Workers    int                  `yaml:"workers" validate:"gte=0"`
	Force      bool                 `yaml:"force"`
	Thresholds generator.Thresholds `yaml:"thresholds"`
}

// SessionConfig describes the boards drawn for a play session.
type SessionConfig struct {
	Size         int    `yaml:"size" validate:"gte=1"`
	Target       string `yaml:"target" validate:"omitempty,rational"`
	Validator    string `yaml:"validator" validate:"target_validator"`
	Difficulties string `yaml:"difficulties" validate:"difficulties"`
	Seed         int64  `yaml:"seed"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

func Default() Config {
	return Config{
		DataDir:  "./data",
		PoolFile: "difficulty_pools.json",
		Storage:  "json",
		LogLevel: "info",
		Generator: GeneratorConfig{
			Min:        1,
			Max:        9,
			Size:       4,
			Thresholds: generator.DefaultThresholds(),
		},
		Session: SessionConfig{
			Size:         10,
			Difficulties: "easy,moderate,hard",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("target_validator", func(fl validator.FieldLevel) bool {
		_, err := targetvalidator.Lookup(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("rational", func(fl validator.FieldLevel) bool {
		_, err := rational.Canonical(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("difficulties", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDifficulties(fl.Field().String())
		return err == nil
	})
}

// Load reads path over the defaults. A missing file is not an error when
// path is empty or the default name; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		return cfg, cfg.Validate()
	case err != nil:
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Generator.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PoolPath is the full path of the pool file for the configured storage.
func (c Config) PoolPath() string {
	name := c.PoolFile
	if c.Storage == "sqlite" && filepath.Ext(name) == ".json" {
		name = strings.TrimSuffix(name, ".json") + ".db"
	}
	return filepath.Join(c.DataDir, name)
}

// Difficulties returns the parsed session tiers.
func (c Config) Difficulties() []domain.Difficulty {
	ds, err := domain.ParseDifficulties(c.Session.Difficulties)
	if err != nil {
		return slices.Clone(domain.Difficulties)
	}
	return ds
}

func Save(path string, c Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create the config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
