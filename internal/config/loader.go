package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix  = "PITCHSIDE_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvDotenv  = EnvPrefix + "ENV_FILE"
	dotenvFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PITCHSIDE_CONFIG is set
//  3. env (prefix PITCHSIDE_), after merging the dotenv file named by
//     PITCHSIDE_ENV_FILE or ./.env into the process environment
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	if err := loadDotenv(); err != nil {
		return nil, wrap(ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, wrap(ErrLoadConfig, err)
		}
	}

	// PITCHSIDE_STARTING_PATH -> starting_path. Underscores are kept so the
	// keys match the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrap(ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrap(ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv sets variables from the dotenv file without overriding ones
// already present. The default ./.env is optional; an explicit file is not.
func loadDotenv() error {
	path := os.Getenv(EnvDotenv)
	if path == "" {
		if _, err := os.Stat(dotenvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = dotenvFile
	}
	return godotenv.Load(path)
}
