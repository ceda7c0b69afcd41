package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// envPrefix is the environment variable prefix for koanf's env provider,
// mirroring the teacher's HARVX_ prefix convention but for recon.
const envPrefix = "RECON_"

// Load resolves a Config by layering, lowest to highest precedence:
// built-in defaults, an optional YAML config file, RECON_-prefixed
// environment variables, and parsed CLI flags. This is the same four-layer
// shape as the teacher's config.Resolve, with the format parser swapped
// for spec.md's YAML (knadh/koanf/parsers/yaml + providers/file, official
// koanf sibling packages, not a new library).
func Load(fv *FlagValues, cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configPath := fv.ConfigPath
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMap), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	if err := k.Load(posflag.Provider(cmd.PersistentFlags(), ".", k), nil); err != nil {
		return nil, fmt.Errorf("loading flag overrides: %w", err)
	}

	if fv.Root != "" {
		k.Set("source.root", fv.Root)
	}
	if fv.Query != "" {
		k.Set("source.query", fv.Query)
	}
	if resolvedFile := resolveFile(fv); resolvedFile != "" {
		k.Set("source.file", resolvedFile)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// envKeyMap translates RECON_ROOT -> source.root, matching the flattened
// key layout of Config. Unrecognized RECON_-prefixed vars (RECON_LOG_FORMAT,
// RECON_DEBUG) are ambient, read directly via os.Getenv in logging.go, and
// are mapped to a harmless unused key here rather than dropped.
func envKeyMap(s string) string {
	switch s {
	case "RECON_ROOT":
		return "source.root"
	case "RECON_FILE":
		return "source.file"
	case "RECON_QUERY":
		return "source.query"
	default:
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}
}

// resolveFile applies the DATABASE_URL / -f precedence: DATABASE_URL
// overrides -f/source.file, including the ":memory:" special value
// (spec.md §6).
func resolveFile(fv *FlagValues) string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	if fv.InMem {
		return MemoryDSN
	}
	return fv.File
}
