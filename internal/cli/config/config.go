// Package config loads the cmsgen command-line configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/cmsgen/compiler/gen"
)

// Default values.
const (
	DefaultConfigFile = "cmsgen.yaml"
	DefaultOut        = "types"
	EnvPrefix         = "CMSGEN_"
)

// Config holds the resolved configuration of one cmsgen invocation.
type Config struct {
	Schema         string `koanf:"schema"`
	Out            string `koanf:"out"`
	Extension      string `koanf:"extension"`
	Merge          bool   `koanf:"merge"`
	MergeName      string `koanf:"merge_name"`
	RuntimePackage string `koanf:"runtime_package"`
	ModulePrefix   string `koanf:"module_prefix"`
	Header         string `koanf:"header"`
	Workers        int    `koanf:"workers"`
	GoPackage      string `koanf:"go_package"`
	GoOut          string `koanf:"go_out"`
	Verbose        bool   `koanf:"verbose"`
}

func defaults() map[string]any {
	return map[string]any{
		"out":             DefaultOut,
		"extension":       gen.DefaultExtension,
		"merge_name":      gen.DefaultMergeName,
		"runtime_package": gen.DefaultRuntimePackage,
		"module_prefix":   gen.DefaultModulePrefix,
	}
}

// findConfigFile returns the config file to use, or "" when there is none.
// An explicit path always wins.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "cmsgen.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate reports missing or inconsistent settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Schema == "" {
		errs = append(errs, errors.New("schema: path to the schema export is required"))
	}
	if c.Out == "" {
		errs = append(errs, errors.New("out: output directory is required"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	if c.GoOut != "" && c.GoPackage == "" {
		errs = append(errs, errors.New("go_package: required when go_out is set"))
	}
	return errors.Join(errs...)
}

// GenOptions converts the configuration into generator options.
func (c *Config) GenOptions(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(c.Out),
		gen.WithExtension(c.Extension),
		gen.WithMergeName(c.MergeName),
		gen.WithRuntimePackage(c.RuntimePackage),
		gen.WithModulePrefix(c.ModulePrefix),
		gen.WithHeader(c.Header),
		gen.WithGoPackage(c.GoPackage),
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	if logger != nil {
		opts = append(opts, gen.WithLogger(logger))
	}
	return opts
}

// Logger returns the logger for the configured verbosity.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}
