package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"
)

// Defaults used by NewConfig.
const (
	DefaultExtension        = "ts"
	DefaultMergeName        = "ContentTypes"
	DefaultModulePrefix     = "./"
	DefaultRuntimePackage   = "@cms/runtime"
	DefaultNamespace        = "Contentful"
	DefaultNamespacePackage = "contentful"
	DefaultEntryLink        = "Entry"
	DefaultEntryWrapper     = "CMSEntry"
	DefaultManagementEntry  = "CMSManagementEntry"
)

// Config configures synthesis and output.
type Config struct {
	// Target is the output directory.
	Target string
	// Extension is the file extension of generated modules, without the dot.
	Extension string
	// Header is written at the top of every generated file.
	Header string
	// MergeName is the name of the merged module.
	MergeName string
	// ModulePrefix is the relative-path convention generated modules use to
	// import each other. The merge strips it to detect self-imports.
	ModulePrefix string
	// RuntimePackage provides the entry-wrapper and management-entry generics.
	RuntimePackage string
	// EntryWrapper is the generic wrapping an entity's type id and fields.
	EntryWrapper string
	// ManagementEntry is the generic used by the management union.
	ManagementEntry string
	// Namespace is the alias the rendering namespace is imported under.
	Namespace string
	// NamespacePackage is the specifier of the rendering namespace.
	NamespacePackage string
	// EntryLink is the named type used for entry links.
	EntryLink string
	// EntryLinkPackage is the specifier EntryLink is imported from.
	EntryLinkPackage string
	// Renderer maps fields to type expressions and imports.
	Renderer FieldRenderer
	// Workers bounds the number of concurrent file writes.
	Workers int
	// GoPackage, when set, names the Go package of the type-id companion file.
	GoPackage string
	// Logger receives progress logs. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithExtension sets the file extension of generated modules.
func WithExtension(ext string) Option {
	return func(c *Config) error {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			return NewConfigError("Extension", nil, "extension cannot be empty")
		}
		c.Extension = ext
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithMergeName sets the name of the merged module.
func WithMergeName(name string) Option {
	return func(c *Config) error {
		if name == "" || name == IndexModule {
			return NewConfigError("MergeName", name, "merge name must be non-empty and not "+IndexModule)
		}
		c.MergeName = name
		return nil
	}
}

// WithModulePrefix sets the specifier prefix generated modules use to
// import each other, "./" by default.
func WithModulePrefix(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return NewConfigError("ModulePrefix", nil, "module prefix cannot be empty")
		}
		c.ModulePrefix = prefix
		return nil
	}
}

// WithRuntimePackage sets the package providing the entry wrapper generics.
func WithRuntimePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("RuntimePackage", nil, "runtime package cannot be empty")
		}
		c.RuntimePackage = pkg
		return nil
	}
}

// WithNamespace sets the rendering namespace alias and its specifier.
func WithNamespace(alias, pkg string) Option {
	return func(c *Config) error {
		if alias == "" || pkg == "" {
			return NewConfigError("Namespace", alias, "namespace alias and package cannot be empty")
		}
		c.Namespace = alias
		c.NamespacePackage = pkg
		return nil
	}
}

// WithRenderer sets the field renderer.
func WithRenderer(r FieldRenderer) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Renderer", nil, "renderer cannot be nil")
		}
		c.Renderer = r
		return nil
	}
}

// WithWorkers sets the number of parallel writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithGoPackage enables the Go type-id companion file in package pkg.
func WithGoPackage(pkg string) Option {
	return func(c *Config) error {
		c.GoPackage = pkg
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Extension:        DefaultExtension,
		MergeName:        DefaultMergeName,
		ModulePrefix:     DefaultModulePrefix,
		RuntimePackage:   DefaultRuntimePackage,
		EntryWrapper:     DefaultEntryWrapper,
		ManagementEntry:  DefaultManagementEntry,
		Namespace:        DefaultNamespace,
		NamespacePackage: DefaultNamespacePackage,
		EntryLink:        DefaultEntryLink,
		EntryLinkPackage: DefaultNamespacePackage,
		Workers:          runtime.GOMAXPROCS(0),
		Logger:           slog.New(slog.DiscardHandler),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Renderer == nil {
		c.Renderer = NewContentfulRenderer(c)
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
