package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/syssam/cmsgen/compiler/gen"
	"github.com/syssam/cmsgen/compiler/load"
	"github.com/syssam/cmsgen/internal/cli/config"
)

var errNoConfig = errors.New("configuration not loaded")

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate TypeScript declarations from a schema export",
		Long: `Read the content types of a schema export and write one declaration
module per content type, plus an index module with the entry unions.

With --merge the modules are also flattened into a single file.`,
		Example: `  # Generate into ./types
  cmsgen generate --schema export.json

  # Also write the merged ContentTypes module
  cmsgen generate --schema export.json --merge

  # Also write a Go file with the content type ids
  cmsgen generate --schema export.json --go-package cms --go-out ./internal/cms`,
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errNoConfig
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			g, err := Generate(cmd.Context(), cfg, cfg.Logger())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generated %d modules in %s\n", g.Len(), cfg.Out)
			return nil
		},
	}

	addOutputFlags(cmd)

	return cmd
}

// addOutputFlags registers the flags shared by generate and watch.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("merge", false, "Also write the merged module")
	cmd.Flags().String("merge-name", "", "Name of the merged module (default: ContentTypes)")
	cmd.Flags().String("go-package", "", "Write a Go type-id file in this package")
	cmd.Flags().String("go-out", "", "Directory of the Go type-id file (default: the output directory)")
}

// Generate loads the schema export named by cfg and writes the generated
// modules.
func Generate(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gen.Graph, error) {
	exp, err := load.LoadFile(cfg.Schema)
	if err != nil {
		return nil, err
	}
	c, err := gen.NewConfig(cfg.GenOptions(logger)...)
	if err != nil {
		return nil, err
	}
	return gen.NewGenerator(c).
		WithMerge(cfg.Merge).
		WithGoDir(cfg.GoOut).
		Generate(ctx, exp.ContentTypes)
}
