// Package cli provides the command-line interface for cmsgen.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/cmsgen/internal/cli/commands"
	"github.com/syssam/cmsgen/internal/cli/config"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "cmsgen",
		Short: "cmsgen - TypeScript declarations for content models",
		Long: `cmsgen reads the content types of a schema export and generates one
TypeScript declaration module per content type, an index module with the
CMSEntries unions, and optionally a single merged module.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(config.NewContext(cmd.Context(), cfg))
			if cfg.Verbose {
				cfg.Logger().Debug("configuration loaded", "schema", cfg.Schema, "out", cfg.Out)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./cmsgen.yaml)")
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Path to the schema export (.json, .yaml or .msgpack)")
	rootCmd.PersistentFlags().StringP("out", "o", "", "Output directory (default: types)")
	rootCmd.PersistentFlags().String("extension", "", "File extension of generated modules (default: ts)")
	rootCmd.PersistentFlags().String("runtime-package", "", "Package providing CMSEntry and CMSManagementEntry")
	rootCmd.PersistentFlags().String("module-prefix", "", "Specifier prefix generated modules import each other with")
	rootCmd.PersistentFlags().String("header", "", "Comment written at the top of every generated file")
	rootCmd.PersistentFlags().Int("workers", 0, "Number of parallel file writes (default: GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
