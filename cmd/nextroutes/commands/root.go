// Package commands provides the CLI commands for nextroutes.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdul-hamid-achik/nextroutes/internal/config"
	"github.com/abdul-hamid-achik/nextroutes/internal/version"
	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

var rootCmd = &cobra.Command{
	Use:   "nextroutes",
	Short: "nextroutes - typed route tables for Next.js projects",
	Long: `nextroutes walks the pages/ and app/ routers of a Next.js project and
generates a TypeScript declarations file and a runtime constants module
describing every route, its parameters, route groups and parallel slots.

Quick Start:
  nextroutes init           Create a nextroutes.yaml config
  nextroutes generate       Write generated/routes.d.ts and generated/routes.ts
  nextroutes routes         List all leaf routes
  nextroutes tree           Dump the route trees as JSON or YAML
  nextroutes openapi        Document route handlers as OpenAPI
  nextroutes mcp            Serve the route tables to agents over MCP

Documentation: https://github.com/abdul-hamid-achik/nextroutes`,
	Version: version.GetVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupColor()
	},
}

// Global flags
var (
	verbose    bool
	noColor    bool
	configFile string
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log scanning details to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: <project>/nextroutes.yaml)")

	// Commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(openapiCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupColor disables colors for --no-color, --json, and non-terminal stdout.
func setupColor() {
	fd := os.Stdout.Fd()
	if noColor || jsonOutput || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)) {
		color.NoColor = true
	}
}

// newLogger returns the diagnostics logger: debug output on stderr with
// --verbose, discarded otherwise.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// projectDir returns the project directory argument, defaulting to ".".
func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadProject reads the configuration for the project in args and resolves
// its layout. v carries any bound command flags; nil uses a fresh instance.
func loadProject(v *viper.Viper, args []string) (*project.Project, *config.Config, error) {
	dir := projectDir(args)
	if v == nil {
		v = config.NewViper()
	}
	cfg, err := config.Load(v, dir, configFile)
	if err != nil {
		return nil, nil, err
	}
	p, err := project.Resolve(dir, cfg.SrcDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve project: %w", err)
	}
	return p, cfg, nil
}

// scanProject walks both routers with the configured page extensions.
func scanProject(p *project.Project, cfg *config.Config) *project.ScanResult {
	return p.Scan(newLogger(), scanner.WithExtensions(cfg.PageExtensions...))
}

func tree(w project.Walk) generator.Tree {
	return generator.Tree{Entries: w.Entries, Err: w.Err}
}

// bindFlags binds command flags to config keys so set flags override the
// config file and environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command, flags map[string]string) {
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// fail prints err the way the current output mode expects and exits.
func fail(prefix string, err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("  %s %s: %v\n\n", red("Error:"), prefix, err)
	}
	os.Exit(1)
}
