package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abdul-hamid-achik/nextroutes/internal/config"
	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project]",
	Short: "Generate route declarations and constants",
	Long: `Walk the pages/ and app/ routers and write two files:

  routes.d.ts   type aliases describing each route tree (PAGES_ROUTES, APP_ROUTES)
  routes.ts     the same shapes as frozen runtime constants

A router that does not exist renders as an empty array. A router that fails
to walk also renders as an empty array; the error is reported and the command
exits non-zero after writing what it could.

Examples:
  nextroutes generate
  nextroutes generate ./web --out-dir src/generated
  nextroutes generate --declarations types/routes.d.ts --constants lib/routes.ts
  nextroutes generate --dry-run
  nextroutes generate --check     # exit 1 when the files are out of date`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenerate,
}

// Flags
var (
	generateOutDir       string
	generateDeclarations string
	generateConstants    string
	generateDryRun       bool
	generateCheck        bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateOutDir, "out-dir", "o", "", "Directory for generated files (default: generated)")
	generateCmd.Flags().StringVar(&generateDeclarations, "declarations", "", "Declarations file path (default: <out-dir>/routes.d.ts)")
	generateCmd.Flags().StringVar(&generateConstants, "constants", "", "Constants module path (default: <out-dir>/routes.ts)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the generated files instead of writing them")
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "Verify the generated files are up to date without writing")
}

func runGenerate(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	v := config.NewViper()
	bindFlags(v, cmd, map[string]string{
		config.KeyOutDir:       "out-dir",
		config.KeyDeclarations: "declarations",
		config.KeyConstants:    "constants",
	})

	if generateCheck {
		runCheck(v, args)
		return
	}

	if !jsonOutput && !generateDryRun {
		fmt.Printf("\n  %s Route Generator\n\n", cyan("nextroutes"))
		fmt.Printf("  → Scanning routers...\n")
	}

	out, artifacts, err := generateRoutes(v, args, generateDryRun)
	if out == nil {
		fail("Generation failed", err)
	}

	if jsonOutput {
		if err != nil {
			printJSONPartial(out, err)
			os.Exit(1)
		}
		printSuccess(out)
		return
	}

	if generateDryRun {
		fmt.Print(string(artifacts.Declarations))
		fmt.Println()
		fmt.Print(string(artifacts.Constants))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
			os.Exit(1)
		}
		return
	}

	for _, c := range out.Conventions {
		switch {
		case c.Error != "":
			fmt.Printf("  %s %-6s %s\n", red("✗"), c.Convention, c.Error)
		case !c.Exists:
			fmt.Printf("  %s %-6s %s\n", yellow("!"), c.Convention, dim("not found, rendered as []"))
		default:
			fmt.Printf("  %s %-6s %d routes %s\n", green("✓"), c.Convention, c.Leaves, dim(fmt.Sprintf("(%d nodes)", c.Nodes)))
		}
	}
	fmt.Println()
	for _, f := range out.Files {
		fmt.Printf("  %s %s\n", green("Wrote"), f)
	}
	fmt.Println()

	if err != nil {
		fmt.Printf("  %s %v\n\n", red("Error:"), err)
		os.Exit(1)
	}
}

func runCheck(v *viper.Viper, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	out, err := checkRoutes(v, args)
	if err != nil {
		fail("Check failed", err)
	}

	if jsonOutput {
		if !out.UpToDate {
			printJSONPartial(out, errors.New("generated files are out of date"))
			os.Exit(1)
		}
		printSuccess(out)
		return
	}

	if out.UpToDate {
		fmt.Printf("  %s Generated files are up to date\n", green("✓"))
		return
	}
	for _, s := range out.Stale {
		fmt.Printf("  %s %s (%s)\n", red("✗"), s.Path, s.Reason)
	}
	fmt.Print("\n  Run nextroutes generate to update them.\n\n")
	os.Exit(1)
}

// checkRoutes renders the project and compares the result with the files
// on disk. Walk errors fail the check.
func checkRoutes(v *viper.Viper, args []string) (*CheckOutput, error) {
	p, cfg, err := loadProject(v, args)
	if err != nil {
		return nil, err
	}

	result := scanProject(p, cfg)
	if err := result.Err(); err != nil {
		return nil, err
	}
	gen := generator.NewGenerator(cfg.Generator(p.Root), generator.WithLogger(newLogger()))
	artifacts, err := gen.Render(result.Pages.Entries, result.App.Entries)
	if err != nil {
		return nil, err
	}
	stale, err := gen.Check(artifacts)
	if err != nil {
		return nil, err
	}
	return &CheckOutput{
		Project:  p.Root,
		UpToDate: len(stale) == 0,
		Stale:    append([]generator.Stale{}, stale...),
	}, nil
}

// generateRoutes walks the project, renders both artifacts and writes them
// unless dryRun is set. Walk errors are returned alongside a non-nil output.
func generateRoutes(v *viper.Viper, args []string, dryRun bool) (*GenerateOutput, *generator.Artifacts, error) {
	p, cfg, err := loadProject(v, args)
	if err != nil {
		return nil, nil, err
	}

	result := scanProject(p, cfg)
	gen := generator.NewGenerator(cfg.Generator(p.Root), generator.WithLogger(newLogger()))

	artifacts, walkErr := gen.Generate(tree(result.Pages), tree(result.App))
	if artifacts == nil {
		return nil, nil, walkErr
	}

	out := &GenerateOutput{
		Project:   p.Root,
		SourceDir: p.SrcDir,
		DryRun:    dryRun,
		Files:     []string{gen.Config().DeclarationsPath, gen.Config().ConstantsPath},
	}
	for _, w := range result.Walks() {
		out.Conventions = append(out.Conventions, conventionOutput(w))
	}

	if dryRun {
		out.Declarations = string(artifacts.Declarations)
		out.Constants = string(artifacts.Constants)
		return out, artifacts, walkErr
	}

	written, err := gen.Write(artifacts)
	if err != nil {
		return nil, nil, err
	}
	out.Files = written.Files
	return out, artifacts, walkErr
}
