package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/nextroutes/internal/config"
	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
)

// ErrConfigExists is returned by init when nextroutes.yaml is already present.
var ErrConfigExists = errors.New("config file already exists (use --force to overwrite)")

var initCmd = &cobra.Command{
	Use:   "init [project]",
	Short: "Create a nextroutes.yaml config",
	Long: `Write a nextroutes.yaml file with the default settings.

When run in a terminal without flags, init asks for the output directory
and the exported type names.

Examples:
  nextroutes init
  nextroutes init ./web --out-dir src/generated
  nextroutes init --pages-type PagesRoutes --app-type AppRoutes --force`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInit,
}

// Flags
var (
	initOutDir     string
	initSrcDir     string
	initPagesType  string
	initAppType    string
	initExtensions []string
	initForce      bool
)

func init() {
	def := config.Default()
	initCmd.Flags().StringVarP(&initOutDir, "out-dir", "o", def.OutDir, "Directory for generated files")
	initCmd.Flags().StringVar(&initSrcDir, "src-dir", "", "Directory holding pages/ and app/ (default: detected)")
	initCmd.Flags().StringVar(&initPagesType, "pages-type", def.PagesTypeName, "Exported name of the pages route tree")
	initCmd.Flags().StringVar(&initAppType, "app-type", def.AppTypeName, "Exported name of the app route tree")
	initCmd.Flags().StringSliceVar(&initExtensions, "extensions", def.PageExtensions, "Page file extensions")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	cfg := config.Default()
	cfg.OutDir = initOutDir
	cfg.SrcDir = initSrcDir
	cfg.PagesTypeName = initPagesType
	cfg.AppTypeName = initAppType
	cfg.PageExtensions = initExtensions

	fd := os.Stdin.Fd()
	interactive := !jsonOutput && cmd.Flags().NFlag() == 0 && isatty.IsTerminal(fd)
	if interactive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Output directory").
					Description("Where routes.d.ts and routes.ts are written").
					Value(&cfg.OutDir),
				huh.NewInput().
					Title("Pages type name").
					Value(&cfg.PagesTypeName).
					Validate(validateTypeName),
				huh.NewInput().
					Title("App type name").
					Value(&cfg.AppTypeName).
					Validate(validateTypeName),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Printf("  %s Cancelled\n", yellow("!"))
			return
		}
	}

	path, err := writeConfig(cfg, projectDir(args), initForce)
	if err != nil {
		fail("Failed to create config", err)
	}

	if jsonOutput {
		printSuccess(InitOutput{File: path})
		return
	}
	fmt.Printf("\n  %s Created %s\n\n", green("✓"), path)
}

func validateTypeName(s string) error {
	if !generator.IsIdentifier(s) {
		return fmt.Errorf("%q is not a valid identifier", s)
	}
	return nil
}

// writeConfig validates cfg and writes it to dir, refusing to replace an
// existing file unless force is set.
func writeConfig(cfg *config.Config, dir string, force bool) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	if !force {
		if _, err := os.Stat(filepath.Join(dir, config.FileName+".yaml")); err == nil {
			return "", ErrConfigExists
		}
	}
	return config.Write(cfg, dir)
}
