package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

var routesCmd = &cobra.Command{
	Use:   "routes [project]",
	Short: "List all leaf routes",
	Long: `List every addressable route of the pages/ and app/ routers.

Route groups are flattened out of the URL path; the tree path column keeps
them. Routes rendered inside a parallel slot show the slot name.

Examples:
  nextroutes routes
  nextroutes routes ./web --convention app
  nextroutes routes --json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRoutes,
}

var routesConvention string

func init() {
	routesCmd.Flags().StringVar(&routesConvention, "convention", "", "Only list routes of one router (pages|app)")
}

func runRoutes(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	p, cfg, err := loadProject(nil, args)
	if err != nil {
		fail("Failed to load project", err)
	}

	out, err := buildRoutesOutput(scanProject(p, cfg), routesConvention)
	if out == nil {
		fail("Failed to list routes", err)
	}

	if jsonOutput {
		if err != nil {
			printJSONPartial(out, err)
			os.Exit(1)
		}
		printSuccess(out)
		return
	}

	fmt.Printf("\n  %s Routes\n\n", cyan("nextroutes"))
	for _, c := range out.Conventions {
		fmt.Printf("  %s %s\n", cyan(c.Convention), dim(c.Root))
		switch {
		case c.Error != "":
			fmt.Printf("    %s %s\n\n", red("✗"), c.Error)
			continue
		case !c.Exists:
			fmt.Printf("    %s\n\n", yellow("not found"))
			continue
		}

		for _, r := range out.Routes {
			if r.Convention != c.Convention {
				continue
			}
			line := fmt.Sprintf("    %-32s", r.Path)
			if r.Handler {
				line += " " + yellow("handler")
			}
			if r.Slot != "" {
				line += " " + dim("@"+r.Slot)
			}
			if len(r.Params) > 0 {
				line += " " + green(strings.Join(r.Params, ", "))
			}
			if r.TreePath != strings.TrimPrefix(r.Path, "/") {
				line += " " + dim(r.TreePath)
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
	fmt.Printf("  Total: %d routes\n\n", out.TotalRoutes)

	if err != nil {
		os.Exit(1)
	}
}

// buildRoutesOutput lists the leaf routes of the selected router, or of
// both when only is empty. Walk errors are returned with the output.
func buildRoutesOutput(result *project.ScanResult, only string) (*RoutesOutput, error) {
	if only != "" {
		if _, err := scanner.ParseConvention(only); err != nil {
			return nil, err
		}
	}

	out := &RoutesOutput{Routes: []RouteOutput{}}
	var failed []string
	for _, w := range result.Walks() {
		if only != "" && w.Convention.String() != only {
			continue
		}
		out.Conventions = append(out.Conventions, conventionOutput(w))
		if w.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", w.Convention, w.Err))
			continue
		}
		for _, r := range scanner.Routes(w.Entries) {
			out.Routes = append(out.Routes, routeOutput(w.Convention, r))
		}
	}
	out.TotalRoutes = len(out.Routes)

	if len(failed) > 0 {
		return out, errors.New(strings.Join(failed, "; "))
	}
	return out, nil
}
