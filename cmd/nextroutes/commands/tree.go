package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

var treeCmd = &cobra.Command{
	Use:   "tree [project]",
	Short: "Dump the route trees",
	Long: `Print the raw route trees built from the pages/ and app/ routers,
including route groups, parallel slots and layout markers.

Examples:
  nextroutes tree
  nextroutes tree --convention app --format yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTree,
}

var (
	treeFormat     string
	treeConvention string
)

func init() {
	treeCmd.Flags().StringVarP(&treeFormat, "format", "f", "json", "Output format (json|yaml)")
	treeCmd.Flags().StringVar(&treeConvention, "convention", "", "Only dump one router (pages|app)")
}

func runTree(cmd *cobra.Command, args []string) {
	p, cfg, err := loadProject(nil, args)
	if err != nil {
		fail("Failed to load project", err)
	}

	result := scanProject(p, cfg)
	if jsonOutput {
		out, err := buildTreeOutput(result, treeConvention)
		if err != nil {
			printJSONError(err)
			os.Exit(1)
		}
		printSuccess(out)
		return
	}

	data, err := renderTree(result, treeConvention, treeFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

// buildTreeOutput collects the selected trees. Any walk error fails the
// whole dump since a partial tree would be misleading.
func buildTreeOutput(result *project.ScanResult, only string) (TreeOutput, error) {
	if only != "" {
		if _, err := scanner.ParseConvention(only); err != nil {
			return nil, err
		}
	}

	out := TreeOutput{}
	for _, w := range result.Walks() {
		name := w.Convention.String()
		if only != "" && name != only {
			continue
		}
		if w.Err != nil {
			return nil, fmt.Errorf("%s: %w", name, w.Err)
		}
		out[name] = nonNil(w.Entries)
	}
	return out, nil
}

func nonNil(entries []scanner.RouteEntry) []scanner.RouteEntry {
	if entries == nil {
		return []scanner.RouteEntry{}
	}
	return entries
}

// renderTree encodes the selected trees. A single router renders as a bare
// array; both render as an object keyed by router name.
func renderTree(result *project.ScanResult, only, format string) ([]byte, error) {
	out, err := buildTreeOutput(result, only)
	if err != nil {
		return nil, err
	}

	format = strings.ToLower(format)
	switch only {
	case "pages", "app":
		entries := out[only]
		switch format {
		case "json":
			return scanner.EncodeJSON(entries)
		case "yaml", "yml":
			return scanner.EncodeYAML(entries)
		}
	default:
		switch format {
		case "json":
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		case "yaml", "yml":
			return yaml.Marshal(out)
		}
	}
	return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
}
