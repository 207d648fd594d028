package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ConventionOutput summarizes the walk of one router
type ConventionOutput struct {
	Convention string `json:"convention"`
	Root       string `json:"root"`
	Exists     bool   `json:"exists"`
	Nodes      int    `json:"nodes"`
	Leaves     int    `json:"leaves"`
	Error      string `json:"error,omitempty"`
}

// GenerateOutput represents the JSON output for the generate command
type GenerateOutput struct {
	Project      string             `json:"project"`
	SourceDir    string             `json:"source_dir"`
	Files        []string           `json:"files"`
	DryRun       bool               `json:"dry_run,omitempty"`
	Conventions  []ConventionOutput `json:"conventions"`
	Declarations string             `json:"declarations,omitempty"`
	Constants    string             `json:"constants,omitempty"`
}

// CheckOutput represents the JSON output for generate --check
type CheckOutput struct {
	Project  string            `json:"project"`
	UpToDate bool              `json:"up_to_date"`
	Stale    []generator.Stale `json:"stale"`
}

// RouteOutput represents a single leaf route in JSON output
type RouteOutput struct {
	Convention string   `json:"convention"`
	Path       string   `json:"path"`
	TreePath   string   `json:"tree_path"`
	Params     []string `json:"params,omitempty"`
	Slot       string   `json:"slot,omitempty"`
	Handler    bool     `json:"handler,omitempty"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	Routes      []RouteOutput      `json:"routes"`
	Conventions []ConventionOutput `json:"conventions"`
	TotalRoutes int                `json:"total_routes"`
}

// TreeOutput represents the JSON output for the tree command, keyed by router name
type TreeOutput map[string][]scanner.RouteEntry

// OpenAPIOutput represents the JSON output for the openapi command
type OpenAPIOutput struct {
	File      string `json:"file,omitempty"`
	Format    string `json:"format"`
	Endpoints int    `json:"endpoints"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	File string `json:"file"`
}

// VersionOutput represents the JSON output for the version command
type VersionOutput struct {
	Version       string `json:"version"`
	SchemaVersion int    `json:"schema_version"`
}

func conventionOutput(w *project.Walk) ConventionOutput {
	out := ConventionOutput{
		Convention: w.Convention.String(),
		Root:       w.Root,
		Exists:     w.Exists,
	}
	if w.Err != nil {
		out.Error = w.Err.Error()
		return out
	}
	out.Nodes, out.Leaves = scanner.Count(w.Entries)
	return out
}

// routeOutput formats a leaf route with a leading slash and its
// parameters in declaration order.
func routeOutput(conv scanner.Convention, r scanner.Route) RouteOutput {
	out := RouteOutput{
		Convention: conv.String(),
		Path:       "/" + r.URLPath,
		TreePath:   r.TreePath,
		Slot:       r.Slot,
		Handler:    r.Handler,
	}
	for _, p := range r.Params {
		name := p.Name
		switch {
		case p.IsOptional():
			name = "..." + name + "?"
		case p.IsCatchAll():
			name = "..." + name
		}
		out.Params = append(out.Params, name)
	}
	return out
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

// printJSONPartial outputs data together with the error that made the
// command fail
func printJSONPartial(data any, err error) {
	printJSON(JSONResponse{Success: false, Data: data, Error: err.Error()})
}
