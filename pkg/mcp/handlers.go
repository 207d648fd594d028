package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abdul-hamid-achik/nextroutes/internal/config"
	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// response is the JSON envelope returned by every tool.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// routeInfo is one leaf route in list_routes output.
type routeInfo struct {
	Convention scanner.Convention `json:"convention"`
	scanner.Route
}

type listRoutesData struct {
	Routes []routeInfo       `json:"routes"`
	Total  int               `json:"total"`
	Errors map[string]string `json:"errors,omitempty"`
	Roots  map[string]string `json:"roots"`
}

func jsonResult(resp response) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return mcp.NewToolResultError(string(data)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return jsonResult(response{Success: false, Error: err.Error()})
}

// scan loads the project's configuration and walks both routers.
func (s *Server) scan(req mcp.CallToolRequest) (*project.Project, *config.Config, *project.ScanResult, error) {
	dir := req.GetString("project", "")
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.workdir, dir)
	}

	cfg, err := config.Load(nil, dir, "")
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := project.Resolve(dir, cfg.SrcDir)
	if err != nil {
		return nil, nil, nil, err
	}
	result := p.Scan(s.logger, scanner.WithExtensions(cfg.PageExtensions...))
	return p, cfg, result, nil
}

func (s *Server) handleListRoutes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	only := req.GetString("convention", "")
	if only != "" {
		if _, err := scanner.ParseConvention(only); err != nil {
			return errorResult(err)
		}
	}

	_, _, result, err := s.scan(req)
	if err != nil {
		return errorResult(err)
	}

	data := listRoutesData{Routes: []routeInfo{}, Roots: map[string]string{}}
	for _, w := range result.Walks() {
		if only != "" && w.Convention.String() != only {
			continue
		}
		data.Roots[w.Convention.String()] = w.Root
		if w.Err != nil {
			if data.Errors == nil {
				data.Errors = map[string]string{}
			}
			data.Errors[w.Convention.String()] = w.Err.Error()
			continue
		}
		for _, r := range scanner.Routes(w.Entries) {
			data.Routes = append(data.Routes, routeInfo{Convention: w.Convention, Route: r})
		}
	}
	data.Total = len(data.Routes)

	return jsonResult(response{Success: len(data.Errors) == 0, Data: data})
}

func (s *Server) handleRouteTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conv, err := scanner.ParseConvention(req.GetString("convention", ""))
	if err != nil {
		return errorResult(err)
	}

	_, _, result, err := s.scan(req)
	if err != nil {
		return errorResult(err)
	}

	w := &result.Pages
	if conv == scanner.ConventionApp {
		w = &result.App
	}
	if w.Err != nil {
		return errorResult(fmt.Errorf("%s: %w", conv, w.Err))
	}

	var out []byte
	switch format := req.GetString("format", "json"); format {
	case "json":
		out, err = scanner.EncodeJSON(w.Entries)
	case "yaml":
		out, err = scanner.EncodeYAML(w.Entries)
	default:
		return errorResult(fmt.Errorf("unsupported format: %s (use json or yaml)", format))
	}
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleRenderDeclarations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	artifact := req.GetString("artifact", "both")
	if artifact != "declarations" && artifact != "constants" && artifact != "both" {
		return errorResult(fmt.Errorf("unknown artifact %q (use declarations, constants or both)", artifact))
	}

	p, cfg, result, err := s.scan(req)
	if err != nil {
		return errorResult(err)
	}

	gen := generator.NewGenerator(cfg.Generator(p.Root), generator.WithLogger(s.logger))
	a, err := gen.Generate(
		generator.Tree{Entries: result.Pages.Entries, Err: result.Pages.Err},
		generator.Tree{Entries: result.App.Entries, Err: result.App.Err},
	)
	if a == nil {
		return errorResult(err)
	}

	files := map[string]string{}
	if artifact != "constants" {
		files[gen.Config().DeclarationsPath] = string(a.Declarations)
	}
	if artifact != "declarations" {
		files[gen.Config().ConstantsPath] = string(a.Constants)
	}

	resp := response{Success: err == nil, Data: files}
	if err != nil {
		resp.Error = err.Error()
	}
	return jsonResult(resp)
}
