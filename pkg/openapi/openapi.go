// Package openapi documents a project's API route handlers as an OpenAPI 3
// paths document.
package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// Config holds configuration for OpenAPI spec generation.
type Config struct {
	// Title is the API title (default: "API").
	Title string

	// Version is the API version (default: "1.0.0").
	Version string

	// Description is the API description.
	Description string

	// Servers are the server URLs.
	Servers []string

	// Methods are the HTTP methods documented for every endpoint (default: GET).
	Methods []string

	// OpenAPIVersion is the OpenAPI spec version (default: "3.0.3").
	OpenAPIVersion string
}

// Endpoint is an API route found in one of the route trees.
type Endpoint struct {
	// Pattern is the OpenAPI path template (e.g., "/api/users/{id}")
	Pattern string `json:"pattern"`
	// Convention is the tree the endpoint came from
	Convention scanner.Convention `json:"convention"`
	// Route is the underlying leaf route
	Route scanner.Route `json:"route"`
}

// Generator generates OpenAPI specs from route trees.
type Generator struct {
	config Config
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(config Config) *Generator {
	if config.Title == "" {
		config.Title = "API"
	}
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if config.OpenAPIVersion == "" {
		config.OpenAPIVersion = "3.0.3"
	}
	methods := make([]string, 0, len(config.Methods))
	for _, m := range config.Methods {
		methods = append(methods, strings.ToUpper(m))
	}
	if len(methods) == 0 {
		methods = append(methods, "GET")
	}
	config.Methods = methods
	return &Generator{config: config}
}

// Endpoints selects the API routes of both trees: app route handlers and
// pages routes under api/. Routes inside parallel slots are not endpoints.
// When both trees define the same pattern the pages route is kept.
func Endpoints(pages, app []scanner.RouteEntry) []Endpoint {
	var endpoints []Endpoint
	seen := make(map[string]bool)

	add := func(conv scanner.Convention, r scanner.Route) {
		pattern := Pattern(r.URLPath)
		if r.Slot != "" || seen[pattern] {
			return
		}
		seen[pattern] = true
		endpoints = append(endpoints, Endpoint{Pattern: pattern, Convention: conv, Route: r})
	}

	for _, r := range scanner.Routes(pages) {
		if r.URLPath == "api" || strings.HasPrefix(r.URLPath, "api/") {
			add(scanner.ConventionPages, r)
		}
	}
	for _, r := range scanner.Routes(app) {
		if r.Handler {
			add(scanner.ConventionApp, r)
		}
	}
	return endpoints
}

// Pattern converts a templated URL path to an OpenAPI path template.
// [id] becomes {id}; [...slug] and [[...slug]] become {slug}.
func Pattern(urlPath string) string {
	if urlPath == "" {
		return "/"
	}
	segments := strings.Split(urlPath, "/")
	for i, seg := range segments {
		if name := paramName(seg); name != "" {
			segments[i] = "{" + name + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func paramName(seg string) string {
	if !strings.HasPrefix(seg, "[") || !strings.HasSuffix(seg, "]") {
		return ""
	}
	name := strings.Trim(seg, "[]")
	return strings.TrimPrefix(name, "...")
}

// Generate creates an OpenAPI spec from the endpoints of both trees.
func (g *Generator) Generate(pages, app []scanner.RouteEntry) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: g.config.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       g.config.Title,
			Version:     g.config.Version,
			Description: g.config.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, url := range g.config.Servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	for _, ep := range Endpoints(pages, app) {
		item, err := g.buildPathItem(ep)
		if err != nil {
			return nil, err
		}
		doc.Paths.Set(ep.Pattern, item)
	}
	return doc, nil
}

// GenerateJSON returns the spec as JSON bytes.
func (g *Generator) GenerateJSON(pages, app []scanner.RouteEntry) ([]byte, error) {
	doc, err := g.Generate(pages, app)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// GenerateYAML returns the spec as YAML bytes.
func (g *Generator) GenerateYAML(pages, app []scanner.RouteEntry) ([]byte, error) {
	doc, err := g.Generate(pages, app)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Render returns the spec in the given format (json or yaml).
func (g *Generator) Render(pages, app []scanner.RouteEntry, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return g.GenerateYAML(pages, app)
	case "json", "":
		return g.GenerateJSON(pages, app)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

// WriteToFile writes the spec to a file.
func (g *Generator) WriteToFile(pages, app []scanner.RouteEntry, path, format string) error {
	data, err := g.Render(pages, app, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (g *Generator) buildPathItem(ep Endpoint) (*openapi3.PathItem, error) {
	item := &openapi3.PathItem{}
	for _, method := range g.config.Methods {
		op := g.buildOperation(ep, method)
		switch method {
		case "GET":
			item.Get = op
		case "POST":
			item.Post = op
		case "PUT":
			item.Put = op
		case "PATCH":
			item.Patch = op
		case "DELETE":
			item.Delete = op
		case "HEAD":
			item.Head = op
		case "OPTIONS":
			item.Options = op
		default:
			return nil, fmt.Errorf("unsupported HTTP method: %s", method)
		}
	}
	return item, nil
}

func (g *Generator) buildOperation(ep Endpoint, method string) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: operationID(method, ep.Route.URLPath),
		Tags:        []string{tag(ep.Route.URLPath)},
		Responses:   openapi3.NewResponses(),
	}

	params := buildParameters(ep.Route.Params)
	if len(params) > 0 {
		op.Parameters = params
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: openapi3.Ptr("Success"),
		},
	})

	hasBody := method == "POST" || method == "PUT" || method == "PATCH"
	if hasBody {
		op.Responses.Set("400", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Bad Request"),
			},
		})
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Description: "Request body",
				Required:    true,
				Content: openapi3.NewContentWithJSONSchema(&openapi3.Schema{
					Type: &openapi3.Types{"object"},
				}),
			},
		}
	}

	if len(params) > 0 && method != "POST" {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Not Found"),
			},
		})
	}
	return op
}

// buildParameters documents each route parameter as a path parameter.
// Catch-alls capture the rest of the path as one string.
func buildParameters(routeParams []scanner.Param) openapi3.Parameters {
	var params openapi3.Parameters
	for _, p := range routeParams {
		desc := fmt.Sprintf("%s parameter", p.Name)
		switch {
		case p.IsOptional():
			desc = fmt.Sprintf("%s: zero or more path segments", p.Name)
		case p.IsCatchAll():
			desc = fmt.Sprintf("%s: one or more path segments", p.Name)
		}
		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:        p.Name,
			In:          openapi3.ParameterInPath,
			Required:    true,
			Description: desc,
			Schema: &openapi3.SchemaRef{
				Value: &openapi3.Schema{
					Type: &openapi3.Types{"string"},
				},
			},
		}})
	}
	return params
}

// tag groups an endpoint by its first segment after api/.
func tag(urlPath string) string {
	segments := strings.Split(strings.TrimPrefix(urlPath, "api/"), "/")
	if segments[0] == "" || segments[0] == "api" {
		return "root"
	}
	if name := paramName(segments[0]); name != "" {
		return name
	}
	return segments[0]
}

// operationID builds a camelCase identifier such as getApiUsersId.
func operationID(method, urlPath string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(urlPath, "/") {
		upper := true
		for _, r := range seg {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				upper = true
				continue
			}
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == len(method) {
		b.WriteString("Root")
	}
	return b.String()
}
