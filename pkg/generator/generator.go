// Package generator renders route trees as a TypeScript ambient declarations
// file and a runtime constants module.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/abdul-hamid-achik/nextroutes/internal/version"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// DefaultHeader is the first line of every generated file.
const DefaultHeader = "/* NOTE: THIS FILE HAS BEEN AUTOMATICALLY GENERATED. DO NOT EDIT. */"

// Default export names.
const (
	DefaultPagesName = "PAGES_ROUTES"
	DefaultAppName   = "APP_ROUTES"
)

// ErrInvalidName is returned when an export name is not a valid identifier.
var ErrInvalidName = errors.New("invalid export name")

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether name can be used as an exported type or
// constant name.
func IsIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Config holds the destinations and export names used by a Generator.
type Config struct {
	DeclarationsPath string // Ambient declarations file (e.g., "generated/routes.d.ts")
	ConstantsPath    string // Runtime constants module (e.g., "generated/routes.ts")
	PagesName        string // Export name for the pages tree (default: PAGES_ROUTES)
	AppName          string // Export name for the app tree (default: APP_ROUTES)
	Header           string // Leading comment (default: DefaultHeader)
}

// DefaultConfig returns a Config writing routes.d.ts and routes.ts into outDir.
func DefaultConfig(outDir string) Config {
	return Config{
		DeclarationsPath: filepath.Join(outDir, "routes.d.ts"),
		ConstantsPath:    filepath.Join(outDir, "routes.ts"),
		PagesName:        DefaultPagesName,
		AppName:          DefaultAppName,
		Header:           DefaultHeader,
	}
}

// Validate checks that the export names are usable identifiers and distinct.
func (c Config) Validate() error {
	for _, name := range []string{c.PagesName, c.AppName} {
		if !IsIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	if c.PagesName == c.AppName {
		return fmt.Errorf("%w: pages and app exports are both named %q", ErrInvalidName, c.PagesName)
	}
	return nil
}

// Tree is the outcome of walking one convention root. A tree with Err set
// renders as an empty array.
type Tree struct {
	Entries []scanner.RouteEntry
	Err     error
}

// Artifacts holds the rendered content of both generated files.
type Artifacts struct {
	Declarations []byte
	Constants    []byte
}

// Result holds the result of a generation operation.
type Result struct {
	Files []string `json:"files"`
}

// Generator renders route trees.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator. Empty names and header fall back to the defaults.
func NewGenerator(cfg Config, opts ...Option) *Generator {
	if cfg.PagesName == "" {
		cfg.PagesName = DefaultPagesName
	}
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.Header == "" {
		cfg.Header = DefaultHeader
	}
	g := &Generator{cfg: cfg, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the generator's effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Render renders both artifacts. Each tree is serialized once and both
// files are printed from that single shape.
func (g *Generator) Render(pages, app []scanner.RouteEntry) (*Artifacts, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	pagesShape := Serialize(pages)
	appShape := Serialize(app)

	decl, err := g.execute(declarationsTemplate, pagesShape, appShape, TypeMode)
	if err != nil {
		return nil, fmt.Errorf("failed to render declarations: %w", err)
	}
	consts, err := g.execute(constantsTemplate, pagesShape, appShape, ConstMode)
	if err != nil {
		return nil, fmt.Errorf("failed to render constants: %w", err)
	}

	g.logger.Debug("rendered route artifacts",
		"pages", len(pages),
		"app", len(app),
		"declarations_bytes", len(decl),
		"constants_bytes", len(consts),
	)
	return &Artifacts{Declarations: decl, Constants: consts}, nil
}

// Generate renders both trees. A tree that failed to walk renders as an
// empty array while the other renders normally; walk errors are returned
// joined alongside the artifacts.
func (g *Generator) Generate(pages, app Tree) (*Artifacts, error) {
	var errs []error
	pagesEntries := pages.Entries
	if pages.Err != nil {
		errs = append(errs, fmt.Errorf("pages: %w", pages.Err))
		pagesEntries = nil
	}
	appEntries := app.Entries
	if app.Err != nil {
		errs = append(errs, fmt.Errorf("app: %w", app.Err))
		appEntries = nil
	}

	a, err := g.Render(pagesEntries, appEntries)
	if err != nil {
		return nil, err
	}
	return a, errors.Join(errs...)
}

func (g *Generator) execute(tmplStr string, pages, app Value, mode Mode) ([]byte, error) {
	tmpl, err := template.New("artifact").Parse(tmplStr)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, artifactTemplateData{
		Header:    g.cfg.Header,
		Marker:    version.SchemaMarker(version.GetGeneratorSchemaVersion()),
		PagesName: g.cfg.PagesName,
		AppName:   g.cfg.AppName,
		Pages:     Print(pages, mode),
		App:       Print(app, mode),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes both artifacts to their configured paths, creating parent
// directories as needed.
func (g *Generator) Write(a *Artifacts) (*Result, error) {
	targets := []struct {
		path    string
		content []byte
	}{
		{g.cfg.DeclarationsPath, a.Declarations},
		{g.cfg.ConstantsPath, a.Constants},
	}

	result := &Result{}
	for _, t := range targets {
		if t.path == "" {
			return nil, fmt.Errorf("no destination configured for generated file")
		}
		if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(t.path, t.content, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", t.path, err)
		}
		g.logger.Debug("wrote generated file", "path", t.path, "bytes", len(t.content))
		result.Files = append(result.Files, t.path)
	}
	return result, nil
}

// Stale describes a generated file that does not match the current render.
type Stale struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Check compares the artifacts against the files on disk and returns every
// file that is missing or out of date. It never writes.
func (g *Generator) Check(a *Artifacts) ([]Stale, error) {
	targets := []struct {
		path    string
		content []byte
	}{
		{g.cfg.DeclarationsPath, a.Declarations},
		{g.cfg.ConstantsPath, a.Constants},
	}

	var stale []Stale
	for _, t := range targets {
		existing, err := os.ReadFile(t.path)
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, Stale{Path: t.path, Reason: "missing"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
		}
		if bytes.Equal(existing, t.content) {
			continue
		}

		reason := "content differs"
		schema, ok := version.ParseSchema(existing)
		switch {
		case !ok:
			reason = "no schema marker"
		case schema != version.GetGeneratorSchemaVersion():
			reason = fmt.Sprintf("schema %d, current is %d", schema, version.GetGeneratorSchemaVersion())
		}
		stale = append(stale, Stale{Path: t.path, Reason: reason})
	}
	return stale, nil
}
