// Package project locates a Next.js project's source directory and walks its
// pages and app convention roots.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// ErrNotDirectory is returned when the project path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Project is a resolved project layout.
type Project struct {
	// Root is the absolute, symlink-free project root
	Root string
	// SrcDir is the directory holding pages/ and app/ (Root or Root/src)
	SrcDir string
}

// Resolve canonicalizes path and discovers the source directory. A non-empty
// srcDir overrides discovery; relative values are taken from the root.
func Resolve(path, srcDir string) (*Project, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	p := &Project{Root: root}
	switch {
	case srcDir == "":
		p.SrcDir = SourceDir(root)
	case filepath.IsAbs(srcDir):
		p.SrcDir = filepath.Clean(srcDir)
	default:
		p.SrcDir = filepath.Join(root, srcDir)
	}
	return p, nil
}

// SourceDir returns root when it holds an app or pages directory, otherwise
// root/src when that does, otherwise root.
func SourceDir(root string) string {
	if hasConventionRoot(root) {
		return root
	}
	src := filepath.Join(root, "src")
	if hasConventionRoot(src) {
		return src
	}
	return root
}

func hasConventionRoot(dir string) bool {
	for _, conv := range scanner.Conventions() {
		if isDir(filepath.Join(dir, conv.String())) {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ConventionRoot returns the directory walked for conv.
func (p *Project) ConventionRoot(conv scanner.Convention) string {
	return filepath.Join(p.SrcDir, conv.String())
}

// Walk is the outcome of walking one convention root.
type Walk struct {
	Convention scanner.Convention   `json:"convention"`
	Root       string               `json:"root"`
	Exists     bool                 `json:"exists"`
	Entries    []scanner.RouteEntry `json:"entries"`
	Err        error                `json:"-"`
}

// ScanResult holds the walks of both convention roots.
type ScanResult struct {
	Pages Walk
	App   Walk
}

// Walks returns both walks, pages first.
func (r *ScanResult) Walks() []*Walk {
	return []*Walk{&r.Pages, &r.App}
}

// Err joins the errors of both walks.
func (r *ScanResult) Err() error {
	var errs []error
	for _, w := range r.Walks() {
		if w.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", w.Convention, w.Err))
		}
	}
	return errors.Join(errs...)
}

// Scan walks the pages and app roots concurrently. A failure in one walk
// never affects the other; each error is kept on its own Walk.
func (p *Project) Scan(logger *slog.Logger, opts ...scanner.Option) *ScanResult {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = append(opts[:len(opts):len(opts)], scanner.WithLogger(logger))

	result := &ScanResult{
		Pages: Walk{Convention: scanner.ConventionPages, Root: p.ConventionRoot(scanner.ConventionPages)},
		App:   Walk{Convention: scanner.ConventionApp, Root: p.ConventionRoot(scanner.ConventionApp)},
	}

	var wg sync.WaitGroup
	for _, w := range result.Walks() {
		wg.Go(func() {
			w.Exists = isDir(w.Root)
			w.Entries, w.Err = scanner.NewScanner(w.Root, w.Convention, opts...).Scan()
			if w.Err != nil {
				logger.Debug("walk failed", "convention", w.Convention, "error", w.Err)
			}
		})
	}
	wg.Wait()
	return result
}
