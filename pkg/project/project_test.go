package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

func touch(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(p, []byte("export default function Page() {}\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}
}

func resolved(t *testing.T, dir string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSourceDir(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"app at root", []string{"app/page.tsx"}, "."},
		{"pages at root", []string{"pages/index.tsx"}, "."},
		{"src layout", []string{"src/app/page.tsx"}, "src"},
		{"src pages", []string{"src/pages/index.tsx"}, "src"},
		{"root wins over src", []string{"app/page.tsx", "src/pages/index.tsx"}, "."},
		{"nothing", []string{"README.md"}, "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			touch(t, root, tt.files...)

			got := SourceDir(root)
			want := filepath.Join(root, tt.want)
			if got != want {
				t.Errorf("SourceDir() = %q, want %q", got, want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "src/app/page.tsx")

	p, err := Resolve(root, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.Root != resolved(t, root) {
		t.Errorf("Root = %q, want %q", p.Root, resolved(t, root))
	}
	if p.SrcDir != filepath.Join(p.Root, "src") {
		t.Errorf("SrcDir = %q", p.SrcDir)
	}
	if got := p.ConventionRoot(scanner.ConventionApp); got != filepath.Join(p.Root, "src", "app") {
		t.Errorf("ConventionRoot(app) = %q", got)
	}
}

func TestResolve_SrcDirOverride(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "app/page.tsx", "web/pages/index.tsx")

	p, err := Resolve(root, "web")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.SrcDir != filepath.Join(p.Root, "web") {
		t.Errorf("SrcDir = %q, want web", p.SrcDir)
	}
}

func TestResolve_Symlink(t *testing.T) {
	target := t.TempDir()
	touch(t, target, "pages/index.tsx")
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	p, err := Resolve(link, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p.Root != resolved(t, target) {
		t.Errorf("Root = %q, want %q", p.Root, resolved(t, target))
	}
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Resolve(filepath.Join(dir, "missing"), ""); err == nil {
		t.Error("expected error for missing project")
	}

	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(file, ""); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Resolve(file) error = %v, want ErrNotDirectory", err)
	}
}

func TestScan_BothConventions(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"pages/index.tsx",
		"pages/about.tsx",
		"app/(shop)/products/[id]/page.tsx",
	)

	p, err := Resolve(root, "")
	if err != nil {
		t.Fatal(err)
	}
	result := p.Scan(nil)

	if err := result.Err(); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !result.Pages.Exists || !result.App.Exists {
		t.Error("both roots should exist")
	}
	if len(scanner.Routes(result.Pages.Entries)) != 2 {
		t.Errorf("pages routes = %+v", scanner.Routes(result.Pages.Entries))
	}
	routes := scanner.Routes(result.App.Entries)
	if len(routes) != 1 || routes[0].URLPath != "products/[id]" {
		t.Errorf("app routes = %+v", routes)
	}
}

func TestScan_NoConventionRoots(t *testing.T) {
	p, err := Resolve(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	result := p.Scan(nil)

	if err := result.Err(); err != nil {
		t.Fatalf("missing roots should not be an error: %v", err)
	}
	for _, w := range result.Walks() {
		if w.Exists || w.Entries != nil {
			t.Errorf("%s: Exists=%v Entries=%v", w.Convention, w.Exists, w.Entries)
		}
	}
}

func TestScan_FailureIsolated(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"pages/users/[id].tsx",
		"app/[id]/posts/[id]/page.tsx",
	)

	p, err := Resolve(root, "")
	if err != nil {
		t.Fatal(err)
	}
	result := p.Scan(nil)

	if result.Pages.Err != nil {
		t.Errorf("pages walk should succeed: %v", result.Pages.Err)
	}
	if len(result.Pages.Entries) != 1 {
		t.Errorf("pages entries = %+v", result.Pages.Entries)
	}
	if !errors.Is(result.App.Err, scanner.ErrParamNameCollision) {
		t.Errorf("app error = %v, want ErrParamNameCollision", result.App.Err)
	}
	if !errors.Is(result.Err(), scanner.ErrParamNameCollision) {
		t.Errorf("joined error = %v", result.Err())
	}
}

func TestScan_Extensions(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "pages/post.mdx", "pages/about.tsx")

	p, err := Resolve(root, "")
	if err != nil {
		t.Fatal(err)
	}
	result := p.Scan(nil, scanner.WithExtensions("mdx"))

	routes := scanner.Routes(result.Pages.Entries)
	if len(routes) != 1 || routes[0].URLPath != "post" {
		t.Errorf("routes = %+v, want only post", routes)
	}
}
