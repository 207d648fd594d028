package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/nextroutes/internal/config"
	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
)

// newProject writes files under a fresh project directory.
func newProject(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	newProjectFile(t, dir, files...)
	return dir
}

func newProjectFile(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", f, err)
		}
		if err := os.WriteFile(p, []byte("export default function Page() {}\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f, err)
		}
	}
}

func scanDir(t *testing.T, dir string) *project.ScanResult {
	t.Helper()
	p, cfg, err := loadProject(config.NewViper(), []string{dir})
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	return scanProject(p, cfg)
}
