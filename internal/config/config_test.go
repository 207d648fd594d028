package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/nextroutes/pkg/generator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, DefaultOutDir)
	}
	if cfg.PagesTypeName != generator.DefaultPagesName || cfg.AppTypeName != generator.DefaultAppName {
		t.Errorf("type names = %q, %q", cfg.PagesTypeName, cfg.AppTypeName)
	}
	if strings.Join(cfg.PageExtensions, ",") != "tsx,ts,jsx,js" {
		t.Errorf("PageExtensions = %v", cfg.PageExtensions)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty without a config file", cfg.File)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nextroutes.yaml"), `out_dir: lib/routes
declarations: types/routes.d.ts
app_type_name: AppRoutes
page_extensions:
  - tsx
  - mdx
`)

	cfg, err := Load(nil, dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutDir != "lib/routes" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.AppTypeName != "AppRoutes" {
		t.Errorf("AppTypeName = %q", cfg.AppTypeName)
	}
	if cfg.PagesTypeName != generator.DefaultPagesName {
		t.Errorf("PagesTypeName = %q, want default", cfg.PagesTypeName)
	}
	if strings.Join(cfg.PageExtensions, ",") != "tsx,mdx" {
		t.Errorf("PageExtensions = %v", cfg.PageExtensions)
	}
	if filepath.Base(cfg.File) != "nextroutes.yaml" {
		t.Errorf("File = %q", cfg.File)
	}

	gen := cfg.Generator("/project")
	if gen.DeclarationsPath != filepath.Join("/project", "types", "routes.d.ts") {
		t.Errorf("DeclarationsPath = %q", gen.DeclarationsPath)
	}
	if gen.ConstantsPath != filepath.Join("/project", "lib", "routes", "routes.ts") {
		t.Errorf("ConstantsPath = %q", gen.ConstantsPath)
	}
	if gen.AppName != "AppRoutes" {
		t.Errorf("AppName = %q", gen.AppName)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	writeFile(t, file, "out_dir: custom\n")

	cfg, err := Load(nil, t.TempDir(), file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutDir != "custom" {
		t.Errorf("OutDir = %q, want custom", cfg.OutDir)
	}

	if _, err := Load(nil, dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("NEXTROUTES_OUT_DIR", "from-env")
	t.Setenv("NEXTROUTES_PAGE_EXTENSIONS", "tsx,mdx")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nextroutes.yaml"), "out_dir: from-file\n")

	cfg, err := Load(nil, dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutDir != "from-env" {
		t.Errorf("OutDir = %q, env should override the file", cfg.OutDir)
	}
	if strings.Join(cfg.PageExtensions, ",") != "tsx,mdx" {
		t.Errorf("PageExtensions = %v", cfg.PageExtensions)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "NEXTROUTES_PAGES_TYPE_NAME=PagesFromDotEnv\n")
	t.Cleanup(func() { os.Unsetenv("NEXTROUTES_PAGES_TYPE_NAME") })

	cfg, err := Load(nil, dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PagesTypeName != "PagesFromDotEnv" {
		t.Errorf("PagesTypeName = %q, want value from .env", cfg.PagesTypeName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "nextroutes.yaml"), "out_dir: from-file\n")

	v := NewViper()
	v.Set(KeyOutDir, "from-flag")

	cfg, err := Load(v, dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutDir != "from-flag" {
		t.Errorf("OutDir = %q, want from-flag", cfg.OutDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad type name", "pages_type_name: not-valid\n"},
		{"same type names", "pages_type_name: ROUTES\napp_type_name: ROUTES\n"},
		{"no extensions", "page_extensions: []\n"},
		{"malformed yaml", "out_dir: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "nextroutes.yaml"), tt.content)
			if _, err := Load(nil, dir, ""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.OutDir = "src/generated"
	cfg.SrcDir = "src"

	path, err := Write(cfg, dir)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != filepath.Join(dir, "nextroutes.yaml") {
		t.Errorf("path = %q", path)
	}

	loaded, err := Load(nil, dir, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutDir != "src/generated" || loaded.SrcDir != "src" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestGenerator_AbsolutePaths(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "routes.d.ts")
	cfg.Declarations = abs

	gen := cfg.Generator("/project")
	if gen.DeclarationsPath != abs {
		t.Errorf("absolute path rewritten to %q", gen.DeclarationsPath)
	}
}
