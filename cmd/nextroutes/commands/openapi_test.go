package commands

import (
	"encoding/json"
	"testing"

	"github.com/abdul-hamid-achik/nextroutes/pkg/openapi"
)

func TestBuildOpenAPI(t *testing.T) {
	dir := newProject(t,
		"app/api/users/[id]/route.ts",
		"app/about/page.tsx",
		"pages/api/health.ts",
	)

	data, out, err := buildOpenAPI(scanDir(t, dir), openapi.Config{Title: "Shop"}, "JSON")
	if err != nil {
		t.Fatalf("buildOpenAPI failed: %v", err)
	}
	if out.Endpoints != 2 {
		t.Errorf("Endpoints = %d, want 2", out.Endpoints)
	}
	if out.Format != "json" {
		t.Errorf("Format = %q, want json", out.Format)
	}

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any         `json:"paths"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if doc.Info.Title != "Shop" {
		t.Errorf("Title = %q", doc.Info.Title)
	}
	for _, p := range []string{"/api/users/{id}", "/api/health"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("Missing path %s in %v", p, doc.Paths)
		}
	}
	if _, ok := doc.Paths["/about"]; ok {
		t.Error("Pages should not be documented")
	}
}

func TestBuildOpenAPI_WalkError(t *testing.T) {
	dir := newProject(t, "app/api/[x/route.ts")
	if _, _, err := buildOpenAPI(scanDir(t, dir), openapi.Config{}, "json"); err == nil {
		t.Error("Expected the walk error")
	}
}

func TestBuildOpenAPI_UnknownFormat(t *testing.T) {
	dir := newProject(t, "app/api/route.ts")
	if _, _, err := buildOpenAPI(scanDir(t, dir), openapi.Config{}, "toml"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
