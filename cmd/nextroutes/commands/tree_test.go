package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

func TestRenderTree_Both(t *testing.T) {
	dir := newProject(t, "app/(shop)/cart/page.tsx")

	data, err := renderTree(scanDir(t, dir), "", "json")
	if err != nil {
		t.Fatalf("renderTree failed: %v", err)
	}

	var got map[string][]scanner.RouteEntry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v\n%s", err, data)
	}
	pages, ok := got["pages"]
	if !ok {
		t.Fatal("Missing pages key")
	}
	if len(pages) != 0 {
		t.Errorf("pages = %v, want empty", pages)
	}
	if !strings.Contains(string(data), `"pages": []`) {
		t.Errorf("Missing router should render as []:\n%s", data)
	}
	app := got["app"]
	if len(app) != 1 || app[0].Segment != "(shop)" || app[0].Kind != scanner.KindRouteGroup {
		t.Fatalf("app = %+v", app)
	}
	if len(app[0].Children) != 1 || !app[0].Children[0].IsLeafRoute {
		t.Errorf("cart = %+v", app[0].Children)
	}
}

func TestRenderTree_SingleYAML(t *testing.T) {
	dir := newProject(t, "pages/about.tsx", "app/page.tsx")

	data, err := renderTree(scanDir(t, dir), "pages", "yaml")
	if err != nil {
		t.Fatalf("renderTree failed: %v", err)
	}
	var got []scanner.RouteEntry
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to unmarshal: %v\n%s", err, data)
	}
	if len(got) != 1 || got[0].Segment != "about" {
		t.Errorf("got %+v, want only about", got)
	}
}

func TestRenderTree_Errors(t *testing.T) {
	dir := newProject(t, "app/[a]/[a]/page.tsx", "pages/about.tsx")
	result := scanDir(t, dir)

	tests := []struct {
		name   string
		only   string
		format string
	}{
		{"walk error", "", "json"},
		{"walk error in selected router", "app", "json"},
		{"unknown convention", "routes", "json"},
		{"unknown format", "pages", "toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := renderTree(result, tt.only, tt.format); err == nil {
				t.Error("Expected an error")
			}
		})
	}

	if _, err := renderTree(result, "pages", "json"); err != nil {
		t.Errorf("Healthy router should still render: %v", err)
	}
}
