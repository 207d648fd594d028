package commands

import (
	"reflect"
	"testing"
)

func routePaths(out *RoutesOutput, conv string) map[string]RouteOutput {
	m := map[string]RouteOutput{}
	for _, r := range out.Routes {
		if r.Convention == conv {
			m[r.Path] = r
		}
	}
	return m
}

func TestBuildRoutesOutput(t *testing.T) {
	dir := newProject(t,
		"pages/index.tsx",
		"pages/posts/[...slug].tsx",
		"app/(marketing)/pricing/page.tsx",
		"app/dashboard/@team/settings/page.tsx",
		"app/api/users/route.ts",
	)

	out, err := buildRoutesOutput(scanDir(t, dir), "")
	if err != nil {
		t.Fatalf("buildRoutesOutput failed: %v", err)
	}
	if out.TotalRoutes != 5 || len(out.Routes) != 5 {
		t.Fatalf("TotalRoutes = %d, routes = %d, want 5", out.TotalRoutes, len(out.Routes))
	}
	if len(out.Conventions) != 2 {
		t.Fatalf("Conventions = %d, want 2", len(out.Conventions))
	}

	pages := routePaths(out, "pages")
	if _, ok := pages["/"]; !ok {
		t.Errorf("Missing pages index route, got %v", pages)
	}
	slug, ok := pages["/posts/[...slug]"]
	if !ok {
		t.Fatalf("Missing catch-all route, got %v", pages)
	}
	if !reflect.DeepEqual(slug.Params, []string{"...slug"}) {
		t.Errorf("Params = %v", slug.Params)
	}

	app := routePaths(out, "app")
	pricing, ok := app["/pricing"]
	if !ok {
		t.Fatalf("Route group should be flattened out of the URL, got %v", app)
	}
	if pricing.TreePath != "(marketing)/pricing" {
		t.Errorf("TreePath = %q", pricing.TreePath)
	}
	settings, ok := app["/dashboard/settings"]
	if !ok {
		t.Fatalf("Slot should be flattened out of the URL, got %v", app)
	}
	if settings.Slot != "team" {
		t.Errorf("Slot = %q, want team", settings.Slot)
	}
	if !app["/api/users"].Handler {
		t.Error("Expected /api/users to be a handler")
	}
}

func TestBuildRoutesOutput_Convention(t *testing.T) {
	dir := newProject(t, "pages/about.tsx", "app/page.tsx")

	out, err := buildRoutesOutput(scanDir(t, dir), "app")
	if err != nil {
		t.Fatalf("buildRoutesOutput failed: %v", err)
	}
	if len(out.Conventions) != 1 || out.Conventions[0].Convention != "app" {
		t.Errorf("Conventions = %+v, want only app", out.Conventions)
	}
	for _, r := range out.Routes {
		if r.Convention != "app" {
			t.Errorf("Unexpected %s route %s", r.Convention, r.Path)
		}
	}
}

func TestBuildRoutesOutput_UnknownConvention(t *testing.T) {
	dir := newProject(t, "app/page.tsx")
	out, err := buildRoutesOutput(scanDir(t, dir), "routes")
	if err == nil {
		t.Fatal("Expected an error for an unknown convention")
	}
	if out != nil {
		t.Error("Expected no output for an unknown convention")
	}
}

func TestBuildRoutesOutput_PartialFailure(t *testing.T) {
	dir := newProject(t,
		"pages/about.tsx",
		"app/[id]/posts/[id]/page.tsx",
	)

	out, err := buildRoutesOutput(scanDir(t, dir), "")
	if err == nil {
		t.Fatal("Expected the app walk error")
	}
	if out == nil {
		t.Fatal("Expected output for the healthy router")
	}
	if len(out.Routes) != 1 || out.Routes[0].Path != "/about" {
		t.Errorf("Routes = %+v, want only /about", out.Routes)
	}
	if out.Conventions[1].Error == "" {
		t.Error("Expected the app convention to carry the error")
	}
}
