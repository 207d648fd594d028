package commands

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/abdul-hamid-achik/nextroutes/pkg/project"
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

func TestJSONResponse_Success(t *testing.T) {
	resp := JSONResponse{
		Success: true,
		Data:    map[string]string{"key": "value"},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded JSONResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !decoded.Success {
		t.Error("Expected Success to be true")
	}
	if decoded.Error != "" {
		t.Error("Expected Error to be empty for success response")
	}
}

func TestJSONResponse_Partial(t *testing.T) {
	resp := JSONResponse{
		Success: false,
		Data:    RoutesOutput{Routes: []RouteOutput{}, TotalRoutes: 0},
		Error:   "pages: boom",
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded["success"] != false {
		t.Errorf("success = %v, want false", decoded["success"])
	}
	if decoded["data"] == nil {
		t.Error("Expected data to be kept on a partial response")
	}
	if decoded["error"] != "pages: boom" {
		t.Errorf("error = %v", decoded["error"])
	}
}

func TestRouteOutput_Params(t *testing.T) {
	r := scanner.Route{
		URLPath:  "shop/[category]/[[...filters]]",
		TreePath: "(store)/shop/[category]/[[...filters]]",
		Params: []scanner.Param{
			{Name: "category", Kind: scanner.KindDynamic},
			{Name: "filters", Kind: scanner.KindOptionalCatchAll},
		},
	}

	got := routeOutput(scanner.ConventionApp, r)
	if got.Path != "/shop/[category]/[[...filters]]" {
		t.Errorf("Path = %q", got.Path)
	}
	if got.Convention != "app" {
		t.Errorf("Convention = %q, want app", got.Convention)
	}
	want := []string{"category", "...filters?"}
	if !reflect.DeepEqual(got.Params, want) {
		t.Errorf("Params = %v, want %v", got.Params, want)
	}
}

func TestRouteOutput_CatchAll(t *testing.T) {
	r := scanner.Route{
		URLPath: "docs/[...slug]",
		Params:  []scanner.Param{{Name: "slug", Kind: scanner.KindCatchAll}},
	}
	got := routeOutput(scanner.ConventionPages, r)
	if !reflect.DeepEqual(got.Params, []string{"...slug"}) {
		t.Errorf("Params = %v", got.Params)
	}
}

func TestConventionOutput(t *testing.T) {
	w := &project.Walk{
		Convention: scanner.ConventionApp,
		Root:       "/x/app",
		Exists:     true,
		Entries: []scanner.RouteEntry{
			{Segment: "", Kind: scanner.KindStatic, IsLeafRoute: true},
			{Segment: "about", Kind: scanner.KindStatic, IsLeafRoute: true},
		},
	}

	got := conventionOutput(w)
	if got.Nodes != 2 || got.Leaves != 2 {
		t.Errorf("Nodes, Leaves = %d, %d, want 2, 2", got.Nodes, got.Leaves)
	}
	if got.Error != "" {
		t.Errorf("Error = %q", got.Error)
	}

	w.Err = errors.New("boom")
	got = conventionOutput(w)
	if got.Error != "boom" {
		t.Errorf("Error = %q, want boom", got.Error)
	}
	if got.Nodes != 0 {
		t.Errorf("Nodes = %d, want 0 for a failed walk", got.Nodes)
	}
}
