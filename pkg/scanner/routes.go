package scanner

import "strings"

// Param is a URL parameter bound along a route's path.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// IsCatchAll reports whether the parameter captures a sequence of segments.
func (p Param) IsCatchAll() bool {
	return p.Kind == KindCatchAll || p.Kind == KindOptionalCatchAll
}

// IsOptional reports whether the parameter may be absent.
func (p Param) IsOptional() bool {
	return p.Kind == KindOptionalCatchAll
}

// Route is the URL view of a leaf entry: route groups and parallel slots are
// flattened out of URLPath but kept in TreePath.
type Route struct {
	// URLPath is the templated URL without a leading slash (e.g., "products/[id]")
	URLPath string `json:"path" yaml:"path"`
	// TreePath joins every segment from the root (e.g., "(shop)/products/[id]")
	TreePath string `json:"treePath" yaml:"treePath"`
	// Params are the parameters bound along the path, outermost first
	Params []Param `json:"params" yaml:"params"`
	// Slot is the innermost enclosing parallel slot name, if any
	Slot string `json:"slot,omitempty" yaml:"slot,omitempty"`
	// Handler is true for route handlers
	Handler bool `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// Walk calls fn for every entry in depth-first order. chain holds the
// ancestors of the entry followed by the entry itself; it must not be
// retained after fn returns.
func Walk(entries []RouteEntry, fn func(chain []*RouteEntry)) {
	var chain []*RouteEntry
	var visit func(entries []RouteEntry)
	visit = func(entries []RouteEntry) {
		for i := range entries {
			chain = append(chain, &entries[i])
			fn(chain)
			visit(entries[i].Children)
			chain = chain[:len(chain)-1]
		}
	}
	visit(entries)
}

// URLPath returns the effective URL path of the last entry in chain.
func URLPath(chain []*RouteEntry) string {
	parts := make([]string, 0, len(chain))
	for _, e := range chain {
		if e.Kind.IsStructural() || e.Segment == "" {
			continue
		}
		parts = append(parts, e.Segment)
	}
	return strings.Join(parts, "/")
}

// TreePath returns the structural path of the last entry in chain.
func TreePath(chain []*RouteEntry) string {
	parts := make([]string, 0, len(chain))
	for _, e := range chain {
		if e.Segment == "" {
			continue
		}
		parts = append(parts, e.Segment)
	}
	return strings.Join(parts, "/")
}

// Params returns the parameters bound along chain, outermost first.
func Params(chain []*RouteEntry) []Param {
	var params []Param
	for _, e := range chain {
		if e.Kind.IsParam() {
			params = append(params, Param{Name: e.ParamName, Kind: e.Kind})
		}
	}
	return params
}

// Slot returns the innermost parallel slot enclosing the last entry in chain.
func Slot(chain []*RouteEntry) string {
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Kind == KindParallelSlot {
			return chain[i].SlotName
		}
	}
	return ""
}

// Routes flattens a route tree into its leaf routes in tree order.
func Routes(entries []RouteEntry) []Route {
	var routes []Route
	Walk(entries, func(chain []*RouteEntry) {
		e := chain[len(chain)-1]
		if !e.IsLeafRoute {
			return
		}
		routes = append(routes, Route{
			URLPath:  URLPath(chain),
			TreePath: TreePath(chain),
			Params:   Params(chain),
			Slot:     Slot(chain),
			Handler:  e.IsHandler,
		})
	})
	return routes
}

// Count returns the number of entries and leaf routes in a tree.
func Count(entries []RouteEntry) (nodes, leaves int) {
	Walk(entries, func(chain []*RouteEntry) {
		nodes++
		if chain[len(chain)-1].IsLeafRoute {
			leaves++
		}
	})
	return nodes, leaves
}
