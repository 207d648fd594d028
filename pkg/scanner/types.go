// Package scanner extracts Next.js file-system routes into a typed route tree.
// It understands both the pages convention (pages/index.tsx, pages/users/[id].tsx)
// and the app convention (app/(shop)/products/[id]/page.tsx, app/@modal/...),
// reasoning only over directory and file names.
package scanner

import "fmt"

// Kind is the routing role of a node in the route tree.
type Kind int

const (
	// KindStatic is a literal path segment (e.g., "users")
	KindStatic Kind = iota
	// KindDynamic is a single-segment parameter (e.g., [id])
	KindDynamic
	// KindCatchAll matches one or more segments (e.g., [...slug])
	KindCatchAll
	// KindOptionalCatchAll matches zero or more segments (e.g., [[...slug]])
	KindOptionalCatchAll
	// KindRouteGroup organizes routes without affecting the URL (e.g., (shop))
	KindRouteGroup
	// KindParallelSlot is a named slot rendered next to its siblings (e.g., @modal)
	KindParallelSlot
	// KindHandler is a literal segment whose leaf is a route handler (route.ts)
	// rather than a page. Parameter segments keep their own kind and only
	// set RouteEntry.IsHandler.
	KindHandler
)

var kindNames = [...]string{
	KindStatic:           "static",
	KindDynamic:          "dynamic",
	KindCatchAll:         "catchAll",
	KindOptionalCatchAll: "optionalCatchAll",
	KindRouteGroup:       "routeGroup",
	KindParallelSlot:     "parallelSlot",
	KindHandler:          "handler",
}

// String returns the serialized name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", text)
}

// IsParam reports whether the kind binds a URL parameter.
func (k Kind) IsParam() bool {
	return k == KindDynamic || k == KindCatchAll || k == KindOptionalCatchAll
}

// IsStructural reports whether the kind is absent from the URL.
func (k Kind) IsStructural() bool {
	return k == KindRouteGroup || k == KindParallelSlot
}

// RouteEntry is one node in the route tree.
type RouteEntry struct {
	// Segment is the path component as written on disk, "" for a root leaf
	Segment string `json:"segment" yaml:"segment"`
	// Kind is the routing role of the segment
	Kind Kind `json:"kind" yaml:"kind"`
	// ParamName is set for dynamic, catch-all and optional catch-all segments
	ParamName string `json:"paramName,omitempty" yaml:"paramName,omitempty"`
	// SlotName is set for parallel slots (e.g., "modal" for @modal)
	SlotName string `json:"slotName,omitempty" yaml:"slotName,omitempty"`
	// IsLeafRoute is true when a page or handler file makes this node addressable
	IsLeafRoute bool `json:"isLeafRoute" yaml:"isLeafRoute"`
	// IsHandler is true when the leaf is a route handler instead of a page
	IsHandler bool `json:"isHandler,omitempty" yaml:"isHandler,omitempty"`
	// HasLayout is true when a layout file lives at this level
	HasLayout bool `json:"hasLayout,omitempty" yaml:"hasLayout,omitempty"`
	// Children are ordered by directory read order
	Children []RouteEntry `json:"children" yaml:"children"`
}

// Convention selects the file-system routing rules applied by a Scanner.
type Convention int

const (
	// ConventionPages is the legacy pages/ router
	ConventionPages Convention = iota
	// ConventionApp is the layout-based app/ router
	ConventionApp
)

// String returns the conventional root directory name ("pages" or "app").
func (c Convention) String() string {
	switch c {
	case ConventionPages:
		return "pages"
	case ConventionApp:
		return "app"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// Conventions lists every supported convention in generation order.
func Conventions() []Convention {
	return []Convention{ConventionPages, ConventionApp}
}

// ParseConvention parses "pages" or "app".
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "pages":
		return ConventionPages, nil
	case "app":
		return ConventionApp, nil
	}
	return 0, fmt.Errorf("unknown convention %q (use pages or app)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Convention) MarshalText() ([]byte, error) {
	switch c {
	case ConventionPages, ConventionApp:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("unknown convention %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Convention) UnmarshalText(text []byte) error {
	conv, err := ParseConvention(string(text))
	if err != nil {
		return err
	}
	*c = conv
	return nil
}
