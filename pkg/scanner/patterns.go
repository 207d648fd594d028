package scanner

import (
	"regexp"
	"strings"
)

// Next.js-style pattern matchers
var (
	// [[...slug]] - optional catch-all segment
	optionalCatchAllRe = regexp.MustCompile(`^\[\[\.\.\.([^\[\]().\s/]+)\]\]$`)

	// [...slug] - catch-all segment
	catchAllSegmentRe = regexp.MustCompile(`^\[\.\.\.([^\[\]().\s/]+)\]$`)

	// [id] - dynamic segment
	dynamicSegmentRe = regexp.MustCompile(`^\[([^\[\]().\s/]+)\]$`)

	// (shop) - route group (app only, doesn't affect URL)
	routeGroupRe = regexp.MustCompile(`^\(([^()]+)\)$`)

	// @modal - parallel slot (app only)
	parallelSlotRe = regexp.MustCompile(`^@([a-zA-Z0-9_-]+)$`)
)

// DefaultExtensions are the page extensions recognized when none are configured.
var DefaultExtensions = []string{"tsx", "ts", "jsx", "js"}

// escapedUnderscore lets app segments start with an underscore without
// becoming private (%5Fsecret -> _secret).
const escapedUnderscore = "%5F"

// Role is what the walker does with a classified directory entry.
type Role int

const (
	// RoleSegment is a directory that becomes a tree node and is walked into
	RoleSegment Role = iota
	// RoleRouteFile is a pages-convention file that becomes a leaf node itself
	RoleRouteFile
	// RolePage is a reserved page file (page, index) marking its directory as a leaf
	RolePage
	// RoleHandler is a reserved route handler file marking its directory as a handler leaf
	RoleHandler
	// RoleLayout is a layout file
	RoleLayout
	// RoleSkip is a private or hidden entry, pruned with all of its descendants
	RoleSkip
	// RoleIgnore is a file that takes no part in routing
	RoleIgnore
	// RoleSpecial is a reserved app file (loading, error, ...) that does not make a route
	RoleSpecial
)

// Classification is the result of classifying one path component.
type Classification struct {
	// Role tells the walker how to treat the entry
	Role Role
	// Kind is the segment kind for RoleSegment and RoleRouteFile
	Kind Kind
	// Segment is the component as it appears in templated URL paths
	Segment string
	// Name is the parameter name or the parallel slot name
	Name string
}

// appSpecialFiles are reserved app-convention file names that do not make a
// directory addressable.
var appSpecialFiles = map[string]bool{
	"template":     true,
	"loading":      true,
	"error":        true,
	"global-error": true,
	"not-found":    true,
	"default":      true,
	"forbidden":    true,
	"unauthorized": true,
}

// Classifier classifies path components for one convention.
// The zero value classifies for the pages convention with DefaultExtensions.
type Classifier struct {
	Convention Convention
	Extensions []string
}

// Classify classifies a single path component using DefaultExtensions.
func Classify(conv Convention, name string, isDir bool) (Classification, error) {
	return Classifier{Convention: conv}.Classify(name, isDir)
}

// Classify returns the routing role of a file or directory name.
// Errors are *Error values wrapping ErrMalformedSegment; the Path field is
// left empty for the caller to fill in.
func (c Classifier) Classify(name string, isDir bool) (Classification, error) {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return Classification{Role: RoleSkip}, nil
	}

	if isDir {
		return c.classifySegment(name, name, true)
	}

	base, ok := c.routeFileBase(name)
	if !ok {
		return Classification{Role: RoleIgnore}, nil
	}

	switch c.Convention {
	case ConventionApp:
		switch {
		case base == "page":
			return Classification{Role: RolePage}, nil
		case base == "route":
			return Classification{Role: RoleHandler}, nil
		case base == "layout":
			return Classification{Role: RoleLayout}, nil
		case IsSpecialFile(base):
			return Classification{Role: RoleSpecial}, nil
		}
		return Classification{Role: RoleIgnore}, nil

	default:
		if base == "index" {
			return Classification{Role: RolePage}, nil
		}
		cl, err := c.classifySegment(name, base, false)
		if err != nil {
			return cl, err
		}
		cl.Role = RoleRouteFile
		return cl, nil
	}
}

// IsSpecialFile reports whether base is a reserved app-convention file name
// other than page, route and layout.
func IsSpecialFile(base string) bool {
	return appSpecialFiles[base]
}

// routeFileBase strips a recognized extension from a file name. It reports
// false for unknown extensions, declaration files and test files.
func (c Classifier) routeFileBase(name string) (string, bool) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return "", false
	}
	base, ext := name[:dot], name[dot+1:]
	if !c.hasExtension(ext) {
		return "", false
	}
	if strings.HasSuffix(base, ".d") || strings.HasSuffix(base, ".test") || strings.HasSuffix(base, ".spec") {
		return "", false
	}
	return base, true
}

func (c Classifier) hasExtension(ext string) bool {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, e := range exts {
		if strings.TrimPrefix(e, ".") == ext {
			return true
		}
	}
	return false
}

// classifySegment applies the bracket and parenthesis grammar, in priority
// order: optional catch-all, catch-all, dynamic, route group, parallel slot,
// static. The outermost wrapper decides, so "([id])" is a route group.
func (c Classifier) classifySegment(raw, name string, isDir bool) (Classification, error) {
	if err := checkBalanced(raw, name); err != nil {
		return Classification{}, err
	}

	if m := optionalCatchAllRe.FindStringSubmatch(name); m != nil {
		return Classification{Role: RoleSegment, Kind: KindOptionalCatchAll, Segment: name, Name: m[1]}, nil
	}
	if m := catchAllSegmentRe.FindStringSubmatch(name); m != nil {
		return Classification{Role: RoleSegment, Kind: KindCatchAll, Segment: name, Name: m[1]}, nil
	}
	if m := dynamicSegmentRe.FindStringSubmatch(name); m != nil {
		return Classification{Role: RoleSegment, Kind: KindDynamic, Segment: name, Name: m[1]}, nil
	}

	if isDir && c.Convention == ConventionApp {
		if m := routeGroupRe.FindStringSubmatch(name); m != nil {
			return Classification{Role: RoleSegment, Kind: KindRouteGroup, Segment: name, Name: m[1]}, nil
		}
		if m := parallelSlotRe.FindStringSubmatch(name); m != nil {
			return Classification{Role: RoleSegment, Kind: KindParallelSlot, Segment: name, Name: m[1]}, nil
		}
		if strings.HasPrefix(name, "@") {
			return Classification{}, malformed(raw, "invalid parallel slot name")
		}
	}

	if strings.ContainsAny(name, "[]") {
		return Classification{}, malformed(raw, "%s", bracketHint(name))
	}

	segment := name
	if c.Convention == ConventionApp && strings.HasPrefix(segment, escapedUnderscore) {
		segment = "_" + strings.TrimPrefix(segment, escapedUnderscore)
	}
	return Classification{Role: RoleSegment, Kind: KindStatic, Segment: segment}, nil
}

// checkBalanced rejects components whose brackets or parentheses do not nest.
func checkBalanced(raw, name string) error {
	var stack []rune
	for _, r := range name {
		switch r {
		case '[', '(':
			stack = append(stack, r)
		case ']', ')':
			open := '['
			if r == ')' {
				open = '('
			}
			if len(stack) == 0 || stack[len(stack)-1] != open {
				return malformed(raw, "unexpected %q", r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return malformed(raw, "unclosed %q", stack[len(stack)-1])
	}
	return nil
}

func bracketHint(name string) string {
	switch {
	case strings.HasPrefix(name, "[[") && !strings.HasPrefix(name, "[[..."):
		return "optional parameters must be catch-all ([[...name]])"
	case strings.Contains(name, "[...]") || name == "[]" || name == "[[...]]":
		return "parameter name is empty"
	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
		return "invalid parameter name"
	}
	return "parameters must span the whole segment"
}
