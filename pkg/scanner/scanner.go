package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Scanner walks one convention root (pages/ or app/) and builds its route tree.
type Scanner struct {
	fsys       fs.FS
	root       string
	classifier Classifier
	logger     *slog.Logger
	// diskRoot is set when fsys reads the real filesystem, so symlinks can be resolved
	diskRoot string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtensions sets the recognized page extensions (e.g., "tsx", "mdx").
func WithExtensions(exts ...string) Option {
	return func(s *Scanner) {
		s.classifier.Extensions = exts
	}
}

// WithLogger sets the logger used for debug output during scanning.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a Scanner reading the directory root from disk.
func NewScanner(root string, conv Convention, opts ...Option) *Scanner {
	s := NewScannerFS(os.DirFS(root), root, conv, opts...)
	s.diskRoot = root
	return s
}

// NewScannerFS creates a Scanner reading from fsys. root is only used to
// report full paths in errors and logs.
func NewScannerFS(fsys fs.FS, root string, conv Convention, opts ...Option) *Scanner {
	s := &Scanner{
		fsys:       fsys,
		root:       root,
		classifier: Classifier{Convention: conv},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convention returns the routing convention applied by the scanner.
func (s *Scanner) Convention() Convention {
	return s.classifier.Convention
}

// WalkPages walks a pages/ directory.
func WalkPages(root string, opts ...Option) ([]RouteEntry, error) {
	return NewScanner(root, ConventionPages, opts...).Scan()
}

// WalkApp walks an app/ directory.
func WalkApp(root string, opts ...Option) ([]RouteEntry, error) {
	return NewScanner(root, ConventionApp, opts...).Scan()
}

// Scan walks the root and returns its top-level route entries.
// A missing root is not an error: it yields no entries. The first
// classification error aborts the walk and is returned as an *Error.
func (s *Scanner) Scan() ([]RouteEntry, error) {
	info, err := fs.Stat(s.fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("convention root not found", "convention", s.Convention(), "root", s.root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.root)
	}

	w := &walk{
		s:         s,
		leaves:    make(map[string]leafClaim),
		positions: make(map[string]paramClaim),
		active:    make(map[string]string),
	}
	var root RouteEntry
	if err := w.dir(".", &root, frame{}); err != nil {
		return nil, err
	}

	s.logger.Debug("scanned convention root",
		"convention", s.Convention(),
		"root", s.root,
		"entries", len(root.Children),
		"leaves", len(w.leaves),
	)
	return root.Children, nil
}

// walk holds the state of one Scan call.
type walk struct {
	s *Scanner
	// leaves maps slot scope + URL path to the file that made it addressable
	leaves map[string]leafClaim
	// positions maps slot scope + parent URL path + param class to the
	// parameter bound there
	positions map[string]paramClaim
	// active maps the real path of each directory being walked to its rel path
	active map[string]string
}

type leafClaim struct {
	file    string
	handler bool
}

type paramClaim struct {
	kind Kind
	name string
	dir  string
}

// frame is the routing context of the directory being walked.
type frame struct {
	// url holds the effective URL segments (groups and slots removed)
	url []string
	// slot is the enclosing parallel slot scope ("" outside slots)
	slot string
	// params maps parameter names on the current path to where they were declared
	params map[string]string
}

func (f frame) key() string {
	return f.slot + "|" + strings.Join(f.url, "/")
}

// paramClass groups the parameter kinds that compete for one URL position.
// A dynamic segment outranks a catch-all, so the two may be siblings; a
// catch-all and an optional catch-all may not.
func paramClass(k Kind) string {
	if k == KindDynamic {
		return "dynamic"
	}
	return "rest"
}

func (w *walk) fullPath(rel string) string {
	return filepath.Join(w.s.root, filepath.FromSlash(rel))
}

func (w *walk) fail(err error, rel string) error {
	var serr *Error
	if errors.As(err, &serr) && serr.Path == "" {
		serr.Path = w.fullPath(rel)
	}
	return err
}

// dir walks the directory rel, appending children to parent.
func (w *walk) dir(rel string, parent *RouteEntry, f frame) error {
	if real, ok := w.realPath(rel); ok {
		if prev, seen := w.active[real]; seen {
			return &Error{
				Path:    w.fullPath(rel),
				Segment: path.Base(rel),
				Message: fmt.Sprintf("symlink loops back to %s", w.fullPath(prev)),
				Err:     ErrSymlinkCycle,
			}
		}
		w.active[real] = rel
		defer delete(w.active, real)
	}

	entries, err := fs.ReadDir(w.s.fsys, rel)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.fullPath(rel), err)
	}

	isRoot := rel == "."
	for _, de := range entries {
		name := de.Name()
		childRel := path.Join(rel, name)

		isDir, err := w.isDir(de, childRel)
		if err != nil {
			return err
		}

		cl, err := w.s.classifier.Classify(name, isDir)
		if err != nil {
			return w.fail(err, childRel)
		}

		switch cl.Role {
		case RoleSkip:
			w.s.logger.Debug("skipping private entry", "path", w.fullPath(childRel))

		case RoleIgnore:
			continue

		case RoleSpecial:
			w.s.logger.Debug("special file", "path", w.fullPath(childRel))

		case RoleLayout:
			// The root layout wraps every route and has no node of its own.
			if !isRoot {
				parent.HasLayout = true
			}

		case RolePage, RoleHandler:
			target := parent
			if isRoot {
				target = w.rootLeaf(parent)
			}
			if err := w.markLeaf(target, f, childRel, cl.Role == RoleHandler); err != nil {
				return w.fail(err, childRel)
			}

		case RoleRouteFile:
			child, cf, err := w.child(parent, cl, f, rel)
			if err != nil {
				return w.fail(err, childRel)
			}
			if err := w.markLeaf(child, cf, childRel, false); err != nil {
				return w.fail(err, childRel)
			}

		case RoleSegment:
			child, cf, err := w.child(parent, cl, f, rel)
			if err != nil {
				return w.fail(err, childRel)
			}
			if err := w.dir(childRel, child, cf); err != nil {
				return err
			}
		}
	}
	return nil
}

// isDir resolves symlinks so linked route directories are walked.
func (w *walk) isDir(de fs.DirEntry, rel string) (bool, error) {
	if de.Type()&fs.ModeSymlink == 0 {
		return de.IsDir(), nil
	}
	info, err := fs.Stat(w.s.fsys, rel)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", w.fullPath(rel), err)
	}
	return info.IsDir(), nil
}

// realPath resolves rel to a symlink-free path on disk. It reports false
// for scanners that do not read the real filesystem.
func (w *walk) realPath(rel string) (string, bool) {
	if w.s.diskRoot == "" {
		return "", false
	}
	real, err := filepath.EvalSymlinks(filepath.Join(w.s.diskRoot, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	return real, true
}

// rootLeaf returns the empty-segment entry standing for a leaf at the
// convention root, creating it on first use.
func (w *walk) rootLeaf(root *RouteEntry) *RouteEntry {
	for i := range root.Children {
		if root.Children[i].Segment == "" {
			return &root.Children[i]
		}
	}
	root.Children = append(root.Children, RouteEntry{Kind: KindStatic, Children: []RouteEntry{}})
	return &root.Children[len(root.Children)-1]
}

// child finds or creates the node for cl under parent and returns it along
// with the frame its descendants are walked in. A pages file and a directory
// with the same name share one node.
func (w *walk) child(parent *RouteEntry, cl Classification, f frame, parentRel string) (*RouteEntry, frame, error) {
	cf, err := w.descend(f, cl, parentRel)
	if err != nil {
		return nil, frame{}, err
	}

	for i := range parent.Children {
		if parent.Children[i].Segment == cl.Segment {
			return &parent.Children[i], cf, nil
		}
	}

	entry := RouteEntry{
		Segment:  cl.Segment,
		Kind:     cl.Kind,
		Children: []RouteEntry{},
	}
	switch {
	case cl.Kind.IsParam():
		entry.ParamName = cl.Name
	case cl.Kind == KindParallelSlot:
		entry.SlotName = cl.Name
	}
	parent.Children = append(parent.Children, entry)
	return &parent.Children[len(parent.Children)-1], cf, nil
}

// descend computes the frame for a child segment and enforces the
// parameter rules: names are unique along a path and only one parameter may
// be bound at a given URL position.
func (w *walk) descend(f frame, cl Classification, parentRel string) (frame, error) {
	cf := frame{url: f.url, slot: f.slot, params: f.params}

	switch cl.Kind {
	case KindRouteGroup:
	case KindParallelSlot:
		cf.slot = f.slot + "@" + cl.Name
	default:
		cf.url = append(append([]string(nil), f.url...), cl.Segment)
	}

	if !cl.Kind.IsParam() {
		return cf, nil
	}

	if declared, ok := f.params[cl.Name]; ok {
		return frame{}, &Error{
			Segment: cl.Segment,
			Message: fmt.Sprintf("parameter %q is already declared by %s", cl.Name, w.fullPath(declared)),
			Err:     ErrParamNameCollision,
		}
	}

	pos := f.key() + "|" + paramClass(cl.Kind)
	if prev, ok := w.positions[pos]; ok && (prev.kind != cl.Kind || prev.name != cl.Name) {
		return frame{}, &Error{
			Segment: cl.Segment,
			Message: fmt.Sprintf("%s %q conflicts with %s %q declared in %s",
				cl.Kind, cl.Name, prev.kind, prev.name, w.fullPath(prev.dir)),
			Err: ErrAmbiguousDynamicSibling,
		}
	}
	if leaf, ok := w.leaves[f.key()]; ok && cl.Kind == KindOptionalCatchAll {
		return frame{}, &Error{
			Segment: cl.Segment,
			Message: fmt.Sprintf("/%s is already defined by %s", strings.Join(f.url, "/"), w.fullPath(leaf.file)),
			Err:     ErrDuplicateRoute,
		}
	}
	w.positions[pos] = paramClaim{kind: cl.Kind, name: cl.Name, dir: path.Join(parentRel, cl.Segment)}

	cf.params = make(map[string]string, len(f.params)+1)
	for k, v := range f.params {
		cf.params[k] = v
	}
	cf.params[cl.Name] = path.Join(parentRel, cl.Segment)
	return cf, nil
}

// markLeaf makes entry addressable, rejecting a second leaf for the same URL.
func (w *walk) markLeaf(entry *RouteEntry, f frame, file string, handler bool) error {
	key := f.key()
	if prev, ok := w.leaves[key]; ok {
		if path.Dir(prev.file) == path.Dir(file) && prev.handler != handler {
			return &Error{
				Segment: path.Base(file),
				Message: fmt.Sprintf("%s already defines this route", w.fullPath(prev.file)),
				Err:     ErrConflictingLeaf,
			}
		}
		return &Error{
			Segment: path.Base(file),
			Message: fmt.Sprintf("/%s is already defined by %s", strings.Join(f.url, "/"), w.fullPath(prev.file)),
			Err:     ErrDuplicateRoute,
		}
	}
	if rest, ok := w.positions[key+"|"+paramClass(KindOptionalCatchAll)]; ok && rest.kind == KindOptionalCatchAll {
		return &Error{
			Segment: path.Base(file),
			Message: fmt.Sprintf("/%s is also matched by %s", strings.Join(f.url, "/"), w.fullPath(rest.dir)),
			Err:     ErrDuplicateRoute,
		}
	}
	w.leaves[key] = leafClaim{file: file, handler: handler}

	entry.IsLeafRoute = true
	if handler {
		entry.IsHandler = true
		if entry.Kind == KindStatic {
			entry.Kind = KindHandler
		}
	}
	w.s.logger.Debug("found leaf route",
		"url", "/"+strings.Join(f.url, "/"),
		"file", w.fullPath(file),
		"handler", handler,
	)
	return nil
}
