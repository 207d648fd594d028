package scanner

import (
	"errors"
	"fmt"
)

// Classification errors. Each one aborts the walk of the affected convention root.
var (
	// ErrMalformedSegment is returned for unbalanced or nonsensical bracket and parenthesis syntax.
	ErrMalformedSegment = errors.New("malformed segment")
	// ErrParamNameCollision is returned when a parameter name is reused on one root-to-leaf path.
	ErrParamNameCollision = errors.New("parameter name collision")
	// ErrAmbiguousDynamicSibling is returned when two siblings bind different parameters at the same URL position.
	ErrAmbiguousDynamicSibling = errors.New("ambiguous dynamic sibling")
	// ErrDuplicateRoute is returned when two leaves resolve to the same URL path.
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrConflictingLeaf is returned when a directory holds both a page and a route handler.
	ErrConflictingLeaf = errors.New("conflicting page and route handler")
	// ErrSymlinkCycle is returned when a symlinked directory leads back into a directory being walked.
	ErrSymlinkCycle = errors.New("symlink cycle")
)

// Error describes a fatal problem found while walking a convention root.
type Error struct {
	// Path is the full path of the offending file or directory
	Path string
	// Segment is the offending path component
	Segment string
	// Message explains what is wrong with the segment
	Message string
	// Err is one of the sentinel errors above
	Err error
}

func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = e.Segment
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", where, e.Err, e.Message)
}

// Unwrap returns the sentinel error for errors.Is support.
func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(segment, format string, args ...any) *Error {
	return &Error{
		Segment: segment,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrMalformedSegment,
	}
}
