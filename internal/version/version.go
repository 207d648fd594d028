// Package version reports the nextroutes build version and the schema of the
// files it generates.
package version

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version is set via ldflags during build.
var Version = "dev"

// GeneratorSchemaVersion changes whenever the shape of the generated route
// tables changes. Files stamped with another value must be regenerated.
const GeneratorSchemaVersion = 1

var schemaRe = regexp.MustCompile(`/\* nextroutes schema (\d+) \*/`)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetGeneratorSchemaVersion returns the current generator schema version.
func GetGeneratorSchemaVersion() int {
	return GeneratorSchemaVersion
}

// SchemaMarker returns the comment stamped below the header of generated files.
func SchemaMarker(schema int) string {
	return fmt.Sprintf("/* nextroutes schema %d */", schema)
}

// ParseSchema extracts the schema version from generated file content.
// ok is false when no marker is present.
func ParseSchema(content []byte) (schema int, ok bool) {
	m := schemaRe.FindSubmatch(content)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}
