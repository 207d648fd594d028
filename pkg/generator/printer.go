package generator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// Mode selects how a Value is printed.
type Mode int

const (
	// TypeMode prints a TypeScript literal type. Parameters render as
	// string or string[], and optional catch-alls become optional keys.
	TypeMode Mode = iota
	// ConstMode prints a runtime value. Parameters render as string
	// literals naming their type, so the shape stays introspectable.
	ConstMode
)

const indentUnit = "  "

// Print renders v as TypeScript source in the given mode.
func Print(v Value, mode Mode) string {
	p := printer{mode: mode}
	p.value(v, 0)
	return p.buf.String()
}

type printer struct {
	buf  strings.Builder
	mode Mode
}

func (p *printer) value(v Value, depth int) {
	switch v.Kind {
	case ObjectValue:
		p.object(v.Fields, depth)
	case ArrayValue:
		p.array(v.Items, depth)
	case StringValue:
		p.buf.WriteString(quote(v.Text))
	case BoolValue:
		if v.Bool {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case ParamValue:
		p.param(v.Param)
	}
}

func (p *printer) object(fields []Field, depth int) {
	if len(fields) == 0 {
		p.buf.WriteString("{}")
		return
	}
	p.buf.WriteString("{\n")
	for i, f := range fields {
		p.indent(depth + 1)
		p.buf.WriteString(quote(f.Key))
		if f.Optional && p.mode == TypeMode {
			p.buf.WriteByte('?')
		}
		p.buf.WriteString(": ")
		p.value(f.Value, depth+1)
		if i < len(fields)-1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte('\n')
	}
	p.indent(depth)
	p.buf.WriteByte('}')
}

func (p *printer) array(items []Value, depth int) {
	if len(items) == 0 {
		p.buf.WriteString("[]")
		return
	}
	p.buf.WriteString("[\n")
	for i, item := range items {
		p.indent(depth + 1)
		p.value(item, depth+1)
		if i < len(items)-1 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteByte('\n')
	}
	p.indent(depth)
	p.buf.WriteByte(']')
}

func (p *printer) param(kind scanner.Kind) {
	t := ParamType(kind)
	if p.mode == ConstMode {
		if kind == scanner.KindOptionalCatchAll {
			t += " | undefined"
		}
		t = quote(t)
	}
	p.buf.WriteString(t)
}

func (p *printer) indent(depth int) {
	for range depth {
		p.buf.WriteString(indentUnit)
	}
}

// ParamType returns the TypeScript type of a parameter bound by kind.
func ParamType(kind scanner.Kind) string {
	switch kind {
	case scanner.KindCatchAll, scanner.KindOptionalCatchAll:
		return "string[]"
	default:
		return "string"
	}
}

// quote renders s as a double-quoted string literal valid in TypeScript.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
