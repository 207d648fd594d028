package generator

import (
	"github.com/abdul-hamid-achik/nextroutes/pkg/scanner"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	ObjectValue ValueKind = iota
	ArrayValue
	StringValue
	BoolValue
	// ParamValue is a route parameter slot; printers decide how it renders
	ParamValue
)

// Value is one node of the literal shape both artifacts are printed from.
type Value struct {
	Kind   ValueKind
	Fields []Field
	Items  []Value
	Text   string
	Bool   bool
	// Param is the segment kind of a ParamValue
	Param scanner.Kind
}

// Field is a key of an object Value.
type Field struct {
	Key      string
	Optional bool
	Value    Value
}

func str(key, s string) Field {
	return Field{Key: key, Value: Value{Kind: StringValue, Text: s}}
}

func boolean(key string, b bool) Field {
	return Field{Key: key, Value: Value{Kind: BoolValue, Bool: b}}
}

// Serialize converts a route tree into its literal shape. Every node renders
// with the same keys in the same order:
//
//	segment, kind, paramName?, slotName?, path, isLeafRoute, isHandler,
//	hasLayout, params, slots, children
//
// path is the effective URL path (route groups and slots flattened out) and
// params holds every parameter bound along it. Parallel slots nested under a
// node are keyed by name in slots instead of appearing in children; slots at
// the top level stay in the array since they have no parent node.
func Serialize(entries []scanner.RouteEntry) Value {
	items := make([]Value, 0, len(entries))
	for i := range entries {
		items = append(items, serializeNode([]*scanner.RouteEntry{&entries[i]}))
	}
	return Value{Kind: ArrayValue, Items: items}
}

func serializeNode(chain []*scanner.RouteEntry) Value {
	e := chain[len(chain)-1]

	fields := []Field{
		str("segment", e.Segment),
		str("kind", e.Kind.String()),
	}
	if e.Kind.IsParam() {
		fields = append(fields, str("paramName", e.ParamName))
	}
	if e.Kind == scanner.KindParallelSlot {
		fields = append(fields, str("slotName", e.SlotName))
	}
	fields = append(fields,
		str("path", scanner.URLPath(chain)),
		boolean("isLeafRoute", e.IsLeafRoute),
		boolean("isHandler", e.IsHandler),
		boolean("hasLayout", e.HasLayout),
	)

	params := Value{Kind: ObjectValue, Fields: []Field{}}
	for _, p := range scanner.Params(chain) {
		params.Fields = append(params.Fields, Field{
			Key:      p.Name,
			Optional: p.IsOptional(),
			Value:    Value{Kind: ParamValue, Param: p.Kind},
		})
	}

	slots := Value{Kind: ObjectValue, Fields: []Field{}}
	children := Value{Kind: ArrayValue, Items: []Value{}}
	for i := range e.Children {
		child := &e.Children[i]
		// Full slice expression so siblings never share a backing array.
		sub := serializeNode(append(chain[:len(chain):len(chain)], child))
		if child.Kind == scanner.KindParallelSlot {
			slots.Fields = append(slots.Fields, Field{Key: child.SlotName, Value: sub})
			continue
		}
		children.Items = append(children.Items, sub)
	}

	fields = append(fields,
		Field{Key: "params", Value: params},
		Field{Key: "slots", Value: slots},
		Field{Key: "children", Value: children},
	)
	return Value{Kind: ObjectValue, Fields: fields}
}
