package scanner

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// EncodeJSON serializes a route tree as indented JSON. A nil tree encodes as [].
func EncodeJSON(entries []RouteEntry) ([]byte, error) {
	if entries == nil {
		entries = []RouteEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeYAML serializes a route tree as YAML. A nil tree encodes as [].
func EncodeYAML(entries []RouteEntry) ([]byte, error) {
	if entries == nil {
		entries = []RouteEntry{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses a route tree produced by EncodeJSON.
func DecodeJSON(data []byte) ([]RouteEntry, error) {
	var entries []RouteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
