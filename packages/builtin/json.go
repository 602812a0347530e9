package builtin

import (
	"github.com/tidwall/gjson"
)

// JSONPath extracts the value at path (gjson syntax) from a JSON document.
// Missing paths and invalid documents yield nil.
func JSONPath(doc, path string) any {
	if !gjson.Valid(doc) {
		return nil
	}
	if path == "" {
		return gjson.Parse(doc).Value()
	}
	result := gjson.Get(doc, path)
	if !result.Exists() {
		return nil
	}
	return result.Value()
}

// JSONExists reports whether path is present in the JSON document.
func JSONExists(doc, path string) bool {
	if !gjson.Valid(doc) {
		return false
	}
	return gjson.Get(doc, path).Exists()
}
