package extract

import "strings"

// Feed delimiters used by the results site: fields are KEY÷VALUE pairs
// separated by '¬', and a '~' before a key opens a new logical row.
const (
	fieldSep    = "¬"
	rowSep      = "~"
	keyValueSep = "÷"
)

// Field is one KEY÷VALUE token of a delimited feed fragment. NewRow is
// set when the token opened a new logical row.
type Field struct {
	Key    string
	Value  string
	NewRow bool
}

// Fields tokenizes a feed fragment into KEY÷VALUE fields. Tokens
// without a value separator yield an empty Value. Empty tokens are
// dropped.
func Fields(text string) []Field {
	var fields []Field
	for _, chunk := range strings.Split(text, fieldSep) {
		newRow := false
		for {
			// A row separator may prefix the key ("~AA÷...") or, inside a
			// chunk, glue the previous value to the next row's key.
			idx := strings.Index(chunk, rowSep)
			if idx < 0 {
				if f, ok := parseField(chunk, newRow); ok {
					fields = append(fields, f)
				}
				break
			}
			if f, ok := parseField(chunk[:idx], newRow); ok {
				fields = append(fields, f)
			}
			chunk = chunk[idx+len(rowSep):]
			newRow = true
		}
	}
	return fields
}

func parseField(token string, newRow bool) (Field, bool) {
	if token == "" {
		return Field{}, false
	}
	key, value, found := strings.Cut(token, keyValueSep)
	if !found {
		return Field{Key: token, NewRow: newRow}, true
	}
	return Field{Key: key, Value: value, NewRow: newRow}, true
}

// Segments splits a feed fragment on a row-opening key, returning one
// fragment per row. The text before the first occurrence is discarded
// unless keepHead is requested via SegmentsWithHead.
func Segments(text, key string) []string {
	parts := strings.Split(text, rowSep+key+keyValueSep)
	return parts[1:]
}

// SegmentsWithHead is Segments plus the text preceding the first row,
// which feeds like the results listing use as a header block.
func SegmentsWithHead(text, key string) (head string, segments []string) {
	parts := strings.Split(text, rowSep+key+keyValueSep)
	return parts[0], parts[1:]
}

// FirstValue returns the value of the first field with the given key.
func FirstValue(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
