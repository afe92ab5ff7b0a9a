// Package document defines the dynamic document model shared by the shaping
// and pagination packages, together with the dotted-path accessor used to
// read, write, and delete values at arbitrary depth.
package document

import "strings"

// Document represents a schemaless record: string keys mapping to scalars,
// nested documents, or sequences of documents. It is the in-memory shape of a
// decoded BSON/JSON object.
type Document map[string]interface{}

// PathSeparator delimits segments of a dotted path.
const PathSeparator = "."

// splitPath breaks a dotted path into segments. An empty path or a path with
// an empty segment yields nil, which every accessor treats as a no-op.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, PathSeparator)
	for _, s := range segments {
		if s == "" {
			return nil
		}
	}
	return segments
}

// asDocument normalizes the map shapes a decoder can produce into Document.
func asDocument(v interface{}) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]interface{}:
		return Document(m), true
	default:
		return nil, false
	}
}

// asSequence normalizes the slice shapes a decoder can produce into a generic
// element slice.
func asSequence(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case []Document:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// Get returns the value at path. When an intermediate segment resolves to a
// sequence, the remaining lookup fans out across every element and the first
// present, non-nil result wins. The second return reports whether the path
// resolved at all; a missing intermediate is (nil, false), never an error.
func Get(doc Document, path string) (interface{}, bool) {
	segments := splitPath(path)
	if segments == nil {
		return nil, false
	}
	return getSegments(doc, segments)
}

func getSegments(doc Document, segments []string) (interface{}, bool) {
	current, ok := doc[segments[0]]
	if !ok {
		return nil, false
	}
	rest := segments[1:]
	if len(rest) == 0 {
		return current, true
	}
	if nested, ok := asDocument(current); ok {
		return getSegments(nested, rest)
	}
	if seq, ok := asSequence(current); ok {
		for _, elem := range seq {
			nested, ok := asDocument(elem)
			if !ok {
				continue
			}
			if v, found := getSegments(nested, rest); found && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// Set assigns value at path, creating intermediate documents for absent keys.
// Unlike Get, Set never fans out: an intermediate that already holds a
// sequence (or a scalar) stops the walk and the write is dropped. The final
// segment assigns the value wholesale, arrays included. The asymmetry with
// Get is deliberate and relied upon by alias rewriting.
func Set(doc Document, path string, value interface{}) {
	segments := splitPath(path)
	if segments == nil {
		return
	}
	current := doc
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment]
		if !ok {
			child := Document{}
			current[segment] = child
			current = child
			continue
		}
		nested, ok := asDocument(next)
		if !ok {
			return
		}
		current = nested
	}
	current[segments[len(segments)-1]] = value
}

// Delete removes the value at path. Sequence intermediates recurse the
// deletion into every element. A path that does not exist is a no-op.
func Delete(doc Document, path string) {
	segments := splitPath(path)
	if segments == nil {
		return
	}
	deleteSegments(doc, segments)
}

func deleteSegments(doc Document, segments []string) {
	if len(segments) == 1 {
		delete(doc, segments[0])
		return
	}
	current, ok := doc[segments[0]]
	if !ok {
		return
	}
	rest := segments[1:]
	if nested, ok := asDocument(current); ok {
		deleteSegments(nested, rest)
		return
	}
	if seq, ok := asSequence(current); ok {
		for _, elem := range seq {
			if nested, ok := asDocument(elem); ok {
				deleteSegments(nested, rest)
			}
		}
	}
}
