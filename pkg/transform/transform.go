// Package transform reshapes documents for serialization: stripping fields
// flagged private in the schema metadata, then relocating fields according to
// alias rules. Both steps mutate the document in place; the caller hands over
// ownership for the duration of the call and receives the same document back.
package transform

import "github.com/docshape/docshape/pkg/document"

// FieldFlags carries the per-path schema metadata the filter consults.
type FieldFlags struct {
	Private bool
}

// SchemaMeta maps a dotted field path to its flags.
type SchemaMeta map[string]FieldFlags

// Options bundles the two shaping steps for a single transform call.
type Options struct {
	Schema  SchemaMeta
	Aliases []Rule
}

// Apply strips private fields and then rewrites aliases, in that order.
// Privacy runs first so a private field cannot escape by being renamed: by
// the time aliases run, the field is already gone from the document.
func Apply(doc document.Document, opts Options) document.Document {
	StripPrivate(doc, opts.Schema)
	ApplyRules(doc, opts.Aliases)
	return doc
}

// StripPrivate deletes every path flagged private. Deletion order across
// paths is immaterial; a second pass over an already-stripped document is a
// no-op.
func StripPrivate(doc document.Document, meta SchemaMeta) {
	for path, flags := range meta {
		if flags.Private {
			document.Delete(doc, path)
		}
	}
}
