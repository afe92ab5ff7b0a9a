package transform

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/docshape/docshape/pkg/document"
)

// Property: stripping private fields is idempotent — a second pass over an
// already-stripped document changes nothing.

func TestProperty_StripPrivateIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genSegment := gen.RegexMatch("[a-z]{1,6}")

	properties.Property("second strip is a no-op", prop.ForAll(
		func(public []string, private []string, value string) bool {
			doc := document.Document{}
			meta := SchemaMeta{}
			for _, p := range public {
				document.Set(doc, p, value)
			}
			for i, p := range private {
				path := p + "." + "s" + string(rune('a'+i%26))
				document.Set(doc, path, value)
				meta[path] = FieldFlags{Private: true}
			}

			StripPrivate(doc, meta)
			snapshot := clone(doc)
			StripPrivate(doc, meta)
			return reflect.DeepEqual(doc, snapshot)
		},
		gen.SliceOfN(3, genSegment),
		gen.SliceOfN(3, genSegment),
		gen.AlphaString(),
	))

	properties.Property("stripped paths are absent and non-private survive", prop.ForAll(
		func(keep string, strip string, value string) bool {
			if keep == strip {
				return true
			}
			doc := document.Document{}
			document.Set(doc, "meta."+keep, value)
			document.Set(doc, "meta."+strip, value)

			StripPrivate(doc, SchemaMeta{"meta." + strip: {Private: true}})

			if _, ok := document.Get(doc, "meta."+strip); ok {
				return false
			}
			v, ok := document.Get(doc, "meta."+keep)
			return ok && v == value
		},
		gen.RegexMatch("[a-z]{1,6}"),
		gen.RegexMatch("[a-z]{1,6}"),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func clone(doc document.Document) document.Document {
	out := document.Document{}
	for k, v := range doc {
		if nested, ok := v.(document.Document); ok {
			out[k] = clone(nested)
			continue
		}
		out[k] = v
	}
	return out
}
