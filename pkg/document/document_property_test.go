package document

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any document and path where Get reports absent, Delete is a
// no-op and leaves the document unchanged.

func TestProperty_DeleteOfAbsentPathIsNoOp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genSegment := gen.RegexMatch("[a-z]{1,8}")

	properties.Property("absent delete leaves document unchanged", prop.ForAll(
		func(existing []string, probe []string, value string) bool {
			if len(existing) == 0 || len(probe) == 0 {
				return true
			}
			doc := Document{}
			Set(doc, strings.Join(existing, "."), value)

			path := strings.Join(probe, ".")
			if _, ok := Get(doc, path); ok {
				return true // Path exists, property does not apply
			}

			snapshot := deepCopy(doc)
			Delete(doc, path)
			return reflect.DeepEqual(doc, snapshot)
		},
		gen.SliceOfN(3, genSegment),
		gen.SliceOfN(3, genSegment),
		gen.AlphaString(),
	))

	properties.Property("set then get round-trips on fresh documents", prop.ForAll(
		func(segments []string, value string) bool {
			if len(segments) == 0 {
				return true
			}
			doc := Document{}
			path := strings.Join(segments, ".")
			Set(doc, path, value)

			v, ok := Get(doc, path)
			return ok && v == value
		},
		gen.SliceOfN(4, genSegment),
		gen.AlphaString(),
	))

	properties.Property("delete after set removes the value", prop.ForAll(
		func(segments []string, value string) bool {
			if len(segments) == 0 {
				return true
			}
			doc := Document{}
			path := strings.Join(segments, ".")
			Set(doc, path, value)
			Delete(doc, path)

			_, ok := Get(doc, path)
			return !ok
		},
		gen.SliceOfN(3, genSegment),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func deepCopy(doc Document) Document {
	out := Document{}
	for k, v := range doc {
		if nested, ok := asDocument(v); ok {
			out[k] = deepCopy(nested)
			continue
		}
		out[k] = v
	}
	return out
}
