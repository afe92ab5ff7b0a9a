package transform

import "github.com/docshape/docshape/pkg/document"

// ApplyRules rewrites doc according to rules, in declaration order.
//
// A deep rename reads the source array-aware (first match across sequences),
// deletes the source everywhere it occurs, and writes the value at the
// destination. A fan-out rule copies the source value to a top-level key and
// leaves the source in place. Rules whose source resolves to nothing are
// no-ops.
func ApplyRules(doc document.Document, rules []Rule) {
	for _, rule := range rules {
		if rule.FanOut {
			if v, ok := document.Get(doc, rule.Src); ok {
				doc[rule.Dst] = v
			}
			continue
		}
		v, ok := document.Get(doc, rule.Src)
		document.Delete(doc, rule.Src)
		if ok {
			document.Set(doc, rule.Dst, v)
		}
	}
}
