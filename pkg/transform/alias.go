package transform

import "strings"

// Rule relocates the value at Src to Dst. A fan-out rule is the shallow
// variant produced by the single-colon grammar: the value is copied up to a
// top-level key and the source is left in place.
type Rule struct {
	Src    string
	Dst    string
	FanOut bool
}

// ParseRules parses a semicolon-delimited alias specification. Two rule
// grammars coexist for backward compatibility:
//
//	a::b        deep rename: move the value at path a to path b
//	base:f1,f2  fan-out: copy base.fN up to a top-level key named fN
//
// A fragment with no recognized delimiter is dropped silently, as are empty
// fragments. Rules apply in declaration order; on a destination collision the
// last rule wins.
func ParseRules(spec string) []Rule {
	var rules []Rule
	for _, fragment := range strings.Split(spec, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if src, dst, ok := strings.Cut(fragment, "::"); ok {
			if src == "" || dst == "" {
				continue
			}
			rules = append(rules, Rule{Src: src, Dst: dst})
			continue
		}
		base, fields, ok := strings.Cut(fragment, ":")
		if !ok {
			continue
		}
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			src := field
			if base != "" {
				src = base + "." + field
			}
			rules = append(rules, Rule{Src: src, Dst: field, FanOut: true})
		}
	}
	return rules
}

// RulesFromPairs builds deep-rename rules from src/dst pairs, preserving
// declaration order. This is the programmatic equivalent of the mapping form,
// where every entry is a full rename.
func RulesFromPairs(pairs [][2]string) []Rule {
	rules := make([]Rule, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		rules = append(rules, Rule{Src: p[0], Dst: p[1]})
	}
	return rules
}
