// Package populate parses the compact populate grammar into a plan tree that
// a document store can translate into join stages.
//
// A specification is a semicolon-separated list of directives, each
// `path[:fields]` where fields is a comma-separated projection list
// defaulting to _id. The path takes three forms:
//
//	author          a single leaf relation
//	author.city     a linear chain, one node per segment
//	author-posts,tags   one parent with sibling children populated in parallel
//
// The same projection list applies at every depth of a chain and to every
// sibling; that uniformity is part of the contract. The builder never checks
// that a relation exists — resolution belongs to the store.
package populate

import "strings"

// DefaultField is projected when a directive carries no field list.
const DefaultField = "_id"

// Node is one relation to expand, with the fields to project from the
// related documents and any child relations to expand beneath it.
type Node struct {
	Path     string
	Fields   []string
	Children []Node
}

// Parse builds the plan tree for a populate specification. Blank directives
// are skipped; a nil plan means nothing to populate.
func Parse(spec string) []Node {
	var plan []Node
	for _, directive := range strings.Split(spec, ";") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}
		if node, ok := parseDirective(directive); ok {
			plan = append(plan, node)
		}
	}
	return plan
}

func parseDirective(directive string) (Node, bool) {
	path, fieldSpec, _ := strings.Cut(directive, ":")
	path = strings.TrimSpace(path)
	if path == "" {
		return Node{}, false
	}
	fields := parseFields(fieldSpec)

	// Sibling form takes precedence over the dotted chain.
	if parent, rest, ok := strings.Cut(path, "-"); ok {
		return siblingNode(parent, rest, fields)
	}
	if strings.Contains(path, ".") {
		var segments []string
		for _, s := range strings.Split(path, ".") {
			if s = strings.TrimSpace(s); s != "" {
				segments = append(segments, s)
			}
		}
		if len(segments) == 0 {
			return Node{}, false
		}
		return chainNode(segments, fields), true
	}
	return Node{Path: path, Fields: fields}, true
}

func parseFields(spec string) []string {
	var fields []string
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return []string{DefaultField}
	}
	return fields
}

// siblingNode builds a parent relation with its children populated in
// parallel, every node projecting the same fields.
func siblingNode(parent, rest string, fields []string) (Node, bool) {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return Node{}, false
	}
	node := Node{Path: parent, Fields: fields}
	for _, child := range strings.Split(rest, ",") {
		child = strings.TrimSpace(child)
		if child == "" {
			continue
		}
		node.Children = append(node.Children, Node{Path: child, Fields: fields})
	}
	return node, true
}

// chainNode nests one node per path segment, the projection repeated at
// every depth.
func chainNode(segments []string, fields []string) Node {
	node := Node{Path: segments[0], Fields: fields}
	if len(segments) > 1 {
		node.Children = []Node{chainNode(segments[1:], fields)}
	}
	return node
}
