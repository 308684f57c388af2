// Package ast defines the parse tree for a Custom Difficulty JSON document.
//
// Unlike a deserialiser, the tree preserves everything a linter needs to
// point back at the source: every node carries its span, object members are
// kept in document order, and duplicate keys are preserved rather than
// collapsed so later stages can report both occurrences.
package ast

import (
	"go.followtheprocess.codes/cdlint/internal/syntax"
)

// Node is a single node in the parse tree.
//
// Which fields are meaningful depends on Kind: Members for objects, Items
// for arrays, Str for strings, Num for numbers, Bool for booleans. Null and
// Invalid nodes carry only their span.
type Node struct {
	Str     string      // Unescaped string value, when Kind is [KindString]
	Items   []*Node     // Array items in document order, when Kind is [KindArray]
	Members []Member    // Object members in document order, when Kind is [KindObject]
	Num     float64     // Numeric value, when Kind is [KindNumber]
	Span    syntax.Span // The region of source this node was parsed from
	Kind    Kind        // What sort of node this is
	Bool    bool        // Boolean value, when Kind is [KindBool]
}

// Member is a single key/value pair in an object.
//
// Members appear in the tree exactly as they do in the document: duplicated
// keys produce duplicated members.
type Member struct {
	Key   syntax.Spanned[string] // The unescaped key and the span of its quoted form
	Value *Node                  // The member's value
}

// Is reports whether the node is any of the provided [Kind]s.
//
// A nil node is no kind at all.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}

	for _, kind := range kinds {
		if n.Kind == kind {
			return true
		}
	}

	return false
}

// Find returns the value of the first member with the given key, or nil if
// the node is not an object or has no such member.
func (n *Node) Find(key string) *Node {
	if !n.Is(KindObject) {
		return nil
	}

	for _, member := range n.Members {
		if member.Key.Val == key {
			return member.Value
		}
	}

	return nil
}
