// Package pattern implements the restricted regex parser (C2): literals,
// escapes, character classes (union/intersection/difference), dot,
// alternation, concatenation, non-capturing grouping, and repetition.
//
// Every character-class sub-expression is registered into a shared
// classes.Registry as it is encountered and replaced in the AST by its
// classes.ID, so the AST below never holds raw rune sets once parsing
// completes — the builder in package nfa and the literal check in package
// prefilter walk the result.
package pattern

import "github.com/coregx/lexgen/classes"

// Node is a restricted-regex AST node.
type Node interface {
	node()
}

// Class matches a single rune admitted by the registered character class.
// Literal characters are represented the same way, as a singleton class —
// this mirrors the teacher's Thompson builder treating a literal byte and
// a byte range identically (AddByteRange with lo==hi for a literal).
type Class struct {
	ID classes.ID
}

// Concat matches its children in sequence.
type Concat struct {
	Nodes []Node
}

// Alt matches any one of its children (leftmost preference is irrelevant
// here: the DFA compiler resolves ties by pattern priority, not branch
// order within a single pattern, per spec.md's priority model).
type Alt struct {
	Nodes []Node
}

// Repeat matches its child between Min and Max times (Max == -1 means
// unbounded), per the grammar's `*`, `+`, `?`, `{m,n}` operators.
type Repeat struct {
	Node Node
	Min  int
	Max  int // -1 for unbounded
}

// Empty matches the empty string. The parser produces it for an empty
// alternative (`a|`) or an empty group body (`(?:)`); an entirely empty
// pattern is rejected by Parse.
type Empty struct{}

func (Class) node()  {}
func (Concat) node() {}
func (Alt) node()    {}
func (Repeat) node() {}
func (Empty) node()  {}

// AST is the parsed, class-registered form of one pattern or lookahead
// source string.
type AST struct {
	Root Node
}
