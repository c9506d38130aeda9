/*
File    : tinymoe/parser/fragment.go
*/
package parser

import "strings"

// GrammarFragmentType identifies what one element of a rule pattern is:
// literal name words, or a typed hole filled by a sub-parse.
type GrammarFragmentType int

const (
	// NameFragment is one or more literal identifier words that must
	// appear verbatim (case-insensitive),
	// e.g. [repeat with] the current number [from] 1 [to] 100
	NameFragment GrammarFragmentType = iota
	// TypeFragment is a hole for a type name,
	// e.g. set names to new [hash set]
	TypeFragment
	// PrimitiveFragment is a hole for a primitive expression,
	// e.g. sum from 1 to [10]
	PrimitiveFragment
	// ExpressionFragment is a hole for all kinds of expressions,
	// e.g. repeat with the current number from [1] to [100]
	ExpressionFragment
	// ListFragment is a hole for a parenthesized tuple,
	// e.g. set names to collection of [("a", "b", "c")]
	ListFragment
	// AssignableFragment is a hole for a left-value expression; a fresh
	// name here creates a new symbol in the containing block,
	// e.g. [field unique identifier of person], [a variable]
	AssignableFragment
	// ArgumentFragment is a hole that always creates a new symbol in the
	// block body,
	// e.g. repeat with [the current number] from 1 to 10
	ArgumentFragment
)

// GrammarFragment is one element of a grammar rule pattern: either literal
// name words (Type == NameFragment, words in Identifiers) or a typed hole.
type GrammarFragment struct {
	Type        GrammarFragmentType
	Identifiers []string // literal words, only for NameFragment
}

// NewGrammarFragment creates a fragment of the given type.
func NewGrammarFragment(fragmentType GrammarFragmentType) *GrammarFragment {
	return &GrammarFragment{Type: fragmentType}
}

// UniqueIdFragment returns this fragment's contribution to the enclosing
// symbol's unique-id: the lowercased literal words for a name fragment, or
// a bracketed kind marker for a hole.
func (frag *GrammarFragment) UniqueIdFragment() string {
	switch frag.Type {
	case NameFragment:
		return strings.ToLower(strings.Join(frag.Identifiers, " "))
	case TypeFragment:
		return "<type>"
	case PrimitiveFragment:
		return "<primitive>"
	case ExpressionFragment:
		return "<exp>"
	case ListFragment:
		return "<list>"
	case AssignableFragment:
		return "<assignable>"
	case ArgumentFragment:
		return "<arg>"
	}
	return ""
}
