/*
File    : tinymoe/parser/symbol_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarSymbol_CalculateUniqueId(t *testing.T) {
	sym := NewGrammarSymbol(KindBlock).
		AppendName("repeat").AppendName("with").
		AppendHole(ArgumentFragment).
		AppendName("from").
		AppendHole(ExpressionFragment).
		AppendName("to").
		AppendHole(ExpressionFragment)
	sym.CalculateUniqueId()

	assert.Equal(t, "repeat with <arg> from <exp> to <exp>", sym.UniqueId)
}

func TestGrammarSymbol_ConsecutiveNamesCollapse(t *testing.T) {
	sym := NewGrammarSymbol(KindPhrase).
		AppendName("length").AppendName("of").AppendName("array").
		AppendHole(PrimitiveFragment)

	assert.Len(t, sym.Fragments, 2)
	assert.Equal(t, []string{"length", "of", "array"}, sym.Fragments[0].Identifiers)
	assert.Equal(t, PrimitiveFragment, sym.Fragments[1].Type)
}

func TestGrammarSymbol_UniqueIdIsCaseInsensitive(t *testing.T) {
	lower := NewGrammarSymbol(KindSentence).AppendName("redirect").AppendName("to").AppendHole(ExpressionFragment)
	upper := NewGrammarSymbol(KindSentence).AppendName("Redirect").AppendName("To").AppendHole(ExpressionFragment)
	lower.CalculateUniqueId()
	upper.CalculateUniqueId()

	assert.Equal(t, lower.UniqueId, upper.UniqueId)
}

func TestGrammarSymbol_UniqueIdDependsOnlyOnFragments(t *testing.T) {
	build := func(kind GrammarSymbolKind) *GrammarSymbol {
		sym := NewGrammarSymbol(kind).AppendName("set").AppendHole(AssignableFragment).AppendName("to").AppendHole(ExpressionFragment)
		sym.CalculateUniqueId()
		return sym
	}

	// Kind, scope and insertion order contribute nothing to the id.
	assert.Equal(t, build(KindSentence).UniqueId, build(KindBlock).UniqueId)
	assert.Equal(t, "set <assignable> to <exp>", build(KindSentence).UniqueId)

	stack := NewGrammarStack()
	item := NewGrammarStackItem()
	sym := build(KindSentence)
	before := sym.UniqueId
	item.AddSymbol(sym)
	stack.Push(item)
	assert.Equal(t, before, sym.UniqueId)
}

func TestGrammarSymbol_HoleMarkers(t *testing.T) {
	markers := map[GrammarFragmentType]string{
		TypeFragment:       "<type>",
		PrimitiveFragment:  "<primitive>",
		ExpressionFragment: "<exp>",
		ListFragment:       "<list>",
		AssignableFragment: "<assignable>",
		ArgumentFragment:   "<arg>",
	}
	for fragmentType, marker := range markers {
		assert.Equal(t, marker, NewGrammarFragment(fragmentType).UniqueIdFragment())
	}
}

func TestGrammarSymbolKind_Has(t *testing.T) {
	kind := KindSentence | KindBlock

	assert.True(t, kind.Has(KindSentence))
	assert.True(t, kind.Has(KindBlock))
	assert.True(t, kind.Has(KindSentence|KindPhrase))
	assert.False(t, kind.Has(KindPhrase))
	assert.False(t, kind.Has(KindType))
}
