/*
File    : tinymoe/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xuangong/tinymoe/lexer"
)

// lexSource tokenizes test input and fails the test on lexical errors.
func lexSource(t *testing.T, src string) []lexer.Token {
	t.Helper()
	lex := lexer.NewLexer(src)
	tokens, errors := lex.Tokenize()
	assert.Empty(t, errors)
	return tokens
}

// expressionSpan returns the token range of the first line, excluding the
// statement terminator.
func expressionSpan(tokens []lexer.Token) (int, int) {
	for i, token := range tokens {
		if token.Type == lexer.NEWLINE_TYPE {
			return 0, i
		}
	}
	return 0, len(tokens)
}

// testStack builds a grammar stack holding the predefined symbols plus one
// scope declaring the given symbols (each string is a space-separated name).
func testStack(declared ...string) *GrammarStack {
	stack := NewGrammarStack()
	predefined := NewGrammarStackItem()
	predefined.FillPredefinedSymbols()
	stack.Push(predefined)

	scope := NewGrammarStackItem()
	for _, name := range declared {
		sym := NewGrammarSymbol(KindSymbol)
		for _, word := range splitWords(name) {
			sym.AppendName(word)
		}
		scope.AddSymbol(sym)
	}
	stack.Push(scope)
	return stack
}

func splitWords(name string) []string {
	var words []string
	word := ""
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			if word != "" {
				words = append(words, word)
			}
			word = ""
			continue
		}
		word += string(name[i])
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// completeReadings filters the readings that consumed the whole span.
func completeReadings(result ResultList, end int) ResultList {
	var complete ResultList
	for _, reading := range result {
		if reading.Next == end {
			complete = append(complete, reading)
		}
	}
	return complete
}

func TestParseExpression_Literal(t *testing.T) {
	tokens := lexSource(t, "12")
	stack := testStack()

	_, end := expressionSpan(tokens)
	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)
	assert.Len(t, result, 1)

	literal, ok := result[0].Expr.(*LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, "12", literal.Token.Literal)
	assert.Equal(t, lexer.INT_LIT, literal.Token.Type)
}

func TestParseExpression_DoubleNegation(t *testing.T) {
	tokens := lexSource(t, "- -3")
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)

	outer, ok := complete[0].Expr.(*UnaryExpression)
	assert.True(t, ok)
	assert.Equal(t, UnaryNegative, outer.Op)
	inner, ok := outer.Operand.(*UnaryExpression)
	assert.True(t, ok)
	assert.Equal(t, UnaryNegative, inner.Op)
	literal, ok := inner.Operand.(*LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, "3", literal.Token.Literal)
}

func TestParseExpression_KeepsEveryIntermediateLength(t *testing.T) {
	tokens := lexSource(t, "1 + 2")
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)
	// Both the bare "1" and the full "1 + 2" survive; the consumer picks.
	assert.Len(t, result, 2)
	assert.Equal(t, 1, result[0].Next)
	assert.Equal(t, 3, result[1].Next)

	sum, ok := result[1].Expr.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryAdd, sum.Op)
}

func TestParseExpression_PrecedenceClimbing(t *testing.T) {
	tokens := lexSource(t, "1 + 2 * 3")
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)

	sum, ok := complete[0].Expr.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryAdd, sum.Op)
	product, ok := sum.Second.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryMul, product.Op)
}

func TestParseExpression_Parenthesized(t *testing.T) {
	tokens := lexSource(t, "(1 + 2) * 3")
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)

	product, ok := complete[0].Expr.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryMul, product.Op)
	sum, ok := product.First.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryAdd, sum.Op)
}

func TestParseExpression_AndBindsLooserThanPlus(t *testing.T) {
	tokens := lexSource(t, "a + b and c")
	stack := testStack("a", "b", "c")
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)

	// Exactly one reading survives at full length: (a + b) and c.
	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)

	conjunction, ok := complete[0].Expr.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryAnd, conjunction.Op)
	sum, ok := conjunction.First.(*BinaryExpression)
	assert.True(t, ok)
	assert.Equal(t, BinaryAdd, sum.Op)
	right, ok := conjunction.Second.(*ReferenceExpression)
	assert.True(t, ok)
	assert.Equal(t, "c", right.Symbol.UniqueId)
}

func TestParsePrimitive_LeftRecursiveChain(t *testing.T) {
	tokens := lexSource(t, "length of array item 1 of array xs")
	stack := testStack("xs")
	_, end := expressionSpan(tokens)

	result, err := stack.ParsePrimitive(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)

	length, ok := complete[0].Expr.(*InvokeExpression)
	assert.True(t, ok)
	assert.Equal(t, TargetGetArrayLength, length.Function.(*ReferenceExpression).Symbol.Target)
	assert.Len(t, length.Arguments, 1)

	item, ok := length.Arguments[0].(*InvokeExpression)
	assert.True(t, ok)
	assert.Equal(t, TargetGetArrayItem, item.Function.(*ReferenceExpression).Symbol.Target)
	index, ok := item.Arguments[0].(*LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, "1", index.Token.Literal)
	target, ok := item.Arguments[1].(*ReferenceExpression)
	assert.True(t, ok)
	assert.Equal(t, "xs", target.Symbol.UniqueId)
}

func TestParsePrimitive_ExtensionKeepsEveryLength(t *testing.T) {
	tokens := lexSource(t, "length of array items is not integer")
	stack := testStack("items")
	_, end := expressionSpan(tokens)

	result, err := stack.ParsePrimitive(tokens, 0, end)
	assert.Nil(t, err)

	// Three readings survive: the short "length of array items", the
	// whole line with the extension inside the array hole, and the whole
	// line with the extension applied to the length. Ambiguity is
	// preserved here and resolved at the statement boundary.
	assert.Len(t, result, 3)
	assert.Equal(t, 4, result[0].Next)
	complete := completeReadings(result, end)
	assert.Len(t, complete, 2)

	last := complete[len(complete)-1].Expr.(*InvokeExpression)
	assert.Equal(t, TargetIsNotType, last.Function.(*ReferenceExpression).Symbol.Target)
}

func TestParseList_Tuples(t *testing.T) {
	tokens := lexSource(t, `(1, "two", 3)`)
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseList(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)
	list, ok := complete[0].Expr.(*ListExpression)
	assert.True(t, ok)
	assert.Len(t, list.Elements, 3)
	middle, ok := list.Elements[1].(*LiteralExpression)
	assert.True(t, ok)
	assert.Equal(t, "two", middle.Token.Literal)
}

func TestParseList_Empty(t *testing.T) {
	tokens := lexSource(t, "()")
	stack := testStack()

	result, err := stack.ParseList(tokens, 0, 2)
	assert.Nil(t, err)
	assert.Len(t, result, 1)
	list, ok := result[0].Expr.(*ListExpression)
	assert.True(t, ok)
	assert.Empty(t, list.Elements)
}

func TestParseExpression_InvokeWith(t *testing.T) {
	tokens := lexSource(t, "invoke f with (1, 2)")
	stack := testStack("f")
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Nil(t, err)

	complete := completeReadings(result, end)
	assert.Len(t, complete, 1)
	invoke := complete[0].Expr.(*InvokeExpression)
	assert.Equal(t, TargetInvokeWith, invoke.Function.(*ReferenceExpression).Symbol.Target)
	assert.Len(t, invoke.Arguments, 2)
	_, ok := invoke.Arguments[1].(*ListExpression)
	assert.True(t, ok)
}

func TestParseArgument_EveryPrefixSurvives(t *testing.T) {
	tokens := lexSource(t, "the current number from")
	stack := testStack()

	result, err := stack.ParseArgument(tokens, 0, 4)
	assert.Nil(t, err)
	assert.Len(t, result, 4)
	first := result[0].Expr.(*ArgumentExpression)
	assert.Equal(t, []string{"the"}, first.Words())
	third := result[2].Expr.(*ArgumentExpression)
	assert.Equal(t, []string{"the", "current", "number"}, third.Words())
}

func TestParseExpression_ErrorReachesDeepest(t *testing.T) {
	tokens := lexSource(t, "length of array")
	stack := testStack()
	_, end := expressionSpan(tokens)

	result, err := stack.ParseExpression(tokens, 0, end)
	assert.Empty(t, result)
	if assert.NotNil(t, err) {
		// The folded failure points at the missing primitive, not at
		// the alternatives that failed on the first token.
		assert.Equal(t, 3, err.Pos)
	}
}

func TestParseExpression_Deterministic(t *testing.T) {
	logsOf := func() []string {
		tokens := lexSource(t, "length of array items is not integer")
		stack := testStack("items")
		_, end := expressionSpan(tokens)
		result, err := stack.ParseExpression(tokens, 0, end)
		assert.Nil(t, err)
		logs := make([]string, 0, len(result))
		for _, reading := range result {
			logs = append(logs, reading.Expr.ToLog())
		}
		return logs
	}

	assert.Equal(t, logsOf(), logsOf())
}

func TestParseToken_CaseInsensitive(t *testing.T) {
	tokens := lexSource(t, "Repeat WITH")
	stack := testStack()

	next, err := stack.ParseToken("repeat", tokens, 0, 2)
	assert.Nil(t, err)
	assert.Equal(t, 1, next)

	next, err = stack.ParseToken("with", tokens, 1, 2)
	assert.Nil(t, err)
	assert.Equal(t, 2, next)

	_, err = stack.ParseToken("from", tokens, 0, 2)
	if assert.NotNil(t, err) {
		assert.Equal(t, 0, err.Pos)
	}
}
