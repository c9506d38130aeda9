/*
File    : tinymoe/parser/parser_primitives.go
*/
package parser

import (
	"github.com/xuangong/tinymoe/lexer"
)

// ParseType parses a type name: any Type-kind symbol visible in scope.
// The result for each matching rule is a reference to the type symbol.
func (stack *GrammarStack) ParseType(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	var result ResultList
	resultError := NewCodeError(input, "expected a type name")
	for _, symbol := range stack.SymbolsOfKind(KindType) {
		symbolResult, err := stack.ParseGrammarSymbol(symbol, 0, nil, tokens, input, end)
		result = append(result, symbolResult...)
		resultError = foldFailure(resultError, err)
	}
	if len(result) > 0 {
		return result, nil
	}
	return nil, resultError
}

// ParseShortPrimitive parses the non-left-recursive core of a primitive:
// a literal, a parenthesized expression, a unary operator applied to a
// primitive, or a phrase whose first fragment is not a primitive hole.
// Declared symbols count as name-only phrases here.
func (stack *GrammarStack) ParseShortPrimitive(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	var result ResultList
	resultError := NewCodeError(input, "expected an expression")
	if input >= end {
		return nil, resultError
	}

	token := &tokens[input]

	// Literal
	switch token.Type {
	case lexer.INT_LIT, lexer.FLOAT_LIT, lexer.STRING_LIT:
		result = append(result, Result{Next: input + 1, Expr: &LiteralExpression{Token: *token}})
	}

	// Unary operator applied to a primitive
	unaryOp, isUnary := UnaryPositive, false
	switch {
	case token.Type == lexer.PLUS_OP:
		unaryOp, isUnary = UnaryPositive, true
	case token.Type == lexer.MINUS_OP:
		unaryOp, isUnary = UnaryNegative, true
	case token.IsWord("not"):
		unaryOp, isUnary = UnaryNot, true
	}
	if isUnary {
		operands, err := stack.ParsePrimitive(tokens, input+1, end)
		resultError = foldFailure(resultError, err)
		for _, operand := range operands {
			result = append(result, Result{
				Next: operand.Next,
				Expr: &UnaryExpression{Op: unaryOp, Operand: operand.Expr},
			})
		}
	}

	// Parenthesized expression
	if token.Type == lexer.LEFT_PAREN {
		inner, err := stack.ParseExpression(tokens, input+1, end)
		resultError = foldFailure(resultError, err)
		for _, reading := range inner {
			if reading.Next < end && tokens[reading.Next].Type == lexer.RIGHT_PAREN {
				result = append(result, Result{Next: reading.Next + 1, Expr: reading.Expr})
			} else {
				resultError = foldFailure(resultError, NewCodeError(reading.Next, "expected \")\""))
			}
		}
	}

	// Phrases not starting with a primitive hole, and declared symbols.
	// Primitive-first phrases are reached through ParsePrimitive's
	// extension loop; expression-first and assignable-first rules would
	// recurse at the same position without consuming anything, so they
	// cannot start a primitive.
	for _, symbol := range stack.SymbolsOfKind(KindPhrase | KindSymbol) {
		if len(symbol.Fragments) == 0 {
			continue
		}
		switch symbol.Fragments[0].Type {
		case PrimitiveFragment, ExpressionFragment, AssignableFragment:
			continue
		}
		symbolResult, err := stack.ParseGrammarSymbol(symbol, 0, nil, tokens, input, end)
		result = append(result, symbolResult...)
		resultError = foldFailure(resultError, err)
	}

	if len(result) > 0 {
		return result, nil
	}
	return nil, resultError
}

// ParsePrimitive parses a primitive expression. The grammar is
// left-recursive here: a phrase may begin with a primitive hole, and that
// hole may itself be filled by the result of a phrase. The recursion is
// unrolled: every short-primitive reading seeds an extension loop that
// enters each such phrase at fragment index one with the seed as the
// already-filled first hole, and every successful extension is fed back
// until no phrase matches. The result list keeps every intermediate
// length so higher layers can choose.
func (stack *GrammarStack) ParsePrimitive(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	result, err := stack.ParseShortPrimitive(tokens, input, end)
	if len(result) == 0 {
		return nil, err
	}

	extenders := make([]*GrammarSymbol, 0)
	for _, symbol := range stack.SymbolsOfKind(KindPhrase) {
		if len(symbol.Fragments) > 1 && symbol.Fragments[0].Type == PrimitiveFragment {
			extenders = append(extenders, symbol)
		}
	}

	// Fixed point: newly appended readings are themselves extended.
	for i := 0; i < len(result); i++ {
		seed := result[i]
		for _, symbol := range extenders {
			extended, _ := stack.ParseGrammarSymbol(symbol, 1, seed.Expr, tokens, seed.Next, end)
			result = append(result, extended...)
		}
	}
	return result, nil
}

// ParseList parses a parenthesized expression tuple: "(", expressions
// separated by commas, ")". The empty tuple "()" is allowed. Ambiguous
// element readings fan out into separate tuple readings.
func (stack *GrammarStack) ParseList(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	if input >= end || tokens[input].Type != lexer.LEFT_PAREN {
		return nil, NewCodeError(input, "expected \"(\"")
	}

	var result ResultList
	var resultError *CodeError
	if input+1 < end && tokens[input+1].Type == lexer.RIGHT_PAREN {
		result = append(result, Result{Next: input + 2, Expr: &ListExpression{}})
	}

	type listBranch struct {
		next     int
		elements []Expression
	}
	pending := []listBranch{{next: input + 1}}
	for i := 0; i < len(pending); i++ {
		branch := pending[i]
		elements, err := stack.ParseExpression(tokens, branch.next, end)
		resultError = foldFailure(resultError, err)
		for _, element := range elements {
			grown := make([]Expression, len(branch.elements), len(branch.elements)+1)
			copy(grown, branch.elements)
			grown = append(grown, element.Expr)
			if element.Next >= end {
				resultError = foldFailure(resultError, NewCodeError(element.Next, "expected \",\" or \")\""))
				continue
			}
			switch tokens[element.Next].Type {
			case lexer.COMMA_DELIM:
				pending = append(pending, listBranch{next: element.Next + 1, elements: grown})
			case lexer.RIGHT_PAREN:
				result = append(result, Result{Next: element.Next + 1, Expr: &ListExpression{Elements: grown}})
			default:
				resultError = foldFailure(resultError, NewCodeError(element.Next, "expected \",\" or \")\""))
			}
		}
	}

	if len(result) > 0 {
		return result, nil
	}
	return nil, foldFailure(NewCodeError(input, "expected a list"), resultError)
}

// ParseAssignable parses the content of an assignable hole: either an
// expression already meaning something in scope, or a sequence of fresh
// identifier words that will become a new symbol if the statement commits.
// Both readings are kept; the statement parser decides which one is real
// via CountStatementAssignables.
func (stack *GrammarStack) ParseAssignable(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	var result ResultList
	argumentResult, argumentError := stack.ParseArgument(tokens, input, end)
	result = append(result, argumentResult...)
	expressionResult, expressionError := stack.ParseExpression(tokens, input, end)
	result = append(result, expressionResult...)
	if len(result) > 0 {
		return result, nil
	}
	return nil, foldFailure(expressionError, argumentError)
}

// ParseArgument parses the name of a freshly-introduced symbol: one or
// more consecutive identifier words. Every non-empty prefix of the word
// run is returned as its own reading, because only the rule's following
// fragments can tell where the name ends.
func (stack *GrammarStack) ParseArgument(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	if input >= end || tokens[input].Type != lexer.IDENTIFIER_ID {
		return nil, NewCodeError(input, "expected a name")
	}
	var result ResultList
	current := input
	for current < end && tokens[current].Type == lexer.IDENTIFIER_ID {
		current++
		result = append(result, Result{
			Next: current,
			Expr: &ArgumentExpression{Tokens: tokens[input:current]},
		})
	}
	return result, nil
}
