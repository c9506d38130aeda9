/*
File    : tinymoe/parser/parser.go
*/

/*
Package parser implements the grammar-symbol engine of the Tinymoe
compiler front-end: the expression and statement parser that, given a
token list from the lexer and a scoped set of user-defined grammar
symbols, produces a disambiguated expression/statement tree.

Grammar rules are data, not code. Each rule (GrammarSymbol) is a sequence
of literal name-fragments and typed holes; the parser tries every rule
visible in the current scope and recovers the one reading — or reports the
ambiguity — that matches. Because a phrase may start with a primitive hole
and a primitive may itself be the result of a phrase, the grammar is
left-recursive on primitives; ParsePrimitive unrolls that recursion into a
fixed-point extension loop over seed parses.

Key Features:
  - Breadth-first rule matching: every way to fill a rule's holes is kept
    as a separate branch (ResultList), and ambiguity survives until a
    consumer disambiguates
  - Explicit left-recursion unrolling for primitive phrases
  - Five operator-precedence levels layered above the ambiguous phrase core
  - Error folding: when many alternatives fail, the diagnostic that
    survives is the one that reached deepest into the token stream
  - Scope-stacked symbol visibility with innermost-wins shadowing

The parser is single-threaded and synchronous, and given identical tokens
and identical stack contents it produces identical ResultLists in
identical order.
*/
package parser

import (
	"github.com/xuangong/tinymoe/lexer"
)

// Result is one surviving reading at a point in the token stream: the
// parsed expression together with the index of the first token after it.
type Result struct {
	Next int        // token index just after this reading
	Expr Expression // the parsed expression
}

// ResultList is the ordered multi-set of surviving readings at one point,
// preserving ambiguity. Parse functions return a ResultList together with
// a single folded CodeError carrying the deepest failure seen across the
// alternatives they tried; the error is nil exactly when the list is
// non-empty.
type ResultList []Result

// expressionLink is a cons-list node used transiently while walking a
// rule's fragments: it threads the growing argument chain through the
// branch fan-out without mutation, so branches can share prefixes.
type expressionLink struct {
	expression Expression
	previous   *expressionLink
}

// toList flattens the cons-list into argument order.
func (link *expressionLink) toList() []Expression {
	count := 0
	for l := link; l != nil; l = l.previous {
		count++
	}
	arguments := make([]Expression, count)
	for l := link; l != nil; l = l.previous {
		count--
		arguments[count] = l.expression
	}
	return arguments
}

// stepResult is one surviving branch while a rule's fragments are being
// matched: the next token index and the argument chain built so far.
type stepResult struct {
	next int
	link *expressionLink
}

// ParseToken consumes one identifier token whose text matches the given
// literal case-insensitively and returns the next token index. Otherwise
// it reports an expected-token failure at the input position.
func (stack *GrammarStack) ParseToken(literal string, tokens []lexer.Token, input, end int) (int, *CodeError) {
	if input >= end {
		return 0, NewCodeError(input, "expected \""+literal+"\"")
	}
	if token := &tokens[input]; token.IsWord(literal) {
		return input + 1, nil
	}
	return 0, NewCodeError(input, "expected \""+literal+"\", found \""+tokens[input].Literal+"\"")
}

// ParseGrammarFragment parses one fragment of a rule at the input
// position. A name fragment consumes its words and contributes no
// expression (the result carries a nil Expr); a hole fragment delegates to
// the parser for its kind.
func (stack *GrammarStack) ParseGrammarFragment(fragment *GrammarFragment, tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	switch fragment.Type {
	case NameFragment:
		current := input
		for _, word := range fragment.Identifiers {
			next, err := stack.ParseToken(word, tokens, current, end)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return ResultList{{Next: current, Expr: nil}}, nil
	case TypeFragment:
		return stack.ParseType(tokens, input, end)
	case PrimitiveFragment:
		return stack.ParsePrimitive(tokens, input, end)
	case ExpressionFragment:
		return stack.ParseExpression(tokens, input, end)
	case ListFragment:
		return stack.ParseList(tokens, input, end)
	case AssignableFragment:
		return stack.ParseAssignable(tokens, input, end)
	case ArgumentFragment:
		return stack.ParseArgument(tokens, input, end)
	}
	return nil, NewCodeError(input, "unknown grammar fragment")
}

// parseGrammarSymbolStep advances one surviving branch across a single
// fragment of the rule, producing every continuation branch. This is the
// breadth-first enumeration step: the cost stays bounded because each
// hole's parser itself returns a small result set.
func (stack *GrammarStack) parseGrammarSymbolStep(symbol *GrammarSymbol, fragmentIndex int, previous *expressionLink, tokens []lexer.Token, input, end int) ([]stepResult, *CodeError) {
	fragment := symbol.Fragments[fragmentIndex]
	results, err := stack.ParseGrammarFragment(fragment, tokens, input, end)
	if err != nil {
		return nil, err
	}
	continuations := make([]stepResult, 0, len(results))
	for _, result := range results {
		link := previous
		if result.Expr != nil {
			link = &expressionLink{expression: result.Expr, previous: previous}
		}
		continuations = append(continuations, stepResult{next: result.Next, link: link})
	}
	return continuations, nil
}

// ParseGrammarSymbol matches one rule against the token stream starting at
// the given fragment index. beginFragment is non-zero when the rule's
// first hole has already been filled by a left-recursive parent; the
// already-parsed expression is passed as previousExpression and becomes
// the first argument.
//
// A match with no hole arguments yields a plain reference to the symbol;
// a match with arguments yields an invoke whose function references the
// symbol.
func (stack *GrammarStack) ParseGrammarSymbol(symbol *GrammarSymbol, beginFragment int, previousExpression Expression, tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	var seed *expressionLink
	if previousExpression != nil {
		seed = &expressionLink{expression: previousExpression}
	}
	branches := []stepResult{{next: input, link: seed}}

	for fragmentIndex := beginFragment; fragmentIndex < len(symbol.Fragments); fragmentIndex++ {
		var survivors []stepResult
		var stepError *CodeError
		for _, branch := range branches {
			continuations, err := stack.parseGrammarSymbolStep(symbol, fragmentIndex, branch.link, tokens, branch.next, end)
			stepError = foldFailure(stepError, err)
			survivors = append(survivors, continuations...)
		}
		if len(survivors) == 0 {
			return nil, stepError
		}
		branches = survivors
	}

	result := make(ResultList, 0, len(branches))
	for _, branch := range branches {
		arguments := branch.link.toList()
		var expr Expression
		if len(arguments) == 0 {
			expr = &ReferenceExpression{Symbol: symbol}
		} else {
			expr = &InvokeExpression{
				Function:  &ReferenceExpression{Symbol: symbol},
				Arguments: arguments,
			}
		}
		result = append(result, Result{Next: branch.next, Expr: expr})
	}
	return result, nil
}
