/*
File    : tinymoe/parser/parser_statements.go
*/
package parser

import (
	"strings"

	"github.com/xuangong/tinymoe/lexer"
)

// ParseStatement attempts every Sentence and Block symbol visible at the
// current scope against the token range and returns every reading, partial
// ones included. The statement boundary (Parser) filters the readings that
// reach the statement terminator and resolves what is left.
func (stack *GrammarStack) ParseStatement(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	var result ResultList
	resultError := NewCodeError(input, "no sentence or block matches this statement")
	for _, symbol := range stack.SymbolsOfKind(KindSentence | KindBlock) {
		symbolResult, err := stack.ParseGrammarSymbol(symbol, 0, nil, tokens, input, end)
		result = append(result, symbolResult...)
		resultError = foldFailure(resultError, err)
	}
	if len(result) > 0 {
		return result, nil
	}
	return nil, resultError
}

// isAddressable reports whether an expression may be the target of an
// assignment: a fresh name, a reference to a declared symbol, a field or
// array access, or a custom phrase standing for one.
func isAddressable(expr Expression) bool {
	switch e := expr.(type) {
	case *ArgumentExpression:
		return true
	case *ReferenceExpression:
		return e.Symbol.Kind.Has(KindSymbol)
	case *InvokeExpression:
		function, ok := e.Function.(*ReferenceExpression)
		if !ok {
			return false
		}
		switch function.Symbol.Target {
		case TargetGetField, TargetGetArrayItem:
			return true
		case TargetCustom:
			return function.Symbol.Kind.Has(KindPhrase)
		}
	}
	return false
}

// CountStatementAssignables decides what the fresh names collected from a
// reading's assignable holes really are. For each collected name the words
// are re-parsed as an expression over their own token span:
//
//   - no complete reading: the name is genuinely fresh and counts as one
//     new symbol to introduce;
//   - a complete addressable reading: the name resolves to something that
//     already exists, so nothing new is introduced;
//   - only non-addressable readings: the assignable position is occupied
//     by a legal expression that cannot be assigned to; the count is -1
//     and the offending expression is returned.
//
// This is what disambiguates "set x to 1" (new symbol x) from
// "set f of y to 1" (field access, nothing new).
func (stack *GrammarStack) CountStatementAssignables(tokens []lexer.Token, assignables []Expression) (int, Expression) {
	fresh, illegal := stack.statementAssignables(tokens, assignables)
	if illegal != nil {
		return -1, illegal
	}
	return len(fresh), nil
}

// statementAssignables returns the genuinely fresh names among the
// collected assignables, or the first illegal one.
func (stack *GrammarStack) statementAssignables(tokens []lexer.Token, assignables []Expression) ([]*ArgumentExpression, Expression) {
	var fresh []*ArgumentExpression
	for _, assignable := range assignables {
		argument, ok := assignable.(*ArgumentExpression)
		if !ok || len(argument.Tokens) == 0 {
			continue
		}
		begin := argument.Tokens[0].Index
		spanEnd := argument.Tokens[len(argument.Tokens)-1].Index + 1
		readings, _ := stack.ParseExpression(tokens, begin, spanEnd)
		addressable, complete := false, false
		for _, reading := range readings {
			if reading.Next != spanEnd {
				continue
			}
			complete = true
			if isAddressable(reading.Expr) {
				addressable = true
				break
			}
		}
		switch {
		case !complete:
			fresh = append(fresh, argument)
		case !addressable:
			return nil, assignable
		}
	}
	return fresh, nil
}

// Statement is one parsed statement: an invoke whose function references
// the matched Sentence or Block symbol, plus the nested body statements
// when the symbol opens a block.
type Statement struct {
	Expression Expression
	Symbol     *GrammarSymbol
	Body       []*Statement
}

// Parser is the statement-parser boundary. It consumes the lexer's token
// list one statement terminator at a time, resolves each statement against
// the grammar stack, commits symbol registrations from assignable and
// argument holes into the innermost scope, and threads block scopes across
// Indent/Dedent pairs. Failures never stop it: the parser always reaches
// the end of the input so the user sees every statement-level diagnostic
// at once.
type Parser struct {
	Tokens []lexer.Token // The finalized token list being parsed
	Stack  *GrammarStack // Visible grammar symbols, scope-stacked

	// Collect parsing errors instead of panicking.
	// This allows reporting multiple errors in a single parse.
	Errors []*CodeError
}

// NewParser creates a parser over a token list and a prepared grammar
// stack. The caller must already have pushed the scope items holding every
// symbol visible to the parsed body (built-ins plus the enclosing module's
// declarations).
func NewParser(tokens []lexer.Token, stack *GrammarStack) *Parser {
	return &Parser{
		Tokens: tokens,
		Stack:  stack,
		Errors: make([]*CodeError, 0),
	}
}

// HasErrors returns true if there are parsing errors.
func (par *Parser) HasErrors() bool {
	return len(par.Errors) > 0
}

// GetErrors returns all parsing errors formatted with their source
// positions, for display to the user.
func (par *Parser) GetErrors() []string {
	messages := make([]string, 0, len(par.Errors))
	for _, err := range par.Errors {
		messages = append(messages, err.Format(par.Tokens))
	}
	return messages
}

// Parse parses the whole token list as a statement sequence and returns
// the statement forest. Diagnostics accumulate in Errors.
func (par *Parser) Parse() []*Statement {
	statements, _ := par.parseBlockBody(0, len(par.Tokens))
	return statements
}

// addError records a statement-level diagnostic; parsing continues.
func (par *Parser) addError(err *CodeError) {
	if err != nil {
		par.Errors = append(par.Errors, err)
	}
}

// parseBlockBody parses statements until the input range ends or the
// enclosing block is closed by a Dedent, returning the statements and the
// index after the consumed region.
func (par *Parser) parseBlockBody(input, end int) ([]*Statement, int) {
	statements := make([]*Statement, 0)
	pos := input
	for pos < end {
		switch par.Tokens[pos].Type {
		case lexer.NEWLINE_TYPE:
			pos++
		case lexer.DEDENT_TYPE:
			return statements, pos + 1
		case lexer.INDENT_TYPE:
			// An indent with no block statement before it. Recover by
			// parsing the indented region at the current level.
			par.addError(NewCodeError(pos, "unexpected indentation"))
			nested, next := par.parseBlockBody(pos+1, end)
			statements = append(statements, nested...)
			pos = next
		default:
			statement, next := par.parseStatement(pos, end)
			if statement != nil {
				statements = append(statements, statement)
			}
			pos = next
		}
	}
	return statements, pos
}

// statementReading is one complete candidate reading of a statement,
// resolved far enough to be compared against the other candidates.
type statementReading struct {
	invoke       *InvokeExpression
	symbol       *GrammarSymbol
	count        int
	fresh        []*ArgumentExpression
	newArguments []*ArgumentExpression
}

// parseStatement parses one statement beginning at input: the token span
// up to the next newline is matched against every visible sentence and
// block rule, the surviving complete readings are disambiguated, fresh
// symbols are committed, and for block rules the indented body is parsed
// under a new scope. Returns the statement (nil if it failed) and the
// index to continue from.
func (par *Parser) parseStatement(input, end int) (*Statement, int) {
	spanEnd := input
	for spanEnd < end && par.Tokens[spanEnd].Type != lexer.NEWLINE_TYPE {
		spanEnd++
	}
	after := spanEnd
	if after < end {
		after++ // consume the statement terminator
	}

	readings, err := par.Stack.ParseStatement(par.Tokens, input, spanEnd)
	if len(readings) == 0 {
		par.addError(err)
		return nil, after
	}

	chosen, chooseErr := par.chooseReading(readings, input, spanEnd)
	if chooseErr != nil {
		par.addError(chooseErr)
		return nil, after
	}

	// Commit: fresh assignables become symbols of the innermost scope;
	// argument holes of a sentence register there too, while argument
	// holes of a block register into the body scope pushed below.
	for _, fresh := range chosen.fresh {
		par.Stack.DeclareSymbol(symbolFromWords(KindSymbol, fresh.Tokens))
	}

	statement := &Statement{Expression: chosen.invoke, Symbol: chosen.symbol}
	next := after

	openBlock := chosen.symbol.Kind.Has(KindBlock) &&
		next < end && par.Tokens[next].Type == lexer.INDENT_TYPE
	switch {
	case openBlock:
		item := NewGrammarStackItem()
		for _, argument := range chosen.newArguments {
			item.AddSymbol(symbolFromWords(KindSymbol, argument.Tokens))
		}
		func() {
			par.Stack.Push(item)
			defer par.Stack.Pop()
			statement.Body, next = par.parseBlockBody(next+1, end)
		}()
	case chosen.symbol.Kind.Has(KindBlock) && !chosen.symbol.Kind.Has(KindSentence):
		par.addError(NewCodeError(after, "expected an indented block body"))
	default:
		for _, argument := range chosen.newArguments {
			par.Stack.DeclareSymbol(symbolFromWords(KindSymbol, argument.Tokens))
		}
	}
	return statement, next
}

// chooseReading filters the readings that reach the statement terminator
// and picks the one the statement means:
//
//  1. readings whose assignable holes are illegal are dropped;
//  2. among the rest, the fewest newly-introduced assignables wins;
//  3. a remaining tie prefers the rule matching more literal name words
//     (the more specific pattern);
//  4. distinct rules still tied is a genuine ambiguity and is reported
//     with the conflicting unique-ids;
//  5. several readings of the same rule keep the last, which is the one
//     whose left-recursive chains reach furthest.
func (par *Parser) chooseReading(readings ResultList, input, spanEnd int) (*statementReading, *CodeError) {
	var candidates []*statementReading
	var candidateError *CodeError
	furthest := input
	for _, reading := range readings {
		if reading.Next > furthest {
			furthest = reading.Next
		}
		if reading.Next != spanEnd {
			continue
		}
		candidate, err := par.resolveReading(reading.Expr, input)
		if err != nil {
			candidateError = foldFailure(candidateError, err)
			continue
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		if candidateError != nil {
			return nil, candidateError
		}
		message := "unexpected end of statement"
		if furthest < spanEnd {
			message = "unexpected token \"" + par.Tokens[furthest].Literal + "\""
		}
		return nil, NewCodeError(furthest, message)
	}

	best := candidates[:0:0]
	bestCount, bestWords := 0, 0
	for _, candidate := range candidates {
		words := nameWordCount(candidate.symbol)
		if len(best) == 0 || candidate.count < bestCount ||
			(candidate.count == bestCount && words > bestWords) {
			best = append(best[:0], candidate)
			bestCount, bestWords = candidate.count, words
			continue
		}
		if candidate.count == bestCount && words == bestWords {
			best = append(best, candidate)
		}
	}

	for _, candidate := range best[1:] {
		if candidate.symbol != best[0].symbol {
			ids := make([]string, 0, len(best))
			for _, c := range best {
				ids = append(ids, "\""+c.symbol.UniqueId+"\"")
			}
			return nil, NewCodeError(input, "statement is ambiguous: "+strings.Join(ids, " | "))
		}
	}
	return best[len(best)-1], nil
}

// resolveReading validates one complete reading: the top-level assignable
// holes must hold addressable expressions or fresh names, and the fresh
// names collected from the whole tree must not shadow legal expressions.
func (par *Parser) resolveReading(expr Expression, input int) (*statementReading, *CodeError) {
	invoke, ok := expr.(*InvokeExpression)
	if !ok {
		if reference, isReference := expr.(*ReferenceExpression); isReference {
			invoke = &InvokeExpression{Function: reference}
		} else {
			return nil, NewCodeError(input, "statement does not reference a sentence or block")
		}
	}
	function := invoke.Function.(*ReferenceExpression)

	argumentIndex := 0
	for _, fragment := range function.Symbol.Fragments {
		if fragment.Type == NameFragment {
			continue
		}
		if argumentIndex >= len(invoke.Arguments) {
			break
		}
		argument := invoke.Arguments[argumentIndex]
		argumentIndex++
		if fragment.Type == AssignableFragment && !isAddressable(argument) {
			return nil, NewCodeError(expressionPosition(argument, input), "illegal assignable")
		}
	}

	var newAssignables, newArguments []Expression
	invoke.CollectNewAssignable(&newAssignables, &newArguments)
	fresh, illegal := par.Stack.statementAssignables(par.Tokens, newAssignables)
	if illegal != nil {
		return nil, NewCodeError(expressionPosition(illegal, input), "illegal assignable")
	}

	reading := &statementReading{
		invoke: invoke,
		symbol: function.Symbol,
		count:  len(fresh),
		fresh:  fresh,
	}
	for _, argument := range newArguments {
		reading.newArguments = append(reading.newArguments, argument.(*ArgumentExpression))
	}
	return reading, nil
}

// symbolFromWords builds the symbol a fresh name introduces: a name-only
// rule of the given kind.
func symbolFromWords(kind GrammarSymbolKind, tokens []lexer.Token) *GrammarSymbol {
	sym := NewGrammarSymbol(kind)
	for _, token := range tokens {
		sym.AppendName(token.Literal)
	}
	sym.CalculateUniqueId()
	return sym
}

// nameWordCount is how many literal words the rule pattern contains; the
// tie-break treats a rule matching more of the statement verbatim as the
// more specific one.
func nameWordCount(sym *GrammarSymbol) int {
	count := 0
	for _, fragment := range sym.Fragments {
		if fragment.Type == NameFragment {
			count += len(fragment.Identifiers)
		}
	}
	return count
}

// expressionPosition finds a token index to anchor a diagnostic about an
// expression, falling back to the statement start when the expression
// carries no tokens of its own.
func expressionPosition(expr Expression, fallback int) int {
	switch e := expr.(type) {
	case *LiteralExpression:
		return e.Token.Index
	case *ArgumentExpression:
		if len(e.Tokens) > 0 {
			return e.Tokens[0].Index
		}
	case *InvokeExpression:
		for _, argument := range e.Arguments {
			if pos := expressionPosition(argument, -1); pos >= 0 {
				return pos
			}
		}
	case *ListExpression:
		for _, element := range e.Elements {
			if pos := expressionPosition(element, -1); pos >= 0 {
				return pos
			}
		}
	case *UnaryExpression:
		return expressionPosition(e.Operand, fallback)
	case *BinaryExpression:
		return expressionPosition(e.First, fallback)
	}
	return fallback
}
