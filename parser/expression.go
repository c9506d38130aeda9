/*
File    : tinymoe/parser/expression.go
*/
package parser

import (
	"strings"

	"github.com/xuangong/tinymoe/lexer"
)

// Expression is the parse tree produced by the expression and statement
// parsers. It is a closed tagged union: the variants below are the only
// implementations. Every variant can print itself for debugging (ToLog),
// print itself back to source form (ToCode), and report the fresh symbols
// its assignable/argument holes introduce (CollectNewAssignable).
//
// Reference expressions hold a non-owning link to a GrammarSymbol whose
// lifetime is managed by the grammar stack that produced the tree.
type Expression interface {
	ToLog() string
	ToCode() string
	CollectNewAssignable(newAssignables, newArguments *[]Expression)
}

// UnaryOperator enumerates the prefix operators.
type UnaryOperator int

const (
	UnaryPositive UnaryOperator = iota
	UnaryNegative
	UnaryNot
)

// String returns the operator's source spelling.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryPositive:
		return "+"
	case UnaryNegative:
		return "-"
	case UnaryNot:
		return "not"
	}
	return "?"
}

// BinaryOperator enumerates the infix operators. The declaration order
// carries no precedence; parser_binary.go groups the operators into levels
// from tightest (Mul/Div) to loosest (Or).
type BinaryOperator int

const (
	BinaryConcat BinaryOperator = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryLT
	BinaryGT
	BinaryLE
	BinaryGE
	BinaryEQ
	BinaryNE
	BinaryAnd
	BinaryOr
)

// String returns the operator's source spelling.
func (op BinaryOperator) String() string {
	switch op {
	case BinaryConcat:
		return "&"
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryLT:
		return "<"
	case BinaryGT:
		return ">"
	case BinaryLE:
		return "<="
	case BinaryGE:
		return ">="
	case BinaryEQ:
		return "="
	case BinaryNE:
		return "<>"
	case BinaryAnd:
		return "and"
	case BinaryOr:
		return "or"
	}
	return "?"
}

// LiteralExpression carries one literal token: integer, float or string.
type LiteralExpression struct {
	Token lexer.Token
}

// ToLog returns the literal text, quoting string literals.
func (expr *LiteralExpression) ToLog() string {
	if expr.Token.Type == lexer.STRING_LIT {
		return lexer.EscapeString(expr.Token.Literal)
	}
	return expr.Token.Literal
}

// ToCode returns the literal in source form.
func (expr *LiteralExpression) ToCode() string {
	return expr.ToLog()
}

// CollectNewAssignable is a no-op: literals introduce no symbols.
func (expr *LiteralExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
}

// ArgumentExpression carries the name words of a freshly-introduced symbol
// matched by an assignable or argument hole. Whether the words end up in
// newAssignables or newArguments is decided by the hole that matched them,
// which is why the classification lives in InvokeExpression.
type ArgumentExpression struct {
	Tokens []lexer.Token
}

// Words returns the name words of the new symbol, in source order.
func (expr *ArgumentExpression) Words() []string {
	words := make([]string, 0, len(expr.Tokens))
	for _, token := range expr.Tokens {
		words = append(words, token.Literal)
	}
	return words
}

// ToLog marks the expression as a fresh name so parse-tree dumps
// distinguish it from a reference to an existing symbol.
func (expr *ArgumentExpression) ToLog() string {
	return "$(" + strings.Join(expr.Words(), " ") + ")"
}

// ToCode returns the words as written.
func (expr *ArgumentExpression) ToCode() string {
	return strings.Join(expr.Words(), " ")
}

// CollectNewAssignable is a no-op here; see InvokeExpression.
func (expr *ArgumentExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
}

// ReferenceExpression references a grammar symbol: a declared variable,
// a zero-argument phrase like "true", or the function position of an
// invoke. The link is non-owning.
type ReferenceExpression struct {
	Symbol *GrammarSymbol
}

// ToLog identifies the referenced rule by its unique-id.
func (expr *ReferenceExpression) ToLog() string {
	return expr.Symbol.UniqueId
}

// ToCode writes the symbol's name words back out. Symbols with holes only
// appear in the function position of an invoke, which prints them itself.
func (expr *ReferenceExpression) ToCode() string {
	parts := make([]string, 0, len(expr.Symbol.Fragments))
	for _, fragment := range expr.Symbol.Fragments {
		if fragment.Type == NameFragment {
			parts = append(parts, strings.Join(fragment.Identifiers, " "))
		}
	}
	return strings.Join(parts, " ")
}

// CollectNewAssignable is a no-op: references introduce no symbols.
func (expr *ReferenceExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
}

// InvokeExpression applies a function expression to ordered arguments.
// Every matched rule with at least one hole parses to an invoke whose
// function is a reference to the rule's symbol and whose arguments are the
// hole contents in fragment order.
type InvokeExpression struct {
	Function  Expression
	Arguments []Expression
}

// ToLog prints the function followed by the argument list.
func (expr *InvokeExpression) ToLog() string {
	parts := make([]string, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		parts = append(parts, argument.ToLog())
	}
	return expr.Function.ToLog() + "(" + strings.Join(parts, ", ") + ")"
}

// ToCode interleaves the rule's name words with the rendered arguments.
// Expression and primitive holes are parenthesized so the printed form
// re-parses unambiguously; holes whose sub-parsers cannot see through
// parentheses (types, lists, fresh names) are printed raw.
func (expr *InvokeExpression) ToCode() string {
	function, ok := expr.Function.(*ReferenceExpression)
	if !ok {
		parts := make([]string, 0, len(expr.Arguments))
		for _, argument := range expr.Arguments {
			parts = append(parts, argument.ToCode())
		}
		return expr.Function.ToCode() + "(" + strings.Join(parts, ", ") + ")"
	}

	parts := make([]string, 0, len(function.Symbol.Fragments))
	argumentIndex := 0
	for _, fragment := range function.Symbol.Fragments {
		if fragment.Type == NameFragment {
			parts = append(parts, strings.Join(fragment.Identifiers, " "))
			continue
		}
		if argumentIndex >= len(expr.Arguments) {
			break
		}
		argument := expr.Arguments[argumentIndex]
		argumentIndex++
		switch fragment.Type {
		case ExpressionFragment, PrimitiveFragment:
			parts = append(parts, "("+argument.ToCode()+")")
		default:
			parts = append(parts, argument.ToCode())
		}
	}
	return strings.Join(parts, " ")
}

// CollectNewAssignable pairs the rule's hole fragments with the arguments
// that filled them: a fresh name in an assignable hole goes to
// newAssignables, an argument hole's name goes to newArguments. Arguments
// are then searched recursively, so nested phrases report their holes too.
func (expr *InvokeExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
	if function, ok := expr.Function.(*ReferenceExpression); ok {
		argumentIndex := 0
		for _, fragment := range function.Symbol.Fragments {
			if fragment.Type == NameFragment {
				continue
			}
			if argumentIndex >= len(expr.Arguments) {
				break
			}
			argument := expr.Arguments[argumentIndex]
			argumentIndex++
			fresh, isFresh := argument.(*ArgumentExpression)
			if !isFresh {
				continue
			}
			switch fragment.Type {
			case AssignableFragment:
				*newAssignables = append(*newAssignables, fresh)
			case ArgumentFragment:
				*newArguments = append(*newArguments, fresh)
			}
		}
	}
	for _, argument := range expr.Arguments {
		argument.CollectNewAssignable(newAssignables, newArguments)
	}
}

// ListExpression is an ordered element tuple matched by a list hole.
type ListExpression struct {
	Elements []Expression
}

// ToLog prints the elements in parentheses.
func (expr *ListExpression) ToLog() string {
	parts := make([]string, 0, len(expr.Elements))
	for _, element := range expr.Elements {
		parts = append(parts, element.ToLog())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ToCode prints the tuple in source form.
func (expr *ListExpression) ToCode() string {
	parts := make([]string, 0, len(expr.Elements))
	for _, element := range expr.Elements {
		parts = append(parts, element.ToCode())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// CollectNewAssignable recurses into every element.
func (expr *ListExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
	for _, element := range expr.Elements {
		element.CollectNewAssignable(newAssignables, newArguments)
	}
}

// UnaryExpression applies a prefix operator to one operand.
type UnaryExpression struct {
	Op      UnaryOperator
	Operand Expression
}

// ToLog prints the operator applied to the operand.
func (expr *UnaryExpression) ToLog() string {
	return expr.Op.String() + "(" + expr.Operand.ToLog() + ")"
}

// ToCode prints the operator with a parenthesized operand.
func (expr *UnaryExpression) ToCode() string {
	return expr.Op.String() + "(" + expr.Operand.ToCode() + ")"
}

// CollectNewAssignable recurses into the operand.
func (expr *UnaryExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
	expr.Operand.CollectNewAssignable(newAssignables, newArguments)
}

// BinaryExpression applies an infix operator to two operands.
type BinaryExpression struct {
	Op     BinaryOperator
	First  Expression
	Second Expression
}

// ToLog prints the operands around the operator.
func (expr *BinaryExpression) ToLog() string {
	return "(" + expr.First.ToLog() + " " + expr.Op.String() + " " + expr.Second.ToLog() + ")"
}

// ToCode prints the parenthesized infix form.
func (expr *BinaryExpression) ToCode() string {
	return "(" + expr.First.ToCode() + " " + expr.Op.String() + " " + expr.Second.ToCode() + ")"
}

// CollectNewAssignable recurses into both operands.
func (expr *BinaryExpression) CollectNewAssignable(newAssignables, newArguments *[]Expression) {
	expr.First.CollectNewAssignable(newAssignables, newArguments)
	expr.Second.CollectNewAssignable(newAssignables, newArguments)
}
