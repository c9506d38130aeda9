/*
File    : tinymoe/parser/parser_binary.go
*/
package parser

import (
	"github.com/xuangong/tinymoe/lexer"
)

// parseFunc is the shape shared by every expression-level parse function,
// so the binary levels can be layered generically.
type parseFunc func(tokens []lexer.Token, input, end int) (ResultList, *CodeError)

// binaryOperatorToken describes one operator recognized at a precedence
// level: either a punctuation token type, or an identifier word for the
// word operators ("and", "or").
type binaryOperatorToken struct {
	tokenType lexer.TokenType
	word      string
	op        BinaryOperator
}

// matchBinaryOperator reports which of the level's operators the token is.
func matchBinaryOperator(token *lexer.Token, operators []binaryOperatorToken) (BinaryOperator, bool) {
	for _, candidate := range operators {
		if candidate.word != "" {
			if token.IsWord(candidate.word) {
				return candidate.op, true
			}
			continue
		}
		if token.Type == candidate.tokenType {
			return candidate.op, true
		}
	}
	return 0, false
}

// The operator table per precedence level, tightest first. "and" and "or"
// are identifier words, not punctuation, so they match by literal text.
var (
	exp1Operators = []binaryOperatorToken{
		{tokenType: lexer.MUL_OP, op: BinaryMul},
		{tokenType: lexer.DIV_OP, op: BinaryDiv},
	}
	exp2Operators = []binaryOperatorToken{
		{tokenType: lexer.PLUS_OP, op: BinaryAdd},
		{tokenType: lexer.MINUS_OP, op: BinarySub},
	}
	exp3Operators = []binaryOperatorToken{
		{tokenType: lexer.CONCAT_OP, op: BinaryConcat},
	}
	exp4Operators = []binaryOperatorToken{
		{tokenType: lexer.LT_OP, op: BinaryLT},
		{tokenType: lexer.GT_OP, op: BinaryGT},
		{tokenType: lexer.LE_OP, op: BinaryLE},
		{tokenType: lexer.GE_OP, op: BinaryGE},
		{tokenType: lexer.EQ_OP, op: BinaryEQ},
		{tokenType: lexer.NE_OP, op: BinaryNE},
	}
	exp5Operators = []binaryOperatorToken{
		{word: "and", op: BinaryAnd},
	}
	expressionOperators = []binaryOperatorToken{
		{word: "or", op: BinaryOr},
	}
)

// ParseBinary parses one precedence level: an operand from the next
// tighter level, then greedily consumed (operator, operand) pairs,
// left-associatively. Every surviving lower-level reading stays in the
// result list alongside each extension, so ambiguity survives until a
// consumer disambiguates; extended readings re-enter the loop and keep
// consuming further pairs.
func (stack *GrammarStack) ParseBinary(tokens []lexer.Token, input, end int, operand parseFunc, operators []binaryOperatorToken) (ResultList, *CodeError) {
	result, err := operand(tokens, input, end)
	if len(result) == 0 {
		return nil, err
	}
	for i := 0; i < len(result); i++ {
		reading := result[i]
		if reading.Next >= end {
			continue
		}
		op, ok := matchBinaryOperator(&tokens[reading.Next], operators)
		if !ok {
			continue
		}
		operands, _ := operand(tokens, reading.Next+1, end)
		for _, right := range operands {
			result = append(result, Result{
				Next: right.Next,
				Expr: &BinaryExpression{Op: op, First: reading.Expr, Second: right.Expr},
			})
		}
	}
	return result, nil
}

// ParseExp1 parses the multiplicative level: * /
func (stack *GrammarStack) ParseExp1(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParsePrimitive, exp1Operators)
}

// ParseExp2 parses the additive level: + -
func (stack *GrammarStack) ParseExp2(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParseExp1, exp2Operators)
}

// ParseExp3 parses the concatenation level: &
func (stack *GrammarStack) ParseExp3(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParseExp2, exp3Operators)
}

// ParseExp4 parses the comparison level: < > <= >= = <>
func (stack *GrammarStack) ParseExp4(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParseExp3, exp4Operators)
}

// ParseExp5 parses the conjunction level: and
func (stack *GrammarStack) ParseExp5(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParseExp4, exp5Operators)
}

// ParseExpression parses a full expression, the disjunction level: or.
func (stack *GrammarStack) ParseExpression(tokens []lexer.Token, input, end int) (ResultList, *CodeError) {
	return stack.ParseBinary(tokens, input, end, stack.ParseExp5, expressionOperators)
}
