/*
File    : tinymoe/parser/error.go
*/
package parser

import (
	"fmt"

	"github.com/xuangong/tinymoe/lexer"
)

// CodeError is a parse failure located at a token position. Pos is an index
// into the token list the parser was given; the row and column of the
// diagnostic are recovered from the token list when the error is formatted.
//
// Success is represented by a nil *CodeError. Every alternative the parser
// tries returns either results or a CodeError; errors are folded, never
// thrown, and the deepest-reaching failure is the one that survives.
type CodeError struct {
	Pos     int    // Index into the token list
	Message string // Description of the expectation that failed
}

// NewCodeError creates an error at the given token position.
func NewCodeError(pos int, message string) *CodeError {
	return &CodeError{Pos: pos, Message: message}
}

// Format renders the error in the diagnostic format used throughout the
// project, recovering the row and column from the token list. A position
// one past the final token reports at the end of the last line.
func (err *CodeError) Format(tokens []lexer.Token) string {
	line, column := 0, 0
	switch {
	case err.Pos >= 0 && err.Pos < len(tokens):
		line, column = tokens[err.Pos].Line, tokens[err.Pos].Column
	case len(tokens) > 0:
		last := tokens[len(tokens)-1]
		line, column = last.Line, last.Column+len(last.Literal)
	}
	return fmt.Sprintf("[%d:%d] PARSER ERROR: %s", line, column, err.Message)
}

// FoldError combines the outcomes of two tried alternatives, keeping the
// error whose token position is later in the stream; ties keep the first.
// Success (nil) dominates: once one alternative has matched there is no
// diagnostic left to report.
func FoldError(error1, error2 *CodeError) *CodeError {
	if error1 == nil || error2 == nil {
		return nil
	}
	if error2.Pos > error1.Pos {
		return error2
	}
	return error1
}

// foldFailure accumulates failures while alternatives are still being
// tried: acc may be nil meaning "nothing has failed yet", so unlike
// FoldError a nil acc does not absorb err. The deepest failure wins,
// ties keep the first.
func foldFailure(acc, err *CodeError) *CodeError {
	if err == nil {
		return acc
	}
	if acc == nil || err.Pos > acc.Pos {
		return err
	}
	return acc
}
