package main

import (
	"bytes"
	"fmt"

	"github.com/xuangong/tinymoe/parser"
)

const INDENT_SIZE = 4

// TreePrinter renders a statement forest as an indented outline, one
// statement per line with block bodies nested below their header.
type TreePrinter struct {
	Indent int
	Buf    bytes.Buffer
}

// indent writes the current indentation prefix.
func (p *TreePrinter) indent() {
	for i := 0; i < p.Indent; i++ {
		p.Buf.WriteString(" ")
	}
}

// PrintStatements renders a list of statements at the current level.
func (p *TreePrinter) PrintStatements(statements []*parser.Statement) {
	for _, statement := range statements {
		p.PrintStatement(statement)
	}
}

// PrintStatement renders one statement and, for block statements, its
// nested body.
func (p *TreePrinter) PrintStatement(statement *parser.Statement) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf("%s\n", statement.Expression.ToLog()))
	if len(statement.Body) > 0 {
		p.Indent += INDENT_SIZE
		p.PrintStatements(statement.Body)
		p.Indent -= INDENT_SIZE
	}
}

// String returns the rendered outline.
func (p *TreePrinter) String() string {
	return p.Buf.String()
}
