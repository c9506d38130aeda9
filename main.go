package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/xuangong/tinymoe/file"
	"github.com/xuangong/tinymoe/lexer"
	"github.com/xuangong/tinymoe/parser"
	"github.com/xuangong/tinymoe/repl"
)

const VERSION = "0.1.0"

const BANNER = `  _   _
 | |_(_)_ __  _   _ _ __ ___   ___   ___
 | __| | '_ \| | | | '_ ' _ \ / _ \ / _ \
 | |_| | | | | |_| | | | | | | (_) |  __/
  \__|_|_| |_|\__, |_| |_| |_|\___/ \___|
              |___/                      `

const LINE = "-----------------------------------------------"

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		// No source file: start the interactive parser.
		r := repl.NewRepl(BANNER, VERSION, LINE, "moe >>> ")
		r.Start(os.Stdin, os.Stdout)
		return
	}

	if parseFile(os.Args[1]) {
		os.Exit(0)
	}
	os.Exit(1)
}

// parseFile lexes and parses one source file and prints the statement
// forest plus every diagnostic. Returns true when the file is clean.
func parseFile(path string) bool {
	src, err := file.ReadSource(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		return false
	}

	lex := lexer.NewLexer(src)
	tokens, lexErrors := lex.Tokenize()
	for _, lexErr := range lexErrors {
		redColor.Fprintf(os.Stderr, "[%d:%d] LEXER ERROR: %s\n", lexErr.Line, lexErr.Column, lexErr.Message)
	}

	stack := parser.NewGrammarStack()
	predefined := parser.NewGrammarStackItem()
	predefined.FillPredefinedSymbols()
	stack.Push(predefined)
	stack.Push(parser.NewGrammarStackItem())

	par := parser.NewParser(tokens, stack)
	statements := par.Parse()
	for _, message := range par.GetErrors() {
		redColor.Fprintf(os.Stderr, "%s\n", message)
	}

	printer := &TreePrinter{}
	printer.PrintStatements(statements)
	fmt.Print(printer.String())
	if len(lexErrors) > 0 || par.HasErrors() {
		return false
	}
	cyanColor.Fprintf(os.Stdout, "parsed %d statements\n", len(statements))
	return true
}
