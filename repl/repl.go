/*
File    : tinymoe/repl/repl.go

Package repl implements an interactive statement parser for Tinymoe.
Each line the user enters is lexed and parsed against the predefined
grammar plus a session scope, and the resulting statement tree is printed.
Statements that introduce symbols (e.g. "set x to 1") register them in the
session scope, so later lines can refer to them. Block statements need an
indented body and are therefore not available from the prompt.

The REPL uses the readline library for line editing and command history,
and colored output to distinguish results from diagnostics.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/xuangong/tinymoe/lexer"
	"github.com/xuangong/tinymoe/parser"
)

// Color definitions for REPL output:
// - blueColor: decorative separators
// - yellowColor: parsed statement trees
// - redColor: error messages
// - greenColor: banner
// - cyanColor: informational messages
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents one interactive session and its visual configuration.
type Repl struct {
	Banner  string // Banner displayed at startup
	Version string // Version string of the front-end
	Line    string // Separator line for visual formatting
	Prompt  string // Command prompt shown to the user (e.g., "moe >>> ")
}

// NewRepl creates and initializes a new REPL instance.
func NewRepl(banner string, version string, line string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Tinymoe!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement and press enter to see its parse tree")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop. A grammar stack is prepared with the
// predefined symbols plus a session scope that lives for the whole loop;
// symbols the user's statements introduce accumulate there.
//
// The loop continues until the user types '.exit' or EOF is reached.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// The session grammar: built-ins below, the session scope on top.
	// Statement commits register symbols into the innermost scope, which
	// is exactly the session scope here.
	stack := parser.NewGrammarStack()
	predefined := parser.NewGrammarStackItem()
	predefined.FillPredefinedSymbols()
	stack.Push(predefined)
	stack.Push(parser.NewGrammarStackItem())

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or error occurred (e.g., Ctrl+D pressed)
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.parseLine(writer, line, stack)
	}
}

// parseLine lexes and parses one input line and reports the outcome:
// the statement trees in yellow, every diagnostic in red.
func (r *Repl) parseLine(writer io.Writer, line string, stack *parser.GrammarStack) {
	lex := lexer.NewLexer(line)
	tokens, lexErrors := lex.Tokenize()
	for _, lexErr := range lexErrors {
		redColor.Fprintf(writer, "[%d:%d] LEXER ERROR: %s\n", lexErr.Line, lexErr.Column, lexErr.Message)
	}
	if len(lexErrors) > 0 {
		return
	}

	par := parser.NewParser(tokens, stack)
	statements := par.Parse()
	if par.HasErrors() {
		for _, message := range par.GetErrors() {
			redColor.Fprintf(writer, "%s\n", message)
		}
		return
	}
	for _, statement := range statements {
		yellowColor.Fprintf(writer, "%s\n", statement.Expression.ToLog())
	}
}
