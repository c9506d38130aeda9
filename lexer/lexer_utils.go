/*
File    : tinymoe/lexer/lexer_utils.go
*/
package lexer

import "strings"

// isDigitASCII reports whether c is an ASCII decimal digit ('0'..'9').
// This is used in the hot path for number scanning.
func isDigitASCII(c byte) bool {
	return c >= '0' && c <= '9'
}

// isLetterASCII reports whether c is an ASCII letter.
// Identifier comparison is case-insensitive ASCII only; the lexer does not
// perform any Unicode identifier normalization.
func isLetterASCII(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentStart reports whether c can start an identifier word.
// Identifiers start with a letter or underscore, never a digit.
func isIdentStart(c byte) bool {
	return isLetterASCII(c) || c == '_'
}

// isIdentChar reports whether c can continue an identifier word.
func isIdentChar(c byte) bool {
	return isLetterASCII(c) || isDigitASCII(c) || c == '_'
}

// isBlankChar reports whether c is horizontal whitespace inside a line.
// Newlines are not blank: they are significant statement terminators and
// are handled by the line splitter, never by the in-line scanner.
func isBlankChar(c byte) bool {
	return c == ' ' || c == '\t'
}

// EqualWordFold compares two identifier words case-insensitively.
// Name fragments of grammar rules match source words through this
// comparison, so "Repeat With" and "repeat with" denote the same rule.
func EqualWordFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// escapeChar converts an escape sequence character to its actual byte value.
// This is used when processing escape sequences in string literals.
//
// Supported escape sequences: \\  \"  \n  \t  \r
//
// Returns the decoded byte and whether the escape sequence is valid.
func escapeChar(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true // Backslash
	case '"':
		return '"', true // Double quote
	case 'n':
		return '\n', true // Newline
	case 't':
		return '\t', true // Tab
	case 'r':
		return '\r', true // Carriage return
	default:
		return 0, false // Invalid escape sequence
	}
}

// EscapeString re-encodes decoded string content into source form, with the
// surrounding double quotes. This is the inverse of the decoding performed
// by the lexer and is used by the ToCode printers.
func EscapeString(value string) string {
	var builder strings.Builder
	builder.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			builder.WriteString("\\\\")
		case '"':
			builder.WriteString("\\\"")
		case '\n':
			builder.WriteString("\\n")
		case '\t':
			builder.WriteString("\\t")
		case '\r':
			builder.WriteString("\\r")
		default:
			builder.WriteByte(value[i])
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
