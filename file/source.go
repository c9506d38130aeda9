/*
File    : tinymoe/file/source.go
*/

// Package file loads Tinymoe source text from disk for the driver.
// Source files are UTF-8 with "\n" or "\r\n" line endings.
package file

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// ReadSource reads a source file and returns its text. The bytes must be
// valid UTF-8; line endings are left as-is because the lexer accepts both
// forms.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read source file %q: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("source file %q is not valid UTF-8", path)
	}
	return string(data), nil
}
