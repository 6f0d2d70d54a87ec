package cahn

import "fmt"

// Position is a 1-indexed (line, column) pair identifying a byte in
// the source text. Both the lexer and the code generator stamp the
// values they produce with a Position so diagnostics can always be
// traced back to the original text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
