package cahn

import "fmt"

// LexError describes a character the lexer cannot classify. The lexer
// itself does not return it: it emits a TokenBadCharacter token, which
// the parser reports as a ParseError.
type LexError struct {
	Message string
	Pos     Position
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Pos)
}

// ParseErrorKind is the closed set of ways the parser can fail.
type ParseErrorKind string

const (
	BadToken                   ParseErrorKind = "BadToken"
	UnexpectedToken             ParseErrorKind = "UnexpectedToken"
	ChainingComparisonOperator  ParseErrorKind = "ChainingComparisonOperator"
	ChainingAssignmentOperator  ParseErrorKind = "ChainingAssignmentOperator"
)

// ParseError is always fatal to the current parse; it carries the
// offending position so a caller can print a caret diagnostic without
// re-walking the source.
type ParseError struct {
	Kind    ParseErrorKind
	Pos     Position
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s @ %s", e.Kind, e.Message, e.Pos)
}

func newParseError(kind ParseErrorKind, pos Position, format string, args ...any) ParseError {
	return ParseError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// CodegenErrorKind is the closed set of ways code generation can fail.
type CodegenErrorKind string

const (
	UnresolvedVariable     CodegenErrorKind = "UnresolvedVariable"
	InvalidAssignmentTarget CodegenErrorKind = "InvalidAssignmentTarget"
	TooManyParameters       CodegenErrorKind = "TooManyParameters"
	Unsupported             CodegenErrorKind = "Unsupported"
)

// CodegenError is always fatal per compilation.
type CodegenError struct {
	Kind    CodegenErrorKind
	Pos     Position
	Message string
}

func (e CodegenError) Error() string {
	return fmt.Sprintf("%s: %s @ %s", e.Kind, e.Message, e.Pos)
}

func newCodegenError(kind CodegenErrorKind, pos Position, format string, args ...any) CodegenError {
	return CodegenError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// RuntimeErrorKind is the closed set of ways the VM can fail mid-run.
type RuntimeErrorKind string

const (
	TypeError        RuntimeErrorKind = "TypeError"
	IndexOutOfBounds RuntimeErrorKind = "IndexOutOfBounds"
	WriteError       RuntimeErrorKind = "WriteError"
)

// RuntimeError is produced by the VM while executing a compiled
// Executable. Index and Length are only meaningful for IndexOutOfBounds.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Pos     Position
	Message string
	Index   int
	Length  int
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s @ %s", e.Kind, e.Message, e.Pos)
}

func newTypeError(pos Position, format string, args ...any) RuntimeError {
	return RuntimeError{Kind: TypeError, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func newIndexOutOfBounds(pos Position, index, length int) RuntimeError {
	return RuntimeError{
		Kind:    IndexOutOfBounds,
		Pos:     pos,
		Message: fmt.Sprintf("index %d out of bounds for list of length %d", index, length),
		Index:   index,
		Length:  length,
	}
}

func newWriteError(pos Position, underlying error) RuntimeError {
	return RuntimeError{Kind: WriteError, Pos: pos, Message: underlying.Error()}
}
