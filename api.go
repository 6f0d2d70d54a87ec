package cahn

import "io"

// Tokenize lexes source fully and returns every token, including the
// trailing Eof. It is used by the driver's --dump-tokens flag.
func Tokenize(source []byte) (*StringInterner, []Token) {
	interner := NewStringInterner()
	lexer := NewLexer(source, interner)

	var tokens []Token
	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEof {
			break
		}
	}
	return interner, tokens
}

// Parse lexes and parses source into a Program, returning the
// interner that owns every lexeme referenced by the tree.
func Parse(source []byte) (*StringInterner, *Program, error) {
	interner := NewStringInterner()
	arena := NewArena()
	parser := NewParser(source, interner, arena)
	prog, err := parser.ParseProgram()
	if err != nil {
		return interner, nil, err
	}
	return interner, prog, nil
}

// Compile parses source and generates an Executable ready to run.
// sourceFile is stamped onto the Executable for diagnostics only.
func Compile(source []byte, sourceFile string) (*StringInterner, *Executable, error) {
	interner, prog, err := Parse(source)
	if err != nil {
		return interner, nil, err
	}
	exec, err := GenerateExecutable(interner, sourceFile, prog)
	if err != nil {
		return interner, nil, err
	}
	return interner, exec, nil
}

// Run executes a compiled Executable, writing `print` output to
// stdout. It returns the VM's allocation stats alongside any runtime
// error encountered.
func Run(exec *Executable, stdout io.Writer) (allocs, deallocs int, err error) {
	vm := NewVM(exec, stdout)
	err = vm.Run()
	allocs, deallocs = vm.Stats()
	return allocs, deallocs, err
}

// CompileAndRun is the convenience entry point used by the end-to-end
// tests: it compiles source and, on success, runs it immediately.
func CompileAndRun(source []byte, sourceFile string, stdout io.Writer) error {
	_, exec, err := Compile(source, sourceFile)
	if err != nil {
		return err
	}
	_, _, err = Run(exec, stdout)
	return err
}
