package cahn

import "fmt"

// CodeMap attributes a source Position to every single byte of a
// Function's code, so runtime errors can point back at a line and
// column instead of a raw offset. len(CodeMap) == len(Code) always; an
// operand byte carries the same Position as the opcode byte it belongs
// to.

// FunctionName distinguishes the implicit top-level script function
// from named, user-declared ones. Only Anonymous is ever produced
// today (FnDecl codegen is reserved) but the type stays closed so a
// future codegen pass has a home for it.
type FunctionName struct {
	IsAnonymous bool
	Start, End  int // byte range of the name in StringData, when named
}

func AnonymousFunctionName() FunctionName { return FunctionName{IsAnonymous: true} }

func (n FunctionName) String(exec *Executable) string {
	if n.IsAnonymous {
		return "<anonymous>"
	}
	return string(exec.StringData[n.Start:n.End])
}

// Function is one compiled function body: its bytecode, a per-byte
// source map for diagnostics, its declared parameter count and a name
// used only for disassembly.
type Function struct {
	Name       FunctionName
	ParamCount int
	Code       []byte
	CodeMap    []Position
}

// PosAt returns the Position attributed to the byte at offset ip.
func (f *Function) PosAt(ip int) Position {
	return f.CodeMap[ip]
}

// Executable is everything the VM needs to run a compiled program:
// the numeric constant pool, the raw string-literal byte blob, the
// function table (top-level script appended last, by convention) and
// the originating file name for diagnostics.
type Executable struct {
	SourceFile string
	NumConsts  []float64
	StringData []byte
	Strings    []StringRef
	Functions  []*Function
}

// MainIndex returns the index of the implicitly-invoked top-level
// script function, which codegen always appends last.
func (e *Executable) MainIndex() int {
	return len(e.Functions) - 1
}

func (e *Executable) Main() *Function {
	return e.Functions[e.MainIndex()]
}

// Disassemble renders exec's bytecode as a flat, human-readable
// listing, one instruction per line. It is the backing implementation
// for the driver's --dump-bytecode flag.
func Disassemble(exec *Executable) string {
	out := ""
	for fi, fn := range exec.Functions {
		out += fmt.Sprintf("== function %d (%s) ==\n", fi, fn.Name.String(exec))
		ip := 0
		for ip < len(fn.Code) {
			op := Opcode(fn.Code[ip])
			size := InstructionSize(op)
			out += fmt.Sprintf("%04d  %-24s", ip, op)
			for j := 1; j < size; j++ {
				if ip+j < len(fn.Code) {
					out += fmt.Sprintf(" %02x", fn.Code[ip+j])
				}
			}
			out += "\n"
			ip += size
		}
	}
	return out
}
