package cahn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, source string) *Executable {
	t.Helper()
	_, exec, err := Compile([]byte(source), "<test>")
	require.NoError(t, err)
	return exec
}

// |code_map| == |code| in every function (spec.md §8 universal invariant).
func TestCodegenCodeMapMatchesCodeLength(t *testing.T) {
	exec := compileSource(t, `
let x := 1
let y := [1, 2, 3]
if x < y[0] {
  print "a"
} else {
  print "b"
}
while x < 3 {
  x := x + 1
}
print x .. "done"
`)
	for i, fn := range exec.Functions {
		assert.Equal(t, len(fn.Code), len(fn.CodeMap), "function %d: code/codeMap length mismatch", i)
	}
}

func TestCodegenNumberLiteralEncoding(t *testing.T) {
	tests := []struct {
		name string
		src  string
		op   Opcode
	}{
		{"zero", "print 0", OpLoadLitNum},
		{"max narrow", "print 255", OpLoadLitNum},
		{"just over narrow", "print 256", OpLoadConstNum},
		{"fractional", "print 0.5", OpLoadConstNum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := compileSource(t, tt.src)
			code := exec.Main().Code
			require.NotEmpty(t, code)
			assert.Equal(t, tt.op, Opcode(code[0]))
		})
	}
}

func TestCodegenEmptyListEmitsNoPush(t *testing.T) {
	exec := compileSource(t, "print []")
	code := exec.Main().Code
	require.GreaterOrEqual(t, len(code), 1)
	assert.Equal(t, OpCreateList, Opcode(code[0]))
	for _, b := range code {
		assert.NotEqual(t, byte(OpListPush), b, "zero-element list must not emit ListPush")
	}
}

// Closing an inner scope pops every local it declared (spec.md §8
// universal invariant: balanced scope-enter/scope-exit). `b` must be
// popped before `print a` runs, and the resulting program carries no
// net stack growth once both lets have gone out of scope.
func TestCodegenScopeBalanceAtTopLevel(t *testing.T) {
	exec := compileSource(t, `
let a := 1
{
  let b := 2
  print b
}
print a
`)
	code := exec.Main().Code
	pops := 0
	for i := 0; i < len(code); {
		op := Opcode(code[i])
		if op == OpPop {
			pops++
		}
		i += InstructionSize(op)
	}
	assert.Equal(t, 2, pops, "the inner block pops b and the top-level scope pops a: one Pop each")
}

func TestCodegenUnresolvedVariable(t *testing.T) {
	_, _, err := Compile([]byte("print unknown_name"), "<test>")
	require.Error(t, err)
	ce, ok := err.(CodegenError)
	require.True(t, ok)
	assert.Equal(t, UnresolvedVariable, ce.Kind)
}

func TestCodegenInvalidAssignmentTarget(t *testing.T) {
	_, _, err := Compile([]byte("1 := 2"), "<test>")
	require.Error(t, err)
	ce, ok := err.(CodegenError)
	require.True(t, ok)
	assert.Equal(t, InvalidAssignmentTarget, ce.Kind)
}

func TestCodegenFnDeclIsUnsupported(t *testing.T) {
	_, _, err := Compile([]byte("fn f() { return 1 }"), "<test>")
	require.Error(t, err)
	_, ok := err.(CodegenError)
	assert.True(t, ok)
}

func TestCodegenStringLiteralDedup(t *testing.T) {
	exec := compileSource(t, `print "same"
print "same"`)
	assert.Len(t, exec.Strings, 1, "two occurrences of the same literal content share one StringRef")
}

func TestCodegenNumericConstantDedup(t *testing.T) {
	exec := compileSource(t, "print 0.5\nprint 0.5")
	assert.Len(t, exec.NumConsts, 1)
}

func TestCodegenLocalWideIndex(t *testing.T) {
	var src string
	for i := 0; i < 300; i++ {
		src += "let v := 1\n"
	}
	src += "print v"
	exec := compileSource(t, src)
	code := exec.Main().Code
	found := false
	for i := 0; i < len(code); {
		op := Opcode(code[i])
		if op == OpGetLocalW {
			found = true
		}
		i += InstructionSize(op)
	}
	assert.True(t, found, "a local at index >= 256 must use the wide GetLocal opcode")
}

func TestCodegenExponentAndFloorDivSupported(t *testing.T) {
	exec := compileSource(t, "print 2 ** 3\nprint 7 // 2")
	code := exec.Main().Code
	hasPow, hasFloor := false, false
	for i := 0; i < len(code); {
		op := Opcode(code[i])
		if op == OpPow {
			hasPow = true
		}
		if op == OpFloorDiv {
			hasFloor = true
		}
		i += InstructionSize(op)
	}
	assert.True(t, hasPow)
	assert.True(t, hasFloor)
}
