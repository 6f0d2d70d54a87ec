package cahn

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// VM executes one compiled Executable against a single, growable value
// stack. It holds no notion of multiple concurrent calls today: fp is
// fixed at 0 for the whole run because user-defined function calls
// (Invoke/Return) are reserved, not yet emitted by the code generator.
type VM struct {
	exec   *Executable
	stack  []Value
	ip     int
	fp     int
	mem    *MemoryManager
	stdout io.Writer
}

func NewVM(exec *Executable, stdout io.Writer) *VM {
	return &VM{
		exec:   exec,
		mem:    NewMemoryManager(),
		stdout: stdout,
	}
}

// Stats exposes the underlying memory manager's allocation counters.
func (vm *VM) Stats() (allocs, deallocs int) {
	return vm.mem.Stats()
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek() Value {
	return vm.stack[len(vm.stack)-1]
}

// roots returns every Heap value currently reachable from the value
// stack, the root set the memory manager marks from on every
// allocation.
func (vm *VM) roots() []Value {
	out := make([]Value, len(vm.stack))
	copy(out, vm.stack)
	return out
}

// Run invokes the Executable's implicit top-level function. Slot 0 of
// the frame is reserved for the (currently unused) callee value.
func (vm *VM) Run() error {
	defer vm.mem.DeallocAll()
	vm.stack = append(vm.stack[:0], NilValue())
	vm.ip = 0
	vm.fp = 0
	return vm.execFunction(vm.exec.Main())
}

func (vm *VM) execFunction(fn *Function) error {
	code := fn.Code
	vm.ip = 0

	for vm.ip < len(code) {
		op := Opcode(code[vm.ip])
		pos := fn.PosAt(vm.ip)

		switch op {
		case OpLoadStringLiteral:
			idx := binary.LittleEndian.Uint16(code[vm.ip+1:])
			vm.push(StringLitValue(vm.exec.Strings[idx]))
			vm.ip += InstructionSize(op)

		case OpConcat:
			right := vm.pop()
			left := vm.pop()
			ls, lok := stringContent(vm.exec, left)
			rs, rok := stringContent(vm.exec, right)
			if !lok || !rok {
				return newTypeError(pos, "'..' operator expected two strings, but got '%s' and '%s'", left.TypeName(), right.TypeName())
			}
			obj := vm.mem.AllocString(ls+rs, vm.roots())
			vm.push(HeapValue(obj))
			vm.ip += InstructionSize(op)

		case OpLoadConstNum:
			idx := int(code[vm.ip+1])
			vm.push(NumberValue(vm.exec.NumConsts[idx]))
			vm.ip += InstructionSize(op)

		case OpLoadConstNumW:
			idx := int(binary.LittleEndian.Uint16(code[vm.ip+1:]))
			vm.push(NumberValue(vm.exec.NumConsts[idx]))
			vm.ip += InstructionSize(op)

		case OpLoadConstNumWW:
			idx := int(binary.LittleEndian.Uint32(code[vm.ip+1:]))
			vm.push(NumberValue(vm.exec.NumConsts[idx]))
			vm.ip += InstructionSize(op)

		case OpLoadLitNum:
			vm.push(NumberValue(float64(code[vm.ip+1])))
			vm.ip += InstructionSize(op)

		case OpSetLocal:
			idx := vm.fp + int(code[vm.ip+1])
			vm.stack[idx] = vm.pop()
			vm.ip += InstructionSize(op)

		case OpSetLocalW:
			idx := vm.fp + int(binary.LittleEndian.Uint16(code[vm.ip+1:]))
			vm.stack[idx] = vm.pop()
			vm.ip += InstructionSize(op)

		case OpGetLocal:
			idx := vm.fp + int(code[vm.ip+1])
			vm.push(vm.stack[idx])
			vm.ip += InstructionSize(op)

		case OpGetLocalW:
			idx := vm.fp + int(binary.LittleEndian.Uint16(code[vm.ip+1:]))
			vm.push(vm.stack[idx])
			vm.ip += InstructionSize(op)

		case OpLoadTrue:
			vm.push(BoolValue(true))
			vm.ip += InstructionSize(op)

		case OpLoadFalse:
			vm.push(BoolValue(false))
			vm.ip += InstructionSize(op)

		case OpLoadNil:
			vm.push(NilValue())
			vm.ip += InstructionSize(op)

		case OpAdd, OpSub, OpMul, OpDiv, OpFloorDiv, OpModulo, OpPow:
			if err := vm.execArithmetic(op, pos); err != nil {
				return err
			}
			vm.ip += InstructionSize(op)

		case OpNegate:
			v := vm.pop()
			if !v.IsNumber() {
				return newTypeError(pos, "'-' operator expected a number, but got '%s'", v.TypeName())
			}
			vm.push(NumberValue(-v.Number))
			vm.ip += InstructionSize(op)

		case OpNot:
			v := vm.pop()
			vm.push(BoolValue(!v.IsTruthy()))
			vm.ip += InstructionSize(op)

		case OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
			if err := vm.execComparison(op, pos); err != nil {
				return err
			}
			vm.ip += InstructionSize(op)

		case OpEqual:
			right := vm.pop()
			left := vm.pop()
			vm.push(BoolValue(valuesEqual(vm.exec, left, right)))
			vm.ip += InstructionSize(op)

		case OpDup:
			vm.push(vm.peek())
			vm.ip += InstructionSize(op)

		case OpPop:
			vm.pop()
			vm.ip += InstructionSize(op)

		case OpPrint:
			v := vm.pop()
			if _, err := fmt.Fprintln(vm.stdout, Format(vm.exec, v)); err != nil {
				return newWriteError(pos, err)
			}
			vm.ip += InstructionSize(op)

		case OpJump:
			vm.ip = int(binary.LittleEndian.Uint16(code[vm.ip+1:]))

		case OpJumpIfFalse:
			target := int(binary.LittleEndian.Uint16(code[vm.ip+1:]))
			v := vm.pop()
			if !v.IsTruthy() {
				vm.ip = target
			} else {
				vm.ip += InstructionSize(op)
			}

		case OpCreateList:
			obj := vm.mem.AllocList(nil, vm.roots())
			vm.push(HeapValue(obj))
			vm.ip += InstructionSize(op)

		case OpCreateListWithCap:
			cap := int(code[vm.ip+1])
			obj := vm.mem.AllocList(make([]Value, 0, cap), vm.roots())
			vm.push(HeapValue(obj))
			vm.ip += InstructionSize(op)

		case OpCreateListWithCapW:
			cap := int(binary.LittleEndian.Uint16(code[vm.ip+1:]))
			obj := vm.mem.AllocList(make([]Value, 0, cap), vm.roots())
			vm.push(HeapValue(obj))
			vm.ip += InstructionSize(op)

		case OpListPush:
			elem := vm.pop()
			container := vm.pop()
			list, ok := heapList(container)
			if !ok {
				return newTypeError(pos, "expected a list, but got '%s'", container.TypeName())
			}
			list.Elements = append(list.Elements, elem)
			vm.push(container)
			vm.ip += InstructionSize(op)

		case OpListGetIndex:
			indexVal := vm.pop()
			container := vm.pop()
			list, ok := heapList(container)
			if !ok {
				return newTypeError(pos, "expected a list, but got '%s'", container.TypeName())
			}
			if !indexVal.IsNumber() {
				return newTypeError(pos, "list index must be a number, but got '%s'", indexVal.TypeName())
			}
			idx := int(indexVal.Number)
			if idx < 0 || idx >= len(list.Elements) {
				return newIndexOutOfBounds(pos, idx, len(list.Elements))
			}
			vm.push(list.Elements[idx])
			vm.ip += InstructionSize(op)

		case OpLoadFunction, OpInvoke, OpReturn, OpLoadReturnAddress:
			return newTypeError(pos, "%s is not implemented", op)

		default:
			return newTypeError(pos, "unknown opcode %d", op)
		}
	}
	return nil
}

func floorDiv(l, r float64) float64 { return math.Floor(l / r) }
func goMod(l, r float64) float64    { return math.Mod(l, r) }
func powFloat(l, r float64) float64 { return math.Pow(l, r) }

func heapList(v Value) (*HeapList, bool) {
	if v.Kind != ValHeap {
		return nil, false
	}
	list, ok := v.Heap.Payload.(*HeapList)
	return list, ok
}

var arithmeticSymbols = map[Opcode]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpModulo:   "%",
	OpPow:      "**",
}

func (vm *VM) execArithmetic(op Opcode, pos Position) error {
	right := vm.pop()
	left := vm.pop()
	if !left.IsNumber() || !right.IsNumber() {
		return newTypeError(pos, "'%s' operator expected two numbers, but got '%s' and '%s'",
			arithmeticSymbols[op], left.TypeName(), right.TypeName())
	}
	l, r := left.Number, right.Number
	switch op {
	case OpAdd:
		vm.push(NumberValue(l + r))
	case OpSub:
		vm.push(NumberValue(l - r))
	case OpMul:
		vm.push(NumberValue(l * r))
	case OpDiv:
		vm.push(NumberValue(l / r))
	case OpFloorDiv:
		vm.push(NumberValue(floorDiv(l, r)))
	case OpModulo:
		vm.push(NumberValue(goMod(l, r)))
	case OpPow:
		vm.push(NumberValue(powFloat(l, r)))
	}
	return nil
}

var comparisonSymbols = map[Opcode]string{
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
}

func (vm *VM) execComparison(op Opcode, pos Position) error {
	right := vm.pop()
	left := vm.pop()
	if !left.IsNumber() || !right.IsNumber() {
		return newTypeError(pos, "'%s' operator expected two numbers, but got '%s' and '%s'",
			comparisonSymbols[op], left.TypeName(), right.TypeName())
	}
	l, r := left.Number, right.Number
	var result bool
	switch op {
	case OpLessThan:
		result = l < r
	case OpLessThanOrEqual:
		result = l <= r
	case OpGreaterThan:
		result = l > r
	case OpGreaterThanOrEqual:
		result = l >= r
	}
	vm.push(BoolValue(result))
	return nil
}
