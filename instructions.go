package cahn

// Opcode is a single byte identifying one VM instruction. Operand
// widths are fixed per opcode (see operandSizes); the code generator picks
// the narrowest variant that fits an operand and the VM's decode loop
// never needs to guess a width at runtime.
//
// NOTE: the order below is part of the bytecode format. Appending new
// opcodes at the end is safe; reordering existing ones is not.
type Opcode byte

const (
	OpLoadStringLiteral Opcode = iota
	OpConcat

	OpLoadConstNum
	OpLoadConstNumW
	OpLoadConstNumWW
	OpLoadLitNum

	OpSetLocal
	OpSetLocalW
	OpGetLocal
	OpGetLocalW

	OpLoadTrue
	OpLoadFalse
	OpLoadNil

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpPow
	OpModulo
	OpNegate
	OpNot

	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpEqual

	OpDup
	OpPop
	OpPrint

	OpJump
	OpJumpIfFalse

	OpCreateList
	OpCreateListWithCap
	OpCreateListWithCapW
	OpListPush
	OpListGetIndex

	// Reserved: valid bytecode, no codegen emits them yet. A future
	// user-defined-function pass wires these up.
	OpLoadFunction
	OpInvoke
	OpReturn
	OpLoadReturnAddress
)

var opcodeNames = map[Opcode]string{
	OpLoadStringLiteral:  "load_string_literal",
	OpConcat:             "concat",
	OpLoadConstNum:       "load_const_num",
	OpLoadConstNumW:      "load_const_num_w",
	OpLoadConstNumWW:     "load_const_num_ww",
	OpLoadLitNum:         "load_lit_num",
	OpSetLocal:           "set_local",
	OpSetLocalW:          "set_local_w",
	OpGetLocal:           "get_local",
	OpGetLocalW:          "get_local_w",
	OpLoadTrue:           "load_true",
	OpLoadFalse:          "load_false",
	OpLoadNil:            "load_nil",
	OpAdd:                "add",
	OpSub:                "sub",
	OpMul:                "mul",
	OpDiv:                "div",
	OpFloorDiv:           "floor_div",
	OpPow:                "pow",
	OpModulo:             "modulo",
	OpNegate:             "negate",
	OpNot:                "not",
	OpLessThan:           "less_than",
	OpLessThanOrEqual:    "less_than_or_equal",
	OpGreaterThan:        "greater_than",
	OpGreaterThanOrEqual: "greater_than_or_equal",
	OpEqual:              "equal",
	OpDup:                "dup",
	OpPop:                "pop",
	OpPrint:              "print",
	OpJump:               "jump",
	OpJumpIfFalse:        "jump_if_false",
	OpCreateList:         "create_list",
	OpCreateListWithCap:  "create_list_with_cap",
	OpCreateListWithCapW: "create_list_with_cap_w",
	OpListPush:           "list_push",
	OpListGetIndex:       "list_get_index",
	OpLoadFunction:       "load_function",
	OpInvoke:             "invoke",
	OpReturn:             "return",
	OpLoadReturnAddress:  "load_return_address",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

// operandSizes gives the number of operand bytes following each
// opcode byte (0 for opcodes with no operand).
var operandSizes = map[Opcode]int{
	OpLoadStringLiteral:  2,
	OpLoadConstNum:       1,
	OpLoadConstNumW:      2,
	OpLoadConstNumWW:     4,
	OpLoadLitNum:         1,
	OpSetLocal:           1,
	OpSetLocalW:          2,
	OpGetLocal:           1,
	OpGetLocalW:          2,
	OpJump:               2,
	OpJumpIfFalse:        2,
	OpCreateListWithCap:  1,
	OpCreateListWithCapW: 2,
	OpLoadFunction:       2,
	OpInvoke:             1,
	OpLoadReturnAddress:  2,
}

// InstructionSize returns 1 (the opcode byte) plus however many
// operand bytes follow it.
func InstructionSize(op Opcode) int {
	return 1 + operandSizes[op]
}
