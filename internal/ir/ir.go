package ir

import (
	"fmt"
	"strings"
)

/*
Intermediate representation for Mini. This sits between the AST and the
textual target code. The IR is a flat sequence of three-address instructions
with no control flow.

Supported opcodes:
 * MOV dest, src    - assign a value to a symbol.
 * ADD dest, a, b   - integer addition.
 * SUB dest, a, b   - integer subtraction.
 * MUL dest, a, b   - integer multiplication.
 * DIV dest, a, b   - integer division.
 * PRINT src        - print a value; the only instruction without a destination.
*/

type Opcode int

const (
	MOV Opcode = iota
	ADD
	SUB
	MUL
	DIV
	PRINT
)

func (o Opcode) String() string {
	switch o {
	case MOV:
		return "MOV"
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case MUL:
		return "MUL"
	case DIV:
		return "DIV"
	case PRINT:
		return "PRINT"
	default:
		return "UNKNOWN"
	}
}

func OpcodeFromName(name string) (Opcode, bool) {
	switch name {
	case "MOV":
		return MOV, true
	case "ADD":
		return ADD, true
	case "SUB":
		return SUB, true
	case "MUL":
		return MUL, true
	case "DIV":
		return DIV, true
	case "PRINT":
		return PRINT, true
	}
	return 0, false
}

// IsTemp reports whether a symbol name is a generator-allocated temporary.
// Temporaries are named "t1", "t2", ... and are written exactly once.
func IsTemp(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type Arg struct {
	Variable   string
	LiteralInt *int64
}

func (a Arg) String() string {
	if a.Variable != "" {
		return a.Variable
	} else if a.LiteralInt != nil {
		return fmt.Sprintf("%d", *a.LiteralInt)
	}
	panic(fmt.Sprintf("invalid arg value: %#v", a))
}

type Instruction struct {
	Op   Opcode
	Dest string
	Args []Arg
}

func (i Instruction) String() string {
	parts := []string{}
	if i.Dest != "" {
		parts = append(parts, i.Dest)
	}
	for _, arg := range i.Args {
		parts = append(parts, arg.String())
	}
	return fmt.Sprintf("%s(%s)", i.Op, strings.Join(parts, ", "))
}

// Validate checks the opcode's operand-count invariant:
// arithmetic has one destination and two operands, MOV one destination and
// one operand, PRINT one operand and no destination.
func (i Instruction) Validate() error {
	switch i.Op {
	case MOV:
		if i.Dest == "" || len(i.Args) != 1 {
			return fmt.Errorf("MOV requires a destination and one operand, got %s", i)
		}
	case ADD, SUB, MUL, DIV:
		if i.Dest == "" || len(i.Args) != 2 {
			return fmt.Errorf("%s requires a destination and two operands, got %s", i.Op, i)
		}
	case PRINT:
		if i.Dest != "" || len(i.Args) != 1 {
			return fmt.Errorf("PRINT requires one operand and no destination, got %s", i)
		}
	default:
		return fmt.Errorf("unknown opcode %d", i.Op)
	}
	return nil
}
