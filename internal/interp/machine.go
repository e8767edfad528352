// Package interp executes textual target code against a mutable symbol
// table, accumulating printed output. Execution is strictly linear: no jumps
// exist in the instruction set, so the program counter only ever advances.
package interp

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/minilang/minic/internal/ir"
)

var (
	// ErrUndefinedSymbol is returned when an instruction reads a symbol
	// that has not been written yet.
	ErrUndefinedSymbol = errors.New("undefined symbol")
	// ErrDivisionByZero is returned when DIV's right operand evaluates to
	// zero at runtime.
	ErrDivisionByZero = errors.New("division by zero")
)

type Machine struct {
	symbols map[string]int64
	output  []int64
	pc      int
}

func NewMachine() *Machine {
	return &Machine{
		symbols: make(map[string]int64),
		output:  []int64{},
	}
}

// Execute parses the target text and runs it. On error, execution halts at
// the offending instruction; the symbol table and output accumulated so far
// remain inspectable.
func (m *Machine) Execute(text string) error {
	insns, err := Parse(text)
	if err != nil {
		return err
	}
	return m.Run(insns)
}

// Run executes an already-parsed instruction sequence.
func (m *Machine) Run(insns []ir.Instruction) error {
	for m.pc = 0; m.pc < len(insns); m.pc++ {
		if err := m.step(insns[m.pc]); err != nil {
			return fmt.Errorf("instruction %d: %w", m.pc, err)
		}
	}
	return nil
}

func (m *Machine) step(insn ir.Instruction) error {
	if err := insn.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
	}

	switch insn.Op {
	case ir.MOV:
		value, err := m.resolve(insn.Args[0])
		if err != nil {
			return err
		}
		m.symbols[insn.Dest] = value
	case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
		left, err := m.resolve(insn.Args[0])
		if err != nil {
			return err
		}
		right, err := m.resolve(insn.Args[1])
		if err != nil {
			return err
		}
		if insn.Op == ir.DIV && right == 0 {
			return fmt.Errorf("%w: %s", ErrDivisionByZero, insn)
		}
		m.symbols[insn.Dest] = applyArithmetic(insn.Op, left, right)
	case ir.PRINT:
		value, err := m.resolve(insn.Args[0])
		if err != nil {
			return err
		}
		m.output = append(m.output, value)
	}
	return nil
}

func (m *Machine) resolve(arg ir.Arg) (int64, error) {
	if arg.Variable != "" {
		value, ok := m.symbols[arg.Variable]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUndefinedSymbol, arg.Variable)
		}
		return value, nil
	}
	if arg.LiteralInt != nil {
		return *arg.LiteralInt, nil
	}
	return 0, fmt.Errorf("%w: empty operand", ErrMalformedInstruction)
}

func applyArithmetic(op ir.Opcode, left, right int64) int64 {
	switch op {
	case ir.ADD:
		return left + right
	case ir.SUB:
		return left - right
	case ir.MUL:
		return left * right
	case ir.DIV:
		return left / right
	}
	panic(fmt.Sprintf("not an arithmetic opcode: %v", op))
}

// Symbols returns a copy of the symbol table.
func (m *Machine) Symbols() map[string]int64 {
	return maps.Clone(m.symbols)
}

// Output returns the printed values in execution order.
func (m *Machine) Output() []int64 {
	return slices.Clone(m.output)
}
