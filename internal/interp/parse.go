package interp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/minilang/minic/internal/ir"
)

// ErrMalformedInstruction is returned for a line that cannot be parsed as an
// instruction: unknown opcode, wrong operand count, or invalid operand
// syntax.
var ErrMalformedInstruction = errors.New("malformed instruction")

// Parse reconstructs an instruction sequence from target text. The text is
// one instruction per line; a trailing newline is tolerated, blank lines are
// not. Parse enforces the per-opcode operand invariants even for
// hand-written input.
func Parse(text string) ([]ir.Instruction, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return []ir.Instruction{}, nil
	}

	lines := strings.Split(text, "\n")
	insns := make([]ir.Instruction, 0, len(lines))
	for i, line := range lines {
		insn, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		insns = append(insns, insn)
	}
	return insns, nil
}

func parseLine(line string) (ir.Instruction, error) {
	opName, rest, found := strings.Cut(line, " ")
	if !found || rest == "" {
		return ir.Instruction{}, fmt.Errorf("%w: %q", ErrMalformedInstruction, line)
	}
	op, ok := ir.OpcodeFromName(opName)
	if !ok {
		return ir.Instruction{}, fmt.Errorf("%w: unknown opcode %q", ErrMalformedInstruction, opName)
	}

	fields := strings.Split(rest, ", ")
	args := make([]ir.Arg, 0, len(fields))
	for _, field := range fields {
		arg, err := parseOperand(field)
		if err != nil {
			return ir.Instruction{}, err
		}
		args = append(args, arg)
	}

	insn := ir.Instruction{Op: op, Args: args}
	if op != ir.PRINT {
		// The first field is the destination and must be a symbol name.
		if args[0].Variable == "" {
			return ir.Instruction{}, fmt.Errorf("%w: destination must be a symbol in %q", ErrMalformedInstruction, line)
		}
		insn = ir.Instruction{Op: op, Dest: args[0].Variable, Args: args[1:]}
	}

	if err := insn.Validate(); err != nil {
		return ir.Instruction{}, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
	}
	return insn, nil
}

func parseOperand(field string) (ir.Arg, error) {
	if field == "" {
		return ir.Arg{}, fmt.Errorf("%w: empty operand", ErrMalformedInstruction)
	}
	if isIdentifier(field) {
		return ir.Arg{Variable: field}, nil
	}
	value, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return ir.Arg{}, fmt.Errorf("%w: invalid operand %q", ErrMalformedInstruction, field)
	}
	return ir.Arg{LiteralInt: &value}, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return len(s) > 0
}
