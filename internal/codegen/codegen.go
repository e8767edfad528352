// Package codegen renders an instruction sequence into the textual target
// form: one instruction per line, uppercase opcode, destination first,
// operands comma-separated. This text is the interchange format consumed by
// the interpreter and must round-trip through interp.Parse.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/minilang/minic/internal/ir"
)

// Render returns the target text for the sequence, lines joined by a single
// newline with no trailing newline.
func Render(insns []ir.Instruction) string {
	lines := make([]string, len(insns))
	for i, insn := range insns {
		lines[i] = formatInstruction(insn)
	}
	return strings.Join(lines, "\n")
}

// Generate writes the target text to out, one newline-terminated line per
// instruction.
func Generate(out io.Writer, insns []ir.Instruction) error {
	for _, insn := range insns {
		if _, err := fmt.Fprintf(out, "%s\n", formatInstruction(insn)); err != nil {
			return err
		}
	}
	return nil
}

func formatInstruction(insn ir.Instruction) string {
	parts := []string{}
	if insn.Dest != "" {
		parts = append(parts, insn.Dest)
	}
	for _, arg := range insn.Args {
		parts = append(parts, arg.String())
	}
	return fmt.Sprintf("%s %s", insn.Op, strings.Join(parts, ", "))
}
