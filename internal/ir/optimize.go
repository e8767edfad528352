package ir

import "fmt"

type DiagnosticKind int

const (
	// DivisionByZeroRisk marks a DIV whose right operand is a known
	// constant zero. The fold is skipped and the instruction kept as is.
	DivisionByZeroRisk DiagnosticKind = iota
)

func (k DiagnosticKind) String() string {
	switch k {
	case DivisionByZeroRisk:
		return "DivisionByZeroRisk"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is a non-fatal finding recorded by the optimizer.
type Diagnostic struct {
	Kind  DiagnosticKind
	Index int // index of the instruction in the input sequence
	Instr Instruction
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at instruction %d: %s", d.Kind, d.Index, d.Instr)
}

// Optimize returns a behavior-preserving, no-larger instruction sequence.
// Passes run in fixed order: constant folding, then dead code elimination.
// The input sequence is never mutated; each pass produces a new sequence.
func Optimize(insns []Instruction) ([]Instruction, []Diagnostic) {
	folded, diags := foldConstants(insns)
	return removeDeadCode(folded), diags
}

type optimizationContext struct {
	// Values known at compile time.
	knownValues map[string]int64
}

func newOptimizationContext() *optimizationContext {
	return &optimizationContext{
		knownValues: make(map[string]int64),
	}
}

func (oc *optimizationContext) addKnownValue(varname string, value int64) {
	oc.knownValues[varname] = value
}

func (oc *optimizationContext) getKnownValue(varname string) (int64, bool) {
	value, ok := oc.knownValues[varname]
	return value, ok
}

func (oc *optimizationContext) invalidateKnownValue(varname string) {
	delete(oc.knownValues, varname)
}

// foldConstants rewrites arithmetic over known-constant operands into a MOV
// of the computed value. Known values are tracked in a single forward scan;
// a symbol's entry is invalidated the moment the symbol is assigned from a
// non-constant source. Folding is best-effort: a DIV by constant zero is
// left unfolded and recorded as a diagnostic.
func foldConstants(insns []Instruction) ([]Instruction, []Diagnostic) {
	oc := newOptimizationContext()

	result := make([]Instruction, 0, len(insns))
	var diags []Diagnostic
	for i, insn := range insns {
		switch insn.Op {
		case MOV:
			if value, ok := evalArg(oc, insn.Args[0]); ok {
				oc.addKnownValue(insn.Dest, value)
			} else {
				oc.invalidateKnownValue(insn.Dest)
			}
		case ADD, SUB, MUL, DIV:
			left, leftOk := evalArg(oc, insn.Args[0])
			right, rightOk := evalArg(oc, insn.Args[1])
			if leftOk && rightOk {
				if insn.Op == DIV && right == 0 {
					diags = append(diags, Diagnostic{Kind: DivisionByZeroRisk, Index: i, Instr: insn})
					oc.invalidateKnownValue(insn.Dest)
				} else {
					value := evalBinaryOp(insn.Op, left, right)
					oc.addKnownValue(insn.Dest, value)
					insn = Instruction{Op: MOV, Dest: insn.Dest, Args: []Arg{{LiteralInt: &value}}}
				}
			} else {
				oc.invalidateKnownValue(insn.Dest)
			}
		case PRINT:
			// No destination, nothing to track.
		}
		result = append(result, insn)
	}
	return result, diags
}

func evalArg(oc *optimizationContext, arg Arg) (int64, bool) {
	if arg.Variable != "" {
		return oc.getKnownValue(arg.Variable)
	}
	if arg.LiteralInt != nil {
		return *arg.LiteralInt, true
	}
	return 0, false
}

func evalBinaryOp(op Opcode, left, right int64) int64 {
	switch op {
	case ADD:
		return left + right
	case SUB:
		return left - right
	case MUL:
		return left * right
	case DIV:
		return left / right
	}
	panic(fmt.Sprintf("not an arithmetic opcode: %v", op))
}

// removeDeadCode drops instructions whose destination is never subsequently
// read, via a single backward liveness scan. The live set is seeded with
// every symbol referenced by a PRINT and every declared (non-temporary)
// destination: printed values and final values of declared variables are the
// program's observable state. PRINT instructions are always kept. Order is
// preserved; instructions are filtered, never reordered.
func removeDeadCode(insns []Instruction) []Instruction {
	live := make(map[string]bool)
	for _, insn := range insns {
		if insn.Dest != "" && !IsTemp(insn.Dest) {
			live[insn.Dest] = true
		}
		if insn.Op == PRINT {
			for _, arg := range insn.Args {
				if arg.Variable != "" {
					live[arg.Variable] = true
				}
			}
		}
	}

	kept := make([]bool, len(insns))
	for i := len(insns) - 1; i >= 0; i-- {
		insn := insns[i]
		if insn.Op != PRINT && !live[insn.Dest] {
			continue
		}
		kept[i] = true
		if insn.Dest != "" {
			// This write satisfies the liveness of its destination.
			delete(live, insn.Dest)
		}
		for _, arg := range insn.Args {
			if arg.Variable != "" {
				live[arg.Variable] = true
			}
		}
	}

	result := []Instruction{}
	for i, insn := range insns {
		if kept[i] {
			result = append(result, insn)
		}
	}
	return result
}
