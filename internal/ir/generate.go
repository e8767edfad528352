package ir

import (
	"errors"
	"fmt"

	"github.com/minilang/minic/internal/parser"
)

// ErrUnsupportedConstruct is returned when the syntax tree contains a node
// kind outside the supported language subset.
var ErrUnsupportedConstruct = errors.New("unsupported construct")

type irContext struct {
	nextTempIndex int
}

func (ic *irContext) allocTemp() string {
	ic.nextTempIndex++
	return fmt.Sprintf("t%d", ic.nextTempIndex)
}

// Generate translates a syntax tree into a flat instruction sequence.
// Statements are lowered in order; each statement's expression is lowered
// post-order before the statement's own effect instruction.
func Generate(program *parser.Program) ([]Instruction, error) {
	ic := &irContext{}
	insns := []Instruction{}
	for _, stmt := range program.Statements {
		stmtInsns, err := generateStatementInstructions(ic, stmt)
		if err != nil {
			return nil, err
		}
		insns = append(insns, stmtInsns...)
	}
	return insns, nil
}

func generateStatementInstructions(ic *irContext, stmt parser.Statement) ([]Instruction, error) {
	if stmt.VariableDeclaration != nil {
		return generateAssignmentInstructions(ic, stmt.VariableDeclaration.Name, stmt.VariableDeclaration.Value)
	} else if stmt.Assignment != nil {
		return generateAssignmentInstructions(ic, stmt.Assignment.VariableName, stmt.Assignment.Value)
	} else if stmt.PrintStatement != nil {
		insns, arg, err := generateExpressionInstructions(ic, stmt.PrintStatement.Value)
		if err != nil {
			return nil, err
		}
		return append(insns, Instruction{Op: PRINT, Args: []Arg{arg}}), nil
	}
	return nil, fmt.Errorf("%w: unknown statement %v", ErrUnsupportedConstruct, stmt)
}

// generateAssignmentInstructions lowers a write into a named symbol.
// When the right-hand side is a single binary expression, the arithmetic
// instruction targets the symbol directly and the redundant MOV from a
// temporary is skipped.
func generateAssignmentInstructions(ic *irContext, target string, expr parser.Expression) ([]Instruction, error) {
	if expr.BinaryOperation != nil {
		binop := expr.BinaryOperation
		insns, leftArg, rightArg, err := generateBinaryOperandInstructions(ic, binop)
		if err != nil {
			return nil, err
		}
		op, err := opcodeForOperator(binop.Operator)
		if err != nil {
			return nil, err
		}
		return append(insns, Instruction{Op: op, Dest: target, Args: []Arg{leftArg, rightArg}}), nil
	}

	insns, arg, err := generateExpressionInstructions(ic, expr)
	if err != nil {
		return nil, err
	}
	return append(insns, Instruction{Op: MOV, Dest: target, Args: []Arg{arg}}), nil
}

func generateExpressionInstructions(ic *irContext, expr parser.Expression) ([]Instruction, Arg, error) {
	if expr.Literal != nil {
		if expr.Literal.IntValue != nil {
			return []Instruction{}, Arg{LiteralInt: expr.Literal.IntValue}, nil
		}
		return nil, Arg{}, fmt.Errorf("%w: invalid literal %v", ErrUnsupportedConstruct, expr.Literal)
	} else if expr.VariableReference != nil {
		return []Instruction{}, Arg{Variable: expr.VariableReference.Name}, nil
	} else if expr.BinaryOperation != nil {
		binop := expr.BinaryOperation
		insns, leftArg, rightArg, err := generateBinaryOperandInstructions(ic, binop)
		if err != nil {
			return nil, Arg{}, err
		}
		op, err := opcodeForOperator(binop.Operator)
		if err != nil {
			return nil, Arg{}, err
		}
		temp := ic.allocTemp()
		insns = append(insns, Instruction{Op: op, Dest: temp, Args: []Arg{leftArg, rightArg}})
		return insns, Arg{Variable: temp}, nil
	}
	return nil, Arg{}, fmt.Errorf("%w: unknown expression %v", ErrUnsupportedConstruct, expr)
}

func generateBinaryOperandInstructions(ic *irContext, binop *parser.BinaryOperation) ([]Instruction, Arg, Arg, error) {
	leftInsns, leftArg, err := generateExpressionInstructions(ic, binop.Left)
	if err != nil {
		return nil, Arg{}, Arg{}, err
	}
	rightInsns, rightArg, err := generateExpressionInstructions(ic, binop.Right)
	if err != nil {
		return nil, Arg{}, Arg{}, err
	}
	return append(leftInsns, rightInsns...), leftArg, rightArg, nil
}

func opcodeForOperator(operator string) (Opcode, error) {
	switch operator {
	case "+":
		return ADD, nil
	case "-":
		return SUB, nil
	case "*":
		return MUL, nil
	case "/":
		return DIV, nil
	}
	return 0, fmt.Errorf("%w: operator %q", ErrUnsupportedConstruct, operator)
}
