package checks

import (
	"fmt"

	"github.com/minilang/minic/internal/ir"
	"github.com/minilang/minic/internal/parser"
)

type VariableChecker struct {
	declaredVars map[string]bool
	errors       []error
}

func NewVariableChecker() *VariableChecker {
	return &VariableChecker{
		declaredVars: make(map[string]bool),
		errors:       []error{},
	}
}

func (c *VariableChecker) Success() bool {
	return len(c.errors) == 0
}

func (c *VariableChecker) Errors() []error {
	return c.errors
}

func (c *VariableChecker) VisitProgram(program *parser.Program) {
	for _, stmt := range program.Statements {
		stmt.Accept(c)
	}
}

func (c *VariableChecker) VisitVariableDeclaration(decl *parser.VariableDeclaration) {
	// The initializer is checked first: it may not reference the variable
	// being declared.
	decl.Value.Accept(c)

	if c.declaredVars[decl.Name] {
		c.errors = append(c.errors, fmt.Errorf("variable %s is already declared", decl.Name))
		return
	}
	if ir.IsTemp(decl.Name) {
		c.errors = append(c.errors, fmt.Errorf("variable name %s is reserved for compiler temporaries", decl.Name))
		return
	}
	c.declaredVars[decl.Name] = true
}

func (c *VariableChecker) VisitAssignment(assignment *parser.Assignment) {
	if !c.declaredVars[assignment.VariableName] {
		c.errors = append(c.errors, fmt.Errorf("variable %s is not declared before assignment", assignment.VariableName))
	}
	assignment.Value.Accept(c)
}

func (c *VariableChecker) VisitPrintStatement(printStatement *parser.PrintStatement) {
	printStatement.Value.Accept(c)
}

func (c *VariableChecker) VisitLiteral(literal *parser.Literal) {
	// noop
}

func (c *VariableChecker) VisitVariableReference(ref *parser.VariableReference) {
	if !c.declaredVars[ref.Name] {
		c.errors = append(c.errors, fmt.Errorf("variable %s is not declared before reference", ref.Name))
	}
}

func (c *VariableChecker) VisitBinaryOperation(binOp *parser.BinaryOperation) {
	binOp.Left.Accept(c)
	binOp.Right.Accept(c)
}
