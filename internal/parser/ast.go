package parser

import (
	"fmt"
	"strings"
)

type AstNode interface {
	fmt.Stringer
	Accept(visitor AstVisitor)
}

type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("(program")
	for _, stmt := range p.Statements {
		sb.WriteString(" ")
		sb.WriteString(stmt.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (p *Program) Accept(visitor AstVisitor) {
	visitor.VisitProgram(p)
}

type Statement struct {
	VariableDeclaration *VariableDeclaration
	Assignment          *Assignment
	PrintStatement      *PrintStatement
}

func (s Statement) String() string {
	if s.VariableDeclaration != nil {
		return s.VariableDeclaration.String()
	} else if s.Assignment != nil {
		return s.Assignment.String()
	} else if s.PrintStatement != nil {
		return s.PrintStatement.String()
	}
	return "(invalid-statement)"
}

func (s Statement) Accept(visitor AstVisitor) {
	if s.VariableDeclaration != nil {
		visitor.VisitVariableDeclaration(s.VariableDeclaration)
	} else if s.Assignment != nil {
		visitor.VisitAssignment(s.Assignment)
	} else if s.PrintStatement != nil {
		visitor.VisitPrintStatement(s.PrintStatement)
	}
}

type VariableDeclaration struct {
	Name  string
	Value Expression
}

func (d *VariableDeclaration) String() string {
	return fmt.Sprintf("(decl %s %s)", d.Name, d.Value)
}

func (d *VariableDeclaration) Accept(visitor AstVisitor) {
	visitor.VisitVariableDeclaration(d)
}

type Assignment struct {
	VariableName string
	Value        Expression
}

func (a *Assignment) String() string {
	return fmt.Sprintf("(assign %s %s)", a.VariableName, a.Value)
}

func (a *Assignment) Accept(visitor AstVisitor) {
	visitor.VisitAssignment(a)
}

type PrintStatement struct {
	Value Expression
}

func (p *PrintStatement) String() string {
	return fmt.Sprintf("(print %s)", p.Value)
}

func (p *PrintStatement) Accept(visitor AstVisitor) {
	visitor.VisitPrintStatement(p)
}

type Expression struct {
	Literal           *Literal
	VariableReference *VariableReference
	BinaryOperation   *BinaryOperation
}

func (e Expression) String() string {
	if e.Literal != nil {
		return e.Literal.String()
	} else if e.VariableReference != nil {
		return e.VariableReference.String()
	} else if e.BinaryOperation != nil {
		return e.BinaryOperation.String()
	}
	return "(invalid-expression)"
}

func (e Expression) Accept(visitor AstVisitor) {
	if e.Literal != nil {
		visitor.VisitLiteral(e.Literal)
	} else if e.VariableReference != nil {
		visitor.VisitVariableReference(e.VariableReference)
	} else if e.BinaryOperation != nil {
		visitor.VisitBinaryOperation(e.BinaryOperation)
	}
}

type Literal struct {
	IntValue *int64
}

func NewIntLiteral(value int64) *Literal {
	return &Literal{IntValue: &value}
}

func (l *Literal) String() string {
	if l.IntValue != nil {
		return fmt.Sprintf("%d", *l.IntValue)
	}
	return "(invalid-literal)"
}

func (l *Literal) Accept(visitor AstVisitor) {
	visitor.VisitLiteral(l)
}

type VariableReference struct {
	Name string
}

func (r *VariableReference) String() string {
	return r.Name
}

func (r *VariableReference) Accept(visitor AstVisitor) {
	visitor.VisitVariableReference(r)
}

type BinaryOperation struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Operator, b.Left, b.Right)
}

func (b *BinaryOperation) Accept(visitor AstVisitor) {
	visitor.VisitBinaryOperation(b)
}
