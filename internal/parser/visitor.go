package parser

type AstVisitor interface {
	VisitProgram(program *Program)
	VisitVariableDeclaration(variableDeclaration *VariableDeclaration)
	VisitAssignment(assignment *Assignment)
	VisitPrintStatement(printStatement *PrintStatement)
	VisitLiteral(literal *Literal)
	VisitVariableReference(variableReference *VariableReference)
	VisitBinaryOperation(binaryOp *BinaryOperation)
}
