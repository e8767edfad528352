package parser

import (
	"fmt"
	"strconv"

	"github.com/minilang/minic/internal/lexer"
)

type Parser struct {
	lexer   *lexer.Lexer
	lexemes []lexer.Lexeme
	pos     int
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lexer: lex}
}

func (p *Parser) consume() (lexer.Lexeme, error) {
	if p.pos >= len(p.lexemes) {
		lex, err := p.lexer.Next()
		if err != nil {
			return lexer.Lexeme{}, err
		}
		p.lexemes = append(p.lexemes, lex)
	}
	lex := p.lexemes[p.pos]
	p.pos++
	return lex, nil
}

func (p *Parser) peek() (lexer.Lexeme, error) {
	if p.pos >= len(p.lexemes) {
		lex, err := p.lexer.Next()
		if err != nil {
			return lexer.Lexeme{}, err
		}
		p.lexemes = append(p.lexemes, lex)
	}
	return p.lexemes[p.pos], nil
}

func (p *Parser) expectOperator(op string) error {
	lex, err := p.consume()
	if err != nil {
		return err
	}
	if !lex.IsOperator(op) {
		return fmt.Errorf("expected %q, got %v", op, lex)
	}
	return nil
}

func (p *Parser) expectPunctuation(punct string) error {
	lex, err := p.consume()
	if err != nil {
		return err
	}
	if !lex.IsPunctuation(punct) {
		return fmt.Errorf("expected %q, got %v", punct, lex)
	}
	return nil
}

func (p *Parser) ParseProgram() (*Program, error) {
	statements := []Statement{}
	for {
		lex, err := p.peek()
		if err != nil {
			return nil, err
		}
		if lex.Type == lexer.LEX_EOF {
			break
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return &Program{Statements: statements}, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	lex, err := p.peek()
	if err != nil {
		return Statement{}, err
	}

	switch {
	case lex.IsKeyword("int"):
		decl, err := p.parseVariableDeclaration()
		if err != nil {
			return Statement{}, err
		}
		return Statement{VariableDeclaration: decl}, nil
	case lex.IsKeyword("print"):
		printStmt, err := p.parsePrintStatement()
		if err != nil {
			return Statement{}, err
		}
		return Statement{PrintStatement: printStmt}, nil
	case lex.Type == lexer.LEX_IDENT:
		assignment, err := p.parseAssignment()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Assignment: assignment}, nil
	}
	return Statement{}, fmt.Errorf("expected statement, got %v at line %d", lex, lex.Line)
}

func (p *Parser) parseVariableDeclaration() (*VariableDeclaration, error) {
	// "int" keyword, already peeked
	if _, err := p.consume(); err != nil {
		return nil, err
	}

	lex, err := p.consume()
	if err != nil {
		return nil, err
	}
	if lex.Type != lexer.LEX_IDENT {
		return nil, fmt.Errorf("expected variable name, got %v", lex)
	}
	name := lex.Str

	// A declaration without an initializer defaults to zero.
	lex, err = p.peek()
	if err != nil {
		return nil, err
	}
	if lex.IsPunctuation(";") {
		if _, err := p.consume(); err != nil {
			return nil, err
		}
		return &VariableDeclaration{Name: name, Value: Expression{Literal: NewIntLiteral(0)}}, nil
	}

	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &VariableDeclaration{Name: name, Value: value}, nil
}

func (p *Parser) parseAssignment() (*Assignment, error) {
	lex, err := p.consume()
	if err != nil {
		return nil, err
	}
	name := lex.Str

	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &Assignment{VariableName: name, Value: value}, nil
}

func (p *Parser) parsePrintStatement() (*PrintStatement, error) {
	// "print" keyword, already peeked
	if _, err := p.consume(); err != nil {
		return nil, err
	}

	if err := p.expectPunctuation("("); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}
	return &PrintStatement{Value: value}, nil
}

func (p *Parser) parseExpression() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return Expression{}, err
	}

	for {
		lex, err := p.peek()
		if err != nil {
			return Expression{}, err
		}
		if !lex.IsOperator("+") && !lex.IsOperator("-") {
			break
		}
		if _, err := p.consume(); err != nil {
			return Expression{}, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return Expression{}, err
		}
		left = Expression{BinaryOperation: &BinaryOperation{
			Operator: lex.Str,
			Left:     left,
			Right:    right,
		}}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return Expression{}, err
	}

	for {
		lex, err := p.peek()
		if err != nil {
			return Expression{}, err
		}
		if !lex.IsOperator("*") && !lex.IsOperator("/") {
			break
		}
		if _, err := p.consume(); err != nil {
			return Expression{}, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return Expression{}, err
		}
		left = Expression{BinaryOperation: &BinaryOperation{
			Operator: lex.Str,
			Left:     left,
			Right:    right,
		}}
	}
	return left, nil
}

func (p *Parser) parseFactor() (Expression, error) {
	lex, err := p.consume()
	if err != nil {
		return Expression{}, err
	}

	switch {
	case lex.Type == lexer.LEX_NUMBER:
		value, err := strconv.ParseInt(lex.Str, 10, 64)
		if err != nil {
			return Expression{}, fmt.Errorf("invalid integer literal %q at line %d", lex.Str, lex.Line)
		}
		return Expression{Literal: &Literal{IntValue: &value}}, nil
	case lex.Type == lexer.LEX_IDENT:
		return Expression{VariableReference: &VariableReference{Name: lex.Str}}, nil
	case lex.IsPunctuation("("):
		expr, err := p.parseExpression()
		if err != nil {
			return Expression{}, err
		}
		if err := p.expectPunctuation(")"); err != nil {
			return Expression{}, err
		}
		return expr, nil
	}
	return Expression{}, fmt.Errorf("expected expression, got %v at line %d", lex, lex.Line)
}
