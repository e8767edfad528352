package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/minilang/minic/internal/lexer"
)

func parseString(t *testing.T, input string) (*Program, error) {
	t.Helper()
	return New(lexer.New(strings.NewReader(input))).ParseProgram()
}

func TestParser(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Program
	}{
		{
			name:     "empty program",
			input:    "",
			expected: &Program{Statements: []Statement{}},
		},
		{
			name:  "declaration with literal",
			input: "int x = 5;",
			expected: &Program{Statements: []Statement{
				{VariableDeclaration: &VariableDeclaration{
					Name:  "x",
					Value: Expression{Literal: NewIntLiteral(5)},
				}},
			}},
		},
		{
			name:  "declaration without initializer defaults to zero",
			input: "int x;",
			expected: &Program{Statements: []Statement{
				{VariableDeclaration: &VariableDeclaration{
					Name:  "x",
					Value: Expression{Literal: NewIntLiteral(0)},
				}},
			}},
		},
		{
			name:  "assignment with binary expression",
			input: "x = a + b;",
			expected: &Program{Statements: []Statement{
				{Assignment: &Assignment{
					VariableName: "x",
					Value: Expression{BinaryOperation: &BinaryOperation{
						Operator: "+",
						Left:     Expression{VariableReference: &VariableReference{Name: "a"}},
						Right:    Expression{VariableReference: &VariableReference{Name: "b"}},
					}},
				}},
			}},
		},
		{
			name:  "print statement",
			input: "print(x);",
			expected: &Program{Statements: []Statement{
				{PrintStatement: &PrintStatement{
					Value: Expression{VariableReference: &VariableReference{Name: "x"}},
				}},
			}},
		},
		{
			name:  "operator precedence",
			input: "x = a + b * c;",
			expected: &Program{Statements: []Statement{
				{Assignment: &Assignment{
					VariableName: "x",
					Value: Expression{BinaryOperation: &BinaryOperation{
						Operator: "+",
						Left:     Expression{VariableReference: &VariableReference{Name: "a"}},
						Right: Expression{BinaryOperation: &BinaryOperation{
							Operator: "*",
							Left:     Expression{VariableReference: &VariableReference{Name: "b"}},
							Right:    Expression{VariableReference: &VariableReference{Name: "c"}},
						}},
					}},
				}},
			}},
		},
		{
			name:  "parentheses override precedence",
			input: "x = (a + b) * c;",
			expected: &Program{Statements: []Statement{
				{Assignment: &Assignment{
					VariableName: "x",
					Value: Expression{BinaryOperation: &BinaryOperation{
						Operator: "*",
						Left: Expression{BinaryOperation: &BinaryOperation{
							Operator: "+",
							Left:     Expression{VariableReference: &VariableReference{Name: "a"}},
							Right:    Expression{VariableReference: &VariableReference{Name: "b"}},
						}},
						Right: Expression{VariableReference: &VariableReference{Name: "c"}},
					}},
				}},
			}},
		},
		{
			name:  "left associativity",
			input: "x = a - b - c;",
			expected: &Program{Statements: []Statement{
				{Assignment: &Assignment{
					VariableName: "x",
					Value: Expression{BinaryOperation: &BinaryOperation{
						Operator: "-",
						Left: Expression{BinaryOperation: &BinaryOperation{
							Operator: "-",
							Left:     Expression{VariableReference: &VariableReference{Name: "a"}},
							Right:    Expression{VariableReference: &VariableReference{Name: "b"}},
						}},
						Right: Expression{VariableReference: &VariableReference{Name: "c"}},
					}},
				}},
			}},
		},
		{
			name:  "multiple statements",
			input: "int a = 5;\nint b = 10;\nprint(a + b);",
			expected: &Program{Statements: []Statement{
				{VariableDeclaration: &VariableDeclaration{
					Name:  "a",
					Value: Expression{Literal: NewIntLiteral(5)},
				}},
				{VariableDeclaration: &VariableDeclaration{
					Name:  "b",
					Value: Expression{Literal: NewIntLiteral(10)},
				}},
				{PrintStatement: &PrintStatement{
					Value: Expression{BinaryOperation: &BinaryOperation{
						Operator: "+",
						Left:     Expression{VariableReference: &VariableReference{Name: "a"}},
						Right:    Expression{VariableReference: &VariableReference{Name: "b"}},
					}},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parseString(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(program, tt.expected) {
				t.Errorf("got %v, expected %v", program, tt.expected)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing semicolon", input: "int x = 5"},
		{name: "missing expression", input: "x = ;"},
		{name: "missing close paren", input: "print(x;"},
		{name: "declaration without name", input: "int = 5;"},
		{name: "dangling operator", input: "x = 1 + ;"},
		{name: "statement starting with number", input: "5 = x;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseString(t, tt.input); err == nil {
				t.Errorf("expected an error, got nil")
			}
		})
	}
}

func TestProgramString(t *testing.T) {
	program, err := parseString(t, "int a = 5; a = a - 1; print(a * 2);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "(program (decl a 5) (assign a (- a 1)) (print (* a 2)))"
	if program.String() != expected {
		t.Errorf("got %q, expected %q", program.String(), expected)
	}
}
