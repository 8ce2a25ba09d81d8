package ast

import (
	"fmt"
)

type TokenType byte

const (
	// Math operators
	MINUS TokenType = iota
	PLUS
	SLASH
	STAR

	MINUS_EQUAL
	PLUS_EQUAL

	// Comparison operators
	EQUAL_EQUAL
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	// Unary / boolean
	BANG
	AND
	OR

	IDENTIFIER
)

func (t TokenType) String() string {
	switch t {
	case MINUS:
		return "MINUS"
	case PLUS:
		return "PLUS"
	case SLASH:
		return "SLASH"
	case STAR:
		return "STAR"
	case MINUS_EQUAL:
		return "MINUS_EQUAL"
	case PLUS_EQUAL:
		return "PLUS_EQUAL"
	case EQUAL_EQUAL:
		return "EQUAL_EQUAL"
	case BANG_EQUAL:
		return "BANG_EQUAL"
	case LESS:
		return "LESS"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER:
		return "GREATER"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case BANG:
		return "BANG"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case IDENTIFIER:
		return "IDENTIFIER"
	}

	panic(fmt.Sprintf("Invalid TokenType: %d", t))
}

var operators = map[string]TokenType{
	"-":   MINUS,
	"+":   PLUS,
	"/":   SLASH,
	"*":   STAR,
	"-=":  MINUS_EQUAL,
	"+=":  PLUS_EQUAL,
	"==":  EQUAL_EQUAL,
	"!=":  BANG_EQUAL,
	"<":   LESS,
	"<=":  LESS_EQUAL,
	">":   GREATER,
	">=":  GREATER_EQUAL,
	"!":   BANG,
	"and": AND,
	"or":  OR,
}

// LookupOperator maps an operator lexeme ("+", "and", ...) to its type.
func LookupOperator(lexeme string) (TokenType, bool) {
	typ, ok := operators[lexeme]
	return typ, ok
}

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

// MustOp builds an operator token from its lexeme and panics on unknown
// operators. It is meant for trees written by hand, such as in tests;
// decoders should use LookupOperator and report their own error.
func MustOp(lexeme string, line int) Token {
	typ, ok := LookupOperator(lexeme)
	if !ok {
		panic("Unknown operator: " + lexeme)
	}
	return Token{typ, lexeme, line}
}

// Ident builds an identifier token.
func Ident(name string, line int) Token {
	return Token{IDENTIFIER, name, line}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}

// UnderlyingOp strips the assignment part off compound operators.
// Other tokens are returned unchanged.
func (t Token) UnderlyingOp() Token {
	switch t.Type {
	case MINUS_EQUAL:
		t.Type, t.Lexeme = MINUS, "-"
	case PLUS_EQUAL:
		t.Type, t.Lexeme = PLUS, "+"
	}

	return t
}
