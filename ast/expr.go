package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type Expr interface {
	isExpr()
	fmt.Stringer
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, expr := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(expr.String())
	}
	sb.WriteByte(')')

	return sb.String()
}

type Assign struct {
	Name  Token
	Value Expr
}

func (*Assign) isExpr() {}
func (a Assign) String() string {
	return parenthesize("assign "+a.Name.Lexeme, a.Value)
}

type Binary struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (*Binary) isExpr() {}
func (b Binary) String() string {
	return parenthesize(b.Op.Lexeme, b.Left, b.Right)
}

// Logical is kept apart from Binary because its right operand is only
// evaluated when the left one does not decide the result.
type Logical struct {
	Left  Expr
	Op    Token // AND or OR
	Right Expr
}

func (*Logical) isExpr() {}
func (l Logical) String() string {
	return parenthesize(l.Op.Lexeme, l.Left, l.Right)
}

type Ternary struct {
	Condition Expr
	First     Expr
	Second    Expr
}

func (*Ternary) isExpr() {}
func (t Ternary) String() string {
	return parenthesize("?:", t.Condition, t.First, t.Second)
}

type Grouping struct {
	Expression Expr
}

func (*Grouping) isExpr() {}
func (g Grouping) String() string {
	return parenthesize("group", g.Expression)
}

// Literal payloads must be nil, bool, string, int or int64. The evaluator
// reports any other payload as an error.
type Literal struct {
	Value any
}

func (*Literal) isExpr() {}
func (l Literal) String() string {
	switch v := l.Value.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "true"
		} else {
			return "false"
		}
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("<%T %v>", v, v)
	}
}

type Unary struct {
	Op    Token
	Right Expr
}

func (*Unary) isExpr() {}
func (u Unary) String() string {
	return parenthesize(u.Op.Lexeme, u.Right)
}

type Variable struct {
	Name Token
}

func (*Variable) isExpr() {}
func (v Variable) String() string {
	return v.Name.Lexeme
}
