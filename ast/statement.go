package ast

import (
	"fmt"
	"strings"
)

type Stmt interface {
	isStmt()
	fmt.Stringer
}

type VarDecl struct {
	Name Token
	Init Expr // nil when there is no initializer
}

func (*VarDecl) isStmt() {}
func (d VarDecl) String() string {
	if d.Init == nil {
		return "var " + d.Name.Lexeme + ";"
	}
	return "var " + d.Name.Lexeme + " = " + d.Init.String() + ";"
}

type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) isStmt() {}
func (e ExprStmt) String() string {
	return e.Expr.String() + ";"
}

type PrintStmt struct {
	Expr Expr
}

func (*PrintStmt) isStmt() {}
func (p PrintStmt) String() string {
	return "print " + p.Expr.String() + ";"
}

type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // optional
}

func (*IfStmt) isStmt() {}
func (i IfStmt) String() string {
	var sb strings.Builder

	sb.WriteString("if ")
	sb.WriteString(i.Condition.String())
	sb.WriteString(" { ")
	sb.WriteString(i.ThenBranch.String())
	sb.WriteString(" }")

	if i.ElseBranch != nil {
		sb.WriteString(" else { ")
		sb.WriteString(i.ElseBranch.String())
		sb.WriteString(" }")
	}

	return sb.String()
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) isStmt() {}
func (w WhileStmt) String() string {
	var sb strings.Builder

	sb.WriteString("while ")
	sb.WriteString(w.Condition.String())
	sb.WriteString(" { ")
	sb.WriteString(w.Body.String())
	sb.WriteString(" }")

	return sb.String()
}

// ForStmt clauses other than Body may be nil.
type ForStmt struct {
	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        Stmt
}

func (*ForStmt) isStmt() {}
func (f ForStmt) String() string {
	var sb strings.Builder

	sb.WriteString("for ")
	sb.WriteString(fmt.Sprintf("%s %s; %s",
		orEmpty(f.Initializer), orEmpty(f.Condition), orEmpty(f.Increment)))
	sb.WriteString(" { ")
	sb.WriteString(f.Body.String())
	sb.WriteString(" }")

	return sb.String()
}

type Block struct {
	Stmts []Stmt
}

func (*Block) isStmt() {}
func (b Block) String() string {
	parts := make([]string, 0, len(b.Stmts))
	for _, stmt := range b.Stmts {
		parts = append(parts, stmt.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func orEmpty(node fmt.Stringer) string {
	if node == nil {
		return ""
	}
	return node.String()
}
