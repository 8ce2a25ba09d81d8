package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"loxeval/ast"
)

// Interpreter is not safe for concurrent use.
type Interpreter struct {
	env *Environment
	out io.Writer
	log *slog.Logger
}

// NewInterpreter writes printed values to out. A nil logger discards logs.
func NewInterpreter(out io.Writer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interpreter{NewEnvironment(), out, logger}
}

// Environment exposes the scope chain, mostly for tests and tooling.
func (i *Interpreter) Environment() *Environment {
	return i.env
}

// Interpret runs stmts in order and stops at the first runtime error, which
// it returns. The interpreter stays usable for later calls.
func (i *Interpreter) Interpret(stmts ...ast.Stmt) error {
	for _, stmt := range stmts {
		if i.log.Enabled(context.Background(), slog.LevelDebug) {
			i.log.Debug("execute", slog.String("stmt", stmt.String()))
		}
		if err := i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the current scope.
func (i *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return i.evaluate(expr)
}

// enterScope pushes a child frame. The returned func restores the previous
// frame and must run on every exit path.
func (i *Interpreter) enterScope() (restore func()) {
	prev := i.env.Current()
	i.env.Push()
	i.log.Debug("push scope", slog.Int("depth", i.env.Depth()))

	return func() {
		i.env.Restore(prev)
		i.log.Debug("pop scope", slog.Int("depth", i.env.Depth()))
	}
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		var val Value = Nil{}
		if s.Init != nil {
			v, err := i.evaluate(s.Init)
			if err != nil {
				return err
			}
			val = v
		}

		i.env.Define(s.Name.Lexeme, val)

		return nil
	case *ast.ExprStmt:
		_, err := i.evaluate(s.Expr)
		return err
	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(i.out, value.String())

		return err
	case *ast.IfStmt:
		return i.execIfStmt(s)
	case *ast.WhileStmt:
		return i.execWhileStmt(s)
	case *ast.ForStmt:
		return i.execForStmt(s)
	case *ast.Block:
		defer i.enterScope()()

		for _, stmt := range s.Stmts {
			if err := i.execute(stmt); err != nil {
				return err
			}
		}

		return nil
	case nil: // no-op
		return nil
	default:
		panic(fmt.Sprintf(
			"Unimplemented Statement type: %T", s))
	}
}

func (i *Interpreter) execIfStmt(stmt *ast.IfStmt) error {
	cond, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if IsTruthy(cond) {
		return i.execute(stmt.ThenBranch)
	}

	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}

	return nil
}

func (i *Interpreter) execWhileStmt(stmt *ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !IsTruthy(cond) {
			return nil
		}

		if err = i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) execForStmt(stmt *ast.ForStmt) error {
	// the initializer's bindings must not outlive the loop
	defer i.enterScope()()

	if err := i.execute(stmt.Initializer); err != nil {
		return err
	}

	for {
		if stmt.Condition != nil {
			cond, err := i.evaluate(stmt.Condition)
			if err != nil {
				return err
			}

			if !IsTruthy(cond) {
				return nil
			}
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}

		if stmt.Increment != nil {
			if _, err := i.evaluate(stmt.Increment); err != nil {
				return err
			}
		}
	}
}

func (i *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return FromLiteral(e.Value)
	case *ast.Grouping:
		return i.evaluate(e.Expression)
	case *ast.Variable:
		return i.env.Get(e.Name)
	case *ast.Assign:
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}

		return i.env.Assign(e.Name, val)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Ternary:
		return i.evalTernary(e)
	default:
		panic(fmt.Sprintf(
			"Unimplemented Expression type: %T", e))
	}
}

func (i *Interpreter) evalUnary(expr *ast.Unary) (Value, error) {
	rhs, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case ast.BANG:
		return Bool(!IsTruthy(rhs)), nil
	case ast.MINUS:
		n, ok := rhs.(Number)
		if !ok {
			return nil, typeError(expr.Op, "Operand must be a number.")
		}

		return -n, nil
	default:
		panic(fmt.Sprintf(
			"Unreachable: unexpected unary operator: %v", expr.Op))
	}
}

func (i *Interpreter) evalLogical(expr *ast.Logical) (Value, error) {
	lhs, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case ast.OR:
		if IsTruthy(lhs) {
			return lhs, nil
		}
	case ast.AND:
		if !IsTruthy(lhs) {
			return lhs, nil
		}
	default:
		panic(fmt.Sprintf(
			"Unreachable: unexpected logical operator: %v", expr.Op))
	}

	return i.evaluate(expr.Right)
}

func (i *Interpreter) evalTernary(expr *ast.Ternary) (Value, error) {
	cond, err := i.evaluate(expr.Condition)
	if err != nil {
		return nil, err
	}

	if IsTruthy(cond) {
		return i.evaluate(expr.First)
	}
	return i.evaluate(expr.Second)
}

func (i *Interpreter) evalBinary(expr *ast.Binary) (Value, error) {
	lhs, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	rhs, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	return binaryOp(expr.Op, lhs, rhs)
}
