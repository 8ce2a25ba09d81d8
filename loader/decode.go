package loader

import (
	"gopkg.in/yaml.v3"

	"loxeval/ast"
)

func (d *decoder) decodeStmtList(node *yaml.Node) ([]ast.Stmt, error) {
	node, leave, err := d.enter(node)
	if err != nil {
		return nil, err
	}
	defer leave()

	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, errorf(node, "statements must be a sequence")
	}

	stmts := make([]ast.Stmt, 0, len(node.Content))
	for _, item := range node.Content {
		stmt, err := d.decodeStmt(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (d *decoder) optionalStmt(f map[string]*yaml.Node, key string) (ast.Stmt, error) {
	n, ok := f[key]
	if !ok || isNull(n) {
		return nil, nil
	}
	return d.decodeStmt(n)
}

func (d *decoder) optionalExpr(f map[string]*yaml.Node, key string) (ast.Expr, error) {
	n, ok := f[key]
	if !ok || isNull(n) {
		return nil, nil
	}
	return d.decodeExpr(n)
}

func (d *decoder) requiredStmt(node *yaml.Node, f map[string]*yaml.Node, what, key string) (ast.Stmt, error) {
	n, err := required(node, f, what, key)
	if err != nil {
		return nil, err
	}
	return d.decodeStmt(n)
}

func (d *decoder) requiredExpr(node *yaml.Node, f map[string]*yaml.Node, what, key string) (ast.Expr, error) {
	n, err := required(node, f, what, key)
	if err != nil {
		return nil, err
	}
	return d.decodeExpr(n)
}

func (d *decoder) decodeStmt(node *yaml.Node) (ast.Stmt, error) {
	node, leave, err := d.enter(node)
	if err != nil {
		return nil, err
	}
	defer leave()

	kind, body, err := d.kindOf(node, "statement")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "expr":
		expr, err := d.decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: expr}, nil
	case "print":
		expr, err := d.decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.PrintStmt{Expr: expr}, nil
	case "var":
		f, err := d.fields(body, "var", "name", "init")
		if err != nil {
			return nil, err
		}
		nameNode, err := required(body, f, "var", "name")
		if err != nil {
			return nil, err
		}
		name, err := decodeName(nameNode, "var name")
		if err != nil {
			return nil, err
		}
		init, err := d.optionalExpr(f, "init")
		if err != nil {
			return nil, err
		}
		return &ast.VarDecl{Name: name, Init: init}, nil
	case "block":
		stmts, err := d.decodeStmtList(body)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts}, nil
	case "if":
		f, err := d.fields(body, "if", "cond", "then", "else")
		if err != nil {
			return nil, err
		}
		cond, err := d.requiredExpr(body, f, "if", "cond")
		if err != nil {
			return nil, err
		}
		thenBranch, err := d.requiredStmt(body, f, "if", "then")
		if err != nil {
			return nil, err
		}
		elseBranch, err := d.optionalStmt(f, "else")
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
	case "while":
		f, err := d.fields(body, "while", "cond", "body")
		if err != nil {
			return nil, err
		}
		cond, err := d.requiredExpr(body, f, "while", "cond")
		if err != nil {
			return nil, err
		}
		loopBody, err := d.requiredStmt(body, f, "while", "body")
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Condition: cond, Body: loopBody}, nil
	case "for":
		f, err := d.fields(body, "for", "init", "cond", "incr", "body")
		if err != nil {
			return nil, err
		}
		init, err := d.optionalStmt(f, "init")
		if err != nil {
			return nil, err
		}
		cond, err := d.optionalExpr(f, "cond")
		if err != nil {
			return nil, err
		}
		incr, err := d.optionalExpr(f, "incr")
		if err != nil {
			return nil, err
		}
		loopBody, err := d.requiredStmt(body, f, "for", "body")
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Initializer: init, Condition: cond, Increment: incr, Body: loopBody}, nil
	}

	return nil, errorf(node, "unknown statement kind %q", kind)
}

var (
	binaryOps = []ast.TokenType{
		ast.MINUS, ast.PLUS, ast.SLASH, ast.STAR,
		ast.MINUS_EQUAL, ast.PLUS_EQUAL,
		ast.EQUAL_EQUAL, ast.BANG_EQUAL,
		ast.LESS, ast.LESS_EQUAL, ast.GREATER, ast.GREATER_EQUAL,
	}
	unaryOps   = []ast.TokenType{ast.MINUS, ast.BANG}
	logicalOps = []ast.TokenType{ast.AND, ast.OR}
)

func (d *decoder) decodeExpr(node *yaml.Node) (ast.Expr, error) {
	node, leave, err := d.enter(node)
	if err != nil {
		return nil, err
	}
	defer leave()

	kind, body, err := d.kindOf(node, "expression")
	if err != nil {
		return nil, err
	}

	switch kind {
	case "literal":
		value, err := decodeLiteral(body)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Value: value}, nil
	case "group":
		inner, err := d.decodeExpr(body)
		if err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: inner}, nil
	case "variable":
		name, err := decodeName(body, "variable")
		if err != nil {
			return nil, err
		}
		return &ast.Variable{Name: name}, nil
	case "assign":
		f, err := d.fields(body, "assign", "name", "value")
		if err != nil {
			return nil, err
		}
		nameNode, err := required(body, f, "assign", "name")
		if err != nil {
			return nil, err
		}
		name, err := decodeName(nameNode, "assign name")
		if err != nil {
			return nil, err
		}
		value, err := d.requiredExpr(body, f, "assign", "value")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: name, Value: value}, nil
	case "unary":
		f, err := d.fields(body, "unary", "op", "right")
		if err != nil {
			return nil, err
		}
		op, err := decodeOperator(body, f, "unary", unaryOps)
		if err != nil {
			return nil, err
		}
		right, err := d.requiredExpr(body, f, "unary", "right")
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Right: right}, nil
	case "binary", "logical":
		allowed := binaryOps
		if kind == "logical" {
			allowed = logicalOps
		}
		f, err := d.fields(body, kind, "op", "left", "right")
		if err != nil {
			return nil, err
		}
		op, err := decodeOperator(body, f, kind, allowed)
		if err != nil {
			return nil, err
		}
		left, err := d.requiredExpr(body, f, kind, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.requiredExpr(body, f, kind, "right")
		if err != nil {
			return nil, err
		}
		if kind == "logical" {
			return &ast.Logical{Left: left, Op: op, Right: right}, nil
		}
		return &ast.Binary{Left: left, Op: op, Right: right}, nil
	case "ternary":
		f, err := d.fields(body, "ternary", "cond", "then", "else")
		if err != nil {
			return nil, err
		}
		cond, err := d.requiredExpr(body, f, "ternary", "cond")
		if err != nil {
			return nil, err
		}
		first, err := d.requiredExpr(body, f, "ternary", "then")
		if err != nil {
			return nil, err
		}
		second, err := d.requiredExpr(body, f, "ternary", "else")
		if err != nil {
			return nil, err
		}
		return &ast.Ternary{Condition: cond, First: first, Second: second}, nil
	}

	return nil, errorf(node, "unknown expression kind %q", kind)
}

func decodeOperator(node *yaml.Node, f map[string]*yaml.Node, what string, allowed []ast.TokenType) (ast.Token, error) {
	opNode, err := required(node, f, what, "op")
	if err != nil {
		return ast.Token{}, err
	}
	return decodeOp(opNode, what, allowed...)
}
