package loader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"loxeval/ast"
)

func mustLoad(t *testing.T, src string) [][]ast.Stmt {
	t.Helper()
	programs, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load error: %v\nsource:\n%s", err, src)
	}
	return programs
}

// wantLoadError checks the error's line unless line is 0.
func wantLoadError(t *testing.T, src string, line int, fragment string) {
	t.Helper()
	_, err := Load(strings.NewReader(src))
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("want LoadError, got %v\nsource:\n%s", err, src)
	}
	if line != 0 && lerr.Line != line {
		t.Errorf("line %d, want %d (%v)", lerr.Line, line, err)
	}
	if !strings.Contains(lerr.Message, fragment) {
		t.Errorf("message %q does not mention %q", lerr.Message, fragment)
	}
}

func TestLoadEveryStatementKind(t *testing.T) {
	src := `
- var: {name: x, init: {literal: 10}}
- var: {name: y}
- print: {binary: {op: "+", left: {variable: x}, right: {literal: 5}}}
- expr: {assign: {name: y, value: {literal: "s"}}}
- block:
    - print: {group: {literal: true}}
- if:
    cond: {logical: {op: and, left: {literal: true}, right: {literal: ~}}}
    then: {print: {literal: 1}}
    else: {print: {unary: {op: "-", right: {literal: 2}}}}
- while:
    cond: {literal: false}
    body: {block: []}
- for:
    init: {var: {name: i, init: {literal: 0}}}
    cond: {binary: {op: "<", left: {variable: i}, right: {literal: 3}}}
    incr: {assign: {name: i, value: {binary: {op: "+=", left: {variable: i}, right: {literal: 1}}}}}
    body: {print: {ternary: {cond: {variable: i}, then: {literal: "yes"}, else: {literal: "no"}}}}
`
	programs := mustLoad(t, src)
	if len(programs) != 1 {
		t.Fatalf("got %d programs, want 1", len(programs))
	}

	var got []string
	for _, stmt := range programs[0] {
		got = append(got, stmt.String())
	}
	want := []string{
		"var x = 10;",
		"var y;",
		"print (+ x 5);",
		`(assign y "s");`,
		"{ print (group true); }",
		"if (and true nil) { print 1; } else { print (- 2); }",
		"while false { {  } }",
		`for var i = 0; (< i 3); (assign i (+= i 1)) { print (?: i "yes" "no"); }`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d statements, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d:\n got %s\nwant %s", i, got[i], want[i])
		}
	}
}

func TestLoadLiteralTypes(t *testing.T) {
	programs := mustLoad(t, `
- print: {literal: 42}
- print: {literal: "42"}
- print: {literal: yes-not-a-bool}
- print: {literal: false}
- print: {literal: null}
`)
	want := []any{int64(42), "42", "yes-not-a-bool", false, nil}
	for i, stmt := range programs[0] {
		lit := stmt.(*ast.PrintStmt).Expr.(*ast.Literal)
		if lit.Value != want[i] {
			t.Errorf("literal %d = %#v, want %#v", i, lit.Value, want[i])
		}
	}
}

func TestLoadTokenLines(t *testing.T) {
	programs := mustLoad(t, `- print:
    binary:
      op: "/"
      left: {literal: 1}
      right: {variable: zero}
`)
	bin := programs[0][0].(*ast.PrintStmt).Expr.(*ast.Binary)
	if bin.Op.Line != 3 || bin.Op.Type != ast.SLASH {
		t.Errorf("op token %v at line %d, want SLASH at 3", bin.Op, bin.Op.Line)
	}
	if v := bin.Right.(*ast.Variable); v.Name.Line != 5 {
		t.Errorf("variable at line %d, want 5", v.Name.Line)
	}
}

func TestLoadMultipleDocuments(t *testing.T) {
	programs := mustLoad(t, `
- var: {name: a, init: {literal: 1}}
---
- print: {variable: a}
- print: {variable: a}
--- []
`)
	if len(programs) != 3 {
		t.Fatalf("got %d programs, want 3", len(programs))
	}
	if len(programs[0]) != 1 || len(programs[1]) != 2 || len(programs[2]) != 0 {
		t.Fatalf("unexpected sequence sizes: %d %d %d",
			len(programs[0]), len(programs[1]), len(programs[2]))
	}
}

func TestLoadAnchors(t *testing.T) {
	programs := mustLoad(t, `
- print: &five {literal: 5}
- print: *five
`)
	second := programs[0][1].(*ast.PrintStmt).Expr.(*ast.Literal)
	if second.Value != int64(5) {
		t.Fatalf("aliased literal = %#v", second.Value)
	}
}

func TestLoadAliasReusedBySiblings(t *testing.T) {
	programs := mustLoad(t, `
- print: {binary: {op: "+", left: &one {literal: 1}, right: *one}}
- block: &body
    - print: {binary: {op: "*", left: *one, right: *one}}
- if: {cond: {literal: true}, then: {block: *body}, else: {block: *body}}
`)
	if got := programs[0][0].String(); got != "print (+ 1 1);" {
		t.Errorf("got %s", got)
	}
	if got := programs[0][2].String(); got != "if true { { print (* 1 1); } } else { { print (* 1 1); } }" {
		t.Errorf("got %s", got)
	}
}

// aliasChain builds anchors that each use the previous one twice, so the
// fully expanded tree doubles with every level.
func aliasChain(levels int) string {
	var sb strings.Builder
	sb.WriteString("- print: &a0 {literal: 1}\n")
	for i := 1; i <= levels; i++ {
		fmt.Fprintf(&sb, "- print: &a%d {binary: {op: \"+\", left: *a%d, right: *a%d}}\n", i, i-1, i-1)
	}
	return sb.String()
}

func TestLoadEmpty(t *testing.T) {
	programs, err := Load(strings.NewReader(""))
	if err != nil || len(programs) != 0 {
		t.Fatalf("Load(\"\") = %v, %v", programs, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		line     int
		fragment string
	}{
		{"not a sequence", "print: {literal: 1}\n", 1, "sequence"},
		{"unknown stmt", "- return: {literal: 1}\n", 1, `unknown statement kind "return"`},
		{"host eval", "- expr: {eval: {literal: \"1+1\"}}\n", 1, `unknown expression kind "eval"`},
		{"two keys", "- print: {literal: 1}\n  expr: {literal: 2}\n", 1, "exactly one key"},
		{"float", "- print: {literal: 1.5}\n", 1, "integers"},
		{"bad op", "- print: {binary: {op: \"%\", left: {literal: 1}, right: {literal: 2}}}\n", 1, "unsupported operator"},
		{"logical op in binary", "- print: {binary: {op: and, left: {literal: 1}, right: {literal: 2}}}\n", 1, "unsupported operator"},
		{"missing field", "- while:\n    cond: {literal: true}\n", 2, `missing field "body"`},
		{"unknown field", "- var: {name: x, value: {literal: 1}}\n", 1, `unknown field "value"`},
		{"empty name", "- var: {name: \"\"}\n", 1, "must not be empty"},
		{"self alias", "- &a {block: [*a]}\n", 1, `alias "a" refers to itself`},
		{"self alias in group", "- print: &g {group: *g}\n", 1, `alias "g" refers to itself`},
		{"self alias in loop body", "- &w {while: {cond: {literal: true}, body: *w}}\n", 1, `alias "w" refers to itself`},
		{"alias chain", aliasChain(40), 0, "too many alias expansions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantLoadError(t, tt.src, tt.line, tt.fragment)
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(strings.NewReader("- print: {literal: 1\n"))
	if err == nil || !strings.HasPrefix(err.Error(), "loader: parse:") {
		t.Fatalf("got %v, want a wrapped parse error", err)
	}
}
