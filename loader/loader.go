// Package loader decodes programs serialized as YAML into AST statements.
//
// A stream may hold several YAML documents; each one is an independent
// statement sequence. Every node is a mapping with a single key naming its
// kind:
//
//	- var: {name: x, init: {literal: 10}}
//	- print: {binary: {op: "+", left: {variable: x}, right: {literal: 5}}}
//
// The YAML line of each node becomes the line of the tokens built from it.
package loader

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"loxeval/ast"
)

type LoadError struct {
	Line    int
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

func errorf(node *yaml.Node, format string, args ...any) error {
	return &LoadError{node.Line, fmt.Sprintf(format, args...)}
}

// Load reads every document in r. An empty stream yields no sequences.
func Load(r io.Reader) ([][]ast.Stmt, error) {
	decoder := yaml.NewDecoder(r)

	var programs [][]ast.Stmt
	for {
		var doc yaml.Node
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return programs, nil
			}
			return nil, fmt.Errorf("loader: parse: %w", err)
		}

		stmts, err := newDecoder().decodeDocument(&doc)
		if err != nil {
			return nil, err
		}
		programs = append(programs, stmts)
	}
}

// maxAliasExpansions bounds the aliases followed in one document, so anchors
// that reuse each other cannot blow up into an exponentially large tree.
const maxAliasExpansions = 10000

// decoder carries the state of decoding a single document.
type decoder struct {
	// active holds the nodes whose decoding is in progress. Reaching one of
	// them again means an alias points back into its own anchor.
	active  map[*yaml.Node]bool
	aliases int
}

func newDecoder() *decoder {
	return &decoder{active: make(map[*yaml.Node]bool)}
}

func (d *decoder) decodeDocument(doc *yaml.Node) ([]ast.Stmt, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root, err := d.resolve(doc.Content[0])
	if err != nil {
		return nil, err
	}
	if isNull(root) {
		return nil, nil
	}
	return d.decodeStmtList(root)
}

// resolve follows aliases so anchors can be reused across a program.
func (d *decoder) resolve(node *yaml.Node) (*yaml.Node, error) {
	for node != nil && node.Kind == yaml.AliasNode {
		d.aliases++
		if d.aliases > maxAliasExpansions {
			return nil, errorf(node, "too many alias expansions (limit %d)", maxAliasExpansions)
		}
		node = node.Alias
	}
	return node, nil
}

// enter resolves node and marks its target as in progress until leave runs.
func (d *decoder) enter(node *yaml.Node) (target *yaml.Node, leave func(), err error) {
	target, err = d.resolve(node)
	if err != nil {
		return nil, nil, err
	}
	if d.active[target] {
		return nil, nil, errorf(node, "alias %q refers to itself", target.Anchor)
	}

	d.active[target] = true
	return target, func() { delete(d.active, target) }, nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// kindOf splits a single-key mapping into its key and value. node must
// already be resolved.
func (d *decoder) kindOf(node *yaml.Node, what string) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, errorf(node, "%s must be a mapping with exactly one key", what)
	}

	var key string
	if err := node.Content[0].Decode(&key); err != nil {
		return "", nil, errorf(node.Content[0], "%s kind: %v", what, err)
	}
	value, err := d.resolve(node.Content[1])
	if err != nil {
		return "", nil, err
	}
	return key, value, nil
}

// fields reads a mapping's entries and rejects keys outside allowed.
func (d *decoder) fields(node *yaml.Node, what string, allowed ...string) (map[string]*yaml.Node, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errorf(node, "%s must be a mapping", what)
	}

	result := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, errorf(keyNode, "%s: %v", what, err)
		}
		known := false
		for _, a := range allowed {
			if a == key {
				known = true
				break
			}
		}
		if !known {
			return nil, errorf(keyNode, "%s: unknown field %q", what, key)
		}
		if _, dup := result[key]; dup {
			return nil, errorf(keyNode, "%s: duplicate field %q", what, key)
		}
		value, err := d.resolve(valueNode)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}

func required(node *yaml.Node, f map[string]*yaml.Node, what, key string) (*yaml.Node, error) {
	n, ok := f[key]
	if !ok || isNull(n) {
		return nil, errorf(node, "%s: missing field %q", what, key)
	}
	return n, nil
}

func scalarString(node *yaml.Node, what string) (string, error) {
	if node.Kind != yaml.ScalarNode || isNull(node) {
		return "", errorf(node, "%s must be a string", what)
	}
	return node.Value, nil
}

func decodeName(node *yaml.Node, what string) (ast.Token, error) {
	s, err := scalarString(node, what)
	if err != nil {
		return ast.Token{}, err
	}
	if s == "" {
		return ast.Token{}, errorf(node, "%s must not be empty", what)
	}
	return ast.Ident(s, node.Line), nil
}

func decodeOp(node *yaml.Node, what string, allowed ...ast.TokenType) (ast.Token, error) {
	s, err := scalarString(node, what)
	if err != nil {
		return ast.Token{}, err
	}
	typ, ok := ast.LookupOperator(s)
	if ok {
		for _, a := range allowed {
			if a == typ {
				return ast.Token{Type: typ, Lexeme: s, Line: node.Line}, nil
			}
		}
	}
	return ast.Token{}, errorf(node, "%s: unsupported operator %q", what, s)
}

func decodeLiteral(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, errorf(node, "literal must be a scalar")
	}

	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errorf(node, "literal: %v", err)
		}
		return b, nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, errorf(node, "literal: %v", err)
		}
		return n, nil
	case "!!str":
		return node.Value, nil
	case "!!float":
		return nil, errorf(node, "literal: numbers are integers, got %s", strconv.Quote(node.Value))
	default:
		return nil, errorf(node, "literal: unsupported tag %s", node.ShortTag())
	}
}
