// Package verify re-parses printed TypeScript with tree-sitter and compares
// its top-level outline, including the operator structure inside each item,
// with the syntax tree the source was printed from.
package verify

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// maxErrors bounds error collection on heavily malformed input.
const maxErrors = 50

// SyntaxError is an ERROR or MISSING node found while parsing.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e SyntaxError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Item is one top-level entry of a source file.
type Item struct {
	// Kind is "import", "export", "class", "function", "interface",
	// "variable" or "statement".
	Kind string
	// Name is the declared name, the import source, or for statements the
	// tree-sitter node type.
	Name     string
	Exported bool
	Default  bool
	// Members lists class members and interface properties in order.
	Members []string
	// Shape lists the operator trees inside the item, parentheses dropped.
	Shape []string
}

// Report is the result of parsing one file.
type Report struct {
	Outline []Item
	Errors  []SyntaxError
}

// OK reports whether the source parsed without syntax errors.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

// Check parses src as TypeScript.
func Check(ctx context.Context, src []byte) (*Report, error) {
	// A parser per call: tree-sitter parsers are not safe for concurrent use.
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}

	r := &Report{}
	if root.HasError() {
		collectErrors(root, src, &r.Errors, 0)
		if len(r.Errors) == 0 {
			r.Errors = append(r.Errors, SyntaxError{Line: 1, Column: 1, Message: "source contains syntax errors"})
		}
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		item := outlineNode(child, src)
		item.Shape = nodeShape(child)
		r.Outline = append(r.Outline, item)
	}
	return r, nil
}

func collectErrors(node *sitter.Node, src []byte, errs *[]SyntaxError, depth int) {
	if depth > 1000 || len(*errs) >= maxErrors {
		return
	}
	if node.IsError() || node.IsMissing() {
		p := node.StartPoint()
		msg := "unexpected " + truncate(node.Content(src), 40)
		if node.IsMissing() {
			msg = "missing " + node.Type()
		}
		*errs = append(*errs, SyntaxError{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Message: msg})
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), src, errs, depth+1)
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func outlineNode(n *sitter.Node, src []byte) Item {
	switch n.Type() {
	case "import_statement":
		item := Item{Kind: "import"}
		if s := n.ChildByFieldName("source"); s != nil {
			item.Name = unquote(s.Content(src))
		}
		return item

	case "export_statement":
		isDefault := false
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "default" {
				isDefault = true
			}
		}
		if d := n.ChildByFieldName("declaration"); d != nil {
			item := outlineNode(d, src)
			item.Exported = true
			item.Default = isDefault
			return item
		}
		item := Item{Kind: "export", Default: isDefault}
		if s := n.ChildByFieldName("source"); s != nil {
			item.Name = unquote(s.Content(src))
		}
		return item

	case "class_declaration":
		item := Item{Kind: "class", Name: fieldText(n, "name", src)}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				m := body.NamedChild(i)
				switch m.Type() {
				case "method_definition", "public_field_definition":
					item.Members = append(item.Members, fieldText(m, "name", src))
				}
			}
		}
		return item

	case "function_declaration":
		return Item{Kind: "function", Name: fieldText(n, "name", src)}

	case "interface_declaration":
		item := Item{Kind: "interface", Name: fieldText(n, "name", src)}
		if body := n.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				m := body.NamedChild(i)
				if m.Type() == "property_signature" {
					item.Members = append(item.Members, fieldText(m, "name", src))
				}
			}
		}
		return item

	case "lexical_declaration", "variable_declaration":
		item := Item{Kind: "variable"}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			d := n.NamedChild(i)
			if d.Type() != "variable_declarator" {
				continue
			}
			if name := d.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				item.Name = name.Content(src)
			}
			break
		}
		return item

	default:
		return Item{Kind: "statement", Name: n.Type()}
	}
}

func fieldText(n *sitter.Node, field string, src []byte) string {
	if c := n.ChildByFieldName(field); c != nil {
		return unquote(c.Content(src))
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
