package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/broady/expressgen/gen/ast"
)

// Outline returns the top-level items of f using the same vocabulary as
// Check. Comments are skipped.
func Outline(f *ast.File) []Item {
	var items []Item
	for _, s := range f.Body {
		if _, ok := s.(*ast.Comment); ok {
			continue
		}
		item := outlineStmt(s)
		item.Shape = stmtShape(s)
		items = append(items, item)
	}
	return items
}

func outlineStmt(s ast.Stmt) Item {
	switch s := s.(type) {
	case *ast.Import:
		return Item{Kind: "import", Name: s.Source}
	case *ast.ExportNamed:
		return Item{Kind: "export", Name: s.Source}
	case *ast.ExportDefault:
		return Item{Kind: "export", Default: true}
	case *ast.ClassDecl:
		item := Item{Kind: "class", Name: s.Name, Exported: s.Exported || s.Default, Default: s.Default}
		for _, m := range s.Members {
			switch m := m.(type) {
			case *ast.ClassProperty:
				item.Members = append(item.Members, m.Name)
			case *ast.ClassMethod:
				if m.Kind == ast.MethodConstructor {
					item.Members = append(item.Members, "constructor")
				} else {
					item.Members = append(item.Members, m.Name)
				}
			}
		}
		return item
	case *ast.FuncDecl:
		return Item{Kind: "function", Name: s.Name, Exported: s.Exported || s.Default, Default: s.Default}
	case *ast.InterfaceDecl:
		item := Item{Kind: "interface", Name: s.Name, Exported: s.Exported}
		for _, m := range s.Members {
			item.Members = append(item.Members, m.Name)
		}
		return item
	case *ast.VarDecl:
		item := Item{Kind: "variable", Exported: s.Exported}
		if len(s.Decls) > 0 && len(s.Decls[0].Pattern) == 0 {
			item.Name = s.Decls[0].Name
		}
		return item
	case *ast.ExprStmt:
		return Item{Kind: "statement", Name: "expression_statement"}
	case *ast.If:
		return Item{Kind: "statement", Name: "if_statement"}
	case *ast.Switch:
		return Item{Kind: "statement", Name: "switch_statement"}
	case *ast.Try:
		return Item{Kind: "statement", Name: "try_statement"}
	case *ast.Throw:
		return Item{Kind: "statement", Name: "throw_statement"}
	case *ast.Return:
		return Item{Kind: "statement", Name: "return_statement"}
	case *ast.Break:
		return Item{Kind: "statement", Name: "break_statement"}
	default:
		return Item{Kind: "statement", Name: fmt.Sprintf("%T", s)}
	}
}

// RoundTrip parses src and checks that it has no syntax errors and that its
// outline matches the outline of f.
func RoundTrip(ctx context.Context, f *ast.File, src string) error {
	r, err := Check(ctx, []byte(src))
	if err != nil {
		return err
	}
	if !r.OK() {
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("syntax errors: %s", strings.Join(msgs, "; "))
	}
	return Compare(Outline(f), r.Outline)
}

// Compare reports the first difference between two outlines.
func Compare(want, got []Item) error {
	for i := 0; i < len(want) || i < len(got); i++ {
		switch {
		case i >= len(got):
			return fmt.Errorf("item %d: missing %s %q", i, want[i].Kind, want[i].Name)
		case i >= len(want):
			return fmt.Errorf("item %d: unexpected %s %q", i, got[i].Kind, got[i].Name)
		}
		w, g := want[i], got[i]
		if w.Kind != g.Kind || w.Name != g.Name || w.Exported != g.Exported || w.Default != g.Default {
			return fmt.Errorf("item %d: got %s %q (exported=%t default=%t), want %s %q (exported=%t default=%t)",
				i, g.Kind, g.Name, g.Exported, g.Default, w.Kind, w.Name, w.Exported, w.Default)
		}
		if strings.Join(w.Members, ",") != strings.Join(g.Members, ",") {
			return fmt.Errorf("item %d: %s %s members = [%s], want [%s]",
				i, w.Kind, w.Name, strings.Join(g.Members, ", "), strings.Join(w.Members, ", "))
		}
		for j := 0; j < len(w.Shape) || j < len(g.Shape); j++ {
			var ws, gs string
			if j < len(w.Shape) {
				ws = w.Shape[j]
			}
			if j < len(g.Shape) {
				gs = g.Shape[j]
			}
			if ws != gs {
				return fmt.Errorf("item %d: %s %s expression %d = %s, want %s", i, w.Kind, w.Name, j, orNone(gs), orNone(ws))
			}
		}
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
