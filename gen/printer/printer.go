// Package printer serializes syntax trees to formatted TypeScript source.
package printer

import (
	"fmt"
	"strings"

	"github.com/broady/expressgen/gen/ast"
)

// Operator precedence, higher binds tighter.
const (
	precLowest      = 0
	precAssign      = 2
	precConditional = 3
	precOr          = 4
	precAnd         = 5
	precEquality    = 9
	precRelational  = 10
	precAdditive    = 12
	precMultiply    = 13
	precPrefix      = 15
	precCall        = 18
	precPrimary     = 20
)

// Printer renders files with a fixed configuration. It holds no state
// between calls and is safe for concurrent use.
type Printer struct {
	cfg    Config
	indent string
	quote  byte
}

// New returns a Printer for cfg, filling unset fields with defaults.
func New(cfg Config) *Printer {
	cfg = applyConfigDefaults(cfg)
	indent := strings.Repeat(" ", cfg.IndentSize)
	if cfg.IndentStyle == "tab" {
		indent = "\t"
	}
	q := byte('"')
	if cfg.Quote == "single" {
		q = '\''
	}
	return &Printer{cfg: cfg, indent: indent, quote: q}
}

// Print renders f with DefaultConfig.
func Print(f *ast.File) (string, error) {
	return New(DefaultConfig()).Print(f)
}

// Print renders f. Any malformed node aborts printing with an error.
func (p *Printer) Print(f *ast.File) (string, error) {
	if f == nil {
		return "", fmt.Errorf("printer: nil file")
	}
	var b strings.Builder

	if fm := strings.TrimRight(p.cfg.Frontmatter, "\n"); fm != "" {
		b.WriteString(fm)
		b.WriteString("\n\n")
	}
	if f.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Header, "\n"), "\n") {
			b.WriteString(strings.TrimRight("// "+line, " "))
			b.WriteString("\n")
		}
		if len(f.Body) > 0 {
			b.WriteString("\n")
		}
	}

	var prev ast.Stmt
	for _, s := range f.Body {
		if prev != nil && blankLineBetween(prev, s) {
			b.WriteString("\n")
		}
		text, err := p.stmt(s, 0)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		prev = s
	}

	out := strings.TrimRight(b.String(), "\n")
	if p.cfg.TrailingNewline {
		out += "\n"
	}
	if p.cfg.LineEnding == "crlf" {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out, nil
}

// blankLineBetween keeps runs of imports, named exports and simple
// statements together and separates everything else with one blank line.
func blankLineBetween(prev, next ast.Stmt) bool {
	switch prev.(type) {
	case *ast.Import:
		_, ok := next.(*ast.Import)
		return !ok
	case *ast.ExportNamed:
		_, ok := next.(*ast.ExportNamed)
		return !ok
	}
	return !(isSimple(prev) && isSimple(next))
}

func isSimple(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.ExprStmt, *ast.VarDecl, *ast.Comment:
		return true
	}
	return false
}

func (p *Printer) pad(level int) string {
	return strings.Repeat(p.indent, level)
}

// line returns one indented line terminated by a newline.
func (p *Printer) line(level int, text string) string {
	return p.pad(level) + text + "\n"
}

// doc renders text as a JSDoc block. A "*/" inside text would end the
// comment early, so it is written as "*\/".
func (p *Printer) doc(level int, text string) string {
	if !p.cfg.EmitComments || strings.TrimSpace(text) == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "*/", `*\/`)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) == 1 {
		return p.line(level, "/** "+strings.TrimSpace(lines[0])+" */")
	}
	var b strings.Builder
	b.WriteString(p.line(level, "/**"))
	for _, l := range lines {
		b.WriteString(p.line(level, strings.TrimRight(" * "+strings.TrimSpace(l), " ")))
	}
	b.WriteString(p.line(level, " */"))
	return b.String()
}

// block renders statements between braces. The opening brace is expected to
// end the caller's current line; the closing brace is indented at level.
func (p *Printer) block(stmts []ast.Stmt, level int) (string, error) {
	if len(stmts) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, s := range stmts {
		text, err := p.stmt(s, level+1)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	b.WriteString(p.pad(level))
	b.WriteString("}")
	return b.String(), nil
}

func (p *Printer) stmt(s ast.Stmt, level int) (string, error) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		if s.X == nil {
			return "", fmt.Errorf("printer: expression statement without expression")
		}
		text, err := p.expr(s.X, level, precLowest)
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "function") {
			text = "(" + text + ")"
		}
		return p.line(level, text+";"), nil

	case *ast.VarDecl:
		return p.varDecl(s, level)

	case *ast.If:
		test, err := p.expr(s.Test, level, precLowest)
		if err != nil {
			return "", err
		}
		then, err := p.block(s.Then, level)
		if err != nil {
			return "", err
		}
		text := "if (" + test + ") " + then
		if len(s.Else) > 0 {
			els, err := p.block(s.Else, level)
			if err != nil {
				return "", err
			}
			text += " else " + els
		}
		return p.line(level, text), nil

	case *ast.Switch:
		return p.switchStmt(s, level)

	case *ast.Break:
		return p.line(level, "break;"), nil

	case *ast.Try:
		try, err := p.block(s.Block, level)
		if err != nil {
			return "", err
		}
		handler, err := p.block(s.Handler, level)
		if err != nil {
			return "", err
		}
		text := "try " + try + " catch (" + s.Param + ") " + handler
		if s.Finally != nil {
			fin, err := p.block(s.Finally, level)
			if err != nil {
				return "", err
			}
			text += " finally " + fin
		}
		return p.line(level, text), nil

	case *ast.Throw:
		x, err := p.expr(s.Argument, level, precLowest)
		if err != nil {
			return "", err
		}
		return p.line(level, "throw "+x+";"), nil

	case *ast.Return:
		if s.Argument == nil {
			return p.line(level, "return;"), nil
		}
		x, err := p.expr(s.Argument, level, precLowest)
		if err != nil {
			return "", err
		}
		return p.line(level, "return "+x+";"), nil

	case *ast.Comment:
		var b strings.Builder
		for _, l := range strings.Split(s.Text, "\n") {
			b.WriteString(p.line(level, strings.TrimRight("// "+l, " ")))
		}
		return b.String(), nil

	case *ast.Import:
		return p.importDecl(s, level)

	case *ast.ExportNamed:
		if len(s.Specs) == 0 {
			return "", fmt.Errorf("printer: export declaration without specifiers")
		}
		specs := make([]string, 0, len(s.Specs))
		for _, spec := range s.Specs {
			if spec.Exported != "" && spec.Exported != spec.Local {
				specs = append(specs, spec.Local+" as "+spec.Exported)
			} else {
				specs = append(specs, spec.Local)
			}
		}
		text := "export { " + strings.Join(specs, ", ") + " }"
		if s.Source != "" {
			text += " from " + quote(s.Source, p.quote)
		}
		return p.line(level, text+";"), nil

	case *ast.ExportDefault:
		x, err := p.expr(s.Value, level, precAssign)
		if err != nil {
			return "", err
		}
		return p.line(level, "export default "+x+";"), nil

	case *ast.ClassDecl:
		return p.classDecl(s, level)

	case *ast.FuncDecl:
		return p.funcDecl(s, level)

	case *ast.InterfaceDecl:
		return p.interfaceDecl(s, level)

	case nil:
		return "", fmt.Errorf("printer: nil statement")

	default:
		return "", fmt.Errorf("printer: unsupported statement %T", s)
	}
}

func (p *Printer) varDecl(s *ast.VarDecl, level int) (string, error) {
	switch s.Kind {
	case "const", "let", "var":
	default:
		return "", fmt.Errorf("printer: invalid variable kind %q", s.Kind)
	}
	if len(s.Decls) == 0 {
		return "", fmt.Errorf("printer: %s declaration without declarators", s.Kind)
	}
	decls := make([]string, 0, len(s.Decls))
	for _, d := range s.Decls {
		var text string
		switch {
		case len(d.Pattern) > 0:
			text = "{ " + strings.Join(d.Pattern, ", ") + " }"
		case d.Name != "":
			text = d.Name
		default:
			return "", fmt.Errorf("printer: declarator without name")
		}
		if d.Type != nil {
			t, err := p.typ(d.Type)
			if err != nil {
				return "", err
			}
			text += ": " + t
		}
		if d.Init != nil {
			init, err := p.expr(d.Init, level, precAssign)
			if err != nil {
				return "", err
			}
			text += " = " + init
		}
		decls = append(decls, text)
	}
	text := s.Kind + " " + strings.Join(decls, ", ") + ";"
	if s.Exported {
		text = "export " + text
	}
	return p.line(level, text), nil
}

func (p *Printer) switchStmt(s *ast.Switch, level int) (string, error) {
	disc, err := p.expr(s.Discriminant, level, precLowest)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(p.line(level, "switch ("+disc+") {"))
	for _, c := range s.Cases {
		if c.Test == nil {
			b.WriteString(p.line(level+1, "default:"))
		} else {
			test, err := p.expr(c.Test, level+1, precLowest)
			if err != nil {
				return "", err
			}
			b.WriteString(p.line(level+1, "case "+test+":"))
		}
		for _, st := range c.Body {
			text, err := p.stmt(st, level+2)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
	}
	b.WriteString(p.line(level, "}"))
	return b.String(), nil
}

func (p *Printer) importDecl(s *ast.Import, level int) (string, error) {
	if s.Source == "" {
		return "", fmt.Errorf("printer: import without source")
	}
	src := quote(s.Source, p.quote)
	var parts []string
	if s.Default != "" {
		parts = append(parts, s.Default)
	}
	if s.Namespace != "" {
		parts = append(parts, "* as "+s.Namespace)
	}
	if len(s.Named) > 0 {
		specs := make([]string, 0, len(s.Named))
		for _, spec := range s.Named {
			if spec.Local != "" && spec.Local != spec.Imported {
				specs = append(specs, spec.Imported+" as "+spec.Local)
			} else {
				specs = append(specs, spec.Imported)
			}
		}
		parts = append(parts, "{ "+strings.Join(specs, ", ")+" }")
	}
	if len(parts) == 0 {
		return p.line(level, "import "+src+";"), nil
	}
	kw := "import "
	if s.TypeOnly {
		kw = "import type "
	}
	return p.line(level, kw+strings.Join(parts, ", ")+" from "+src+";"), nil
}

func (p *Printer) classDecl(c *ast.ClassDecl, level int) (string, error) {
	var b strings.Builder
	b.WriteString(p.doc(level, c.Doc))

	head := "class " + c.Name
	if c.Default {
		head = "default " + head
	}
	if c.Exported || c.Default {
		head = "export " + head
	}
	if c.Extends != nil {
		ext, err := p.expr(c.Extends, level, precCall)
		if err != nil {
			return "", err
		}
		head += " extends " + ext
	}
	if len(c.Implements) > 0 {
		head += " implements " + strings.Join(c.Implements, ", ")
	}
	if len(c.Members) == 0 {
		b.WriteString(p.line(level, head+" {}"))
		return b.String(), nil
	}

	b.WriteString(p.line(level, head+" {"))
	for i, m := range c.Members {
		if i > 0 && blankLineBetweenMembers(c.Members[i-1], m) {
			b.WriteString("\n")
		}
		text, err := p.member(m, level+1)
		if err != nil {
			return "", fmt.Errorf("class %s: %w", c.Name, err)
		}
		b.WriteString(text)
	}
	b.WriteString(p.line(level, "}"))
	return b.String(), nil
}

// blankLineBetweenMembers keeps consecutive fields together and separates
// methods with a blank line.
func blankLineBetweenMembers(prev, next ast.ClassMember) bool {
	_, prevProp := prev.(*ast.ClassProperty)
	_, nextProp := next.(*ast.ClassProperty)
	return !(prevProp && nextProp)
}

func (p *Printer) member(m ast.ClassMember, level int) (string, error) {
	switch m := m.(type) {
	case *ast.ClassProperty:
		if m.Name == "" {
			return "", fmt.Errorf("printer: class property without name")
		}
		text := modifiers(m.Access, m.Static, m.Readonly, false) + m.Name
		if m.Optional {
			text += "?"
		} else if m.Definite {
			text += "!"
		}
		if m.Type != nil {
			t, err := p.typ(m.Type)
			if err != nil {
				return "", err
			}
			text += ": " + t
		}
		if m.Value != nil {
			v, err := p.expr(m.Value, level, precAssign)
			if err != nil {
				return "", err
			}
			text += " = " + v
		}
		return p.doc(level, m.Doc) + p.line(level, text+";"), nil

	case *ast.ClassMethod:
		name := m.Name
		if m.Kind == ast.MethodConstructor {
			name = "constructor"
		}
		if name == "" {
			return "", fmt.Errorf("printer: class method without name")
		}
		params, err := p.params(m.Params, level)
		if err != nil {
			return "", fmt.Errorf("method %s: %w", name, err)
		}
		head := modifiers(m.Access, m.Static, false, m.Async) + name + "(" + params + ")"
		if m.ReturnType != nil {
			t, err := p.typ(m.ReturnType)
			if err != nil {
				return "", err
			}
			head += ": " + t
		}
		body, err := p.block(m.Body, level)
		if err != nil {
			return "", fmt.Errorf("method %s: %w", name, err)
		}
		return p.doc(level, m.Doc) + p.line(level, head+" "+body), nil

	case nil:
		return "", fmt.Errorf("printer: nil class member")

	default:
		return "", fmt.Errorf("printer: unsupported class member %T", m)
	}
}

func modifiers(access ast.Accessibility, static, readonly, async bool) string {
	var b strings.Builder
	if access != ast.AccessNone {
		b.WriteString(string(access))
		b.WriteString(" ")
	}
	if static {
		b.WriteString("static ")
	}
	if readonly {
		b.WriteString("readonly ")
	}
	if async {
		b.WriteString("async ")
	}
	return b.String()
}

func (p *Printer) funcDecl(f *ast.FuncDecl, level int) (string, error) {
	if f.Name == "" {
		return "", fmt.Errorf("printer: function declaration without name")
	}
	params, err := p.params(f.Params, level)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", f.Name, err)
	}
	head := "function " + f.Name + "(" + params + ")"
	if f.Async {
		head = "async " + head
	}
	if f.Default {
		head = "default " + head
	}
	if f.Exported || f.Default {
		head = "export " + head
	}
	if f.ReturnType != nil {
		t, err := p.typ(f.ReturnType)
		if err != nil {
			return "", err
		}
		head += ": " + t
	}
	body, err := p.block(f.Body, level)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", f.Name, err)
	}
	return p.doc(level, f.Doc) + p.line(level, head+" "+body), nil
}

func (p *Printer) interfaceDecl(i *ast.InterfaceDecl, level int) (string, error) {
	head := "interface " + i.Name
	if i.Exported {
		head = "export " + head
	}
	if len(i.Extends) > 0 {
		head += " extends " + strings.Join(i.Extends, ", ")
	}
	if len(i.Members) == 0 {
		return p.line(level, head+" {}"), nil
	}
	var b strings.Builder
	b.WriteString(p.line(level, head+" {"))
	for _, m := range i.Members {
		t, err := p.typ(m.Type)
		if err != nil {
			return "", fmt.Errorf("interface %s: %w", i.Name, err)
		}
		name := m.Name
		if !isIdentifierName(name) {
			name = quote(name, p.quote)
		}
		if m.Optional {
			name += "?"
		}
		b.WriteString(p.line(level+1, name+": "+t+";"))
	}
	b.WriteString(p.line(level, "}"))
	return b.String(), nil
}

func (p *Printer) params(params []ast.Param, level int) (string, error) {
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		if prm.Name == "" {
			return "", fmt.Errorf("printer: parameter without name")
		}
		text := modifiers(prm.Access, false, prm.Readonly, false) + prm.Name
		if prm.Optional {
			text += "?"
		}
		if prm.Type != nil {
			t, err := p.typ(prm.Type)
			if err != nil {
				return "", err
			}
			text += ": " + t
		}
		if prm.Default != nil {
			d, err := p.expr(prm.Default, level, precAssign)
			if err != nil {
				return "", err
			}
			text += " = " + d
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

func (p *Printer) typ(t ast.Type) (string, error) {
	switch t := t.(type) {
	case *ast.TypeName:
		if t.Name == "" {
			return "", fmt.Errorf("printer: empty type name")
		}
		return t.Name, nil
	case *ast.TypeQuery:
		if t.Name == "" {
			return "", fmt.Errorf("printer: empty typeof operand")
		}
		return "typeof " + t.Name, nil
	case *ast.TypeApply:
		if t.Name == "" {
			return "", fmt.Errorf("printer: empty generic type name")
		}
		args := make([]string, 0, len(t.Args))
		for _, a := range t.Args {
			s, err := p.typ(a)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">", nil
	case nil:
		return "", fmt.Errorf("printer: nil type")
	default:
		return "", fmt.Errorf("printer: unsupported type %T", t)
	}
}
