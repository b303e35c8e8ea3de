package build

import (
	"fmt"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/ir"
)

// Method lowers a class method definition.
func Method(m ir.MethodDefinition) (*ast.ClassMethod, error) {
	const kind = "method"
	if m.Name == "" {
		return nil, errMissing(kind, "name")
	}
	params, err := parameters(kind, m.Params)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", m.Name, err)
	}
	body, err := Block(m.Body)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", m.Name, err)
	}
	return &ast.ClassMethod{
		Kind:       ast.MethodNormal,
		Name:       m.Name,
		Params:     params,
		ReturnType: typeName(m.ReturnType),
		Body:       body,
		Access:     ast.Accessibility(m.Access),
		Static:     m.Static,
		Async:      m.Async,
		Doc:        m.Doc,
	}, nil
}

// Constructor lowers a constructor definition. Each configured feature
// becomes this.<property> = <caller>(<argument>) ahead of the body, in the
// order the features are listed.
func Constructor(c *ir.ConstructorDefinition) (*ast.ClassMethod, error) {
	const kind = "constructor"
	params, err := parameters(kind, c.Params)
	if err != nil {
		return nil, err
	}

	body := make([]ast.Stmt, 0, len(c.Features)+len(c.Body))
	for i, f := range c.Features {
		stmt, err := feature(f)
		if err != nil {
			return nil, fmt.Errorf("%s: features[%d]: %w", kind, i, err)
		}
		body = append(body, stmt)
	}

	rest, err := Block(c.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	body = append(body, rest...)

	return &ast.ClassMethod{
		Kind:   ast.MethodConstructor,
		Name:   "constructor",
		Params: params,
		Body:   body,
		Access: ast.Accessibility(c.Access),
		Doc:    c.Doc,
	}, nil
}

func feature(f ir.ConstructorFeature) (ast.Stmt, error) {
	const kind = "constructor_feature"
	if f.Property == "" {
		return nil, errMissing(kind, "method")
	}
	if f.Caller == "" {
		return nil, errMissing(kind, "caller")
	}
	var args []ast.Expr
	if f.Argument != "" {
		args = []ast.Expr{path(f.Argument)}
	}
	var value ast.Expr
	switch f.CalleeKind {
	case ir.CalleeFunction, "":
		value = &ast.Call{Callee: path(f.Caller), Args: args}
	case ir.CalleeConstructor:
		value = &ast.New{Callee: path(f.Caller), Args: args}
	default:
		return nil, errInvalid(kind, "calleeKind", "invalid callee kind %q", f.CalleeKind)
	}
	left := &ast.Member{Object: &ast.This{}, Property: f.Property}
	return &ast.ExprStmt{X: &ast.Assign{Left: left, Right: value}}, nil
}

// Property lowers a class field. Initializers are limited to literals,
// identifiers, calls, property access and object literals.
func Property(p ir.Property) (*ast.ClassProperty, error) {
	const kind = "property"
	if p.Name == "" {
		return nil, errMissing(kind, "name")
	}
	typ, err := typeRef(p.Type)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", p.Name, err)
	}
	out := &ast.ClassProperty{
		Name:     p.Name,
		Type:     typ,
		Access:   ast.Accessibility(p.Access),
		Static:   p.Static,
		Readonly: p.Readonly,
		Optional: p.Optional,
		Definite: p.Definite,
		Doc:      p.Doc,
	}
	if p.Optional && p.Definite {
		return nil, errInvalid(kind, "definite", "property %s cannot be both optional and definite", p.Name)
	}
	if p.Value != nil {
		switch p.Value.(type) {
		case *ir.Literal, *ir.Identifier, *ir.FunctionCall, *ir.ConstructorCall, *ir.PropertyAccess, *ir.Object:
		default:
			return nil, errInvalid(kind, "value", "unsupported initializer %s for property %s", p.Value.Kind(), p.Name)
		}
		out.Value, err = nested(kind, "value", p.Value)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func typeRef(t ir.TypeRef) (ast.Type, error) {
	const kind = "type"
	if t.Complex == nil {
		return typeName(t.Name), nil
	}
	c := t.Complex
	if c.Wrapper == "" {
		return nil, errMissing(kind, "wrapper")
	}
	if c.Typeof != "" {
		return &ast.TypeApply{Name: c.Wrapper, Args: []ast.Type{&ast.TypeQuery{Name: c.Typeof}}}, nil
	}
	if c.Generic == "" {
		return nil, errMissing(kind, "generic")
	}
	var inner ast.Type = &ast.TypeName{Name: c.Generic}
	if len(c.Params) > 0 {
		args := make([]ast.Type, 0, len(c.Params))
		for _, p := range c.Params {
			args = append(args, &ast.TypeName{Name: p})
		}
		inner = &ast.TypeApply{Name: c.Generic, Args: args}
	}
	return &ast.TypeApply{Name: c.Wrapper, Args: []ast.Type{inner}}, nil
}

// Imports lowers import configurations. Entries without bindings are skipped
// unless they are side-effect imports. A local name bound twice in one file
// is an error; callers rename with an alias.
func Imports(cfgs []ir.ImportConfig) ([]ast.Stmt, error) {
	const kind = "import"
	seen := make(map[string]string)
	bind := func(local, module string) error {
		if prev, ok := seen[local]; ok {
			return errInvalid(kind, "named", "local binding %q from %q collides with import from %q", local, module, prev)
		}
		seen[local] = module
		return nil
	}

	var out []ast.Stmt
	for _, c := range cfgs {
		if c.Module == "" {
			return nil, errMissing(kind, "module")
		}
		if c.Bindings() == 0 {
			if c.SideEffect {
				out = append(out, &ast.Import{Source: c.Module})
			}
			continue
		}
		if c.Namespace != "" && len(c.Named) > 0 {
			return nil, errInvalid(kind, "namespace", "module %q cannot combine a namespace import with named imports", c.Module)
		}
		imp := &ast.Import{Source: c.Module, TypeOnly: c.TypeOnly}
		if c.Default != "" {
			if err := bind(c.Default, c.Module); err != nil {
				return nil, err
			}
			imp.Default = c.Default
		}
		if c.Namespace != "" {
			if err := bind(c.Namespace, c.Module); err != nil {
				return nil, err
			}
			imp.Namespace = c.Namespace
		}
		for _, n := range c.Named {
			if n.Name == "" {
				return nil, errMissing(kind, "named.name")
			}
			if err := bind(n.Local(), c.Module); err != nil {
				return nil, err
			}
			spec := ast.ImportSpec{Imported: n.Name, Local: n.Name}
			if n.Alias != "" {
				spec.Local = n.Alias
			}
			imp.Named = append(imp.Named, spec)
		}
		out = append(out, imp)
	}
	return out, nil
}

// Exports lowers export configurations. Named exports destined for the same
// module are merged into one declaration, in first-seen order; the default
// export, if any, comes last.
func Exports(cfgs []ir.ExportConfig) ([]ast.Stmt, error) {
	const kind = "export"
	var (
		order  []string
		groups = make(map[string]*ast.ExportNamed)
		def    string
	)
	for _, c := range cfgs {
		if c.Default != "" {
			if def != "" && def != c.Default {
				return nil, errInvalid(kind, "default", "multiple default exports: %q and %q", def, c.Default)
			}
			def = c.Default
		}
		if len(c.Names) == 0 {
			continue
		}
		g, ok := groups[c.Module]
		if !ok {
			g = &ast.ExportNamed{Source: c.Module}
			groups[c.Module] = g
			order = append(order, c.Module)
		}
		for _, n := range c.Names {
			if n.Name == "" {
				return nil, errMissing(kind, "names.name")
			}
			spec := ast.ExportSpec{Local: n.Name, Exported: n.Name}
			if n.Alias != "" {
				spec.Exported = n.Alias
			}
			g.Specs = append(g.Specs, spec)
		}
	}

	out := make([]ast.Stmt, 0, len(order)+1)
	for _, m := range order {
		out = append(out, groups[m])
	}
	if def != "" {
		out = append(out, &ast.ExportDefault{Value: path(def)})
	}
	return out, nil
}

// Class lowers a class definition: properties, constructor, then methods.
func Class(c *ir.ClassDefinition) (*ast.ClassDecl, error) {
	const kind = "class"
	if c.Name == "" {
		return nil, errMissing(kind, "name")
	}
	out := &ast.ClassDecl{
		Name:       c.Name,
		Implements: c.Implements,
		Exported:   c.Exported,
		Default:    c.Default,
		Doc:        c.Doc,
	}
	if c.Extends != "" {
		out.Extends = path(c.Extends)
	}
	for _, p := range c.Properties {
		prop, err := Property(p)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		out.Members = append(out.Members, prop)
	}
	if c.Constructor != nil {
		ctor, err := Constructor(c.Constructor)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		out.Members = append(out.Members, ctor)
	}
	for _, m := range c.Methods {
		method, err := Method(m)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name, err)
		}
		out.Members = append(out.Members, method)
	}
	return out, nil
}

// Function lowers a top-level function declaration.
func Function(f *ir.FunctionDeclaration) (*ast.FuncDecl, error) {
	const kind = "function"
	if f.Name == "" {
		return nil, errMissing(kind, "name")
	}
	params, err := parameters(kind, f.Params)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.Name, err)
	}
	body, err := Block(f.Body)
	if err != nil {
		return nil, fmt.Errorf("function %s: %w", f.Name, err)
	}
	return &ast.FuncDecl{
		Name:       f.Name,
		Params:     params,
		ReturnType: typeName(f.ReturnType),
		Async:      f.Async,
		Body:       body,
		Exported:   f.Exported,
		Default:    f.Default,
		Doc:        f.Doc,
	}, nil
}

// Interface lowers an interface declaration.
func Interface(i *ir.InterfaceDeclaration) (*ast.InterfaceDecl, error) {
	const kind = "interface"
	if i.Name == "" {
		return nil, errMissing(kind, "name")
	}
	out := &ast.InterfaceDecl{Name: i.Name, Extends: i.Extends, Exported: i.Exported}
	for j, m := range i.Members {
		if m.Name == "" {
			return nil, errMissing(kind, fmt.Sprintf("members[%d].name", j))
		}
		if m.Type == "" {
			return nil, errMissing(kind, fmt.Sprintf("members[%d].type", j))
		}
		out.Members = append(out.Members, ast.PropertySignature{
			Name:     m.Name,
			Type:     &ast.TypeName{Name: m.Type},
			Optional: m.Optional,
		})
	}
	return out, nil
}

// Declaration lowers one module-level declaration.
func Declaration(d ir.Declaration) (ast.Stmt, error) {
	var (
		stmt ast.Stmt
		err  error
	)
	switch d := d.(type) {
	case *ir.ClassDefinition:
		stmt, err = Class(d)
	case *ir.FunctionDeclaration:
		stmt, err = Function(d)
	case *ir.InterfaceDeclaration:
		stmt, err = Interface(d)
	case *ir.Statement:
		return Expression(d.Expression)
	case *ir.Comment:
		return &ast.Comment{Text: d.Text}, nil
	default:
		return nil, errUnsupported("declaration", d)
	}
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// Module lowers a whole file: imports, body declarations, then exports.
func Module(m *ir.Module) (*ast.File, error) {
	imports, err := Imports(m.Imports)
	if err != nil {
		return nil, err
	}
	file := &ast.File{Header: m.Header, Body: imports}
	for i, d := range m.Body {
		stmt, err := Declaration(d)
		if err != nil {
			return nil, fmt.Errorf("declaration %d: %w", i, err)
		}
		file.Body = append(file.Body, stmt)
	}
	exports, err := Exports(m.Exports)
	if err != nil {
		return nil, err
	}
	file.Body = append(file.Body, exports...)
	return file, nil
}
