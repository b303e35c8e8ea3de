package templates

import (
	"github.com/broady/expressgen/gen/ir"
)

// HomeController generates src/controllers/home.controller.ts, which renders
// the index view with the project name as title.
func HomeController(ctx *Context) (*ir.Module, error) {
	o := ctx.Options
	m := &ir.Module{}
	m.Import(expressHandlerImport())

	title := ir.Lit(o.ProjectName)
	body := ir.Invoke("res", "render", "", ir.Lit("index"), ir.Obj(ir.F("title", title)))
	switch {
	case !o.ViewEngine.Known():
		m.Add(placeholder("viewEngine", string(o.ViewEngine)))
		body = ir.Invoke("res", "send", "", title)
	case !o.ViewEngine.Enabled():
		body = ir.Invoke("res", "send", "", title)
	}

	m.Add(&ir.ClassDefinition{
		Name:     "HomeController",
		Exported: true,
		Methods: []ir.MethodDefinition{{
			Name:       "index",
			Params:     reqRes(),
			ReturnType: "void",
			Access:     ir.AccessPublic,
			Body:       ir.Block(body),
		}},
	})
	return m, nil
}
