package templates

import "github.com/broady/expressgen/gen/ir"

// Index generates src/index.ts, which loads the environment and starts the
// server.
func Index(ctx *Context) (*ir.Module, error) {
	m := &ir.Module{}
	m.Import(
		ir.ImportConfig{Module: "dotenv/config", SideEffect: true},
		ir.DefaultImport("./server", "App"),
	)
	m.Add(
		ir.Stmt(ir.ConstDecl("app", ir.New("App"))),
		ir.Stmt(ir.Invoke("app", "start", "")),
	)
	return m, nil
}
