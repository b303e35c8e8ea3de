package templates

import (
	"fmt"

	"github.com/broady/expressgen/gen/ir"
)

func reqRes() []ir.Parameter {
	return ir.Params(ir.Param("req", "Request"), ir.Param("res", "Response"))
}

func expressHandlerImport() ir.ImportConfig {
	return ir.Import("express", "Request", "Response")
}

// respond is res.status(code).json(body).
func respond(code int, body ir.Argument) ir.Expression {
	return ir.Do(ir.Chain(ir.MethodCall("res", "status", ir.Lit(code)), "json", body))
}

// respondMessage is res.status(code).json({ message }).
func respondMessage(code int, msg string) ir.Expression {
	return respond(code, ir.Obj(ir.F("message", ir.Lit(msg))))
}

// noContent is res.status(204).send().
func noContent() ir.Expression {
	return ir.Do(ir.Chain(ir.MethodCall("res", "status", ir.Lit(204)), "send"))
}

// guard returns early with a message when test holds.
func guard(test ir.Argument, code int, msg string) ir.Expression {
	return ir.If(test, respondMessage(code, msg), ir.Ret(nil))
}

func consoleLog(args ...ir.Argument) ir.Expression {
	return ir.Invoke("console", "log", "", args...)
}

func consoleError(args ...ir.Argument) ir.Expression {
	return ir.Invoke("console", "error", "", args...)
}

// env is process.env.NAME || fallback.
func env(name string, fallback any) ir.Argument {
	return ir.Or(ir.Prop("process.env", name), ir.Lit(fallback))
}

func this(property string) ir.Argument {
	return ir.Prop("this", property)
}

// callThis is this.method(args...) as a statement.
func callThis(method string, args ...ir.Argument) ir.Expression {
	return ir.Invoke("this", method, "", args...)
}

// delegate is (req, res) => object.method(req, res), which keeps the
// receiver bound when a controller method is used as a route handler.
func delegate(object, method string) ir.Argument {
	return ir.ArrowResult(
		ir.Params(ir.Param("req", ""), ir.Param("res", "")),
		ir.MethodCall(object, method, ir.Ident("req"), ir.Ident("res")),
	)
}

// route is router.verb(path, handlers...).
func route(verb, path string, handlers ...ir.Argument) ir.Expression {
	args := append([]ir.Argument{ir.Lit(path)}, handlers...)
	return ir.Invoke("router", verb, "", args...)
}

func exportConst(id string, init ir.Argument) *ir.VariableDeclaration {
	d := ir.ConstDecl(id, init)
	d.Exported = true
	return d
}

func typedConst(id, typ string, init ir.Argument) *ir.VariableDeclaration {
	d := ir.ConstDecl(id, init)
	d.Declarations[0].Type = typ
	return d
}

// catchAndFail wraps body in try/catch answering 500 with msg.
func catchAndFail(msg string, body ...ir.Expression) ir.Expression {
	return ir.Try(body, "error", ir.Block(
		respond(500, ir.Obj(ir.F("message", ir.Lit(msg)), ir.F("error", ir.Ident("error")))),
	))
}

// placeholder marks a feature that was skipped because the option value is
// not supported.
func placeholder(field, value string) *ir.Comment {
	return &ir.Comment{Text: fmt.Sprintf("expressgen: unsupported %s %q", field, value)}
}

func asyncHandler(name string, body ...ir.Expression) ir.MethodDefinition {
	return ir.MethodDefinition{
		Name:       name,
		Params:     reqRes(),
		ReturnType: "Promise<void>",
		Async:      true,
		Access:     ir.AccessPublic,
		Body:       body,
	}
}
