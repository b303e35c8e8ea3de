package printer

import (
	"strings"
	"testing"

	"github.com/broady/expressgen/gen/ast"
)

func id(name string) *ast.Ident { return &ast.Ident{Name: name} }

func str(s string) *ast.StringLit { return &ast.StringLit{Value: s} }

func num(raw string) *ast.NumberLit { return &ast.NumberLit{Raw: raw} }

func member(obj ast.Expr, props ...string) ast.Expr {
	x := obj
	for _, p := range props {
		x = &ast.Member{Object: x, Property: p}
	}
	return x
}

func call(callee ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Callee: callee, Args: args}
}

func printExpr(t *testing.T, x ast.Expr) string {
	t.Helper()
	out, err := Print(&ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: x}}})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(out, "\n"), ";")
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"identifier", id("app"), "app"},
		{"string", str(`say "hi"`), `"say \"hi\""`},
		{"number", num("3000"), "3000"},
		{"bool", &ast.BoolLit{Value: true}, "true"},
		{"null", &ast.NullLit{}, "null"},
		{"this member", member(&ast.This{}, "app"), "this.app"},
		{"member chain", member(id("process"), "env", "PORT"), "process.env.PORT"},
		{"non-identifier member", member(id("headers"), "x-token"), `headers["x-token"]`},
		{"call", call(member(id("app"), "listen"), id("port")), "app.listen(port)"},
		{"chained call", call(member(call(member(id("res"), "status"), num("500")), "json"), id("body")), "res.status(500).json(body)"},
		{"new", &ast.New{Callee: id("Server"), Args: []ast.Expr{id("app")}}, "new Server(app)"},
		{
			"logical default",
			&ast.Logical{Op: "||", Left: member(id("process"), "env", "PORT"), Right: num("3000")},
			"process.env.PORT || 3000",
		},
		{
			"logical nests left",
			&ast.Logical{Op: "&&", Left: &ast.Logical{Op: "||", Left: id("a"), Right: id("b")}, Right: id("c")},
			"(a || b) && c",
		},
		{
			"binary right associativity",
			&ast.Binary{Op: "-", Left: id("a"), Right: &ast.Binary{Op: "-", Left: id("b"), Right: id("c")}},
			"a - (b - c)",
		},
		{
			"binary left chain",
			&ast.Binary{Op: "+", Left: &ast.Binary{Op: "+", Left: id("a"), Right: id("b")}, Right: id("c")},
			"a + b + c",
		},
		{
			"multiply binds tighter",
			&ast.Binary{Op: "*", Left: &ast.Binary{Op: "+", Left: id("a"), Right: id("b")}, Right: num("2")},
			"(a + b) * 2",
		},
		{"not", &ast.Unary{Op: "!", Operand: id("user")}, "!user"},
		{"typeof", &ast.Unary{Op: "typeof", Operand: id("x")}, "typeof x"},
		{"negate negative", &ast.Unary{Op: "-", Operand: &ast.Unary{Op: "-", Operand: id("x")}}, "- -x"},
		{"not of binary", &ast.Unary{Op: "!", Operand: &ast.Binary{Op: "===", Left: id("a"), Right: id("b")}}, "!(a === b)"},
		{
			"template",
			&ast.Template{
				Quasis: []ast.TemplateElement{{Raw: "Server running on port "}, {Raw: "", Tail: true}},
				Exprs:  []ast.Expr{id("port")},
			},
			"`Server running on port ${port}`",
		},
		{
			"template escapes",
			&ast.Template{Quasis: []ast.TemplateElement{{Raw: "a`b${c}", Tail: true}}},
			"`a\\`b\\${c}`",
		},
		{
			"conditional",
			&ast.Conditional{Test: id("ok"), Consequent: num("200"), Alternate: num("500")},
			"ok ? 200 : 500",
		},
		{"await", &ast.Await{Argument: call(member(id("User"), "find"))}, "await User.find()"},
		{
			"await of logical",
			&ast.Await{Argument: &ast.Logical{Op: "||", Left: id("a"), Right: id("b")}},
			"await (a || b)",
		},
		{"assign", &ast.Assign{Left: member(&ast.This{}, "port"), Right: num("3000")}, "this.port = 3000"},
		{"empty object", &ast.Object{}, "({})"},
		{
			"inline object",
			&ast.Object{Props: []ast.Property{
				{Key: "message", Value: str("ok")},
				{Key: "user", Value: id("user"), Shorthand: true},
				{Key: "content-type", Value: str("json")},
			}},
			`({ message: "ok", user, "content-type": "json" })`,
		},
		{"array", &ast.Array{Elems: []ast.Expr{num("1"), num("2")}}, "[1, 2]"},
		{
			"arrow",
			&ast.Function{Arrow: true, Params: []ast.Param{{Name: "req"}, {Name: "res"}}, Body: []ast.Stmt{
				&ast.ExprStmt{X: call(member(id("res"), "send"), str("ok"))},
			}},
			"(req, res) => {\n  res.send(\"ok\");\n}",
		},
		{
			"concise arrow returning object",
			&ast.Function{Arrow: true, ExprBody: &ast.Object{Props: []ast.Property{{Key: "a", Value: num("1")}}}},
			"() => ({ a: 1 })",
		},
		{
			"async arrow",
			&ast.Function{Arrow: true, Async: true, Params: []ast.Param{{Name: "err", Type: &ast.TypeName{Name: "Error"}}}},
			"async (err: Error) => {}",
		},
		{
			"called arrow",
			call(&ast.Function{Arrow: true}),
			"(() => {})()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printExpr(t, tt.expr)
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestPrintStatementWrapsLeadingBrace(t *testing.T) {
	fn := &ast.Function{Params: []ast.Param{{Name: "x"}}}
	out, err := Print(&ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: fn}}})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if want := "(function (x) {});\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestPrintWideObjectBreaks(t *testing.T) {
	obj := &ast.Object{Props: []ast.Property{
		{Key: "useNewUrlParser", Value: &ast.BoolLit{Value: true}},
		{Key: "useUnifiedTopology", Value: &ast.BoolLit{Value: true}},
		{Key: "serverSelectionTimeoutMS", Value: num("5000")},
	}}
	stmt := &ast.ExprStmt{X: call(member(id("mongoose"), "connect"), id("uri"), obj)}
	out, err := Print(&ast.File{Body: []ast.Stmt{stmt}})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := `mongoose.connect(uri, {
  useNewUrlParser: true,
  useUnifiedTopology: true,
  serverSelectionTimeoutMS: 5000,
});
`
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Stmt
		want string
	}{
		{
			"const",
			&ast.VarDecl{Kind: "const", Decls: []ast.Declarator{{Name: "port", Init: num("3000")}}},
			"const port = 3000;\n",
		},
		{
			"exported typed let",
			&ast.VarDecl{Kind: "let", Exported: true, Decls: []ast.Declarator{{Name: "io", Type: &ast.TypeName{Name: "Server"}}}},
			"export let io: Server;\n",
		},
		{
			"destructuring",
			&ast.VarDecl{Kind: "const", Decls: []ast.Declarator{{Pattern: []string{"email", "password"}, Init: member(id("req"), "body")}}},
			"const { email, password } = req.body;\n",
		},
		{
			"if",
			&ast.If{Test: &ast.Unary{Op: "!", Operand: id("user")}, Then: []ast.Stmt{&ast.Return{}}},
			"if (!user) {\n  return;\n}\n",
		},
		{
			"if else",
			&ast.If{Test: id("a"), Then: []ast.Stmt{&ast.Break{}}, Else: []ast.Stmt{&ast.Break{}}},
			"if (a) {\n  break;\n} else {\n  break;\n}\n",
		},
		{
			"switch",
			&ast.Switch{Discriminant: id("kind"), Cases: []ast.Case{
				{Test: str("a"), Body: []ast.Stmt{&ast.Return{Argument: num("1")}, &ast.Break{}}},
				{Body: []ast.Stmt{&ast.Return{Argument: num("0")}}},
			}},
			"switch (kind) {\n  case \"a\":\n    return 1;\n    break;\n  default:\n    return 0;\n}\n",
		},
		{
			"try catch finally",
			&ast.Try{
				Block:   []ast.Stmt{&ast.ExprStmt{X: &ast.Await{Argument: call(id("connect"))}}},
				Param:   "error",
				Handler: []ast.Stmt{&ast.Throw{Argument: id("error")}},
				Finally: []ast.Stmt{&ast.ExprStmt{X: call(id("done"))}},
			},
			"try {\n  await connect();\n} catch (error) {\n  throw error;\n} finally {\n  done();\n}\n",
		},
		{"comment", &ast.Comment{Text: "TODO"}, "// TODO\n"},
		{"side effect import", &ast.Import{Source: "dotenv/config"}, "import \"dotenv/config\";\n"},
		{
			"default and named import",
			&ast.Import{Source: "express", Default: "express", Named: []ast.ImportSpec{{Imported: "Request"}, {Imported: "Response", Local: "Res"}}},
			"import express, { Request, Response as Res } from \"express\";\n",
		},
		{"namespace import", &ast.Import{Source: "path", Namespace: "path"}, "import * as path from \"path\";\n"},
		{"type import", &ast.Import{Source: "express", TypeOnly: true, Named: []ast.ImportSpec{{Imported: "Request"}}}, "import type { Request } from \"express\";\n"},
		{"export named", &ast.ExportNamed{Specs: []ast.ExportSpec{{Local: "a"}, {Local: "b", Exported: "c"}}}, "export { a, b as c };\n"},
		{"re-export", &ast.ExportNamed{Source: "./user", Specs: []ast.ExportSpec{{Local: "User"}}}, "export { User } from \"./user\";\n"},
		{"export default", &ast.ExportDefault{Value: id("App")}, "export default App;\n"},
		{
			"interface",
			&ast.InterfaceDecl{Name: "IUser", Exported: true, Extends: []string{"Document"}, Members: []ast.PropertySignature{
				{Name: "email", Type: &ast.TypeName{Name: "string"}},
				{Name: "name", Type: &ast.TypeName{Name: "string"}, Optional: true},
			}},
			"export interface IUser extends Document {\n  email: string;\n  name?: string;\n}\n",
		},
		{
			"function",
			&ast.FuncDecl{Name: "connect", Async: true, Exported: true, ReturnType: &ast.TypeApply{Name: "Promise", Args: []ast.Type{&ast.TypeName{Name: "void"}}}},
			"export async function connect(): Promise<void> {}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Print(&ast.File{Body: []ast.Stmt{tt.stmt}})
			if err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestPrintClass(t *testing.T) {
	class := &ast.ClassDecl{
		Name:    "App",
		Default: true,
		Doc:     "App wires the HTTP server.",
		Members: []ast.ClassMember{
			&ast.ClassProperty{Name: "app", Access: ast.AccessPublic, Type: &ast.TypeApply{Name: "ReturnType", Args: []ast.Type{&ast.TypeQuery{Name: "express"}}}},
			&ast.ClassProperty{Name: "port", Access: ast.AccessPrivate, Type: &ast.TypeName{Name: "number"}, Definite: true},
			&ast.ClassMethod{Kind: ast.MethodConstructor, Body: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Left: member(&ast.This{}, "app"), Right: call(id("express"))}},
			}},
			&ast.ClassMethod{Name: "listen", Access: ast.AccessPublic, ReturnType: &ast.TypeName{Name: "void"}},
			&ast.ClassMethod{Name: "connect", Access: ast.AccessPrivate, Async: true, Static: true},
		},
	}
	got, err := Print(&ast.File{Header: "Generated file.", Body: []ast.Stmt{class}})
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := `// Generated file.

/** App wires the HTTP server. */
export default class App {
  public app: ReturnType<typeof express>;
  private port!: number;

  constructor() {
    this.app = express();
  }

  public listen(): void {}

  private static async connect() {}
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintTopLevelSpacing(t *testing.T) {
	file := &ast.File{Body: []ast.Stmt{
		&ast.Import{Source: "express", Default: "express"},
		&ast.Import{Source: "cors", Default: "cors"},
		&ast.VarDecl{Kind: "const", Decls: []ast.Declarator{{Name: "app", Init: call(id("express"))}}},
		&ast.ExprStmt{X: call(member(id("app"), "use"), call(id("cors")))},
		&ast.ExportDefault{Value: id("app")},
	}}
	got, err := Print(file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := `import express from "express";
import cors from "cors";

const app = express();
app.use(cors());

export default app;
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintConfig(t *testing.T) {
	file := &ast.File{Body: []ast.Stmt{
		&ast.If{Test: id("ok"), Then: []ast.Stmt{&ast.ExprStmt{X: call(id("log"), str("it's"))}}},
	}}
	p := New(Config{IndentStyle: "tab", Quote: "single", LineEnding: "crlf", Frontmatter: "// @ts-nocheck"})
	got, err := p.Print(file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := "// @ts-nocheck\r\n\r\nif (ok) {\r\n\tlog('it\\'s');\r\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintCommentsDisabled(t *testing.T) {
	file := &ast.File{Body: []ast.Stmt{&ast.FuncDecl{Name: "f", Doc: "Does f."}}}
	p := New(Config{TrailingNewline: true})
	got, err := p.Print(file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if want := "function f() {}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintMultilineDoc(t *testing.T) {
	file := &ast.File{Body: []ast.Stmt{&ast.FuncDecl{Name: "f", Doc: "Line one.\nLine two."}}}
	got, err := Print(file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := "/**\n * Line one.\n * Line two.\n */\nfunction f() {}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintDocEscapesCommentEnd(t *testing.T) {
	file := &ast.File{Body: []ast.Stmt{
		&ast.FuncDecl{Name: "f", Doc: "Matches a/*/b. */ f();"},
		&ast.FuncDecl{Name: "g", Doc: "Ends here */\nnext line"},
	}}
	got, err := Print(file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	want := "/** Matches a/*\\/b. *\\/ f(); */\nfunction f() {}\n\n" +
		"/**\n * Ends here *\\/\n * next line\n */\nfunction g() {}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Count(got, "*/") != 2 {
		t.Errorf("comment closed early in %q", got)
	}
}

func TestPrintErrors(t *testing.T) {
	tests := []struct {
		name string
		file *ast.File
		want string
	}{
		{"nil file", nil, "nil file"},
		{"nil statement", &ast.File{Body: []ast.Stmt{nil}}, "nil statement"},
		{"empty identifier", &ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: id("")}}}, "empty identifier"},
		{"bad operator", &ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.Binary{Op: "**", Left: id("a"), Right: id("b")}}}}, `invalid binary operator "**"`},
		{"bad unary", &ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.Unary{Op: "void", Operand: id("a")}}}}, `invalid unary operator "void"`},
		{"bad var kind", &ast.File{Body: []ast.Stmt{&ast.VarDecl{Kind: "val", Decls: []ast.Declarator{{Name: "a"}}}}}, `invalid variable kind "val"`},
		{
			"template arity",
			&ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: &ast.Template{Quasis: []ast.TemplateElement{{Raw: "a"}}, Exprs: []ast.Expr{id("x")}}}}},
			"1 quasis for 1 expressions",
		},
		{"import without source", &ast.File{Body: []ast.Stmt{&ast.Import{Default: "x"}}}, "import without source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Print(tt.file)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}
