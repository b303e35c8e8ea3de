package build

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/printer"
)

// renderArg lowers arg and prints it as an expression statement without the
// trailing semicolon.
func renderArg(t *testing.T, arg ir.Argument) string {
	t.Helper()
	x, err := Argument(arg)
	require.NoError(t, err)
	out, err := printer.Print(&ast.File{Body: []ast.Stmt{&ast.ExprStmt{X: x}}})
	require.NoError(t, err)
	return strings.TrimSuffix(strings.TrimSuffix(out, "\n"), ";")
}

// renderStmts prints lowered statements as a file body.
func renderStmts(t *testing.T, stmts ...ast.Stmt) string {
	t.Helper()
	out, err := printer.Print(&ast.File{Body: stmts})
	require.NoError(t, err)
	return out
}

func renderExpr(t *testing.T, e ir.Expression) string {
	t.Helper()
	s, err := Expression(e)
	require.NoError(t, err)
	return renderStmts(t, s)
}

// requireBuildError asserts err is a *Error for kind and, when field is
// non-empty, for that field.
func requireBuildError(t *testing.T, err error, kind, field string) *Error {
	t.Helper()
	require.Error(t, err)
	var be *Error
	require.True(t, errors.As(err, &be), "error %v is not a *build.Error", err)
	require.Equal(t, kind, be.Kind, "error: %v", err)
	if field != "" {
		require.Equal(t, field, be.Field, "error: %v", err)
	}
	return be
}
