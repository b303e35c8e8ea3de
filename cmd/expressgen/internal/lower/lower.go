// Package lower implements the lower command: it reads IR expressions
// encoded as JSON, lowers them to statements and prints TypeScript.
package lower

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/broady/expressgen/gen/ast"
	"github.com/broady/expressgen/gen/build"
	"github.com/broady/expressgen/gen/ir"
	"github.com/broady/expressgen/gen/printer"
)

type Cmd struct {
	File         string `arg:"" help:"JSON file holding one expression or an array of them (\"-\" for stdin)." default:"-"`
	Header       string `help:"Header comment for the printed file."`
	SingleQuotes bool   `help:"Print string literals with single quotes."`
	Indent       int    `help:"Spaces per indent level." default:"2"`
}

func (c *Cmd) Run() error {
	var data []byte
	var err error
	if c.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}

	cfg := printer.DefaultConfig()
	cfg.IndentSize = c.Indent
	if c.SingleQuotes {
		cfg.Quote = "single"
	}
	out, err := Source(data, c.Header, cfg)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// Decode reads one IR expression, or a JSON array of them.
func Decode(data []byte) ([]ir.Expression, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	if data[0] != '[' {
		e, err := ir.UnmarshalExpression(data)
		if err != nil {
			return nil, err
		}
		return []ir.Expression{e}, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode expressions: %w", err)
	}
	exprs := make([]ir.Expression, 0, len(raws))
	for i, raw := range raws {
		e, err := ir.UnmarshalExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("expression %d: %w", i, err)
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// Source decodes, lowers and prints data as a file with the given header.
func Source(data []byte, header string, cfg printer.Config) (string, error) {
	exprs, err := Decode(data)
	if err != nil {
		return "", err
	}
	stmts, err := build.Block(exprs)
	if err != nil {
		return "", err
	}
	return printer.New(cfg).Print(&ast.File{Header: header, Body: stmts})
}
