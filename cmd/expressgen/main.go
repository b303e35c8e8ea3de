package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/broady/expressgen/cmd/expressgen/internal/check"
	"github.com/broady/expressgen/cmd/expressgen/internal/gen"
	"github.com/broady/expressgen/cmd/expressgen/internal/lower"
	"github.com/broady/expressgen/gen/templates"
)

type CLI struct {
	LogLevel slog.Level `help:"Log level (debug, info, warn, error)." default:"info" name:"log-level"`

	Version   VersionCmd    `cmd:"" help:"Print version information."`
	Templates TemplatesCmd  `cmd:"" help:"List available templates."`
	Render    gen.RenderCmd `cmd:"" help:"Print one template to stdout."`
	Gen       gen.Cmd       `cmd:"" help:"Generate project files."`
	Check     check.Cmd     `cmd:"" help:"Parse TypeScript files and report syntax errors."`
	Lower     lower.Cmd     `cmd:"" help:"Lower IR statements from JSON and print TypeScript."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("expressgen %s (%s)\n", Version(), runtime.Version())
	return nil
}

type TemplatesCmd struct{}

func (c *TemplatesCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATH\tDESCRIPTION")
	for _, t := range templates.NewRegistry().All() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Path, t.Description)
	}
	return w.Flush()
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("expressgen"),
		kong.Description("Generate Express TypeScript servers from a few options."),
		kong.UsageOnError(),
	)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel}))
	slog.SetDefault(logger)
	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
