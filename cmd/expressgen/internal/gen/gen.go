package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"

	"github.com/broady/expressgen"
	"github.com/broady/expressgen/gen/options"
	"github.com/broady/expressgen/gen/sink"
	"github.com/broady/expressgen/gen/templates"
	"github.com/broady/expressgen/middleware"
)

type Cmd struct {
	OptionFlags `embed:""`

	Templates   []string `help:"Template IDs to write (\"all\" for every template). Defaults to the manifest files." short:"t" name:"template"`
	Out         string   `help:"Output directory." short:"o" default:"." type:"path"`
	Archive     string   `help:"Write a txtar archive to this file instead of a directory." type:"path"`
	Overwrite   bool     `help:"Replace existing files."`
	Concurrency int      `help:"Files rendered at once." default:"4"`
	Verify      bool     `help:"Re-parse every file and fail on syntax or outline mismatches."`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	opts, m, err := c.Load(logger)
	if err != nil {
		return err
	}
	files, err := c.files(m)
	if err != nil {
		return err
	}

	var mem *sink.MemorySink
	var s sink.Sink
	if c.Archive != "" {
		mem = sink.NewMemorySink()
		s = mem
	} else {
		s = sink.NewFilesystemSink(c.Out, c.Overwrite)
	}

	p := expressgen.New(opts).
		WithSink(s).
		WithConcurrency(c.Concurrency).
		WithInterceptor(middleware.LoggingInterceptor(logger))
	if c.Verify {
		p = p.WithVerification()
	}
	if err := p.Write(context.Background(), files); err != nil {
		return err
	}

	if mem != nil {
		return c.writeArchive(mem, opts)
	}
	logger.Info("project written", "dir", c.Out, "files", len(files))
	return nil
}

// files resolves the requested templates. --template wins over the
// manifest's file list.
func (c *Cmd) files(m *options.Manifest) ([]expressgen.FileWrite, error) {
	if len(c.Templates) > 0 {
		if len(c.Templates) == 1 && c.Templates[0] == "all" {
			var ids []string
			for _, t := range templates.NewRegistry().All() {
				ids = append(ids, t.ID)
			}
			return expressgen.Files(ids...), nil
		}
		return expressgen.Files(c.Templates...), nil
	}
	if m == nil || len(m.Files) == 0 {
		return nil, errors.New("no files requested: pass --template or a manifest with files")
	}
	files := make([]expressgen.FileWrite, 0, len(m.Files))
	for _, f := range m.Files {
		files = append(files, expressgen.FileWrite{TemplateID: f.Template, Path: f.Path})
	}
	return files, nil
}

func (c *Cmd) writeArchive(mem *sink.MemorySink, opts options.Options) error {
	ar := mem.Archive(fmt.Sprintf("expressgen project %s", opts.ProjectName))
	if dir := filepath.Dir(c.Archive); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if !c.Overwrite {
		if _, err := os.Stat(c.Archive); err == nil {
			return fmt.Errorf("%w: %q", sink.ErrExist, c.Archive)
		}
	}
	return os.WriteFile(c.Archive, txtar.Format(ar), 0o644)
}
