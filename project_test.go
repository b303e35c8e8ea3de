package expressgen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/broady/expressgen/gen/options"
	"github.com/broady/expressgen/gen/printer"
	"github.com/broady/expressgen/gen/sink"
	"github.com/broady/expressgen/gen/templates"
)

func fullOptions(t *testing.T) options.Options {
	t.Helper()
	opts, warns := options.Normalize(options.Raw{
		ProjectName:  "shop-api",
		DatabaseOrm:  "sequelize",
		AuthLib:      "jwt",
		WebsocketLib: "socketio",
		ViewEngine:   "ejs",
	})
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	return opts
}

func allTemplates() []FileWrite {
	var files []FileWrite
	for _, tmpl := range templates.NewRegistry().All() {
		files = append(files, FileWrite{TemplateID: tmpl.ID})
	}
	return files
}

func TestProjectRender(t *testing.T) {
	p := New(options.Defaults("api"))
	out, err := p.Render(context.Background(), "index")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `import App from "./server";`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	_, err = p.Render(context.Background(), "nope")
	var ge *GenerateError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GenerateError, got %v", err)
	}
	if ge.TemplateID != "nope" {
		t.Errorf("TemplateID = %q", ge.TemplateID)
	}
}

func TestProjectPrinterConfig(t *testing.T) {
	cfg := printer.DefaultConfig()
	cfg.Quote = "single"
	cfg.IndentStyle = "tab"
	out, err := New(options.Defaults("api")).WithPrinterConfig(cfg).Render(context.Background(), "routes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "import { Router } from 'express';") {
		t.Errorf("single quotes not applied:\n%s", out)
	}
	if !strings.Contains(out, "\n\tconst router = Router();\n") {
		t.Errorf("tab indent not applied:\n%s", out)
	}
}

func TestProjectWrite(t *testing.T) {
	mem := sink.NewMemorySink()
	p := New(fullOptions(t)).WithSink(mem).WithConcurrency(3).WithVerification()

	if err := p.Write(context.Background(), allTemplates()); err != nil {
		t.Fatal(err)
	}

	reg := templates.NewRegistry()
	if got, want := len(mem.Paths()), len(reg.All()); got != want {
		t.Fatalf("wrote %d files, want %d", got, want)
	}
	for _, tmpl := range reg.All() {
		data := mem.Get(tmpl.Path)
		if data == nil {
			t.Errorf("%s: nothing written to %s", tmpl.ID, tmpl.Path)
			continue
		}
		want, err := p.Render(context.Background(), tmpl.ID)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want {
			t.Errorf("%s: written content differs from Render", tmpl.ID)
		}
	}
}

func TestProjectWriteCustomPath(t *testing.T) {
	mem := sink.NewMemorySink()
	err := New(options.Defaults("api")).WithSink(mem).Write(context.Background(), []FileWrite{
		{TemplateID: "index", Path: "app/main.ts"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if paths := mem.Paths(); len(paths) != 1 || paths[0] != "app/main.ts" {
		t.Errorf("paths = %v", paths)
	}
}

func TestProjectWriteErrors(t *testing.T) {
	ctx := context.Background()
	mem := sink.NewMemorySink()

	tests := []struct {
		name    string
		project *Project
		files   []FileWrite
		wantErr string
	}{
		{
			name:    "no sink",
			project: New(options.Defaults("api")),
			files:   Files("index"),
			wantErr: "no sink configured",
		},
		{
			name:    "invalid options",
			project: New(options.Defaults("Not Valid")).WithSink(mem),
			files:   Files("index"),
			wantErr: "projectName",
		},
		{
			name:    "unknown template",
			project: New(options.Defaults("api")).WithSink(mem),
			files:   Files("index", "nope"),
			wantErr: "generate nope: unknown template",
		},
		{
			name:    "bad path",
			project: New(options.Defaults("api")).WithSink(mem),
			files:   []FileWrite{{TemplateID: "index", Path: "../index.ts"}},
			wantErr: "path traversal not allowed",
		},
		{
			name:    "duplicate path",
			project: New(options.Defaults("api")).WithSink(mem),
			files:   []FileWrite{{TemplateID: "index"}, {TemplateID: "server", Path: "src/index.ts"}},
			wantErr: "path already written by template index",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Write(ctx, tt.files)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
	if len(mem.Paths()) != 0 {
		t.Errorf("failed writes must not store files, got %v", mem.Paths())
	}
}

func TestProjectWriteExisting(t *testing.T) {
	ctx := context.Background()
	fs := sink.NewFilesystemSink(t.TempDir(), false)
	p := New(options.Defaults("api")).WithSink(fs)

	if err := p.Write(ctx, Files("index")); err != nil {
		t.Fatal(err)
	}
	err := p.Write(ctx, Files("index"))
	if !errors.Is(err, sink.ErrExist) {
		t.Fatalf("second write = %v, want ErrExist", err)
	}
	var ge *GenerateError
	if !errors.As(err, &ge) || ge.Path != "src/index.ts" || ge.TemplateID != "index" {
		t.Errorf("GenerateError = %+v", ge)
	}
}

func TestProjectWriteConcurrencyLimit(t *testing.T) {
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	track := func(ctx context.Context, job *Job, next RenderFunc) ([]byte, error) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			running--
			mu.Unlock()
		}()
		return next(ctx, job)
	}

	mem := sink.NewMemorySink()
	err := New(fullOptions(t)).WithSink(mem).WithInterceptor(track).WithConcurrency(2).
		Write(context.Background(), allTemplates())
	if err != nil {
		t.Fatal(err)
	}
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}

func TestProjectWriteStopsOnFailure(t *testing.T) {
	fail := func(ctx context.Context, job *Job, next RenderFunc) ([]byte, error) {
		if job.TemplateID == "server" {
			return nil, errors.New("boom")
		}
		return next(ctx, job)
	}
	mem := sink.NewMemorySink()
	err := New(options.Defaults("api")).WithSink(mem).WithInterceptor(fail).WithConcurrency(1).
		Write(context.Background(), Files("server", "index", "routes"))

	var ge *GenerateError
	if !errors.As(err, &ge) || ge.TemplateID != "server" {
		t.Fatalf("error = %v, want GenerateError for server", err)
	}
	if mem.Get("src/server.ts") != nil {
		t.Error("failed render must not be written")
	}
}
