package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/tools/txtar"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{name: "simple", path: "src/server.ts"},
		{name: "nested", path: "src/controllers/user.controller.ts"},
		{name: "dots in name", path: "src/a..b.ts"},
		{name: "empty", path: "", errMsg: "empty"},
		{name: "dot", path: ".", errMsg: "empty"},
		{name: "absolute", path: "/etc/passwd", errMsg: "absolute paths not allowed"},
		{name: "drive letter", path: "C:/src/server.ts", errMsg: "absolute paths not allowed"},
		{name: "backslash", path: `src\server.ts`, errMsg: "backslashes"},
		{name: "traversal", path: "src/../../x.ts", errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../x.ts", errMsg: "path traversal not allowed"},
		{name: "current dir prefix", path: "./src/x.ts", errMsg: "not clean"},
		{name: "double slash", path: "src//x.ts", errMsg: "not clean"},
		{name: "trailing slash", path: "src/", errMsg: "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("ValidatePath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidatePath(%q) = nil, want error containing %q", tt.path, tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath(%q) = %q, want it to contain %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink()

	content := []byte("export {};\n")
	if err := s.WriteFile(ctx, "src/b.ts", content); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "src/a.ts", []byte("a")); err != nil {
		t.Fatal(err)
	}
	content[0] = 'X'
	if got := string(s.Get("src/b.ts")); got != "export {};\n" {
		t.Errorf("stored content changed with caller's slice: %q", got)
	}

	got := s.Get("src/a.ts")
	got[0] = 'Z'
	if string(s.Get("src/a.ts")) != "a" {
		t.Error("Get must return a copy")
	}
	if s.Get("missing.ts") != nil {
		t.Error("Get of missing path should be nil")
	}

	if paths := s.Paths(); strings.Join(paths, ",") != "src/a.ts,src/b.ts" {
		t.Errorf("Paths() = %v", paths)
	}
	if len(s.Files()) != 2 {
		t.Errorf("Files() has %d entries, want 2", len(s.Files()))
	}

	if err := s.WriteFile(ctx, "../x.ts", nil); err == nil {
		t.Error("expected invalid path error")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.WriteFile(canceled, "src/c.ts", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("WriteFile with canceled context = %v", err)
	}

	s.Reset()
	if len(s.Paths()) != 0 {
		t.Error("Reset should remove every file")
	}
}

func TestMemorySinkConcurrent(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("src/file%02d.ts", i)
			if err := s.WriteFile(context.Background(), name, []byte(name)); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	if n := len(s.Paths()); n != 50 {
		t.Errorf("got %d files, want 50", n)
	}
}

func TestMemorySinkArchive(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink()
	_ = s.WriteFile(ctx, "src/z.ts", []byte("z\n"))
	_ = s.WriteFile(ctx, "src/a.ts", []byte("a"))

	ar := s.Archive("generated project")
	data := txtar.Format(ar)
	want := "generated project\n-- src/a.ts --\na\n-- src/z.ts --\nz\n"
	if string(data) != want {
		t.Errorf("archive =\n%s\nwant\n%s", data, want)
	}

	parsed := txtar.Parse(data)
	if len(parsed.Files) != 2 || parsed.Files[0].Name != "src/a.ts" {
		t.Errorf("parsed archive files = %+v", parsed.Files)
	}
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewFilesystemSink(root, false)

	if err := s.WriteFile(ctx, "src/routes/index.ts", []byte("one")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "src", "routes", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one" {
		t.Errorf("content = %q", data)
	}
	info, err := os.Stat(filepath.Join(root, "src", "routes", "index.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	err = s.WriteFile(ctx, "src/routes/index.ts", []byte("two"))
	if !errors.Is(err, ErrExist) {
		t.Fatalf("second write without overwrite = %v, want ErrExist", err)
	}
	data, _ = os.ReadFile(filepath.Join(root, "src", "routes", "index.ts"))
	if string(data) != "one" {
		t.Errorf("existing file was replaced: %q", data)
	}

	s.Overwrite = true
	if err := s.WriteFile(ctx, "src/routes/index.ts", []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(filepath.Join(root, "src", "routes", "index.ts"))
	if string(data) != "two" {
		t.Errorf("content after overwrite = %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(root, "src", "routes"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".expressgen-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFilesystemSinkRejectsEscapes(t *testing.T) {
	s := NewFilesystemSink(t.TempDir(), true)
	for _, p := range []string{"../outside.ts", "/abs.ts", "src/../../x.ts", "."} {
		if err := s.WriteFile(context.Background(), p, []byte("x")); err == nil {
			t.Errorf("WriteFile(%q) succeeded, want error", p)
		}
	}
}

func TestFilesystemSinkConcurrent(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root, true)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.WriteFile(context.Background(), "src/shared.ts", []byte(fmt.Sprint(i))); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	if _, err := os.Stat(filepath.Join(root, "src", "shared.ts")); err != nil {
		t.Fatal(err)
	}
}
