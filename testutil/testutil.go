// Package testutil provides testing helpers for generated TypeScript sources
// and the file trees they are written to.
// This package is designed to be import-cycle safe and can be used from any
// package except gen/verify.
package testutil

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/expressgen/gen/verify"
)

// WriteTree creates files under a new temporary directory and returns it.
// Keys are slash-separated paths relative to the directory.
func WriteTree(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// ReadTree returns every regular file below dir keyed by its slash-separated
// relative path.
func ReadTree(t testing.TB, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree %s: %v", dir, err)
	}
	return out
}

// AssertParses checks that src is syntactically valid TypeScript.
func AssertParses(t testing.TB, name, src string) {
	t.Helper()
	report, err := verify.Check(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("%s: parse: %v", name, err)
	}
	if report.OK() {
		return
	}
	msgs := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		msgs = append(msgs, e.String())
	}
	t.Errorf("%s: syntax errors:\n%s\nsource:\n%s", name, strings.Join(msgs, "\n"), src)
}

// AssertContains checks that src contains every snippet.
func AssertContains(t testing.TB, name, src string, snippets ...string) {
	t.Helper()
	for _, s := range snippets {
		if !strings.Contains(src, s) {
			t.Errorf("%s: expected %q in output:\n%s", name, s, src)
		}
	}
}
