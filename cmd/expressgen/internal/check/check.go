package check

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/expressgen/gen/verify"
)

type Cmd struct {
	Paths []string `arg:"" help:"TypeScript files or directories to check." type:"path" default:"."`
}

func (c *Cmd) Run() error {
	files, err := Collect(c.Paths)
	if err != nil {
		return err
	}
	n, err := Files(context.Background(), os.Stdout, files)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%d syntax error(s) in %d file(s)", n, len(files))
	}
	fmt.Printf("✓ %d file(s) parsed cleanly\n", len(files))
	return nil
}

// Collect expands directories into the .ts files below them, skipping
// node_modules and dot directories.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != p && (name == "node_modules" || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".ts") && !strings.HasSuffix(path, ".d.ts") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Files parses each file and writes one "path:line:col: message" line per
// syntax error to w. It returns the number of errors found.
func Files(ctx context.Context, w io.Writer, files []string) (int, error) {
	total := 0
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return total, err
		}
		report, err := verify.Check(ctx, src)
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}
		for _, e := range report.Errors {
			fmt.Fprintf(w, "%s:%s\n", path, e)
		}
		total += len(report.Errors)
	}
	return total, nil
}
