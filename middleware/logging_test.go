package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/broady/expressgen"
	"github.com/broady/expressgen/gen/options"
)

func testJob() *expressgen.Job {
	return &expressgen.Job{TemplateID: "routes", Path: "src/routes/index.ts", Options: options.Defaults("demo")}
}

func TestLoggingInterceptor_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	interceptor := LoggingInterceptor(logger)

	next := func(ctx context.Context, job *expressgen.Job) ([]byte, error) {
		return []byte("export {};\n"), nil
	}

	out, err := interceptor(context.Background(), testJob(), next)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if string(out) != "export {};\n" {
		t.Errorf("expected output to pass through, got %q", out)
	}

	logOutput := buf.String()
	if !strings.Contains(logOutput, "render started") {
		t.Error("expected 'render started' in log output")
	}
	if !strings.Contains(logOutput, "render completed") {
		t.Error("expected 'render completed' in log output")
	}
	if !strings.Contains(logOutput, `"template":"routes"`) {
		t.Error("expected template ID in log output")
	}
	if !strings.Contains(logOutput, `"bytes":11`) {
		t.Error("expected output size in log output")
	}
}

func TestLoggingInterceptor_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	interceptor := LoggingInterceptor(logger)

	testErr := errors.New("test error")
	next := func(ctx context.Context, job *expressgen.Job) ([]byte, error) {
		return nil, testErr
	}

	out, err := interceptor(context.Background(), testJob(), next)

	if err != testErr {
		t.Errorf("expected test error, got %v", err)
	}

	if out != nil {
		t.Errorf("expected nil output, got %q", out)
	}

	logOutput := buf.String()
	if strings.Contains(logOutput, "render started") {
		t.Error("did not expect debug 'render started' at info level")
	}
	if !strings.Contains(logOutput, "render failed") {
		t.Error("expected 'render failed' in log output")
	}
	if !strings.Contains(logOutput, "test error") {
		t.Error("expected error message in log output")
	}
	if !strings.Contains(logOutput, "src/routes/index.ts") {
		t.Error("expected path in log output")
	}
}

func TestLoggingInterceptor_NilLogger(t *testing.T) {
	interceptor := LoggingInterceptor(nil)

	next := func(ctx context.Context, job *expressgen.Job) ([]byte, error) {
		return []byte("ok"), nil
	}

	if _, err := interceptor(context.Background(), testJob(), next); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoggingInterceptor_WithProject(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	src, err := expressgen.New(options.Defaults("demo")).
		WithInterceptor(LoggingInterceptor(logger)).
		Render(context.Background(), "index")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(src, "app.start();") {
		t.Errorf("unexpected source:\n%s", src)
	}
	if !strings.Contains(buf.String(), `"path":"src/index.ts"`) {
		t.Errorf("expected render log for src/index.ts, got %s", buf.String())
	}
}
