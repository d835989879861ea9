package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formset/pkg/dom"
	"github.com/goliatone/go-formset/pkg/formset"
)

// LoadPage reads a markup fixture and parses it against layout. Testing
// helpers fail the test on error to keep contract tests concise.
func LoadPage(t *testing.T, path string, layout formset.Layout) *dom.Document {
	t.Helper()

	doc, err := LoadPageFromPath(path, layout)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return doc
}

// LoadPageFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadPageFromPath(path string, layout formset.Layout) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: page path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read page: %w", err)
	}
	doc, err := dom.Parse(bytes.NewReader(data), layout)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse page: %w", err)
	}
	return doc, nil
}

// MustFormset wires a Formset over tree with diagnostics discarded.
func MustFormset(t *testing.T, tree formset.Tree, layout formset.Layout) *formset.Formset {
	t.Helper()

	fset, err := formset.New(tree, layout, formset.WithLogger(DiscardLogger()))
	if err != nil {
		t.Fatalf("new formset: %v", err)
	}
	return fset
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
