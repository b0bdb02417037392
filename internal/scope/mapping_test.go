package scope

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("missing path is a configuration error", func(t *testing.T) {
		_, err := Load("", nil)
		if err != ErrNoScopesFile {
			t.Errorf("expected ErrNoScopesFile, got %v", err)
		}
	})

	t.Run("unreadable file is a configuration error", func(t *testing.T) {
		_, err := Load("/non/existent/scopes.csv", nil)
		if err == nil {
			t.Error("expected error for unreadable file")
		}
	})

	t.Run("loads a csv scopes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scopes.csv")
		content := "a.py::t1,G1\na.py::t2,G1\nb.py::t3,G2\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write scopes file: %v", err)
		}

		m, err := Load(path, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Len() != 3 {
			t.Errorf("expected 3 mapped identifiers, got %d", m.Len())
		}
		if got := m.Resolve("b.py::t3"); got != "G2" {
			t.Errorf("Resolve(b.py::t3) = %q, want G2", got)
		}
	})
}

func TestRead(t *testing.T) {
	t.Run("malformed rows are skipped with a diagnostic", func(t *testing.T) {
		var diags []string
		diag := func(format string, args ...any) {
			diags = append(diags, fmt.Sprintf(format, args...))
		}

		input := "a.py::t1,G1\nthree,columns,here\nonly-one-column\nb.py::t3,G2\n"
		m, err := Read(strings.NewReader(input), diag)
		if err != nil {
			t.Fatalf("construction should survive malformed rows: %v", err)
		}

		if m.Len() != 2 {
			t.Errorf("expected 2 mapped identifiers, got %d", m.Len())
		}
		if len(diags) != 2 {
			t.Errorf("expected 2 diagnostics, got %d: %v", len(diags), diags)
		}
	})

	t.Run("duplicate identifiers, last record wins", func(t *testing.T) {
		input := "a.py::t1,G1\na.py::t1,G2\n"
		m, err := Read(strings.NewReader(input), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Resolve("a.py::t1"); got != "G2" {
			t.Errorf("Resolve(a.py::t1) = %q, want G2", got)
		}
	})

	t.Run("quoted fields with embedded delimiters", func(t *testing.T) {
		input := "\"a.py::test[1,2]\",G1\n"
		m, err := Read(strings.NewReader(input), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := m.Resolve("a.py::test[1,2]"); got != "G1" {
			t.Errorf("Resolve(a.py::test[1,2]) = %q, want G1", got)
		}
	})
}
