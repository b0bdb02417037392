package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()

	write := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("def test_x():\n    pass\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	write("test_root.py")
	write("sub/test_sub.py")
	write("sub/helper_test.py")
	write("sub/helpers.py")
	write("__pycache__/test_cached.py")
	write(".hidden/test_hidden.py")
	write("notes.txt")

	scanner := NewScanner([]string{"__pycache__"})
	files, err := scanner.Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := make(map[string]bool)
	for _, f := range files {
		rel, _ := filepath.Rel(root, f)
		found[filepath.ToSlash(rel)] = true
	}

	for _, want := range []string{"test_root.py", "sub/test_sub.py", "sub/helper_test.py"} {
		if !found[want] {
			t.Errorf("expected to find %s, got %v", want, found)
		}
	}
	for _, skip := range []string{"sub/helpers.py", "__pycache__/test_cached.py", ".hidden/test_hidden.py", "notes.txt"} {
		if found[skip] {
			t.Errorf("should not have found %s", skip)
		}
	}

	t.Run("non-existent root", func(t *testing.T) {
		if _, err := scanner.Scan(filepath.Join(root, "missing")); err == nil {
			t.Error("expected error for missing root")
		}
	})
}
