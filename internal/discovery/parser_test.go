package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()

	testFile := filepath.Join(t.TempDir(), "test_user.py")
	pyContent := `import pytest


def test_create_user():
    pass


async def test_async_login():
    pass


def helper_function():
    pass


class TestUser:
    def test_update(self):
        pass

    async def test_delete(self):
        pass

    def build_fixture(self):
        pass


class Helpers:
    def test_not_collected(self):
        pass


def test_after_class():
    pass
`
	if err := os.WriteFile(testFile, []byte(pyContent), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	t.Run("finds tests in file order", func(t *testing.T) {
		testCases, err := parser.FindTestCases(testFile)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"test_create_user",
			"test_async_login",
			"TestUser::test_update",
			"TestUser::test_delete",
			"test_after_class",
		}
		if !reflect.DeepEqual(testCases, want) {
			t.Errorf("test cases = %v, want %v", testCases, want)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTestCases("/non/existent/test_file.py")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}
