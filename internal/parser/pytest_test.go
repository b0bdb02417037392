package parser

import (
	"errors"
	"testing"

	"pts/internal/domain"
)

const failedOutput = `============================= test session starts ==============================
collected 3 items

tests/test_user.py ..F                                                   [100%]

=================================== FAILURES ===================================
_________________________________ test_delete __________________________________

    def test_delete():
>       assert user.delete()
E       AssertionError: delete failed

=========================== short test summary info ============================
FAILED tests/test_user.py::test_delete - AssertionError: delete failed
========================= 1 failed, 2 passed in 0.12s ==========================
`

func TestPytestParser_ParseCounts(t *testing.T) {
	parser := NewPytestParser()

	tests := []struct {
		name       string
		result     domain.UnitResult
		wantPassed int
		wantFailed int
	}{
		{
			name:       "mixed summary",
			result:     domain.UnitResult{Output: failedOutput},
			wantPassed: 2,
			wantFailed: 1,
		},
		{
			name:       "all passed",
			result:     domain.UnitResult{Output: "========== 5 passed in 0.30s =========="},
			wantPassed: 5,
			wantFailed: 0,
		},
		{
			name:       "errors counted as failures",
			result:     domain.UnitResult{Output: "========== 1 failed, 2 errors in 0.10s =========="},
			wantPassed: 0,
			wantFailed: 3,
		},
		{
			name: "fallback counts the whole unit on success",
			result: domain.UnitResult{
				Tests:   []string{"a.py::t1", "a.py::t2"},
				Success: true,
				Output:  "no summary here",
			},
			wantPassed: 2,
			wantFailed: 0,
		},
		{
			name: "fallback counts the whole unit on failure",
			result: domain.UnitResult{
				Tests:   []string{"a.py::t1", "a.py::t2"},
				Success: false,
				Output:  "",
			},
			wantPassed: 0,
			wantFailed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed := parser.ParseCounts(tt.result)
			if passed != tt.wantPassed || failed != tt.wantFailed {
				t.Errorf("ParseCounts() = (%d, %d), want (%d, %d)",
					passed, failed, tt.wantPassed, tt.wantFailed)
			}
		})
	}
}

func TestPytestParser_ParseFailures(t *testing.T) {
	parser := NewPytestParser()

	t.Run("failed summary line", func(t *testing.T) {
		result := domain.UnitResult{
			NodeID: "worker-1",
			Scope:  "users",
			Output: failedOutput,
		}
		failures := parser.ParseFailures(result)
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d: %v", len(failures), failures)
		}
		f := failures[0]
		if f.TestID != "tests/test_user.py::test_delete" {
			t.Errorf("test id = %q", f.TestID)
		}
		if f.FilePath != "tests/test_user.py" {
			t.Errorf("file path = %q", f.FilePath)
		}
		if f.Message != "AssertionError: delete failed" {
			t.Errorf("message = %q", f.Message)
		}
		if f.Scope != "users" || f.NodeID != "worker-1" {
			t.Errorf("scope/node = %q/%q", f.Scope, f.NodeID)
		}
	})

	t.Run("runner error produces one failure per test", func(t *testing.T) {
		result := domain.UnitResult{
			NodeID:  "worker-2",
			Scope:   "G1",
			Tests:   []string{"a.py::t1", "a.py::t2"},
			Success: false,
			Error:   errors.New("exec: python not found"),
		}
		failures := parser.ParseFailures(result)
		if len(failures) != 2 {
			t.Fatalf("expected 2 failures, got %d", len(failures))
		}
		if failures[0].Message != "exec: python not found" {
			t.Errorf("message = %q", failures[0].Message)
		}
	})

	t.Run("successful unit has no failures", func(t *testing.T) {
		result := domain.UnitResult{Success: true, Output: "3 passed"}
		if failures := parser.ParseFailures(result); failures != nil {
			t.Errorf("expected no failures, got %v", failures)
		}
	})
}
