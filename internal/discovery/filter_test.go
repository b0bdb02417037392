package discovery

import (
	"reflect"
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	files := []string{
		"tests/test_user.py",
		"tests/test_payment.py",
		"tests/api/test_payment_refund.py",
	}

	filter := NewFilter()

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{
			name:     "empty pattern keeps everything",
			pattern:  "",
			expected: files,
		},
		{
			name:     "glob pattern",
			pattern:  "test_user*.py",
			expected: []string{"tests/test_user.py"},
		},
		{
			name:     "wildcard substring",
			pattern:  "*payment*",
			expected: []string{"tests/test_payment.py", "tests/api/test_payment_refund.py"},
		},
		{
			name:     "plain substring",
			pattern:  "refund",
			expected: []string{"tests/api/test_payment_refund.py"},
		},
		{
			name:     "no matches",
			pattern:  "*billing*",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.FilterByName(files, tt.pattern)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FilterByName(%q) = %v, want %v", tt.pattern, got, tt.expected)
			}
		})
	}
}
