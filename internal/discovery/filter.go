package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by name pattern using wildcard matching.
// Supports patterns like "test_user*.py" or "*payment*".
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string
	for _, test := range tests {
		if matchName(filepath.Base(test), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// Without wildcards, fall back to a substring check.
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// With wildcards, accept when every literal part appears in the name,
	// so "*payment*user*" style patterns behave as expected.
	parts := strings.Split(pattern, "*")
	hasLiteral := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasLiteral = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasLiteral
}
