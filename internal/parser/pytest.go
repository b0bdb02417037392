package parser

import (
	"regexp"
	"strconv"
	"strings"

	"pts/internal/domain"
)

// PytestParser parses pytest output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

var (
	passedPattern = regexp.MustCompile(`(\d+) passed`)
	failedPattern = regexp.MustCompile(`(\d+) failed`)
	errorPattern  = regexp.MustCompile(`(\d+) error`)
	// short test summary lines: FAILED tests/test_a.py::test_x - AssertionError: ...
	failureLinePattern = regexp.MustCompile(`^(FAILED|ERROR)\s+(\S+)(?:\s+-\s+(.*))?$`)
)

// ParseCounts extracts passed and failed test case counts from the pytest
// summary line. Returns (passed, failed). If nothing can be parsed the
// whole unit is counted as its test count, passed or failed (unit-level
// fallback).
func (p *PytestParser) ParseCounts(result domain.UnitResult) (passed, failed int) {
	if m := passedPattern.FindStringSubmatch(result.Output); m != nil {
		passed, _ = strconv.Atoi(m[1])
	}
	if m := failedPattern.FindStringSubmatch(result.Output); m != nil {
		failed, _ = strconv.Atoi(m[1])
	}
	if m := errorPattern.FindStringSubmatch(result.Output); m != nil {
		n, _ := strconv.Atoi(m[1])
		failed += n
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if result.Success {
		return len(result.Tests), 0
	}
	return 0, len(result.Tests)
}

// ParseFailures extracts failed test cases from the short test summary
// section of pytest output.
func (p *PytestParser) ParseFailures(result domain.UnitResult) []domain.TestFailure {
	var failures []domain.TestFailure

	for _, line := range strings.Split(result.Output, "\n") {
		m := failureLinePattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		testID := m[2]
		failures = append(failures, domain.TestFailure{
			TestID:   testID,
			FilePath: filePart(testID),
			Scope:    result.Scope,
			NodeID:   result.NodeID,
			Message:  m[3],
		})
	}

	// Execution errors (runner could not start) surface as one failure for
	// the whole unit so they are visible in the failures viewer.
	if failures == nil && !result.Success {
		msg := "unit failed; see output"
		if result.Error != nil {
			msg = result.Error.Error()
		}
		for _, testID := range result.Tests {
			failures = append(failures, domain.TestFailure{
				TestID:   testID,
				FilePath: filePart(testID),
				Scope:    result.Scope,
				NodeID:   result.NodeID,
				Message:  msg,
			})
		}
	}
	return failures
}

func filePart(testID string) string {
	if i := strings.Index(testID, "::"); i >= 0 {
		return testID[:i]
	}
	return testID
}
