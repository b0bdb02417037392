package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Parser extracts test case identifiers from test files
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	// class TestFoo: / class TestFoo(Base):
	classPattern = regexp.MustCompile(`^class\s+(Test\w*)\s*[:(]`)
	// def test_foo( / async def test_foo( at module level
	funcPattern = regexp.MustCompile(`^(?:async\s+)?def\s+(test\w*)\s*\(`)
	// indented method inside a class body
	methodPattern = regexp.MustCompile(`^\s+(?:async\s+)?def\s+(test\w*)\s*\(`)
	// any other top-level statement ends a class body
	topLevelPattern = regexp.MustCompile(`^\S`)
)

// FindTestCases finds all test cases in a test file, in file order. Module
// level functions are returned as their bare name, class methods as
// Class::method, matching the pytest identifier layout.
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	var testCases []string
	currentClass := ""

	for _, line := range strings.Split(string(content), "\n") {
		if m := classPattern.FindStringSubmatch(line); m != nil {
			currentClass = m[1]
			continue
		}
		if m := funcPattern.FindStringSubmatch(line); m != nil {
			currentClass = ""
			testCases = append(testCases, m[1])
			continue
		}
		if currentClass != "" {
			if m := methodPattern.FindStringSubmatch(line); m != nil {
				testCases = append(testCases, currentClass+"::"+m[1])
				continue
			}
			if topLevelPattern.MatchString(line) {
				currentClass = ""
			}
		}
	}

	return testCases, nil
}
