package node

import (
	"path/filepath"

	"pts/internal/config"
	"pts/internal/discovery"
)

// DiscoveryCollector builds a node's test collection by scanning the test
// path for test files and parsing their test cases. Identifiers are emitted
// as project-relative paths in the file::[Class::]function form, in file
// walk order, so every node produces the same collection for the same tree.
type DiscoveryCollector struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	parser  *discovery.Parser
}

// NewDiscoveryCollector creates a collector over the configured test path.
func NewDiscoveryCollector(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter, parser *discovery.Parser) *DiscoveryCollector {
	return &DiscoveryCollector{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		parser:  parser,
	}
}

// Collect returns the full ordered list of test identifiers.
func (c *DiscoveryCollector) Collect() ([]string, error) {
	files, err := c.scanner.Scan(c.config.GetTestPath())
	if err != nil {
		return nil, err
	}
	files = c.filter.FilterByName(files, c.config.Flags.NameFilter)

	var tests []string
	for _, file := range files {
		cases, err := c.parser.FindTestCases(file)
		if err != nil {
			return nil, err
		}
		rel := c.relPath(file)
		for _, tc := range cases {
			tests = append(tests, rel+"::"+tc)
		}
	}
	return tests, nil
}

func (c *DiscoveryCollector) relPath(file string) string {
	rel, err := filepath.Rel(c.config.ProjectPath, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}
