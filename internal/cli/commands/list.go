package commands

import (
	"path/filepath"

	"pts/internal/config"
	"pts/internal/discovery"
	"pts/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	parser    *discovery.Parser
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter, parser *discovery.Parser, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		parser:    parser,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := lc.scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	if !lc.config.Flags.TestCases {
		lc.formatter.PrintTests(files)
		return nil
	}

	var tests []string
	for _, file := range files {
		cases, err := lc.parser.FindTestCases(file)
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(lc.config.ProjectPath, file)
		if relErr != nil {
			rel = file
		}
		for _, tc := range cases {
			tests = append(tests, filepath.ToSlash(rel)+"::"+tc)
		}
	}
	lc.formatter.PrintTests(tests)
	return nil
}
