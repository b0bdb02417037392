package ui

import (
	"fmt"

	"github.com/fatih/color"
	"pts/internal/config"
	"pts/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// Diagnostic prints a non-fatal notice, e.g. a skipped scopes-file row.
func (f *Formatter) Diagnostic(format string, args ...any) {
	color.Yellow("! "+format, args...)
}

// PrintTests prints a list of test identifiers or files
func (f *Formatter) PrintTests(tests []string) {
	for _, test := range tests {
		fmt.Println(test)
	}
	color.Cyan("\n%d found", len(tests))
}

// PrintUnits prints the work unit grouping that a run would dispatch
func (f *Formatter) PrintUnits(units []*domain.WorkUnit) {
	total := 0
	for _, unit := range units {
		color.Cyan("%s (%d tests)", unit.Scope, len(unit.Tests))
		for _, test := range unit.Tests {
			fmt.Printf("  %s\n", test)
		}
		total += len(unit.Tests)
	}
	color.White("\n%d units, %d tests", len(units), total)
}

// PrintRunSummary prints the final summary of a run
func (f *Formatter) PrintRunSummary(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Println()
	color.Cyan("Run finished in %s across %d nodes", meta.Duration, meta.Nodes)
	color.White("Units: %d total | %d passed | %d failed",
		meta.TotalUnits, meta.PassedUnits, meta.FailedUnits)

	if meta.FailedUnits == 0 && meta.FailedTestCases == 0 {
		color.Green("✓ All %d tests passed", meta.TotalTests)
		return
	}
	color.Red("✗ %d failed test cases (run `pts failures` to inspect)", meta.FailedTestCases)
}
