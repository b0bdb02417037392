package commands

import (
	"fmt"

	"pts/internal/config"
	"pts/internal/node"
	"pts/internal/scope"
	"pts/internal/sched"
	"pts/internal/ui"

	"github.com/spf13/cobra"
)

// ScopesCommand handles the scopes command: a dry run of the unit grouping.
type ScopesCommand struct {
	config    *config.Config
	collector node.Collector
	formatter *ui.Formatter
}

// NewScopesCommand creates a new ScopesCommand
func NewScopesCommand(cfg *config.Config, collector node.Collector, formatter *ui.Formatter) *ScopesCommand {
	return &ScopesCommand{
		config:    cfg,
		collector: collector,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *ScopesCommand) Execute(cmd *cobra.Command, args []string) error {
	mapping, err := scope.Load(sc.config.GetScopesFile(), sc.formatter.Diagnostic)
	if err != nil {
		return fmt.Errorf("scope configuration: %w", err)
	}

	tests, err := sc.collector.Collect()
	if err != nil {
		return err
	}

	pool := sched.NewPool(tests, mapping)
	sc.formatter.PrintUnits(pool.Units())
	return nil
}
