package commands

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pts/internal/config"
	"pts/internal/domain"
	"pts/internal/node"
	"pts/internal/parser"
	"pts/internal/scope"
	"pts/internal/sched"
	"pts/internal/storage"
	"pts/internal/testdb"
	"pts/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	collector   node.Collector
	parser      *parser.PytestParser
	storage     storage.Storage
	formatter   *ui.Formatter
	provisioner *testdb.Provisioner
	viewer      *ui.FailureViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	collector node.Collector,
	outputParser *parser.PytestParser,
	st storage.Storage,
	formatter *ui.Formatter,
	provisioner *testdb.Provisioner,
	viewer *ui.FailureViewer,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		collector:   collector,
		parser:      outputParser,
		storage:     st,
		formatter:   formatter,
		provisioner: provisioner,
		viewer:      viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// The mapping is loaded once up front; a missing source is a fatal
	// configuration error, malformed rows are only diagnostics.
	mapping, err := scope.Load(rc.config.GetScopesFile(), rc.formatter.Diagnostic)
	if err != nil {
		return fmt.Errorf("scope configuration: %w", err)
	}

	// Quick pre-collection so an empty tree exits before any node spins up.
	tests, err := rc.collector.Collect()
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	if rc.config.Flags.TestDB {
		if err := rc.provisioner.Run(rc.config.Nodes); err != nil {
			return fmt.Errorf("test database provisioning failed: %w", err)
		}
		fmt.Println()
	}

	color.Cyan("Distributing %d tests across %d nodes (watermark %d)",
		len(tests), rc.config.Nodes, rc.config.Watermark)

	start := time.Now()
	unitResults, failures, runErr := rc.dispatch(mapping)
	duration := time.Since(start)

	if runErr != nil {
		var mismatch *sched.MismatchError
		if errors.As(runErr, &mismatch) {
			color.Red("✗ Collection mismatch on %s", mismatch.NodeID)
			for _, id := range mismatch.Diff {
				fmt.Printf("  %s\n", id)
			}
		}
		return runErr
	}

	if err := rc.storage.Save(unitResults, failures, duration, rc.config.Nodes); err != nil {
		return err
	}

	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	rc.formatter.PrintRunSummary(output)

	if rc.config.Flags.OpenFailures && len(output.Details) > 0 {
		return rc.viewer.View(output)
	}
	return nil
}

// dispatch wires the node group, dispatcher and control loop together and
// blocks until the run completes or fails.
func (rc *RunCommand) dispatch(mapping *scope.Mapping) ([]domain.UnitResult, []domain.TestFailure, error) {
	numNodes := rc.config.Nodes
	results := make(chan domain.UnitResult, 64)
	poolBuilt := make(chan int, 1)

	group := node.NewGroup()
	dispatcher := sched.NewDispatcher(mapping, numNodes, rc.config.Watermark, group)
	dispatcher.OnPoolBuilt(func(units int) { poolBuilt <- units })
	controller := sched.NewController(dispatcher)

	nodes := make([]*node.LocalNode, 0, numNodes)
	for i := 1; i <= numNodes; i++ {
		n := node.NewLocalNode(fmt.Sprintf("worker-%d", i), i, rc.config, rc.collector, controller, results)
		group.Add(n)
		nodes = append(nodes, n)
	}

	controller.Start()
	for _, n := range nodes {
		controller.RegisterNode(n.ID())
	}

	var nodeWG sync.WaitGroup
	for _, n := range nodes {
		n.Start(&nodeWG)
	}

	// Consume unit results as they stream in, feeding the progress bar.
	var (
		unitResults []domain.UnitResult
		failures    []domain.TestFailure
		progress    *ui.ProgressBar
		consumerWG  sync.WaitGroup
	)
	consumerWG.Add(1)
	go func() {
		defer consumerWG.Done()
		completed, passed, failed := 0, 0, 0
		for {
			select {
			case units := <-poolBuilt:
				progress = ui.NewProgressBar(units)
			case result, ok := <-results:
				if !ok {
					return
				}
				completed++
				p, f := rc.parser.ParseCounts(result)
				passed += p
				failed += f
				failures = append(failures, rc.parser.ParseFailures(result)...)
				unitResults = append(unitResults, result)
				if progress != nil {
					progress.Update(completed, passed, failed)
				}
			}
		}
	}()

	runErr := controller.Wait()

	// Shut down in dependency order: stop feeding nodes, wait for them to
	// drain, then stop the event loop and the result consumer.
	group.Close()
	nodeWG.Wait()
	controller.Close()
	close(results)
	consumerWG.Wait()
	if progress != nil {
		progress.Finish()
	}

	return unitResults, failures, runErr
}
