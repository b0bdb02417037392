package node

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"pts/internal/config"
	"pts/internal/domain"
)

// LocalNode is an in-process worker node. It collects its own test list,
// submits it to the scheduler and then executes assigned work units one at
// a time by invoking the configured runner command with the unit's
// identifiers. Each node gets its own test database via the DB_DATABASE
// environment variable.
type LocalNode struct {
	id        string
	num       int // 1-based, used for the per-node database name
	config    *config.Config
	collector Collector
	events    Events
	results   chan<- domain.UnitResult

	units chan *domain.WorkUnit
}

// NewLocalNode creates a worker node. The unit queue is sized to the
// watermark, which is the most the dispatcher will ever leave pending on
// one node, so sending a unit never blocks the control loop.
func NewLocalNode(id string, num int, cfg *config.Config, collector Collector, events Events, results chan<- domain.UnitResult) *LocalNode {
	queue := cfg.Watermark
	if queue <= 0 {
		queue = 1
	}
	return &LocalNode{
		id:        id,
		num:       num,
		config:    cfg,
		collector: collector,
		events:    events,
		results:   results,
		units:     make(chan *domain.WorkUnit, queue),
	}
}

// ID returns the node identifier.
func (n *LocalNode) ID() string {
	return n.id
}

// Enqueue accepts a work unit pushed by the dispatcher.
func (n *LocalNode) Enqueue(unit *domain.WorkUnit) {
	n.units <- unit
}

// Close stops the node's work loop once pending units are drained.
func (n *LocalNode) Close() {
	close(n.units)
}

// Start launches the node's work loop: collect, submit, then execute units
// until the queue is closed.
func (n *LocalNode) Start(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		n.run()
	}()
}

func (n *LocalNode) run() {
	tests, err := n.collector.Collect()
	if err != nil {
		// An empty submission either fails verification against healthy
		// nodes or, if every node hits the same error, ends the run with
		// nothing to do.
		tests = nil
	}
	n.events.SubmitCollection(n.id, tests)

	for unit := range n.units {
		result := n.runUnit(unit)
		n.results <- result
		n.events.CompleteUnit(n.id, unit.Scope)
	}
}

func (n *LocalNode) runUnit(unit *domain.WorkUnit) domain.UnitResult {
	args := n.config.RunnerArgs()
	result := domain.UnitResult{
		NodeID: n.id,
		Scope:  unit.Scope,
		Tests:  unit.Tests,
	}
	if len(args) == 0 {
		result.Error = fmt.Errorf("no runner command configured")
		return result
	}

	argv := append(append([]string(nil), args[1:]...), unit.Tests...)
	cmd := exec.Command(args[0], argv...)
	cmd.Dir = n.config.ProjectPath
	cmd.Env = append(os.Environ(), fmt.Sprintf("DB_DATABASE=%s", n.config.GetDatabaseName(n.num)))

	start := time.Now()
	output, err := cmd.CombinedOutput()
	result.Duration = time.Since(start)
	result.Output = string(output)
	result.Success = err == nil
	if _, isExit := err.(*exec.ExitError); err != nil && !isExit {
		result.Error = err
	}
	return result
}
