package testdb

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"pts/internal/config"
)

// ProvisionResult is the outcome of preparing one node's database.
type ProvisionResult struct {
	NodeNum int
	Success bool
	Output  string
	Error   error
}

// Provisioner prepares every node's test database by running the
// configured prepare command (e.g. a migration runner) once per node with
// DB_DATABASE pointing at that node's database.
type Provisioner struct {
	config  *config.Config
	manager *Manager
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(cfg *config.Config, manager *Manager) *Provisioner {
	return &Provisioner{config: cfg, manager: manager}
}

// Run ensures the databases exist and, when a prepare command is
// configured, runs it in parallel for every node.
func (p *Provisioner) Run(nodeCount int) error {
	nodes, err := p.manager.EnsureDatabases(nodeCount)
	if err != nil {
		return fmt.Errorf("failed to check databases: %w", err)
	}
	color.Cyan("Test databases ready: %d", len(nodes))

	command := strings.Fields(p.config.PrepareCommand)
	if len(command) == 0 {
		return nil
	}

	start := time.Now()
	results := make(chan ProvisionResult, len(nodes))
	var wg sync.WaitGroup
	for _, num := range nodes {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			results <- p.provisionNode(num, command)
		}(num)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	failed := 0
	for result := range results {
		if !result.Success {
			failed++
			color.Red("✗ node %d: %v", result.NodeNum, result.Error)
			if result.Output != "" {
				fmt.Fprintln(os.Stderr, result.Output)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d databases failed to provision", failed, len(nodes))
	}
	color.Green("✓ %d databases provisioned in %s", len(nodes), time.Since(start).Round(time.Millisecond))
	return nil
}

func (p *Provisioner) provisionNode(num int, command []string) ProvisionResult {
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = p.config.ProjectPath
	cmd.Env = append(os.Environ(), fmt.Sprintf("DB_DATABASE=%s", p.config.GetDatabaseName(num)))

	output, err := cmd.CombinedOutput()
	return ProvisionResult{
		NodeNum: num,
		Success: err == nil,
		Output:  string(output),
		Error:   err,
	}
}
