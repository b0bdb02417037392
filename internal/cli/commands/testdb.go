package commands

import (
	"pts/internal/config"
	"pts/internal/testdb"

	"github.com/spf13/cobra"
)

// TestDBCommand handles the testdb command
type TestDBCommand struct {
	config      *config.Config
	provisioner *testdb.Provisioner
}

// NewTestDBCommand creates a new TestDBCommand
func NewTestDBCommand(cfg *config.Config, provisioner *testdb.Provisioner) *TestDBCommand {
	return &TestDBCommand{config: cfg, provisioner: provisioner}
}

// Execute runs the command
func (tc *TestDBCommand) Execute(cmd *cobra.Command, args []string) error {
	return tc.provisioner.Run(tc.config.Nodes)
}
