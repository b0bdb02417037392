package main

import (
	"fmt"
	"os"

	"pts/internal/cli"
	"pts/internal/cli/commands"
	"pts/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "pts",
		Short:   "Parallel test scheduler",
		Long:    `Distributes a test suite across parallel worker nodes, grouping tests into indivisible work units by an external scope mapping and keeping every node fed up to a low watermark.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
