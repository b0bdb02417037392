package commands

import (
	"pts/internal/cli"
	"pts/internal/config"
	"pts/internal/discovery"
	"pts/internal/node"
	"pts/internal/parser"
	"pts/internal/storage"
	"pts/internal/testdb"
	"pts/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Scopes   *ScopesCommand
	TestDB   *TestDBCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	collector := node.NewDiscoveryCollector(cfg, scanner, filter, testCaseParser)
	outputParser := parser.NewPytestParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	dbManager := testdb.NewManager(cfg)
	provisioner := testdb.NewProvisioner(cfg, dbManager)
	failureViewer := ui.NewFailureViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, collector, outputParser, jsonStorage, formatter, provisioner, failureViewer),
		List:     NewListCommand(cfg, scanner, filter, testCaseParser, formatter),
		Scopes:   NewScopesCommand(cfg, collector, formatter),
		TestDB:   NewTestDBCommand(cfg, provisioner),
		Failures: NewFailuresCommand(cfg, jsonStorage, failureViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.Nodes > 0 {
			cfg.Nodes = flags.Nodes
		}
		if flags.Watermark > 0 {
			cfg.Watermark = flags.Watermark
		}
		if flags.RunnerCommand != "" {
			cfg.RunnerCommand = flags.RunnerCommand
		}
		if flags.PrepareCommand != "" {
			cfg.PrepareCommand = flags.PrepareCommand
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run tests distributed across worker nodes",
		Long:    "Collect tests, group them into work units by the external scope mapping and dispatch them across parallel worker nodes",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Nodes, "nodes", "n", config.DefaultNodes, "Number of worker nodes")
	runCmd.Flags().IntVarP(&flags.Watermark, "watermark", "w", config.DefaultWatermark, "Minimum pending units per node before it is refilled")
	runCmd.Flags().StringVarP(&flags.ScopesFile, "scopes", "s", "", "Path to the CSV scopes file (identifier,scope per row)")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test collection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. 'test_user*.py')")
	runCmd.Flags().StringVarP(&flags.RunnerCommand, "runner", "r", "", "Runner command invoked per work unit (default 'python -m pytest')")
	runCmd.Flags().BoolVar(&flags.TestDB, "testdb", false, "Provision per-node test databases before running")
	runCmd.Flags().StringVar(&flags.PrepareCommand, "prepare", "", "Command run once per node database during provisioning")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Scan and list all tests without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test collection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test case identifiers instead of test files")
	rootCmd.AddCommand(listCmd)

	// Scopes command
	scopesCmd := &cobra.Command{
		Use:     "scopes",
		Short:   "Show the work unit grouping",
		Long:    "Load the scope mapping and print the work units a run would dispatch, without executing anything",
		RunE:    c.Scopes.Execute,
		PreRunE: applyFlags,
	}
	scopesCmd.Flags().StringVarP(&flags.ScopesFile, "scopes", "s", "", "Path to the CSV scopes file")
	scopesCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test collection should start")
	scopesCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern")
	rootCmd.AddCommand(scopesCmd)

	// TestDB command
	testdbCmd := &cobra.Command{
		Use:     "testdb",
		Short:   "Provision per-node test databases",
		Long:    "Create the test database for every worker node and optionally run a prepare command against each",
		RunE:    c.TestDB.Execute,
		PreRunE: applyFlags,
	}
	testdbCmd.Flags().IntVarP(&flags.Nodes, "nodes", "n", config.DefaultNodes, "Number of worker nodes")
	testdbCmd.Flags().StringVar(&flags.PrepareCommand, "prepare", "", "Command run once per node database")
	rootCmd.AddCommand(testdbCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
