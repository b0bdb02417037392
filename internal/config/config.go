package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Scheduling settings
	ScopesFile string
	Nodes      int
	Watermark  int

	// Execution settings
	RunnerCommand  string
	PrepareCommand string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Nodes          int
	Watermark      int
	ScopesFile     string
	TestPath       string
	NameFilter     string
	RunnerCommand  string
	PrepareCommand string
	TestCases      bool
	OpenFailures   bool
	TestDB         bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Nodes:          DefaultNodes,
		Watermark:      DefaultWatermark,
		RunnerCommand:  DefaultRunnerCommand,
		Flags:          Flags{Nodes: DefaultNodes, Watermark: DefaultWatermark},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flag overrides
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

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

	return cfg
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetScopesFile returns the scopes file path: flag first, then the
// PTS_SCOPES environment variable. An empty result means no mapping source
// is configured, which is fatal for scheduling commands.
func (c *Config) GetScopesFile() string {
	if c.Flags.ScopesFile != "" {
		return c.Flags.ScopesFile
	}
	if env := os.Getenv("PTS_SCOPES"); env != "" {
		return env
	}
	return c.ScopesFile
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the
// same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// RunnerArgs returns the runner command split into argv form.
func (c *Config) RunnerArgs() []string {
	return strings.Fields(c.RunnerCommand)
}

// GetDatabaseName returns the test database name for a node
func (c *Config) GetDatabaseName(nodeNum int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, nodeNum)
}
