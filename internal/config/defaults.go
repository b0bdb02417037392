package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test path
	DefaultTestPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultNodes is the default number of worker nodes
	DefaultNodes = 4
	// DefaultWatermark is the default low watermark of pending units per node
	DefaultWatermark = 2
	// DefaultRunnerCommand is the command used to execute a work unit
	DefaultRunnerCommand = "python -m pytest"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"__pycache__",
	".venv",
	"venv",
	"node_modules",
	"build",
	"dist",
	".tox",
	".pytest_cache",
}
