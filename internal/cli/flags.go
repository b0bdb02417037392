package cli

import "pts/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Nodes:          f.Nodes,
		Watermark:      f.Watermark,
		ScopesFile:     f.ScopesFile,
		TestPath:       f.TestPath,
		NameFilter:     f.NameFilter,
		RunnerCommand:  f.RunnerCommand,
		PrepareCommand: f.PrepareCommand,
		TestCases:      f.TestCases,
		OpenFailures:   f.OpenFailures,
		TestDB:         f.TestDB,
	}
}
