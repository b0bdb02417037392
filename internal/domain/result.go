package domain

import "time"

// UnitResult represents the result of executing one work unit on a node.
type UnitResult struct {
	NodeID   string        // node that executed the unit
	Scope    string        // scope key of the unit
	Tests    []string      // identifiers that were dispatched
	Success  bool          // whether the whole unit passed
	Output   string        // raw runner output
	Error    error         // error if the runner could not be started
	Duration time.Duration // time taken to execute
}

// RunMeta contains metadata about a scheduling run
type RunMeta struct {
	TotalTests      int     `json:"total_tests"`
	TotalUnits      int     `json:"total_units"`
	PassedUnits     int     `json:"passed_units"`
	FailedUnits     int     `json:"failed_units"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Nodes           int     `json:"nodes"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
