package domain

// TestFailure represents a single failed test case
type TestFailure struct {
	TestID   string   `json:"test_id"`   // full identifier, e.g. tests/test_user.py::TestUser::test_create
	FilePath string   `json:"file_path"` // file part of the identifier
	Scope    string   `json:"scope"`     // scope key of the unit it ran in
	NodeID   string   `json:"node_id"`   // node that executed it
	Message  string   `json:"message"`
	Output   []string `json:"output,omitempty"`   // surrounding runner output lines
	Resolved bool     `json:"resolved,omitempty"` // track if failure is marked as resolved
}
