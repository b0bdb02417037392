package scope

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoScopesFile is returned when no mapping source has been configured.
// It is a fatal configuration error: without a scopes file the run cannot start.
var ErrNoScopesFile = errors.New("no scopes file specified")

// DiagnosticFunc receives non-fatal notices emitted while loading a mapping,
// such as skipped malformed rows.
type DiagnosticFunc func(format string, args ...any)

// Mapping is an immutable table from test identifier (or identifier prefix)
// to scope key. It is built once at startup and never mutated afterward, so
// it may be read concurrently.
type Mapping struct {
	scopes map[string]string
}

// Load reads a mapping from a CSV scopes file with two columns per record:
// identifier-or-prefix, scope key. An empty path or an unreadable file is a
// fatal error. Rows with a column count other than two are skipped and
// reported through diag.
func Load(path string, diag DiagnosticFunc) (*Mapping, error) {
	if path == "" {
		return nil, ErrNoScopesFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scopes file: %w", err)
	}
	defer f.Close()

	m, err := Read(f, diag)
	if err != nil {
		return nil, fmt.Errorf("read scopes file %s: %w", path, err)
	}
	return m, nil
}

// Read builds a mapping from CSV records. Duplicate identifiers are allowed;
// the last record wins.
func Read(r io.Reader, diag DiagnosticFunc) (*Mapping, error) {
	if diag == nil {
		diag = func(string, ...any) {}
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	scopes := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 2 {
			diag("row in scopes file doesn't have exactly 2 columns, ignoring")
			continue
		}
		scopes[record[0]] = record[1]
	}

	return &Mapping{scopes: scopes}, nil
}

// NewMapping builds a mapping directly from a table. The table is copied.
func NewMapping(scopes map[string]string) *Mapping {
	copied := make(map[string]string, len(scopes))
	for k, v := range scopes {
		copied[k] = v
	}
	return &Mapping{scopes: copied}
}

// Len returns the number of mapped identifiers.
func (m *Mapping) Len() int {
	return len(m.scopes)
}
