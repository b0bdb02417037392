package sched

import (
	"fmt"
	"sort"
	"strings"
)

// RegistryState is the lifecycle state of a collection registry.
type RegistryState int

const (
	// Collecting means not all expected node collections have arrived yet.
	Collecting RegistryState = iota
	// Verified means all collections arrived and agree; terminal.
	Verified
	// Failed means a node's collection disagreed with the first one; terminal.
	Failed
)

func (s RegistryState) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Verified:
		return "verified"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MismatchError reports a node whose collected test set differs from the
// set collected by the first submitting node. It aborts the run: a mismatch
// indicates a setup or environment defect, not a transient fault.
type MismatchError struct {
	NodeID string
	Diff   []string // symmetric difference of identifiers, sorted
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("node %s collected a different test set (difference: %s)",
		e.NodeID, strings.Join(e.Diff, ", "))
}

// Registry accumulates per-node test collections and verifies that every
// node collected the same set before any work unit is created. The order of
// the first submission becomes the canonical order for the run.
type Registry struct {
	expected  int
	state     RegistryState
	canonical []string
	refSet    map[string]struct{}
	received  int
	mismatch  *MismatchError
}

// NewRegistry creates a registry expecting collections from numNodes nodes.
func NewRegistry(numNodes int) *Registry {
	return &Registry{expected: numNodes}
}

// Submit records one node's ordered collection and returns the resulting
// state. Each submission after the first is compared against the first
// immediately, so a mismatch fails the registry without waiting for the
// remaining nodes. Submissions after a terminal state are ignored.
func (r *Registry) Submit(nodeID string, tests []string) RegistryState {
	if r.state != Collecting {
		return r.state
	}

	if r.refSet == nil {
		r.canonical = append([]string(nil), tests...)
		r.refSet = make(map[string]struct{}, len(tests))
		for _, id := range tests {
			r.refSet[id] = struct{}{}
		}
		r.received = 1
		if r.received >= r.expected {
			r.state = Verified
		}
		return r.state
	}

	if diff := symmetricDiff(r.refSet, tests); len(diff) > 0 {
		r.state = Failed
		r.mismatch = &MismatchError{NodeID: nodeID, Diff: diff}
		return r.state
	}

	r.received++
	if r.received >= r.expected {
		r.state = Verified
	}
	return r.state
}

// State returns the current registry state.
func (r *Registry) State() RegistryState {
	return r.state
}

// Canonical returns the agreed full collection in the first submitter's
// order. Only meaningful once the registry is Verified.
func (r *Registry) Canonical() []string {
	return r.canonical
}

// Mismatch returns the verification failure, or nil if none occurred.
func (r *Registry) Mismatch() *MismatchError {
	return r.mismatch
}

func symmetricDiff(ref map[string]struct{}, tests []string) []string {
	got := make(map[string]struct{}, len(tests))
	var diff []string
	for _, id := range tests {
		got[id] = struct{}{}
		if _, ok := ref[id]; !ok {
			diff = append(diff, id)
		}
	}
	for id := range ref {
		if _, ok := got[id]; !ok {
			diff = append(diff, id)
		}
	}
	sort.Strings(diff)
	return diff
}
