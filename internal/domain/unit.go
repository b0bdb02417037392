package domain

// WorkUnit is an ordered batch of test identifiers sharing one scope.
// A unit is always dispatched to a single node and never split.
type WorkUnit struct {
	Scope string   // grouping key, unique within a run
	Tests []string // identifiers in canonical-collection order
}
