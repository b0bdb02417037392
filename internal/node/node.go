package node

// Events is the inbound half of the scheduler contract. Worker nodes report
// their lifecycle through it; every call is queued onto the scheduler's
// single control loop.
type Events interface {
	RegisterNode(nodeID string)
	SubmitCollection(nodeID string, tests []string)
	CompleteUnit(nodeID, unitID string)
	DisconnectNode(nodeID string)
}

// Collector produces a node's ordered test collection.
type Collector interface {
	Collect() ([]string, error)
}
