package sched

import (
	"fmt"

	"pts/internal/domain"
	"pts/internal/scope"
)

// DefaultWatermark is the minimum number of pending units a node should
// retain before being handed more work.
const DefaultWatermark = 2

// Sender pushes an assigned work unit to a node. Implementations deliver
// the unit's full, ordered identifier sequence; the dispatcher never splits
// a unit across nodes.
type Sender interface {
	SendUnit(nodeID string, unit *domain.WorkUnit) error
}

type nodeState struct {
	pending  map[string]*domain.WorkUnit // unit scope -> unit
	finished bool
}

// Dispatcher assigns work units to nodes and keeps every node fed up to the
// configured watermark while the pool has units left. All methods must be
// called from a single control loop; the dispatcher owns its state
// exclusively and performs no locking.
type Dispatcher struct {
	watermark int
	mapping   *scope.Mapping
	registry  *Registry
	sender    Sender

	pool        *Pool
	nodes       map[string]*nodeState
	order       []string // node ids in registration order
	onPoolBuilt func(units int)
}

// NewDispatcher creates a dispatcher expecting numNodes collections, with
// the given low watermark (<= 0 selects DefaultWatermark).
func NewDispatcher(m *scope.Mapping, numNodes, watermark int, sender Sender) *Dispatcher {
	if watermark <= 0 {
		watermark = DefaultWatermark
	}
	return &Dispatcher{
		watermark: watermark,
		mapping:   m,
		registry:  NewRegistry(numNodes),
		sender:    sender,
		nodes:     make(map[string]*nodeState),
	}
}

// OnPoolBuilt sets a hook invoked from the control loop once verification
// completes and the unit pool exists.
func (d *Dispatcher) OnPoolBuilt(fn func(units int)) {
	d.onPoolBuilt = fn
}

// RegisterNode adds a node to the run. Registering an already known node is
// a no-op. If the pool already exists the node receives its initial batch
// immediately; otherwise it is filled when verification completes.
func (d *Dispatcher) RegisterNode(nodeID string) error {
	if _, ok := d.nodes[nodeID]; ok {
		return nil
	}
	d.nodes[nodeID] = &nodeState{pending: make(map[string]*domain.WorkUnit)}
	d.order = append(d.order, nodeID)
	if d.pool != nil {
		return d.fill(nodeID)
	}
	return nil
}

// DisconnectNode drops a node's state. Units it still held are not
// reassigned; recovery policy belongs to the surrounding system.
func (d *Dispatcher) DisconnectNode(nodeID string) {
	delete(d.nodes, nodeID)
	for i, id := range d.order {
		if id == nodeID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// SubmitCollection records a node's collection. When the last expected
// collection arrives and all sets agree, the pool is built from the
// canonical order and every registered node gets its initial batch, in
// registration order. A mismatch returns a *MismatchError.
func (d *Dispatcher) SubmitCollection(nodeID string, tests []string) error {
	switch d.registry.Submit(nodeID, tests) {
	case Failed:
		return d.registry.Mismatch()
	case Verified:
		d.pool = NewPool(d.registry.Canonical(), d.mapping)
		if d.onPoolBuilt != nil {
			d.onPoolBuilt(d.pool.Len())
		}
		for _, id := range d.order {
			if err := d.fill(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// CompleteUnit handles a completion event from a node: the unit is marked
// complete, the node's pending count drops, and the node is refilled while
// it sits below the watermark and the pool has units left. When the pool is
// empty and the node's pending count reaches zero the node is finished.
func (d *Dispatcher) CompleteUnit(nodeID, unitID string) error {
	if d.pool == nil {
		return nil
	}
	d.pool.CompleteUnit(nodeID, unitID)

	node, ok := d.nodes[nodeID]
	if !ok {
		return nil
	}
	if _, held := node.pending[unitID]; !held {
		// Duplicate completion; bookkeeping above already ignored it.
		return nil
	}
	delete(node.pending, unitID)
	return d.fill(nodeID)
}

// fill hands units to a node until it reaches the watermark or the pool
// runs out, and marks the node finished once it has drained everything.
func (d *Dispatcher) fill(nodeID string) error {
	node := d.nodes[nodeID]
	for len(node.pending) < d.watermark {
		unit, ok := d.pool.TakeNext()
		if !ok {
			break
		}
		node.pending[unit.Scope] = unit
		if err := d.sender.SendUnit(nodeID, unit); err != nil {
			return fmt.Errorf("send unit %q to node %s: %w", unit.Scope, nodeID, err)
		}
	}
	if d.pool.PendingCount() == 0 && len(node.pending) == 0 {
		node.finished = true
	}
	return nil
}

// Done reports whether the run is complete: the pool exists and every
// registered node has finished draining.
func (d *Dispatcher) Done() bool {
	if d.pool == nil {
		return false
	}
	for _, node := range d.nodes {
		if !node.finished {
			return false
		}
	}
	return true
}

// Pending returns a node's current pending-unit count.
func (d *Dispatcher) Pending(nodeID string) int {
	if node, ok := d.nodes[nodeID]; ok {
		return len(node.pending)
	}
	return 0
}

// Finished reports whether a node has drained all its work.
func (d *Dispatcher) Finished(nodeID string) bool {
	node, ok := d.nodes[nodeID]
	return ok && node.finished
}

// Pool exposes the unit pool once verification has completed, or nil.
func (d *Dispatcher) Pool() *Pool {
	return d.pool
}
