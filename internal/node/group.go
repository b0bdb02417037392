package node

import (
	"fmt"

	"pts/internal/domain"
)

// Group routes dispatched units to local nodes by id. It implements the
// dispatcher's outbound Sender contract.
type Group struct {
	nodes map[string]*LocalNode
	order []*LocalNode
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{nodes: make(map[string]*LocalNode)}
}

// Add registers a node with the group.
func (g *Group) Add(n *LocalNode) {
	g.nodes[n.ID()] = n
	g.order = append(g.order, n)
}

// SendUnit pushes a work unit to the named node.
func (g *Group) SendUnit(nodeID string, unit *domain.WorkUnit) error {
	n, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("unknown node %s", nodeID)
	}
	n.Enqueue(unit)
	return nil
}

// Close closes every node's unit queue.
func (g *Group) Close() {
	for _, n := range g.order {
		n.Close()
	}
}
