package sched

import (
	"pts/internal/domain"
	"pts/internal/scope"
)

// Pool partitions a verified canonical collection into ordered work units.
// Units are created in first-seen scope order and identifiers keep their
// canonical order within a unit, so identical inputs always produce the
// identical sequence of units.
type Pool struct {
	units []*domain.WorkUnit
	next  int
	done  map[string]bool // unit scope -> completed
}

// NewPool walks the canonical collection in order, resolving each
// identifier's scope and appending it to that scope's unit.
func NewPool(canonical []string, m *scope.Mapping) *Pool {
	byScope := make(map[string]*domain.WorkUnit)
	var units []*domain.WorkUnit

	for _, id := range canonical {
		key := m.Resolve(id)
		unit, ok := byScope[key]
		if !ok {
			unit = &domain.WorkUnit{Scope: key}
			byScope[key] = unit
			units = append(units, unit)
		}
		unit.Tests = append(unit.Tests, id)
	}

	return &Pool{
		units: units,
		done:  make(map[string]bool),
	}
}

// Len returns the total number of units in the pool.
func (p *Pool) Len() int {
	return len(p.units)
}

// PendingCount returns the number of units not yet handed out.
func (p *Pool) PendingCount() int {
	return len(p.units) - p.next
}

// TakeNext removes and returns the oldest unassigned unit. The second
// return value is false when the pool is empty; that is a control signal
// for the dispatcher, not an error.
func (p *Pool) TakeNext() (*domain.WorkUnit, bool) {
	if p.next >= len(p.units) {
		return nil, false
	}
	unit := p.units[p.next]
	p.next++
	return unit, true
}

// CompleteUnit marks a unit as finished. Re-marking an already complete
// unit is a no-op.
func (p *Pool) CompleteUnit(nodeID, unitID string) {
	if p.done[unitID] {
		return
	}
	p.done[unitID] = true
}

// CompletedCount returns the number of units marked complete.
func (p *Pool) CompletedCount() int {
	return len(p.done)
}

// Units returns all units in creation order, for listing and dry runs.
func (p *Pool) Units() []*domain.WorkUnit {
	return p.units
}
