package sched

import (
	"reflect"
	"testing"

	"pts/internal/scope"
)

func TestNewPool_Grouping(t *testing.T) {
	m := scope.NewMapping(map[string]string{
		"a.py::t1": "G1",
		"a.py::t2": "G1",
		"b.py::t3": "G2",
	})
	canonical := []string{"a.py::t1", "a.py::t2", "b.py::t3", "c.py::t4"}

	pool := NewPool(canonical, m)

	units := pool.Units()
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}

	expected := []struct {
		scope string
		tests []string
	}{
		{"G1", []string{"a.py::t1", "a.py::t2"}},
		{"G2", []string{"b.py::t3"}},
		{"c.py::t4", []string{"c.py::t4"}},
	}
	for i, want := range expected {
		if units[i].Scope != want.scope {
			t.Errorf("unit %d scope = %q, want %q", i, units[i].Scope, want.scope)
		}
		if !reflect.DeepEqual(units[i].Tests, want.tests) {
			t.Errorf("unit %d tests = %v, want %v", i, units[i].Tests, want.tests)
		}
	}
}

func TestPool_TakeNext(t *testing.T) {
	m := scope.NewMapping(map[string]string{"a.py::t1": "G1", "b.py::t2": "G2"})
	pool := NewPool([]string{"a.py::t1", "b.py::t2"}, m)

	if pool.PendingCount() != 2 {
		t.Errorf("pending = %d, want 2", pool.PendingCount())
	}

	first, ok := pool.TakeNext()
	if !ok || first.Scope != "G1" {
		t.Errorf("first unit = %v (%v), want G1", first, ok)
	}
	second, ok := pool.TakeNext()
	if !ok || second.Scope != "G2" {
		t.Errorf("second unit = %v (%v), want G2", second, ok)
	}

	// empty pool is a signal, not an error
	if unit, ok := pool.TakeNext(); ok || unit != nil {
		t.Errorf("expected empty-pool signal, got %v (%v)", unit, ok)
	}
	if pool.PendingCount() != 0 {
		t.Errorf("pending = %d, want 0", pool.PendingCount())
	}
}

func TestPool_CompleteUnit_Idempotent(t *testing.T) {
	m := scope.NewMapping(nil)
	pool := NewPool([]string{"a.py::t1"}, m)

	pool.CompleteUnit("worker-1", "a.py::t1")
	pool.CompleteUnit("worker-1", "a.py::t1")
	pool.CompleteUnit("worker-2", "a.py::t1")

	if pool.CompletedCount() != 1 {
		t.Errorf("completed = %d, want 1", pool.CompletedCount())
	}
}

func TestNewPool_Deterministic(t *testing.T) {
	m := scope.NewMapping(map[string]string{
		"a.py::t1": "G1",
		"b.py::t2": "G2",
		"c.py::t3": "G1",
	})
	canonical := []string{"b.py::t2", "a.py::t1", "c.py::t3", "d.py::t4"}

	var scopes [][]string
	for i := 0; i < 3; i++ {
		pool := NewPool(canonical, m)
		var order []string
		for {
			unit, ok := pool.TakeNext()
			if !ok {
				break
			}
			order = append(order, unit.Scope)
		}
		scopes = append(scopes, order)
	}

	want := []string{"G2", "G1", "d.py::t4"}
	for i, got := range scopes {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("run %d produced unit order %v, want %v", i, got, want)
		}
	}
}
