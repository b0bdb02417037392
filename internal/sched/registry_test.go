package sched

import (
	"reflect"
	"testing"
)

func TestRegistry_Submit(t *testing.T) {
	t.Run("same set in different order verifies", func(t *testing.T) {
		r := NewRegistry(2)

		if state := r.Submit("worker-1", []string{"x", "y"}); state != Collecting {
			t.Errorf("after first submission state = %v, want collecting", state)
		}
		if state := r.Submit("worker-2", []string{"y", "x"}); state != Verified {
			t.Errorf("after second submission state = %v, want verified", state)
		}

		// canonical order is the first submitter's order
		want := []string{"x", "y"}
		if !reflect.DeepEqual(r.Canonical(), want) {
			t.Errorf("canonical = %v, want %v", r.Canonical(), want)
		}
	})

	t.Run("mismatch fails without waiting for remaining nodes", func(t *testing.T) {
		r := NewRegistry(3)

		r.Submit("worker-1", []string{"x", "y"})
		state := r.Submit("worker-2", []string{"x", "z"})

		if state != Failed {
			t.Fatalf("state = %v, want failed", state)
		}
		mismatch := r.Mismatch()
		if mismatch == nil {
			t.Fatal("expected a mismatch error")
		}
		if mismatch.NodeID != "worker-2" {
			t.Errorf("mismatch node = %s, want worker-2", mismatch.NodeID)
		}
		want := []string{"y", "z"}
		if !reflect.DeepEqual(mismatch.Diff, want) {
			t.Errorf("diff = %v, want %v", mismatch.Diff, want)
		}
	})

	t.Run("single node verifies immediately", func(t *testing.T) {
		r := NewRegistry(1)
		if state := r.Submit("worker-1", []string{"a", "b"}); state != Verified {
			t.Errorf("state = %v, want verified", state)
		}
	})

	t.Run("terminal states ignore further submissions", func(t *testing.T) {
		r := NewRegistry(2)
		r.Submit("worker-1", []string{"x"})
		r.Submit("worker-2", []string{"z"})

		if state := r.Submit("worker-3", []string{"x"}); state != Failed {
			t.Errorf("state = %v, want failed to stick", state)
		}
		if r.Mismatch().NodeID != "worker-2" {
			t.Errorf("mismatch node changed to %s", r.Mismatch().NodeID)
		}
	})

	t.Run("missing and extra identifiers both reported", func(t *testing.T) {
		r := NewRegistry(2)
		r.Submit("worker-1", []string{"a", "b", "c"})
		r.Submit("worker-2", []string{"a", "d"})

		want := []string{"b", "c", "d"}
		if !reflect.DeepEqual(r.Mismatch().Diff, want) {
			t.Errorf("diff = %v, want %v", r.Mismatch().Diff, want)
		}
	})
}
