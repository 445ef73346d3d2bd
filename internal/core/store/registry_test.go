package store

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRegistry_StateForIsPerSession(t *testing.T) {
	r := NewRegistry(Gateways{}, time.Hour, zerolog.Nop())

	a := r.StateFor("sid-a")
	b := r.StateFor("sid-b")
	if a == b {
		t.Fatalf("different sessions must not share state")
	}
	if r.StateFor("sid-a") != a {
		t.Fatalf("same session must get the same state back")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 states, got %d", r.Len())
	}
}

func TestRegistry_Drop(t *testing.T) {
	r := NewRegistry(Gateways{}, time.Hour, zerolog.Nop())

	first := r.StateFor("sid-a")
	r.Drop("sid-a")
	if r.Len() != 0 {
		t.Fatalf("expected state dropped, got %d", r.Len())
	}
	if r.StateFor("sid-a") == first {
		t.Fatalf("a dropped session must start from fresh stores")
	}
}

func TestRegistry_SweepEvictsIdleStates(t *testing.T) {
	r := NewRegistry(Gateways{}, time.Minute, zerolog.Nop())

	r.StateFor("idle")
	time.Sleep(50 * time.Millisecond)
	r.StateFor("active")

	// Sweep just before the active state would cross the TTL: idle is 50ms
	// older and past it, active is not.
	r.sweep(time.Now().Add(time.Minute - 25*time.Millisecond))

	if r.Len() != 1 {
		t.Fatalf("expected 1 surviving state, got %d", r.Len())
	}
	r.mu.Lock()
	_, idleAlive := r.states["idle"]
	_, activeAlive := r.states["active"]
	r.mu.Unlock()
	if idleAlive || !activeAlive {
		t.Fatalf("expected only the active state to survive (idle=%v active=%v)", idleAlive, activeAlive)
	}
}
