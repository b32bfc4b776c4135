package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rrect/physics"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for a live entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestEntityIDRecyclingBumpsGeneration(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.DestroyEntity(first)
	second := w.CreateEntity()

	if first == second {
		t.Fatalf("recycled id must carry a new generation")
	}
	if w.IsAlive(first) {
		t.Fatalf("stale handle should be dead after recycling")
	}
	if !w.IsAlive(second) {
		t.Fatalf("fresh handle should be alive")
	}
}

func TestDestroyEntityRemovesComponents(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.SetPosition(e, &physics.Position{})
	w.SetMovement(e, physics.NewMovement())
	col := physics.NewStatic(cp.Vector{X: 1, Y: 1}, 0)
	w.SetCollider(e, &col)

	w.DestroyEntity(e)

	if w.GetPosition(e) != nil || w.GetMovement(e) != nil || w.GetCollider(e) != nil {
		t.Fatalf("components should be gone after DestroyEntity")
	}
	if w.Colliders().Len() != 0 {
		t.Fatalf("collider storage should be empty")
	}
}

func TestSparseSet(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	var set SparseSet[int]
	set.Set(a, 1)
	set.Set(b, 2)
	set.Set(c, 3)
	set.Set(b, 20)

	if got, ok := set.Get(b); !ok || got != 20 {
		t.Fatalf("Get(b) = %d %v, want 20 true", got, ok)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}

	set.Remove(a)
	if set.Has(a) {
		t.Fatalf("Has(a) after Remove should be false")
	}
	if got, ok := set.Get(c); !ok || got != 3 {
		t.Fatalf("swap-remove corrupted c: %d %v", got, ok)
	}
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
}

func TestEventQueueTickScoped(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()

	w.Events().Push(CollisionEvent{A: a, B: b})
	if got := w.Events().Len(); got != 1 {
		t.Fatalf("queue len = %d, want 1", got)
	}

	// Update discards the previous tick's undrained events.
	w.Update(1.0 / 60.0)
	if got := w.Events().Drain(); got != nil {
		t.Fatalf("stale events should be flushed, got %v", got)
	}
}

func TestAccessorsNilSafety(t *testing.T) {
	var w *World
	if w.GetPosition(1) != nil || w.PhysicsWorld() != nil || w.Entities() != nil {
		t.Fatalf("nil world accessors should return zero values")
	}
	w.Update(1.0 / 60.0) // must not panic
}
