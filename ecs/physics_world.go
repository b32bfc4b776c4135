package ecs

import "github.com/milk9111/rrect/physics"

// PhysicsWorld is the simulation context for the physics pipeline: it owns
// the broad-phase index and implements the three per-tick phases. The
// phases must run in order — Integrate, Reindex, ResolveCollisions — so
// resolution observes positions already advanced this tick and a grid
// already refreshed with them. Nothing here is safe for concurrent use;
// the pipeline owns the grid for the duration of a tick.
type PhysicsWorld struct {
	grid *physics.SpatialHashGrid[Entity]
}

// NewPhysicsWorld creates a physics world with the given broad-phase cell
// size. A non-positive size falls back to physics.DefaultCellSize.
func NewPhysicsWorld(cellSize float64) *PhysicsWorld {
	return &PhysicsWorld{grid: physics.NewSpatialHashGrid[Entity](cellSize)}
}

// Grid returns the broad-phase index.
func (pw *PhysicsWorld) Grid() *physics.SpatialHashGrid[Entity] {
	if pw == nil {
		return nil
	}
	return pw.grid
}

// Integrate advances every entity with Movement and Position by dt.
func (pw *PhysicsWorld) Integrate(w *World, dt float64) {
	if pw == nil || w == nil {
		return
	}
	for _, e := range w.Movements().Entities() {
		m := w.GetMovement(e)
		p := w.GetPosition(e)
		if m == nil || p == nil {
			continue
		}
		physics.Integrate(m, p, dt)
	}
}

// Reindex refreshes the grid with every entity that has Position and
// Collider, then removes entities the index still holds but the world no
// longer does. Disappearance is detected by absence; the grid is never
// told about entity lifecycle directly.
func (pw *PhysicsWorld) Reindex(w *World) {
	if pw == nil || w == nil {
		return
	}
	live := make(map[Entity]struct{}, w.Colliders().Len())
	for _, e := range w.Colliders().Entities() {
		p := w.GetPosition(e)
		c := w.GetCollider(e)
		if p == nil || c == nil {
			continue
		}
		live[e] = struct{}{}
		pw.grid.InsertOrUpdate(e, *p, *c)
	}

	for _, e := range pw.grid.Tracked() {
		if _, ok := live[e]; !ok {
			pw.grid.Remove(e)
		}
	}
}

// ResolveCollisions snapshots every entity with Position and Collider,
// runs the narrow phase, writes corrected positions back, and pushes one
// event per overlapping pair onto the world queue.
func (pw *PhysicsWorld) ResolveCollisions(w *World) {
	if pw == nil || w == nil {
		return
	}
	bodies := make(map[Entity]physics.Body, w.Colliders().Len())
	for _, e := range w.Colliders().Entities() {
		p := w.GetPosition(e)
		c := w.GetCollider(e)
		if p == nil || c == nil {
			continue
		}
		bodies[e] = physics.Body{Pos: p.Pos, Col: *c}
	}

	events, resolved := physics.Resolve(pw.grid, bodies)

	for e, pos := range resolved {
		if p := w.GetPosition(e); p != nil {
			p.Pos = pos
		}
	}
	for _, ev := range events {
		w.Events().Push(CollisionEvent{A: ev.A, B: ev.B})
	}
}

// Step runs the full pipeline once. Equivalent to registering the three
// pipeline systems and calling World.Update, minus the event flush.
func (pw *PhysicsWorld) Step(w *World, dt float64) {
	pw.Integrate(w, dt)
	pw.Reindex(w)
	pw.ResolveCollisions(w)
}
