// Package systems provides the per-tick physics pipeline as ECS systems.
// Registration order is the contract: integrate, reindex, resolve.
package systems

import "github.com/milk9111/rrect/ecs"

// IntegrationSystem applies accumulated forces to positions.
type IntegrationSystem struct{}

// NewIntegrationSystem creates an IntegrationSystem.
func NewIntegrationSystem() *IntegrationSystem {
	return &IntegrationSystem{}
}

// Update integrates every moving entity by dt.
func (s *IntegrationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Integrate(w, dt)
	}
}

// SpatialIndexSystem refreshes the broad-phase grid and sweeps entities
// that disappeared since the last tick.
type SpatialIndexSystem struct{}

// NewSpatialIndexSystem creates a SpatialIndexSystem.
func NewSpatialIndexSystem() *SpatialIndexSystem {
	return &SpatialIndexSystem{}
}

// Update reindexes every collidable entity.
func (s *SpatialIndexSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Reindex(w)
	}
}

// CollisionSystem runs the narrow phase and emits collision events.
type CollisionSystem struct{}

// NewCollisionSystem creates a CollisionSystem.
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

// Update resolves overlaps against the freshly reindexed grid.
func (s *CollisionSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.ResolveCollisions(w)
	}
}

// RegisterPipeline adds the three pipeline systems to the world in the
// required order.
func RegisterPipeline(w *ecs.World) {
	if w == nil {
		return
	}
	w.AddSystem(NewIntegrationSystem())
	w.AddSystem(NewSpatialIndexSystem())
	w.AddSystem(NewCollisionSystem())
}
