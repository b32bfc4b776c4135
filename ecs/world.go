package ecs

import "github.com/milk9111/rrect/physics"

// System updates a world once per fixed timestep.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, their physics components, and system order. A tick
// is single-threaded: Update runs every system in registration order, and
// events pushed during the tick stay queued until the caller drains them.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue

	positions *SparseSet[*physics.Position]
	movements *SparseSet[*physics.Movement]
	colliders *SparseSet[*physics.Collider]

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. The spatial
// index notices the disappearance on the next tick's sweep.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	w.Positions().Remove(e)
	w.Movements().Remove(e)
	w.Colliders().Remove(e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the world by one fixed timestep: the previous tick's
// undrained events are discarded, then every system runs in order.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.events.flush()
	for _, s := range w.systems {
		if s != nil {
			s.Update(w, dt)
		}
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// Positions returns the position storage.
func (w *World) Positions() *SparseSet[*physics.Position] {
	if w == nil {
		return nil
	}
	if w.positions == nil {
		w.positions = &SparseSet[*physics.Position]{}
	}
	return w.positions
}

// Movements returns the movement storage.
func (w *World) Movements() *SparseSet[*physics.Movement] {
	if w == nil {
		return nil
	}
	if w.movements == nil {
		w.movements = &SparseSet[*physics.Movement]{}
	}
	return w.movements
}

// Colliders returns the collider storage.
func (w *World) Colliders() *SparseSet[*physics.Collider] {
	if w == nil {
		return nil
	}
	if w.colliders == nil {
		w.colliders = &SparseSet[*physics.Collider]{}
	}
	return w.colliders
}

// SetPosition attaches a position component.
func (w *World) SetPosition(e Entity, p *physics.Position) {
	if w == nil || p == nil {
		return
	}
	w.Positions().Set(e, p)
}

// GetPosition returns an entity's position component, or nil.
func (w *World) GetPosition(e Entity) *physics.Position {
	if w == nil {
		return nil
	}
	p, _ := w.Positions().Get(e)
	return p
}

// SetMovement attaches a movement component.
func (w *World) SetMovement(e Entity, m *physics.Movement) {
	if w == nil || m == nil {
		return
	}
	w.Movements().Set(e, m)
}

// GetMovement returns an entity's movement component, or nil.
func (w *World) GetMovement(e Entity) *physics.Movement {
	if w == nil {
		return nil
	}
	m, _ := w.Movements().Get(e)
	return m
}

// SetCollider attaches a collider component.
func (w *World) SetCollider(e Entity, c *physics.Collider) {
	if w == nil || c == nil {
		return
	}
	w.Colliders().Set(e, c)
}

// GetCollider returns an entity's collider component, or nil.
func (w *World) GetCollider(e Entity) *physics.Collider {
	if w == nil {
		return nil
	}
	c, _ := w.Colliders().Get(e)
	return c
}
