package physics

import "github.com/jakecoffman/cp"

// MaxVelocity caps integrated speed, in distance units per second.
const MaxVelocity = 256.0

// Force is one named contribution to a body's velocity. Identity is the ID
// alone: two forces are the same force iff their IDs match, and the ID is
// the join key for mixing and removal. Active forces model sustained input;
// inactive forces are residual impulses that damping bleeds off over time.
type Force struct {
	ID     string
	Force  cp.Vector
	Active bool
}

// PartialForce is a sparse update request for a force. A nil field keeps
// the previous value when merged into an existing force, or falls back to
// the zero value when the force is created.
type PartialForce struct {
	ID     string
	Force  *cp.Vector
	Active *bool
}

// mix merges a partial update into f, keeping any field the partial leaves unset.
func (f Force) mix(p PartialForce) Force {
	out := f
	if p.Force != nil {
		out.Force = *p.Force
	}
	if p.Active != nil {
		out.Active = *p.Active
	}
	return out
}

// materialize converts p into a full force, defaulting unset fields to a
// zero vector and inactive.
func (p PartialForce) materialize() Force {
	f := Force{ID: p.ID}
	if p.Force != nil {
		f.Force = *p.Force
	}
	if p.Active != nil {
		f.Active = *p.Active
	}
	return f
}

// Movement accumulates named forces and turns them into per-tick
// displacement. Velocity is recomputed from the force set every tick;
// do not write it directly. Mutate forces only through ApplyForce and
// RemoveForce so mixing semantics hold.
type Movement struct {
	Velocity cp.Vector
	Forces   map[string]Force
	Damping  cp.Vector
}

// NewMovement returns an empty movement with no damping.
func NewMovement() *Movement {
	return &Movement{Forces: make(map[string]Force)}
}

// Damped returns a movement whose inactive forces decay by damping*dt
// component-wise each tick.
func Damped(damping cp.Vector) *Movement {
	m := NewMovement()
	m.Damping = damping
	return m
}

// ApplyForce merges partial into the force set. An existing force with the
// same ID is mixed field by field; otherwise the partial is materialized
// with defaults.
func (m *Movement) ApplyForce(partial PartialForce) {
	if m.Forces == nil {
		m.Forces = make(map[string]Force)
	}
	if old, ok := m.Forces[partial.ID]; ok {
		m.Forces[partial.ID] = old.mix(partial)
		return
	}
	m.Forces[partial.ID] = partial.materialize()
}

// ApplyDamping scales every inactive force by Damping*dt component-wise.
// Repeated ticks compound geometrically toward zero without changing sign.
// Active forces are untouched.
func (m *Movement) ApplyDamping(dt float64) {
	scale := m.Damping.Mult(dt)
	for id, f := range m.Forces {
		if f.Active {
			continue
		}
		f.Force = hadamard(f.Force, scale)
		m.Forces[id] = f
	}
}

// RemoveForce drops the force with the given id, if present.
func (m *Movement) RemoveForce(id string) {
	delete(m.Forces, id)
}
