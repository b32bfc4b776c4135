// Package physics implements force-driven motion and rounded-rectangle
// collision for axis-aligned colliders stepped on a fixed timestep. The
// pipeline runs three phases per tick in strict order: Integrate every
// moving body, refresh the SpatialHashGrid, then Resolve candidate pairs.
package physics

import "github.com/jakecoffman/cp"

// Position is the authoritative simulation-space location of a body.
// It is distinct from any rendering transform; multiply by a tile size
// to obtain a render pose.
type Position struct {
	Pos cp.Vector
}

// Integrate advances one body by one fixed timestep. Velocity is not
// carried over between ticks: it is recomputed from scratch as the sum of
// all current force vectors scaled by dt, after damping has decayed the
// inactive ones. The result is clamped to MaxVelocity*dt before it is
// added to the position.
func Integrate(m *Movement, p *Position, dt float64) {
	m.Velocity = cp.Vector{}
	m.ApplyDamping(dt)

	for _, f := range m.Forces {
		m.Velocity = m.Velocity.Add(f.Force.Mult(dt))
	}

	m.Velocity = m.Velocity.Clamp(MaxVelocity * dt)
	p.Pos = p.Pos.Add(m.Velocity)
}
