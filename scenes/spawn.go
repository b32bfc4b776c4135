package scenes

import (
	"fmt"

	"github.com/milk9111/rrect/ecs"
	"github.com/milk9111/rrect/physics"
)

// Spawn instantiates every entity in the scene and returns them keyed by
// spec name. Entities with a script attach a compiled controller to the
// given script system; pass nil to ignore script fields.
func Spawn(w *ecs.World, spec *SceneSpec, scripts *ScriptSystem) (map[string]ecs.Entity, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("scenes: spawn into nil world or spec")
	}

	spawned := make(map[string]ecs.Entity, len(spec.Entities))
	for i, ent := range spec.Entities {
		name := ent.Name
		if name == "" {
			name = fmt.Sprintf("entity_%d", i)
		}
		if _, ok := spawned[name]; ok {
			return nil, fmt.Errorf("scenes: duplicate entity name %q", name)
		}

		e := w.CreateEntity()
		w.SetPosition(e, &physics.Position{Pos: ent.Position.Vector()})

		var col *physics.Collider
		if ent.Collider != nil {
			c, err := ent.Collider.collider()
			if err != nil {
				return nil, fmt.Errorf("scenes: entity %q: %w", name, err)
			}
			col = &c
			w.SetCollider(e, col)
		}

		if m := buildMovement(ent, col); m != nil {
			w.SetMovement(e, m)
		}

		if ent.Script != "" && scripts != nil {
			src, err := LoadScript(ent.Script)
			if err != nil {
				return nil, fmt.Errorf("scenes: entity %q: %w", name, err)
			}
			ctrl, err := NewController(name, src)
			if err != nil {
				return nil, fmt.Errorf("scenes: entity %q: %w", name, err)
			}
			scripts.Attach(e, ctrl)
		}

		spawned[name] = e
	}

	return spawned, nil
}

// buildMovement decides whether the entity moves at all. Anything with
// declared forces or damping, a script, or a dynamic collider gets a
// movement component; pure static scenery does not.
func buildMovement(ent EntitySpec, col *physics.Collider) *physics.Movement {
	needs := ent.Script != "" || (col != nil && col.Type == physics.Dynamic)

	var m *physics.Movement
	if ent.Movement != nil {
		m = physics.Damped(ent.Movement.Damping.Vector())
		for _, f := range ent.Movement.Forces {
			force := f.Force.Vector()
			active := f.Active
			m.ApplyForce(physics.PartialForce{ID: f.ID, Force: &force, Active: &active})
		}
		return m
	}

	if needs {
		return physics.NewMovement()
	}
	return nil
}
