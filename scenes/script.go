package scenes

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rrect/ecs"
	"github.com/milk9111/rrect/physics"
)

// ScriptForceID is the force slot controllers write into each tick.
const ScriptForceID = "script"

// Controller runs a compiled tengo script once per tick. The script sees
// `t` (seconds since attach), `x`/`y` (current position) and `name`, and
// reports back through the globals `fx`, `fy` and `active`.
type Controller struct {
	name     string
	compiled *tengo.Compiled
	t        float64
}

func NewController(name string, src []byte) (*Controller, error) {
	script := tengo.NewScript(src)
	_ = script.Add("t", 0.0)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("name", name)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenes: compile script for %s: %w", name, err)
	}

	return &Controller{name: name, compiled: compiled}, nil
}

func (c *Controller) Apply(pos cp.Vector, m *physics.Movement, dt float64) error {
	if c == nil || c.compiled == nil || m == nil {
		return nil
	}

	c.t += dt
	if err := c.compiled.Set("t", c.t); err != nil {
		return err
	}
	if err := c.compiled.Set("x", pos.X); err != nil {
		return err
	}
	if err := c.compiled.Set("y", pos.Y); err != nil {
		return err
	}
	if err := c.compiled.Run(); err != nil {
		return err
	}

	var force cp.Vector
	if c.compiled.IsDefined("fx") {
		force.X = c.compiled.Get("fx").Float()
	}
	if c.compiled.IsDefined("fy") {
		force.Y = c.compiled.Get("fy").Float()
	}
	active := true
	if c.compiled.IsDefined("active") {
		active = c.compiled.Get("active").Bool()
	}

	m.ApplyForce(physics.PartialForce{ID: ScriptForceID, Force: &force, Active: &active})
	return nil
}

// ScriptSystem drives attached controllers before integration runs.
type ScriptSystem struct {
	controllers map[ecs.Entity]*Controller
	warned      map[ecs.Entity]bool
}

func NewScriptSystem() *ScriptSystem {
	return &ScriptSystem{controllers: map[ecs.Entity]*Controller{}}
}

func (s *ScriptSystem) Attach(e ecs.Entity, c *Controller) {
	if s == nil || c == nil {
		return
	}
	if s.controllers == nil {
		s.controllers = map[ecs.Entity]*Controller{}
	}
	s.controllers[e] = c
}

func (s *ScriptSystem) Detach(e ecs.Entity) {
	if s == nil {
		return
	}
	delete(s.controllers, e)
	delete(s.warned, e)
}

func (s *ScriptSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}
	for e, c := range s.controllers {
		if !w.IsAlive(e) {
			delete(s.controllers, e)
			delete(s.warned, e)
			continue
		}
		pos := w.GetPosition(e)
		m := w.GetMovement(e)
		if pos == nil || m == nil {
			continue
		}
		if err := c.Apply(pos.Pos, m, dt); err != nil {
			// Report a broken script once, not sixty times a second.
			if !s.warned[e] {
				fmt.Printf("scenes: entity=%s script error: %v\n", e, err)
				if s.warned == nil {
					s.warned = map[ecs.Entity]bool{}
				}
				s.warned[e] = true
			}
		}
	}
}
