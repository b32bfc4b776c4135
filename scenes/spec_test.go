package scenes

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rrect/ecs"
	"github.com/milk9111/rrect/physics"
)

func TestLoadSceneSimple(t *testing.T) {
	spec, err := LoadScene("simple.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	if spec.Name != "simple" {
		t.Errorf("name = %q, want simple", spec.Name)
	}
	if spec.CellSize != 20 {
		t.Errorf("cell_size = %v, want 20", spec.CellSize)
	}
	if len(spec.Entities) != 5 {
		t.Fatalf("entities = %d, want 5", len(spec.Entities))
	}

	byName := map[string]EntitySpec{}
	for _, e := range spec.Entities {
		byName[e.Name] = e
	}

	player, ok := byName["player"]
	if !ok {
		t.Fatal("missing player entity")
	}
	if player.Collider == nil || player.Collider.Type != "dynamic" || player.Collider.Mass != 1 {
		t.Errorf("player collider = %+v", player.Collider)
	}

	wall, ok := byName["wall"]
	if !ok {
		t.Fatal("missing wall entity")
	}
	if wall.Collider == nil || wall.Collider.Type != "static" {
		t.Errorf("wall collider = %+v", wall.Collider)
	}
	if wall.Collider.Radius == nil || *wall.Collider.Radius != 0 {
		t.Errorf("wall radius = %v, want explicit 0", wall.Collider.Radius)
	}
}

func TestSpawnSimple(t *testing.T) {
	spec, err := LoadScene("simple.yaml")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(spec.CellSize))
	scripts := NewScriptSystem()

	spawned, err := Spawn(w, spec, scripts)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if len(spawned) != 5 {
		t.Fatalf("spawned = %d, want 5", len(spawned))
	}

	player := spawned["player"]
	if got := w.GetCollider(player); got == nil || got.Type != physics.Dynamic || got.Mass != 1 {
		t.Errorf("player collider = %+v", got)
	}
	if w.GetMovement(player) == nil {
		t.Error("dynamic player should get a movement component")
	}

	wall := spawned["wall"]
	if got := w.GetPosition(wall); got == nil || got.Pos != (cp.Vector{X: 0, Y: 5}) {
		t.Errorf("wall position = %+v", got)
	}
	if w.GetMovement(wall) != nil {
		t.Error("static wall should not get a movement component")
	}

	orbiter := spawned["orbiter"]
	m := w.GetMovement(orbiter)
	if m == nil {
		t.Fatal("orbiter should get a movement component")
	}
	if m.Damping != (cp.Vector{X: 0.5, Y: 0.5}) {
		t.Errorf("orbiter damping = %v", m.Damping)
	}
	if _, ok := scripts.controllers[orbiter]; !ok {
		t.Error("orbiter controller not attached")
	}
}

func TestSpawnRejectsUnknownColliderType(t *testing.T) {
	w := ecs.NewWorld()
	spec := &SceneSpec{Entities: []EntitySpec{{
		Name:     "bad",
		Collider: &ColliderSpec{Type: "kinematic", Size: Vec2Spec{X: 1, Y: 1}},
	}}}

	_, err := Spawn(w, spec, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown collider type") {
		t.Fatalf("err = %v, want unknown collider type", err)
	}
}

func TestSpawnRejectsDuplicateNames(t *testing.T) {
	w := ecs.NewWorld()
	spec := &SceneSpec{Entities: []EntitySpec{{Name: "twin"}, {Name: "twin"}}}

	if _, err := Spawn(w, spec, nil); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestControllerWritesScriptForce(t *testing.T) {
	src := []byte("fx := 1.5\nfy := -2.5\nactive := t > 0.0\n")
	ctrl, err := NewController("test", src)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	m := physics.NewMovement()
	if err := ctrl.Apply(cp.Vector{X: 3, Y: 4}, m, 1.0/60.0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	f, ok := m.Forces[ScriptForceID]
	if !ok {
		t.Fatal("script force not applied")
	}
	if f.Force != (cp.Vector{X: 1.5, Y: -2.5}) {
		t.Errorf("force = %v", f.Force)
	}
	if !f.Active {
		t.Error("force should be active after the first tick")
	}
}

func TestControllerSeesPosition(t *testing.T) {
	src := []byte("fx := x * 2.0\nfy := y * 2.0\n")
	ctrl, err := NewController("test", src)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	m := physics.NewMovement()
	if err := ctrl.Apply(cp.Vector{X: 1.5, Y: -3}, m, 1.0/60.0); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	f := m.Forces[ScriptForceID]
	if math.Abs(f.Force.X-3) > 1e-9 || math.Abs(f.Force.Y+6) > 1e-9 {
		t.Errorf("force = %v, want {3 -6}", f.Force)
	}
}
