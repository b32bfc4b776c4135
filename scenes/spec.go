package scenes

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/rrect/physics"
)

// SceneSpec is the top-level shape of a scene file.
type SceneSpec struct {
	Name     string       `yaml:"name"`
	CellSize float64      `yaml:"cell_size"`
	Entities []EntitySpec `yaml:"entities"`
}

type EntitySpec struct {
	Name     string        `yaml:"name"`
	Position Vec2Spec      `yaml:"position"`
	Movement *MovementSpec `yaml:"movement"`
	Collider *ColliderSpec `yaml:"collider"`
	Script   string        `yaml:"script"`
}

type MovementSpec struct {
	Damping Vec2Spec    `yaml:"damping"`
	Forces  []ForceSpec `yaml:"forces"`
}

type ForceSpec struct {
	ID     string   `yaml:"id"`
	Force  Vec2Spec `yaml:"force"`
	Active bool     `yaml:"active"`
}

type ColliderSpec struct {
	Type   string   `yaml:"type"`
	Size   Vec2Spec `yaml:"size"`
	Radius *float64 `yaml:"radius"`
	Mass   float64  `yaml:"mass"`
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2Spec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenes: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenes: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene reads and decodes a scene file by name.
func LoadScene(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ColliderSpec) collider() (physics.Collider, error) {
	typ, err := parseColliderType(s.Type)
	if err != nil {
		return physics.Collider{}, err
	}

	radius := physics.DefaultRadius
	if s.Radius != nil {
		radius = *s.Radius
	}

	mass := s.Mass
	if typ == physics.Dynamic && mass == 0 {
		mass = 1
	}

	return physics.NewCollider(s.Size.Vector(), radius, typ, mass), nil
}

func parseColliderType(s string) (physics.ColliderType, error) {
	switch s {
	case "sensor":
		return physics.Sensor, nil
	case "static":
		return physics.Static, nil
	case "dynamic":
		return physics.Dynamic, nil
	}
	return 0, fmt.Errorf("scenes: unknown collider type %q", s)
}
