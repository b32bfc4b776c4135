package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// ColliderType selects how a body participates in collision resolution.
type ColliderType uint8

const (
	// Sensor reports overlaps but never receives or causes positional
	// correction. This is the zero value.
	Sensor ColliderType = iota
	// Static never moves. It is skipped as a pair initiator and resolves
	// only as the passive side.
	Static
	// Dynamic is pushed out of overlaps, split by mass against other
	// dynamic bodies.
	Dynamic
)

func (t ColliderType) String() string {
	switch t {
	case Sensor:
		return "sensor"
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("collidertype(%d)", uint8(t))
}

// DefaultRadius is the corner radius used by convenience constructors.
const DefaultRadius = 0.2

// Collider is an axis-aligned rectangle with rounded corners. Size is the
// full width and height of the bounding rectangle; the corner circles of
// the given Radius must fit inside it (2*Radius <= Size on both axes).
// Mass is only meaningful for Dynamic colliders and must be finite and
// strictly positive. Both constraints are caller contracts, checked only
// when the rrectdebug build tag is set.
type Collider struct {
	Size   cp.Vector
	Radius float64
	Type   ColliderType
	Mass   float64
}

// NewCollider builds a collider of the given geometry and type. Mass is
// ignored unless typ is Dynamic.
func NewCollider(size cp.Vector, radius float64, typ ColliderType, mass float64) Collider {
	if debugChecks {
		if d := radius * 2; d > size.X || d > size.Y {
			panic(fmt.Sprintf("physics: corner radius %v does not fit collider size %v", radius, size))
		}
		if typ == Dynamic && !(mass > 0 && !math.IsInf(mass, 1)) {
			panic(fmt.Sprintf("physics: dynamic collider mass must be finite and positive, got %v", mass))
		}
	}
	return Collider{Size: size, Radius: radius, Type: typ, Mass: mass}
}

// NewSensor returns a sensor collider of the given geometry.
func NewSensor(size cp.Vector, radius float64) Collider {
	return NewCollider(size, radius, Sensor, 0)
}

// NewStatic returns an immovable collider of the given geometry.
func NewStatic(size cp.Vector, radius float64) Collider {
	return NewCollider(size, radius, Static, 0)
}

// NewDynamic returns a mass-resolved collider of the given geometry.
func NewDynamic(size cp.Vector, radius float64, mass float64) Collider {
	return NewCollider(size, radius, Dynamic, mass)
}

// Rect returns a sharp-cornered collider.
func Rect(size cp.Vector, typ ColliderType, mass float64) Collider {
	return NewCollider(size, 0, typ, mass)
}

// Circle returns a fully rounded collider spanning 2*radius on both axes.
func Circle(radius float64, typ ColliderType, mass float64) Collider {
	return NewCollider(cp.Vector{X: radius * 2, Y: radius * 2}, radius, typ, mass)
}
