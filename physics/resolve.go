package physics

import (
	"cmp"
	"maps"
	"slices"

	"github.com/jakecoffman/cp"
)

// Body is a snapshot of one entity's physical state for a resolution pass.
type Body struct {
	Pos cp.Vector
	Col Collider
}

// CollisionEvent reports one overlapping pair. The pair is unordered:
// exactly one event is emitted per overlapping pair per pass, no matter
// which side's neighbor query found it.
type CollisionEvent[E cmp.Ordered] struct {
	A, B E
}

// Resolve performs the narrow phase over every candidate pair the grid
// reports for the given snapshot. It returns the emitted events and the
// corrected positions for Dynamic entities that were pushed; entities
// absent from the returned map are unchanged.
//
// Corrections accumulate within the pass: a pair evaluated later sees the
// partially-resolved position of an entity already pushed by an earlier
// pair, so outcomes are order-dependent for entities in more than one
// simultaneous overlap. To keep results reproducible, iteration over the
// snapshot and over each neighbor set is sorted by entity id.
func Resolve[E cmp.Ordered](grid *SpatialHashGrid[E], bodies map[E]Body) ([]CollisionEvent[E], map[E]cp.Vector) {
	type pair struct{ lo, hi E }

	var events []CollisionEvent[E]
	resolved := make(map[E]cp.Vector)
	checked := make(map[pair]struct{}, len(bodies)*2)

	for _, a := range slices.Sorted(maps.Keys(bodies)) {
		bodyA := bodies[a]

		// Statics never initiate a search; they still resolve as the
		// passive side of a pair found by a moving body.
		if bodyA.Col.Type == Static {
			continue
		}

		neighbors, ok := grid.Neighbors(a)
		if !ok {
			continue
		}

		for _, b := range slices.Sorted(maps.Keys(neighbors)) {
			if b == a {
				continue
			}
			bodyB, ok := bodies[b]
			if !ok {
				continue
			}

			key := pair{lo: a, hi: b}
			if b < a {
				key = pair{lo: b, hi: a}
			}
			if _, dup := checked[key]; dup {
				continue
			}
			checked[key] = struct{}{}

			posA := bodyA.Pos
			if over, ok := resolved[a]; ok {
				posA = over
			}
			posB := bodyB.Pos
			if over, ok := resolved[b]; ok {
				posB = over
			}

			mtv, hit := roundedRectMTV(posA, bodyA.Col, posB, bodyB.Col)
			if !hit {
				continue
			}

			// Every overlapping pair gets an event, sensors included.
			events = append(events, CollisionEvent[E]{A: a, B: b})

			switch {
			case bodyA.Col.Type == Dynamic && bodyB.Col.Type == Static:
				resolved[a] = posA.Sub(mtv)

			case bodyA.Col.Type == Dynamic && bodyB.Col.Type == Dynamic:
				total := bodyA.Col.Mass + bodyB.Col.Mass
				resolved[a] = posA.Sub(mtv.Mult(bodyB.Col.Mass / total))
				resolved[b] = posB.Add(mtv.Mult(bodyA.Col.Mass / total))
			}
		}
	}

	return events, resolved
}

// roundedRectMTV returns the minimum translation vector separating two
// overlapping rounded rectangles, oriented from A toward B, and whether
// they overlap at all.
func roundedRectMTV(posA cp.Vector, colA Collider, posB cp.Vector, colB Collider) (cp.Vector, bool) {
	offset := posB.Sub(posA)
	offsetAbs := absVec(offset)
	avg := colA.Size.Add(colB.Size).Mult(0.5)

	// Broad AABB reject on the full bounding rectangles.
	if offsetAbs.X >= avg.X || offsetAbs.Y >= avg.Y {
		return cp.Vector{}, false
	}

	radii := colA.Radius + colB.Radius
	dist := offsetAbs.Sub(avg).Add(cp.Vector{X: radii, Y: radii})

	if dist.X < 0 || dist.Y < 0 {
		// The inner rectangles themselves overlap; push along the
		// shallower axis.
		overlap := avg.Sub(offsetAbs)
		if overlap.X < overlap.Y {
			return cp.Vector{X: overlap.X * sign(offset.X)}, true
		}
		return cp.Vector{Y: overlap.Y * sign(offset.Y)}, true
	}

	// Corner region: circle-circle test against the combined radius.
	d := dist.Length()
	if d > radii {
		return cp.Vector{}, false
	}
	return hadamard(dist.Mult((radii-d)/d), signVec(offset)), true
}
