package physics

import (
	"cmp"
	"maps"
	"math"
)

// DefaultCellSize is the uniform cell edge length used when none is given.
const DefaultCellSize = 20.0

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// SpatialHashGrid maps every tracked entity to the set of uniform cells its
// axis-aligned bounding box overlaps (corner rounding is ignored for the
// broad phase) and answers shared-cell neighbor queries in expected O(1)
// time relative to entity density.
//
// The two internal maps are exact inverses of each other: an entity is in a
// cell's bucket iff the cell is in the entity's recorded set. All mutation
// goes through InsertOrUpdate and Remove so the invariant holds after every
// call; neither map is exposed. The grid knows nothing about entity
// lifecycle: the host detects entities that disappeared and calls Remove.
type SpatialHashGrid[E cmp.Ordered] struct {
	cellSize   float64
	gridToEnts map[Cell]map[E]struct{}
	entToCells map[E]map[Cell]struct{}
}

// NewSpatialHashGrid returns an empty grid. A non-positive cellSize falls
// back to DefaultCellSize.
func NewSpatialHashGrid[E cmp.Ordered](cellSize float64) *SpatialHashGrid[E] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialHashGrid[E]{
		cellSize:   cellSize,
		gridToEnts: make(map[Cell]map[E]struct{}),
		entToCells: make(map[E]map[Cell]struct{}),
	}
}

// CellSize returns the uniform cell edge length.
func (g *SpatialHashGrid[E]) CellSize() float64 {
	return g.cellSize
}

// InsertOrUpdate recomputes the cells covered by the entity's bounds and
// rewrites its bucket membership if the covered set changed. An unchanged
// set is a no-op, so stationary bodies cost nothing tick over tick.
func (g *SpatialHashGrid[E]) InsertOrUpdate(e E, pos Position, col Collider) {
	cells := g.coveredCells(pos, col)
	if maps.Equal(g.entToCells[e], cells) {
		return
	}

	for c := range g.entToCells[e] {
		g.dropFromBucket(c, e)
	}

	g.entToCells[e] = cells
	for c := range cells {
		bucket := g.gridToEnts[c]
		if bucket == nil {
			bucket = make(map[E]struct{})
			g.gridToEnts[c] = bucket
		}
		bucket[e] = struct{}{}
	}
}

// Remove deletes the entity from every bucket it occupies and untracks it.
// Removing an untracked entity is a no-op.
func (g *SpatialHashGrid[E]) Remove(e E) {
	cells, ok := g.entToCells[e]
	if !ok {
		return
	}
	for c := range cells {
		g.dropFromBucket(c, e)
	}
	delete(g.entToCells, e)
}

// Neighbors returns the union of all entities sharing at least one cell
// with e, including e itself. ok is false when e is not tracked; a tracked
// entity always shares its cells with itself, so the flag unambiguously
// distinguishes "not tracked" from "tracked but isolated".
func (g *SpatialHashGrid[E]) Neighbors(e E) (map[E]struct{}, bool) {
	cells, ok := g.entToCells[e]
	if !ok {
		return nil, false
	}
	out := make(map[E]struct{})
	for c := range cells {
		for other := range g.gridToEnts[c] {
			out[other] = struct{}{}
		}
	}
	return out, true
}

// Tracked returns the ids currently present in the index, in no particular
// order. Hosts use it to sweep entities that disappeared since last tick.
func (g *SpatialHashGrid[E]) Tracked() []E {
	out := make([]E, 0, len(g.entToCells))
	for e := range g.entToCells {
		out = append(out, e)
	}
	return out
}

// Len returns the number of tracked entities.
func (g *SpatialHashGrid[E]) Len() int {
	return len(g.entToCells)
}

// CellCount returns the number of occupied cells.
func (g *SpatialHashGrid[E]) CellCount() int {
	return len(g.gridToEnts)
}

func (g *SpatialHashGrid[E]) dropFromBucket(c Cell, e E) {
	bucket, ok := g.gridToEnts[c]
	if !ok {
		return
	}
	delete(bucket, e)
	if len(bucket) == 0 {
		delete(g.gridToEnts, c)
	}
}

// coveredCells returns the cells overlapped by the collider's bounding box
// centered at pos, inclusive on both axes.
func (g *SpatialHashGrid[E]) coveredCells(pos Position, col Collider) map[Cell]struct{} {
	half := col.Size.Mult(0.5)
	min := pos.Pos.Sub(half)
	max := pos.Pos.Add(half)

	minX := int(math.Floor(min.X / g.cellSize))
	minY := int(math.Floor(min.Y / g.cellSize))
	maxX := int(math.Floor(max.X / g.cellSize))
	maxY := int(math.Floor(max.Y / g.cellSize))

	cells := make(map[Cell]struct{}, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			cells[Cell{X: x, Y: y}] = struct{}{}
		}
	}
	return cells
}
