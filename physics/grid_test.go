package physics

import (
	"maps"
	"reflect"
	"testing"

	"github.com/jakecoffman/cp"
)

func unitBody(x, y float64) (Position, Collider) {
	return Position{Pos: cp.Vector{X: x, Y: y}}, NewDynamic(cp.Vector{X: 1, Y: 1}, 0, 1)
}

func (g *SpatialHashGrid[E]) snapshotBuckets() map[Cell]map[E]struct{} {
	out := make(map[Cell]map[E]struct{}, len(g.gridToEnts))
	for c, bucket := range g.gridToEnts {
		out[c] = maps.Clone(bucket)
	}
	return out
}

func TestGridCoveredCells(t *testing.T) {
	cases := []struct {
		name      string
		pos       cp.Vector
		size      cp.Vector
		cellSize  float64
		wantCells int
	}{
		{"small_at_origin_straddles_four", cp.Vector{}, cp.Vector{X: 1, Y: 1}, 20, 4},
		{"inside_one_cell", cp.Vector{X: 10, Y: 10}, cp.Vector{X: 1, Y: 1}, 20, 1},
		{"wide_body_spans_row", cp.Vector{X: 30, Y: 10}, cp.Vector{X: 45, Y: 1}, 20, 3},
		{"negative_coordinates", cp.Vector{X: -30, Y: -30}, cp.Vector{X: 1, Y: 1}, 20, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewSpatialHashGrid[uint64](c.cellSize)
			g.InsertOrUpdate(1, Position{Pos: c.pos}, NewStatic(c.size, 0))
			if got := g.CellCount(); got != c.wantCells {
				t.Fatalf("occupied cells = %d, want %d", got, c.wantCells)
			}
		})
	}
}

func TestGridInsertOrUpdateIdempotent(t *testing.T) {
	g := NewSpatialHashGrid[uint64](20)
	pos, col := unitBody(3, 3)
	g.InsertOrUpdate(7, pos, col)

	before := g.snapshotBuckets()
	g.InsertOrUpdate(7, pos, col)

	if !reflect.DeepEqual(before, g.snapshotBuckets()) {
		t.Fatalf("repeated insert with unchanged bounds mutated buckets")
	}
}

func TestGridUpdateMovesBuckets(t *testing.T) {
	g := NewSpatialHashGrid[uint64](20)
	pos, col := unitBody(3, 3)
	g.InsertOrUpdate(7, pos, col)
	if got := g.CellCount(); got != 1 {
		t.Fatalf("occupied cells = %d, want 1", got)
	}

	far, _ := unitBody(103, 103)
	g.InsertOrUpdate(7, far, col)

	if got := g.CellCount(); got != 1 {
		t.Fatalf("old buckets should be dropped after a move, occupied = %d", got)
	}
	neighbors, ok := g.Neighbors(7)
	if !ok || len(neighbors) != 1 {
		t.Fatalf("moved entity should still be tracked with itself, got %v ok=%v", neighbors, ok)
	}
}

func TestGridRemove(t *testing.T) {
	g := NewSpatialHashGrid[uint64](20)
	posA, col := unitBody(0, 0)
	posB, _ := unitBody(1, 0)
	g.InsertOrUpdate(1, posA, col)
	g.InsertOrUpdate(2, posB, col)

	g.Remove(1)

	if _, ok := g.Neighbors(1); ok {
		t.Fatalf("removed entity should be untracked")
	}
	for c, bucket := range g.gridToEnts {
		if _, ok := bucket[1]; ok {
			t.Fatalf("removed entity still present in bucket %v", c)
		}
	}
	if g.Len() != 1 {
		t.Fatalf("tracked count = %d, want 1", g.Len())
	}

	// Removing again is a no-op.
	g.Remove(1)
}

func TestGridNeighbors(t *testing.T) {
	g := NewSpatialHashGrid[uint64](20)
	posA, col := unitBody(0, 0)
	posB, _ := unitBody(2, 0)
	posFar, _ := unitBody(500, 500)
	g.InsertOrUpdate(1, posA, col)
	g.InsertOrUpdate(2, posB, col)
	g.InsertOrUpdate(3, posFar, col)

	neighbors, ok := g.Neighbors(1)
	if !ok {
		t.Fatalf("entity 1 should be tracked")
	}
	if _, self := neighbors[1]; !self {
		t.Fatalf("neighbor set must include the entity itself")
	}
	if _, near := neighbors[2]; !near {
		t.Fatalf("entity 2 shares a cell and should be a neighbor")
	}
	if _, far := neighbors[3]; far {
		t.Fatalf("entity 3 is far away and should not be a neighbor")
	}

	// A tracked but isolated entity sees only itself, never an empty set.
	isolated, ok := g.Neighbors(3)
	if !ok || len(isolated) != 1 {
		t.Fatalf("isolated entity: got %v ok=%v, want itself only", isolated, ok)
	}

	if _, ok := g.Neighbors(42); ok {
		t.Fatalf("unknown entity must report untracked")
	}
}

func TestGridDefaultCellSize(t *testing.T) {
	g := NewSpatialHashGrid[uint64](0)
	if g.CellSize() != DefaultCellSize {
		t.Fatalf("cell size = %v, want %v", g.CellSize(), DefaultCellSize)
	}
}
