package wire

import (
	"testing"

	"github.com/matzehuels/circuitgen/pkg/voxel"
)

func countBlock(g *voxel.Grid, b voxel.Block) int {
	id, ok := g.Palette().Lookup(b.Descriptor())
	if !ok {
		return 0
	}
	return g.Count(id)
}

func TestTowerBaseCase(t *testing.T) {
	g := voxel.NewGrid(2, 20, 4)
	Tower(g, voxel.P(0, 2, 1), 5)

	slab := g.Block(voxel.SlabBlock)
	cross := g.Block(voxel.CrossBlock)

	// Column z=1 carries rungs at y = 2, 4, 6; column z=2 at y = 3, 5, 7.
	for _, y := range []int{2, 4, 6} {
		if g.Get(voxel.P(0, y, 1)) != slab || g.Get(voxel.P(0, y+1, 1)) != cross {
			t.Errorf("missing rung at y=%d, z=1", y)
		}
	}
	for _, y := range []int{3, 5, 7} {
		if g.Get(voxel.P(0, y, 2)) != slab || g.Get(voxel.P(0, y+1, 2)) != cross {
			t.Errorf("missing rung at y=%d, z=2", y)
		}
	}
	if n := countBlock(g, voxel.TorchLit(true)); n != 0 {
		t.Errorf("base-case tower placed %d transition torches", n)
	}
}

func TestTowerZeroHeight(t *testing.T) {
	g := voxel.NewGrid(2, 2, 2)
	Tower(g, voxel.P(0, 0, 0), 0)
	if g.Palette().Len() != 1 {
		t.Errorf("zero-height tower interned %v", g.Palette().Names())
	}
}

func TestTowerCrossesOneBoundary(t *testing.T) {
	g := voxel.NewGrid(2, 80, 6)
	Tower(g, voxel.P(0, 10, 3), 8)

	if n := countBlock(g, voxel.TorchLit(true)); n != 1 {
		t.Errorf("lit torches = %d, want 1", n)
	}
	if n := countBlock(g, voxel.TorchLit(false)); n != 1 {
		t.Errorf("unlit torches = %d, want 1", n)
	}

	// Fixture: physical rows 15..20 of layer 0, at z=2 then z=3.
	concrete := g.Block(voxel.ConcreteBlock)
	cross := g.Block(voxel.CrossBlock)
	want := []struct {
		pos voxel.Pos
		id  voxel.ID
	}{
		{voxel.P(0, 15, 2), concrete},
		{voxel.P(0, 16, 2), g.Block(voxel.TorchLit(true))},
		{voxel.P(0, 17, 2), concrete},
		{voxel.P(0, 18, 2), cross},
		{voxel.P(0, 18, 3), concrete},
		{voxel.P(0, 19, 3), g.Block(voxel.TorchLit(false))},
		{voxel.P(0, 20, 3), concrete},
	}
	for _, w := range want {
		if got := g.Get(w.pos); got != w.id {
			t.Errorf("%v = %q, want %q", w.pos, g.Palette().Name(got), g.Palette().Name(w.id))
		}
	}

	// Lower part starts at the requested row; the upper part resumes at
	// logical row 16, physical row 20, with its staggered column above it.
	slab := g.Block(voxel.SlabBlock)
	if g.Get(voxel.P(0, 10, 3)) != slab {
		t.Error("lower part does not start at the requested row")
	}
	if g.Get(voxel.P(0, 22, 3)) != slab || g.Get(voxel.P(0, 21, 4)) != slab {
		t.Error("upper part does not resume in the next layer")
	}
}

func TestTowerCrossesSeveralBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		startY int
		height int
		want   int
	}{
		{"within layer", 2, 10, 0},
		{"touching gap", 2, 13, 1},
		{"one boundary", 6, 20, 1},
		{"two boundaries", 6, 35, 2},
		{"three boundaries", 0, 61, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := voxel.NewGrid(1, 90, 6)
			Tower(g, voxel.P(0, tt.startY, 3), tt.height)
			if n := countBlock(g, voxel.TorchLit(true)); n != tt.want {
				t.Errorf("transition fixtures = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestTowerNegativeHeightPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("negative height did not panic")
		}
	}()
	Tower(voxel.NewGrid(1, 1, 1), voxel.P(0, 0, 0), -1)
}
