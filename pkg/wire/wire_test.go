package wire

import (
	"testing"

	"github.com/matzehuels/circuitgen/pkg/voxel"
)

func TestByteRow(t *testing.T) {
	tests := []struct {
		y, want int
	}{
		{0, 0},
		{15, 15},
		{16, 20},
		{31, 35},
		{32, 40},
		{62, 74},
	}

	for _, tt := range tests {
		if got := ByteRow(voxel.P(3, tt.y, 4)); got != voxel.P(3, tt.want, 4) {
			t.Errorf("ByteRow(y=%d) = %v, want y=%d", tt.y, got, tt.want)
		}
	}
}

func TestRunUnrepeated(t *testing.T) {
	for _, length := range []int{1, 4, 15} {
		g := voxel.NewGrid(20, 3, 3)
		support := g.Block(voxel.ConcreteBlock)
		start := voxel.P(0, 0, 1)
		end := voxel.P(length, 0, 1)
		Run(g, support, start, end, false)

		dust := g.Block(voxel.DustBlock)
		for x := 0; x <= length; x++ {
			if g.Get(voxel.P(x, 0, 1)) != support {
				t.Errorf("length %d: no support at x=%d", length, x)
			}
			if g.Get(voxel.P(x, 1, 1)) != dust {
				t.Errorf("length %d: no dust above x=%d", length, x)
			}
		}
		if _, ok := g.Palette().Lookup(voxel.RepeaterFacing(voxel.West).Descriptor()); ok {
			t.Errorf("length %d: unrepeated run interned a repeater", length)
		}
	}
}

func TestRunUnrepeatedLongHasNoRepeater(t *testing.T) {
	g := voxel.NewGrid(40, 3, 3)
	Run(g, g.Block(voxel.ConcreteBlock), voxel.P(0, 0, 0), voxel.P(39, 0, 0), false)
	if g.Palette().Len() != 3 {
		t.Errorf("palette = %v, want air, concrete, dust", g.Palette().Names())
	}
}

func TestRunRepeatedSpacing(t *testing.T) {
	tests := []struct {
		name       string
		start, end voxel.Pos
		facing     voxel.Direction
	}{
		{"east", voxel.P(0, 0, 1), voxel.P(47, 0, 1), voxel.West},
		{"west", voxel.P(47, 0, 1), voxel.P(0, 0, 1), voxel.East},
		{"south", voxel.P(1, 0, 0), voxel.P(1, 0, 47), voxel.North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := voxel.NewGrid(48, 3, 48)
			Run(g, g.Block(voxel.ConcreteBlock), tt.start, tt.end, true)

			repeater, ok := g.Palette().Lookup(voxel.RepeaterFacing(tt.facing).Descriptor())
			if !ok {
				t.Fatal("repeated run longer than 15 placed no repeater")
			}

			dir := tt.start.DirectionTo(tt.end)
			last := 0
			amps := 0
			cur := tt.start
			for i := 0; ; i++ {
				if g.Get(cur.Up(1)) == repeater {
					if i-last > MaxStrength {
						t.Errorf("repeater at step %d is %d cells after the previous one", i, i-last)
					}
					last = i
					amps++
				}
				if cur == tt.end {
					break
				}
				cur = cur.Step(dir, 1)
			}
			if amps == 0 {
				t.Fatal("no repeater found along the path")
			}
			if amps != 3 {
				t.Errorf("repeaters = %d, want 3 over 48 cells", amps)
			}
		})
	}
}

func TestRunSameCellPanics(t *testing.T) {
	g := voxel.NewGrid(4, 4, 4)
	defer func() {
		if recover() == nil {
			t.Error("Run with start == end did not panic")
		}
	}()
	Run(g, 1, voxel.P(1, 0, 1), voxel.P(1, 0, 1), false)
}

func TestRung(t *testing.T) {
	g := voxel.NewGrid(2, 3, 2)
	slab := g.Block(voxel.SlabBlock)
	Rung(g, voxel.P(1, 1, 0), slab)
	if g.Get(voxel.P(1, 1, 0)) != slab {
		t.Error("support missing")
	}
	if g.Get(voxel.P(1, 2, 0)) != g.Block(voxel.CrossBlock) {
		t.Error("dust missing")
	}
}
