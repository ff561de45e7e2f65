package voxel

import (
	"fmt"
	"sort"
)

// MaxLevel is the highest analog signal level a storage cell can hold.
const MaxLevel = 15

// OutOfBoundsError is the panic value of a write or read outside the grid.
type OutOfBoundsError struct {
	Pos  Pos
	Size Pos
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("voxel: out of bounds access at %v (grid size %d x %d x %d)",
		e.Pos, e.Size.X, e.Size.Y, e.Size.Z)
}

// Grid is a dense, fixed-size 3D array of palette ids.
type Grid struct {
	sx, sy, sz int
	cells      []ID
	palette    *Palette
	levels     map[Pos]int
}

// NewGrid allocates an sx*sy*sz grid filled with air.
func NewGrid(sx, sy, sz int) *Grid {
	if sx <= 0 || sy <= 0 || sz <= 0 {
		panic(fmt.Sprintf("voxel: invalid grid size %d x %d x %d", sx, sy, sz))
	}
	return &Grid{
		sx:      sx,
		sy:      sy,
		sz:      sz,
		cells:   make([]ID, sx*sy*sz),
		palette: newPalette(),
		levels:  make(map[Pos]int),
	}
}

// Size returns the grid dimensions as a position (x, y, z extents).
func (g *Grid) Size() Pos {
	return Pos{X: g.sx, Y: g.sy, Z: g.sz}
}

// Volume returns the number of cells.
func (g *Grid) Volume() int {
	return len(g.cells)
}

// Palette returns the grid's palette.
func (g *Grid) Palette() *Palette {
	return g.palette
}

// Intern returns the palette id for a descriptor string.
func (g *Grid) Intern(descriptor string) ID {
	return g.palette.Intern(descriptor)
}

// Block returns the palette id for b.
func (g *Grid) Block(b Block) ID {
	return g.palette.Intern(b.Descriptor())
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 && p.X < g.sx && p.Y < g.sy && p.Z < g.sz
}

func (g *Grid) index(p Pos) int {
	if !g.InBounds(p) {
		panic(&OutOfBoundsError{Pos: p, Size: g.Size()})
	}
	return g.sx*g.sy*p.Z + g.sx*p.Y + p.X
}

// Set writes id at p, replacing whatever was there.
func (g *Grid) Set(p Pos, id ID) {
	g.cells[g.index(p)] = id
}

// Put interns b and writes it at p.
func (g *Grid) Put(p Pos, b Block) {
	g.Set(p, g.Block(b))
}

// Get returns the id at p.
func (g *Grid) Get(p Pos) ID {
	return g.cells[g.index(p)]
}

// Count returns how many cells hold id.
func (g *Grid) Count(id ID) int {
	n := 0
	for _, c := range g.cells {
		if c == id {
			n++
		}
	}
	return n
}

// MarkStorage records the analog level held by the storage cell at p.
// The cell must already hold a storage container.
func (g *Grid) MarkStorage(p Pos, level int) {
	if level < 0 || level > MaxLevel {
		panic(fmt.Sprintf("voxel: storage level %d at %v out of range 0..%d", level, p, MaxLevel))
	}
	if !g.IsStorage(p) {
		panic(fmt.Sprintf("voxel: no storage container at %v", p))
	}
	g.levels[p] = level
}

// IsStorage reports whether the cell at p holds a storage container.
func (g *Grid) IsStorage(p Pos) bool {
	id, ok := g.palette.Lookup(BarrelBlock.Descriptor())
	return ok && g.Get(p) == id
}

// Level returns the recorded storage level at p.
func (g *Grid) Level(p Pos) (int, bool) {
	l, ok := g.levels[p]
	return l, ok
}

// StorageCell is one entry of the storage-level side table.
type StorageCell struct {
	Pos   Pos
	Level int
}

// Storage returns the storage side table in y, z, x order.
func (g *Grid) Storage() []StorageCell {
	out := make([]StorageCell, 0, len(g.levels))
	for p, l := range g.levels {
		out = append(out, StorageCell{Pos: p, Level: l})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}
