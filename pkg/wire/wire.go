// Package wire places the straight runs and vertical towers that carry
// signals between bus lines.
//
// Layout code works in logical rows. Every 16 logical rows form a layer
// that is allotted 20 physical rows; the 4 spare rows insulate adjacent
// layers from each other and are only crossed by the transition fixture
// that [Tower] places. [ByteRow] performs the logical to physical mapping
// and every primitive here applies it before writing, except the
// transition fixture, which is positioned in physical rows directly.
package wire

import (
	"github.com/matzehuels/circuitgen/pkg/voxel"
)

const (
	// LayerRows is the number of logical rows in one layer.
	LayerRows = 16

	// LayerPitch is the number of physical rows a layer occupies.
	LayerPitch = 20

	// MaxStrength is the signal strength of a freshly powered dust cell.
	MaxStrength = 15
)

// ByteRow maps a position in logical rows to physical rows.
func ByteRow(p voxel.Pos) voxel.Pos {
	p.Y = (p.Y/LayerRows)*LayerPitch + p.Y%LayerRows
	return p
}

// Rung places support at pos with a cross-shaped dust cell on top.
func Rung(g *voxel.Grid, pos voxel.Pos, support voxel.ID) {
	g.Set(pos, support)
	g.Put(pos.Up(1), voxel.CrossBlock)
}

// Run lays a straight wire from start to end inclusive. Both ends must be
// in the same row and differ in x or z; positions are physical.
//
// Each cell gets support with dust on top. With repeated set, a repeater
// replaces the dust once the signal would have decayed to zero, so no
// stretch of dust is longer than MaxStrength cells.
func Run(g *voxel.Grid, support voxel.ID, start, end voxel.Pos, repeated bool) {
	dust := g.Block(voxel.DustBlock)
	dir := start.DirectionTo(end)

	ss := MaxStrength
	cur := start
	for {
		g.Set(cur, support)

		if ss > 0 || !repeated {
			g.Set(cur.Up(1), dust)
		} else {
			// Repeaters face their input, which is behind us.
			g.Put(cur.Up(1), voxel.RepeaterFacing(dir.Opposite()))
			// The repeater emits full strength, so decay restarts here.
			// Resetting on dust instead would never reach zero.
			ss = MaxStrength
		}

		if cur == end {
			break
		}
		cur = cur.Step(dir, 1)
		ss--
	}
}
