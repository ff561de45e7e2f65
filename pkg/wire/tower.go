package wire

import (
	"fmt"

	"github.com/matzehuels/circuitgen/pkg/voxel"
)

// gapStart is the first physical row of the insulating gap in a layer.
const gapStart = LayerRows - 1

// Tower raises a signal height logical rows above start. start is in
// logical rows. The ladder uses two staggered columns, start's and the one
// at z+1, so every rung is powered from the rung below it.
//
// When the climb reaches the top of a layer the tower is split: the lower
// part ends below the gap, the upper part resumes at the base of the next
// layer, and a transition fixture carries the signal across the gap.
func Tower(g *voxel.Grid, start voxel.Pos, height int) {
	if height < 0 {
		panic(fmt.Sprintf("wire: negative tower height %d at %v", height, start))
	}
	if height == 0 {
		return
	}

	offset := start.Y % LayerRows
	if offset+height >= gapStart {
		lower := gapStart - 1 - offset
		Tower(g, start, lower)

		layer := start.Y / LayerRows
		if height-lower > 2 {
			next := start
			next.Y = (layer + 1) * LayerRows
			Tower(g, next, height-lower-2)
		}

		transition(g, start, layer)
		return
	}

	base := ByteRow(start)
	slab := g.Block(voxel.SlabBlock)
	for i := 0; i <= height/2; i++ {
		Rung(g, base.Up(i*2), slab)
	}
	for i := 0; i <= (height-1)/2; i++ {
		Rung(g, base.Offset(0, i*2+1, 1), slab)
	}
}

// transition places the fixture that carries a signal from the top of
// layer up into layer+1. The lit and unlit torch pair keeps the upper
// layer from feeding back into the lower one. x is taken from start; the
// fixture sits one cell behind start in z. Its top rung's dust is replaced
// by the unlit torch.
func transition(g *voxel.Grid, start voxel.Pos, layer int) {
	concrete := g.Block(voxel.ConcreteBlock)

	pos := voxel.P(start.X, layer*LayerPitch+gapStart, start.Z-1)
	g.Set(pos, concrete)
	pos.Y++
	g.Put(pos, voxel.TorchLit(true))
	pos.Y++
	Rung(g, pos, concrete)
	pos.Z++
	pos.Y++
	Rung(g, pos, concrete)
	pos.Y++
	g.Put(pos, voxel.TorchLit(false))
	pos.Y++
	g.Set(pos, concrete)
}
