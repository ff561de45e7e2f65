package route

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitgen/pkg/voxel"
	"github.com/matzehuels/circuitgen/pkg/wire"
)

// Depths (z) of the three buses every decoder frame carries.
const (
	InputBusZ  = 0 // compressed instruction, 16 lines
	DecodeBusZ = 7 // expanded instruction, 32 repeated lines
	OutputBusZ = 9 // inverted output, 32 lines
)

// ConnKind distinguishes the operations that produce a connection.
type ConnKind uint8

const (
	ConnDirect ConnKind = iota + 1
	ConnExtend
)

func (k ConnKind) String() string {
	switch k {
	case ConnDirect:
		return "connect"
	case ConnExtend:
		return "extend"
	default:
		return fmt.Sprintf("ConnKind(%d)", uint8(k))
	}
}

// Connection records one routed bit copy.
type Connection struct {
	From int      `json:"from" cbor:"1,keyasint"`
	To   int      `json:"to" cbor:"2,keyasint"`
	Lane int      `json:"lane" cbor:"3,keyasint"`
	Kind ConnKind `json:"kind" cbor:"4,keyasint"`
}

// X returns the column the connection's tower stands in.
func (c Connection) X() int { return c.Lane * 2 }

// MaxLane returns the highest lane used by conns, or 0 when there are none.
func MaxLane(conns []Connection) int {
	m := 0
	for _, c := range conns {
		m = max(m, c.Lane)
	}
	return m
}

// Router draws routing primitives into a grid. It is not safe for
// concurrent use.
type Router struct {
	grid   *voxel.Grid
	slots  *Slots
	logger *log.Logger
	conns  []Connection
}

// NewRouter returns a router drawing into g and allocating lanes from
// slots. A nil logger discards output.
func NewRouter(g *voxel.Grid, slots *Slots, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{grid: g, slots: slots, logger: logger}
}

// Grid returns the grid being drawn into.
func (r *Router) Grid() *voxel.Grid { return r.grid }

// Connections returns the connections routed so far, in order.
func (r *Router) Connections() []Connection {
	return append([]Connection(nil), r.conns...)
}

// Bus draws bits parallel wire runs along +x. Line i starts at logical row
// start.Y + 2i and spans length columns.
func (r *Router) Bus(start voxel.Pos, bits, length int, repeated bool) {
	concrete := r.grid.Block(voxel.ConcreteBlock)
	for i := 0; i < bits; i++ {
		s := wire.ByteRow(start.Offset(0, i*2, 0))
		wire.Run(r.grid, concrete, s, s.Offset(length, 0, 0), repeated)
	}
}

// ConnectBits draws the fixture that taps bus line a at column x and
// delivers it to line b. b must not be below a.
func (r *Router) ConnectBits(x, a, b int) {
	if b < a {
		panic(fmt.Sprintf("route: connect %d -> %d descends", a, b))
	}
	g := r.grid
	concrete := g.Block(voxel.ConcreteBlock)
	repeater := voxel.RepeaterFacing(voxel.North)

	if a == b {
		pos := wire.ByteRow(voxel.P(x, a*2, 1))
		for i := 0; i < 6; i++ {
			wire.Rung(g, pos.Offset(0, 0, i), concrete)
		}
		g.Put(pos.Up(1), repeater)
		g.Put(pos.Offset(0, 1, 5), repeater)
		return
	}

	// Entry: pull the signal off line a.
	pos := wire.ByteRow(voxel.P(x, a*2, 2))
	if a%8 == 7 {
		pos.Z--
		g.Set(pos, concrete)
		g.Put(pos.Up(1), repeater)
	} else {
		g.Set(pos, concrete)
		pos.Y++
		g.Put(pos, repeater)
		g.Put(pos.Offset(0, 0, -1), voxel.TargetBlock)
	}

	// Exit: drop it onto line b.
	pos = wire.ByteRow(voxel.P(x, b*2, 5))
	if b%8 == 0 {
		pos.Z -= 2
		for i := 0; i < 4; i++ {
			wire.Rung(g, pos, concrete)
			pos.Z++
		}
		pos.Z--
		g.Put(pos.Up(1), repeater)
	} else {
		wire.Rung(g, pos, concrete)
		pos.Z++
		g.Set(pos, concrete)
		g.Put(pos.Up(1), repeater)
	}

	wire.Tower(g, voxel.P(x, a*2, 3), (b-a)*2-1)
}

// ConnectRange routes bits start through end onto the lines starting at
// to. Each bit claims its own lane.
func (r *Router) ConnectRange(start, end, to int) {
	for i := 0; i <= end-start; i++ {
		r.connect(start+i, to+i, ConnDirect)
	}
}

func (r *Router) connect(a, b int, kind ConnKind) int {
	lane := r.slots.Claim(a, b)
	r.logger.Debug("connect", "from", a, "to", b, "lane", lane)
	r.ConnectBits(lane*2, a, b)
	r.conns = append(r.conns, Connection{From: a, To: b, Lane: lane, Kind: kind})
	return lane
}

// ExtendBit routes bit to end and then copies it onto every line strictly
// between start and end along the same lane. It is used for sign
// extension.
func (r *Router) ExtendBit(bit, start, end int) {
	x := r.connect(bit, end, ConnExtend) * 2

	g := r.grid
	concrete := g.Block(voxel.ConcreteBlock)
	slab := g.Block(voxel.SlabBlock)
	repeater := voxel.RepeaterFacing(voxel.North)
	for b := start + 1; b < end; b++ {
		pos := wire.ByteRow(voxel.P(x, b*2, 6))
		g.Set(pos, concrete)
		g.Put(pos.Up(1), repeater)
		if b%16 == 1 {
			wire.Rung(g, pos.Offset(0, 0, -1), slab)
		} else {
			wire.Rung(g, pos.Offset(0, 0, -1), concrete)
		}
		if b%16 == 0 {
			g.Set(pos.Offset(0, 1, -2), concrete)
		}
	}
}

// ConstantRange forces the set bits of value onto lines start, start+1,
// and so on, by placing a power source on column 0.
func (r *Router) ConstantRange(start int, value uint32) {
	for i := 0; i < Bits; i++ {
		if value&(1<<i) == 0 {
			continue
		}
		r.logger.Debug("constant", "bit", start+i)
		r.grid.Put(constantPos(start+i), voxel.PowerBlock)
	}
}

// StoreLevel places a storage container on column 0 at bit, filled so
// that it emits signal level ss.
func (r *Router) StoreLevel(bit, ss int) {
	pos := constantPos(bit)
	r.logger.Debug("level", "bit", bit, "level", ss)
	r.grid.Put(pos, voxel.BarrelBlock)
	r.grid.MarkStorage(pos, ss)
}

func constantPos(bit int) voxel.Pos {
	return wire.ByteRow(voxel.P(0, bit*2+1, 6))
}

// Frame draws the output frame at column length: inverters on every
// output line, the layer feeds and repeaters, and the three buses.
func (r *Router) Frame(length int) {
	g := r.grid
	concrete := g.Block(voxel.ConcreteBlock)

	for i := 0; i < Bits; i++ {
		pos := wire.ByteRow(voxel.P(length, i*2+1, 7))
		g.Set(pos, concrete)
		g.Put(pos.Offset(0, 0, 1), voxel.Block{Kind: voxel.WallTorch, Facing: voxel.South})
	}

	torch := voxel.Block{Kind: voxel.Torch}
	for i := 0; i < 4; i++ {
		y := i * wire.LayerRows
		wire.Rung(g, wire.ByteRow(voxel.P(length, y, 6)), concrete)
		wire.Tower(g, voxel.P(length, y+1, 5), 13)
		if i == 3 {
			continue
		}
		pos := wire.ByteRow(voxel.P(length, y, 7)).Up(wire.LayerRows)
		g.Put(pos, torch)
		wire.Rung(g, pos.Up(1), concrete)
		g.Set(pos.Offset(0, 2, -1), concrete)
		g.Put(pos.Offset(0, 3, -1), torch)
	}

	r.Bus(voxel.P(0, 0, InputBusZ), 16, length+1, false)
	r.Bus(voxel.P(0, 0, DecodeBusZ), Bits, length-1, true)
	r.Bus(voxel.P(0, 0, OutputBusZ), Bits, length+1, false)
}
