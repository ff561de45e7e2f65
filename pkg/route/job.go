package route

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circuitgen/pkg/voxel"
)

// Fixed grid dimensions of a decoder layout. Height covers the four
// 16-row layers at pitch 20 minus the last gap; depth covers the input
// bus, the routing fixtures, and the decode and output buses.
const (
	GridHeight = 76
	GridDepth  = 10
)

// Job is one decoder: a name and the ordered operations that build it.
type Job struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Ops  []Op   `json:"ops" yaml:"ops" toml:"ops"`
}

// Validate checks every op and that the job routes at least one bit.
func (j *Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("job has no name")
	}
	routes := false
	for i, op := range j.Ops {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("%s: op %d (%s): %w", j.Name, i+1, op, err)
		}
		routes = routes || op.routes()
	}
	if !routes {
		return fmt.Errorf("%s: no connect or extend op", j.Name)
	}
	return nil
}

// Plan replays the job's lane claims on a scratch table and returns the
// connections Build would route, together with the final table. It draws
// nothing.
func (j *Job) Plan() ([]Connection, Slots) {
	var (
		s     Slots
		conns []Connection
	)
	for _, op := range j.Ops {
		switch op.Kind {
		case OpConnect:
			for i := 0; i <= op.End-op.Start; i++ {
				a, b := op.Start+i, op.To+i
				conns = append(conns, Connection{From: a, To: b, Lane: s.Claim(a, b), Kind: ConnDirect})
			}
		case OpExtend:
			conns = append(conns, Connection{From: op.Bit, To: op.End, Lane: s.Claim(op.Bit, op.End), Kind: ConnExtend})
		}
	}
	return conns, s
}

// FrameX returns the column of the output frame, two columns past the
// tower of the highest lane.
func (j *Job) FrameX() int {
	_, s := j.Plan()
	return 2 * s.Max()
}

// Size returns the grid size Build allocates.
func (j *Job) Size() voxel.Pos {
	return voxel.P(j.FrameX()+2, GridHeight, GridDepth)
}

// Result is a built decoder layout.
type Result struct {
	Name        string
	Grid        *voxel.Grid
	Connections []Connection
	Slots       Slots
	FrameX      int
}

// Build validates the job, allocates a grid wide enough for its lanes,
// routes every op in order and draws the output frame.
func (j *Job) Build(logger *log.Logger) (*Result, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	frameX := j.FrameX()
	size := j.Size()
	g := voxel.NewGrid(size.X, size.Y, size.Z)

	var slots Slots
	r := NewRouter(g, &slots, logger)
	for _, op := range j.Ops {
		switch op.Kind {
		case OpConnect:
			r.ConnectRange(op.Start, op.End, op.To)
		case OpExtend:
			r.ExtendBit(op.Bit, op.Start, op.End)
		case OpConst:
			r.ConstantRange(op.Start, op.Value)
		case OpLevel:
			r.StoreLevel(op.Bit, op.Level)
		}
	}
	r.Frame(frameX)

	return &Result{
		Name:        j.Name,
		Grid:        g,
		Connections: r.Connections(),
		Slots:       slots,
		FrameX:      frameX,
	}, nil
}
