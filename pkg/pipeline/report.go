package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/matzehuels/circuitgen/pkg/route"
	"github.com/matzehuels/circuitgen/pkg/voxel"
)

// Report describes one build: what was placed and how long it took.
type Report struct {
	BuildID     string             `json:"build_id" cbor:"1,keyasint"`
	Decoder     string             `json:"decoder" cbor:"2,keyasint"`
	Description string             `json:"description,omitempty" cbor:"3,keyasint,omitempty"`
	JobHash     string             `json:"job_hash" cbor:"4,keyasint"`
	Version     string             `json:"version" cbor:"5,keyasint"`
	Ops         []string           `json:"ops" cbor:"6,keyasint"`
	Size        [3]int             `json:"size" cbor:"7,keyasint"`
	FrameX      int                `json:"frame_x" cbor:"8,keyasint"`
	Lanes       int                `json:"lanes" cbor:"9,keyasint"`
	Palette     []string           `json:"palette" cbor:"10,keyasint"`
	Blocks      map[string]int     `json:"blocks" cbor:"11,keyasint"`
	Storage     int                `json:"storage_cells" cbor:"12,keyasint"`
	Connections []route.Connection `json:"connections" cbor:"13,keyasint"`
	BuildTime   time.Duration      `json:"build_time_ns" cbor:"14,keyasint"`
}

var air = voxel.AirBlock.Descriptor()

// Cells returns the number of non-air cells.
func (r *Report) Cells() int {
	n := 0
	for name, c := range r.Blocks {
		if name != air {
			n += c
		}
	}
	return n
}

// newReport collects statistics from a routed layout.
func newReport(res *route.Result, job *route.Job) *Report {
	g := res.Grid
	size := g.Size()
	names := g.Palette().Names()

	blocks := make(map[string]int, len(names))
	for id, name := range names {
		blocks[name] = g.Count(voxel.ID(id))
	}
	ops := make([]string, len(job.Ops))
	for i, op := range job.Ops {
		ops[i] = op.String()
	}

	return &Report{
		Decoder:     res.Name,
		Ops:         ops,
		Size:        [3]int{size.X, size.Y, size.Z},
		FrameX:      res.FrameX,
		Lanes:       route.MaxLane(res.Connections),
		Palette:     names,
		Blocks:      blocks,
		Storage:     len(g.Storage()),
		Connections: res.Connections,
	}
}

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("pipeline: cbor encoder: " + err.Error())
	}
	return em
}()

// EncodeJSON returns the indented JSON form of r.
func (r *Report) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeCBOR returns the deterministic CBOR form of r.
func (r *Report) EncodeCBOR() ([]byte, error) {
	data, err := cborEnc.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return data, nil
}

// DecodeReport parses a report in JSON or CBOR.
func DecodeReport(data []byte, format string) (*Report, error) {
	var r Report
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &r)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &r)
	default:
		return nil, fmt.Errorf("reports are json or cbor, not %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
