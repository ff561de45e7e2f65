package schematic

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/circuitgen/pkg/voxel"
)

const (
	// RootName is the name of the top-level NBT compound.
	RootName = "Schematic"

	// FormatVersion is the Sponge schematic format version written.
	FormatVersion = 2

	// DataVersion is the game data version the palette descriptors target.
	DataVersion = 2730
)

// Schematic is the NBT document of a Sponge v2 schematic.
type Schematic struct {
	Width         int16            `nbt:"Width"`
	Length        int16            `nbt:"Length"`
	Height        int16            `nbt:"Height"`
	Palette       map[string]int32 `nbt:"Palette"`
	Metadata      Metadata         `nbt:"Metadata"`
	BlockData     []byte           `nbt:"BlockData"`
	BlockEntities []BlockEntity    `nbt:"BlockEntities"`
	Version       int32            `nbt:"Version"`
	DataVersion   int32            `nbt:"DataVersion"`
}

// Metadata holds the paste offset anchor.
type Metadata struct {
	OffsetX int32 `nbt:"WEOffsetX"`
	OffsetY int32 `nbt:"WEOffsetY"`
	OffsetZ int32 `nbt:"WEOffsetZ"`
}

// BlockEntity is a cell with structured state, here always a storage
// container.
type BlockEntity struct {
	ID    string  `nbt:"Id"`
	Pos   []int32 `nbt:"Pos"`
	Items []Item  `nbt:"Items"`
}

// Item is one stack inside a container.
type Item struct {
	Slot  int8   `nbt:"Slot"`
	ID    string `nbt:"id"`
	Count int8   `nbt:"Count"`
}

// Options configures encoding.
type Options struct {
	// Offset is the paste anchor written to Metadata. Zero by default.
	Offset voxel.Pos
}

// Encode converts g into a schematic document.
func Encode(g *voxel.Grid, opts Options) *Schematic {
	size := g.Size()

	data := make([]byte, 0, g.Volume())
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				data = binary.AppendUvarint(data, uint64(g.Get(voxel.P(x, y, z))))
			}
		}
	}

	names := g.Palette().Names()
	palette := make(map[string]int32, len(names))
	for id, name := range names {
		palette[name] = int32(id)
	}

	storage := g.Storage()
	entities := make([]BlockEntity, 0, len(storage))
	for _, cell := range storage {
		entities = append(entities, BlockEntity{
			ID:    voxel.BarrelBlock.EntityID(),
			Pos:   []int32{int32(cell.Pos.X), int32(cell.Pos.Y), int32(cell.Pos.Z)},
			Items: Contents(cell.Level),
		})
	}

	return &Schematic{
		Width:   int16(size.X),
		Length:  int16(size.Z),
		Height:  int16(size.Y),
		Palette: palette,
		Metadata: Metadata{
			OffsetX: int32(opts.Offset.X),
			OffsetY: int32(opts.Offset.Y),
			OffsetZ: int32(opts.Offset.Z),
		},
		BlockData:     data,
		BlockEntities: entities,
		Version:       FormatVersion,
		DataVersion:   DataVersion,
	}
}

// WriteRaw writes s as uncompressed NBT.
func (s *Schematic) WriteRaw(w io.Writer) error {
	if err := nbt.NewEncoder(w).Encode(s, RootName); err != nil {
		return fmt.Errorf("encode nbt: %w", err)
	}
	return nil
}

// Write writes s as gzip-compressed NBT.
func (s *Schematic) Write(w io.Writer) error {
	zw := gzip.NewWriter(w)
	if err := s.WriteRaw(zw); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	return nil
}

// Marshal returns the gzip-compressed NBT encoding of s.
func (s *Schematic) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalRaw returns the uncompressed NBT encoding of s.
func (s *Schematic) MarshalRaw() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteRaw(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read decodes a schematic from r. Gzip-compressed and raw NBT are both
// accepted.
func Read(r io.Reader) (*Schematic, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var src io.Reader = br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var s Schematic
	name, err := nbt.NewDecoder(src).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("decode nbt: %w", err)
	}
	if name != RootName {
		return nil, fmt.Errorf("unexpected root compound %q, want %q", name, RootName)
	}
	return &s, nil
}

// Unmarshal decodes a schematic from data.
func Unmarshal(data []byte) (*Schematic, error) {
	return Read(bytes.NewReader(data))
}

// Size returns the x, y, z extents.
func (s *Schematic) Size() voxel.Pos {
	return voxel.P(int(s.Width), int(s.Height), int(s.Length))
}

// Grid rebuilds the voxel grid described by s. Palette ids are remapped
// in ascending order, so a schematic produced by [Encode] yields a grid
// with identical ids.
func (s *Schematic) Grid() (*voxel.Grid, error) {
	size := s.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("invalid dimensions %d x %d x %d", size.X, size.Y, size.Z)
	}
	g := voxel.NewGrid(size.X, size.Y, size.Z)

	type entry struct {
		name string
		id   int32
	}
	entries := make([]entry, 0, len(s.Palette))
	for name, id := range s.Palette {
		entries = append(entries, entry{name, id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	remap := make(map[uint64]voxel.ID, len(entries))
	for _, e := range entries {
		if e.id < 0 {
			return nil, fmt.Errorf("negative palette id %d for %q", e.id, e.name)
		}
		remap[uint64(e.id)] = g.Intern(e.name)
	}

	data := s.BlockData
	for y := 0; y < size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				v, n := binary.Uvarint(data)
				if n <= 0 {
					return nil, fmt.Errorf("block data truncated at (%d, %d, %d)", x, y, z)
				}
				data = data[n:]
				id, ok := remap[v]
				if !ok {
					return nil, fmt.Errorf("block id %d at (%d, %d, %d) not in palette", v, x, y, z)
				}
				g.Set(voxel.P(x, y, z), id)
			}
		}
	}
	if len(data) != 0 {
		return nil, fmt.Errorf("%d trailing bytes after block data", len(data))
	}

	for _, be := range s.BlockEntities {
		if len(be.Pos) != 3 {
			return nil, fmt.Errorf("block entity %q has %d coordinates", be.ID, len(be.Pos))
		}
		p := voxel.P(int(be.Pos[0]), int(be.Pos[1]), int(be.Pos[2]))
		if !g.InBounds(p) {
			return nil, fmt.Errorf("block entity %q at %v outside schematic", be.ID, p)
		}
		if !g.IsStorage(p) {
			return nil, fmt.Errorf("block entity %q at %v is not on a storage container", be.ID, p)
		}
		total := 0
		for _, it := range be.Items {
			total += int(it.Count)
		}
		g.MarkStorage(p, LevelFor(total))
	}
	return g, nil
}
