package voxel

// ID is a palette index. ID 0 is always air.
type ID uint16

// Background is the id of the air descriptor in every palette.
const Background ID = 0

// Palette maps block descriptors to ids in insertion order. Ids are dense:
// the n-th distinct descriptor gets id n.
type Palette struct {
	ids   map[string]ID
	names []string
}

func newPalette() *Palette {
	p := &Palette{ids: make(map[string]ID)}
	p.Intern(AirBlock.Descriptor())
	return p
}

// Intern returns the id for descriptor, assigning the next free id if the
// descriptor has not been seen.
func (p *Palette) Intern(descriptor string) ID {
	if id, ok := p.ids[descriptor]; ok {
		return id
	}
	id := ID(len(p.names))
	p.ids[descriptor] = id
	p.names = append(p.names, descriptor)
	return id
}

// Lookup returns the id for descriptor without interning it.
func (p *Palette) Lookup(descriptor string) (ID, bool) {
	id, ok := p.ids[descriptor]
	return id, ok
}

// Name returns the descriptor for id, or "" if id was never issued.
func (p *Palette) Name(id ID) string {
	if int(id) >= len(p.names) {
		return ""
	}
	return p.names[id]
}

// Len returns the number of interned descriptors.
func (p *Palette) Len() int {
	return len(p.names)
}

// Names returns the descriptors ordered by id.
func (p *Palette) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}
