// Package decoders loads and validates decoder tables.
//
// A table is a list of named decoders, each an ordered list of routing ops
// in their text form (see [route.ParseOp]). Tables are read from TOML,
// YAML or JSONC:
//
//	# TOML
//	[[decoder]]
//	name = "jr"
//	ops = ["connect 7 11 15", "const 0 0b1100111"]
//
//	# YAML
//	decoders:
//	  - name: jr
//	    ops: ["connect 7 11 15", "const 0 0b1100111"]
//
//	// JSONC
//	{"decoders": [{"name": "jr", "ops": ["connect 7 11 15", "const 0 0b1100111"]}]}
//
// [RVC] returns the built-in table of compressed RISC-V expansion
// decoders.
package decoders

import (
	"fmt"
	"slices"

	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/route"
)

// Decoder is one named routing job.
type Decoder struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Ops         []route.Op `json:"ops"`
}

// Job returns the routing job for the decoder.
func (d *Decoder) Job() *route.Job {
	return &route.Job{Name: d.Name, Ops: slices.Clone(d.Ops)}
}

// Validate checks the decoder name and every op.
func (d *Decoder) Validate() error {
	if err := errors.ValidateDecoderName(d.Name); err != nil {
		return err
	}
	if err := d.Job().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOp, err, "decoder %q", d.Name)
	}
	return nil
}

// Table is an ordered set of decoders with unique names.
type Table struct {
	Decoders []Decoder `json:"decoders"`
}

// Validate checks every decoder and that names are unique.
func (t *Table) Validate() error {
	if len(t.Decoders) == 0 {
		return errors.New(errors.ErrCodeInvalidDecoder, "table has no decoders")
	}
	seen := make(map[string]bool, len(t.Decoders))
	for i := range t.Decoders {
		d := &t.Decoders[i]
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.New(errors.ErrCodeInvalidDecoder, "duplicate decoder %q", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Names returns the decoder names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Decoders))
	for i, d := range t.Decoders {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the decoder with the given name.
func (t *Table) Lookup(name string) (*Decoder, error) {
	for i := range t.Decoders {
		if t.Decoders[i].Name == name {
			return &t.Decoders[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeDecoderNotFound, "no decoder named %q", name)
}

// Select returns the named decoders in the order given. No names selects
// the whole table.
func (t *Table) Select(names ...string) ([]*Decoder, error) {
	if len(names) == 0 {
		out := make([]*Decoder, len(t.Decoders))
		for i := range t.Decoders {
			out[i] = &t.Decoders[i]
		}
		return out, nil
	}
	out := make([]*Decoder, 0, len(names))
	for _, n := range names {
		d, err := t.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (d Decoder) String() string {
	return fmt.Sprintf("%s (%d ops)", d.Name, len(d.Ops))
}
