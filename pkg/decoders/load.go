package decoders

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/route"
)

// Format is a table file format.
type Format string

const (
	FormatTOML  Format = "toml"
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown table format for %q (want .toml, .yaml or .jsonc)", path)
}

// rawDecoder is the on-disk shape shared by all formats. Ops stay text
// until the table is parsed.
type rawDecoder struct {
	Name        string   `toml:"name" yaml:"name" json:"name"`
	Description string   `toml:"description" yaml:"description" json:"description"`
	Ops         []string `toml:"ops" yaml:"ops" json:"ops"`
}

type rawTOML struct {
	Decoders []rawDecoder `toml:"decoder"`
}

type rawDoc struct {
	Decoders []rawDecoder `yaml:"decoders" json:"decoders"`
}

// Parse decodes and validates a table.
func Parse(data []byte, format Format) (*Table, error) {
	var raw []rawDecoder
	switch format {
	case FormatTOML:
		var doc rawTOML
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
		raw = doc.Decoders
	case FormatYAML:
		var doc rawDoc
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse yaml")
		}
		raw = doc.Decoders
	case FormatJSONC:
		var doc rawDoc
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse jsonc")
		}
		raw = doc.Decoders
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q", format)
	}

	t := &Table{Decoders: make([]Decoder, 0, len(raw))}
	for _, r := range raw {
		d, err := r.decoder()
		if err != nil {
			return nil, err
		}
		t.Decoders = append(t.Decoders, d)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (r rawDecoder) decoder() (Decoder, error) {
	d := Decoder{Name: r.Name, Description: r.Description, Ops: make([]route.Op, 0, len(r.Ops))}
	for i, s := range r.Ops {
		op, err := route.ParseOp(s)
		if err != nil {
			return Decoder{}, errors.Wrap(errors.ErrCodeInvalidOp, err, "decoder %q op %d", r.Name, i+1)
		}
		d.Ops = append(d.Ops, op)
	}
	return d, nil
}

// ParseDecoder decodes a single decoder definition in JSON, as accepted by
// the build endpoint.
func ParseDecoder(data []byte) (*Decoder, error) {
	var r rawDecoder
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse decoder")
	}
	d, err := r.decoder()
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a table file, picking the format from its extension.
func Load(path string) (*Table, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read table %s", path)
	}
	return Parse(data, format)
}

//go:embed rvc.toml
var rvcTOML []byte

var rvc = sync.OnceValue(func() *Table {
	t, err := Parse(rvcTOML, FormatTOML)
	if err != nil {
		panic("decoders: built-in table: " + err.Error())
	}
	return t
})

// RVC returns the built-in compressed RISC-V decoder table. The table is
// shared; callers must not modify it.
func RVC() *Table {
	return rvc()
}

// RVCSource returns the raw text of the built-in table.
func RVCSource() []byte {
	return bytes.Clone(rvcTOML)
}
