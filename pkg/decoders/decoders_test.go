package decoders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/route"
)

func TestRVCNames(t *testing.T) {
	want := []string{
		"lwsp", "swsp", "lw", "sw", "j", "jal", "jr", "jalr", "beqz", "bnez",
		"li", "lui", "addi", "addi16sp", "addi4spn", "slli", "srli_srai",
		"andi", "sub_xor_or_and", "add", "mv",
	}
	if diff := cmp.Diff(want, RVC().Names()); diff != "" {
		t.Errorf("RVC names mismatch (-want +got):\n%s", diff)
	}
}

func TestRVCBuildsInBounds(t *testing.T) {
	widths := map[string]int{
		"lwsp": 26, "swsp": 34, "lw": 46, "sw": 38, "j": 50, "jal": 50,
		"jr": 22, "jalr": 22, "beqz": 38, "bnez": 38, "li": 26, "lui": 26,
		"addi": 50, "addi16sp": 50, "addi4spn": 46, "slli": 46,
		"srli_srai": 38, "andi": 34, "sub_xor_or_and": 30, "add": 46, "mv": 26,
	}

	for _, d := range RVC().Decoders {
		t.Run(d.Name, func(t *testing.T) {
			res, err := d.Job().Build(nil)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			size := res.Grid.Size()
			if size.X != widths[d.Name] || size.Y != route.GridHeight || size.Z != route.GridDepth {
				t.Errorf("size = %v, want (%d, %d, %d)", size, widths[d.Name], route.GridHeight, route.GridDepth)
			}
		})
	}
}

func TestRVCLookup(t *testing.T) {
	d, err := RVC().Lookup("jr")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	want := []route.Op{route.Connect(7, 11, 15), route.Const(0, 0b1100111)}
	if diff := cmp.Diff(want, d.Ops); diff != "" {
		t.Errorf("jr ops mismatch (-want +got):\n%s", diff)
	}

	if _, err := RVC().Lookup("c.nop"); !errors.Is(err, errors.ErrCodeDecoderNotFound) {
		t.Errorf("Lookup(unknown) error = %v, want %s", err, errors.ErrCodeDecoderNotFound)
	}
}

func TestSelect(t *testing.T) {
	all, err := RVC().Select()
	if err != nil || len(all) != 21 {
		t.Fatalf("Select() = %d decoders, %v", len(all), err)
	}

	some, err := RVC().Select("mv", "add")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if some[0].Name != "mv" || some[1].Name != "add" {
		t.Errorf("Select order = %s, %s", some[0].Name, some[1].Name)
	}

	if _, err := RVC().Select("mv", "nope"); err == nil {
		t.Error("Select with an unknown name succeeded")
	}
}

func TestJobDoesNotAlias(t *testing.T) {
	d, _ := RVC().Lookup("mv")
	j := d.Job()
	j.Ops[0] = route.Const(0, 1)
	if d.Ops[0] != route.Connect(2, 6, 20) {
		t.Error("Job shares its ops with the table")
	}
}

const tomlTable = `
[[decoder]]
name = "jalr"
description = "c.jalr"
ops = ["connect 7 11 15", "const 0 0b1100111", "const 7 0b00001"]

[[decoder]]
name = "lui"
ops = ["connect 2 6 12", "connect 7 11 7", "extend 12 17 31", "const 0 0b0110111"]
`

const yamlTable = `
decoders:
  - name: jalr
    description: c.jalr
    ops:
      - connect 7 11 15
      - const 0 0b1100111
      - const 7 0b00001
  - name: lui
    ops: ["connect 2 6 12", "connect 7 11 7", "extend 12 17 31", "const 0 0b0110111"]
`

const jsoncTable = `
// Two decoders.
{
  "decoders": [
    {
      "name": "jalr",
      "description": "c.jalr",
      "ops": ["connect 7 11 15", "const 0 0b1100111", "const 7 0b00001"], // trailing comma below
    },
    {"name": "lui", "ops": ["connect 2 6 12", "connect 7 11 7", "extend 12 17 31", "const 0 0b0110111"]},
  ],
}
`

func TestParseFormatsAgree(t *testing.T) {
	want := &Table{Decoders: []Decoder{
		{
			Name:        "jalr",
			Description: "c.jalr",
			Ops:         []route.Op{route.Connect(7, 11, 15), route.Const(0, 0b1100111), route.Const(7, 1)},
		},
		{
			Name: "lui",
			Ops:  []route.Op{route.Connect(2, 6, 12), route.Connect(7, 11, 7), route.Extend(12, 17, 31), route.Const(0, 0b0110111)},
		},
	}}

	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, tomlTable},
		{FormatYAML, yamlTable},
		{FormatJSONC, jsoncTable},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		code   errors.Code
	}{
		{"syntax", FormatTOML, `[[decoder]`, errors.ErrCodeInvalidFormat},
		{"unknown toml key", FormatTOML, "[[decoder]]\nname = \"x\"\nopz = []", errors.ErrCodeInvalidFormat},
		{"unknown yaml key", FormatYAML, "decoders:\n  - name: x\n    opz: []", errors.ErrCodeInvalidFormat},
		{"unknown json key", FormatJSONC, `{"decoders": [{"name": "x", "opz": []}]}`, errors.ErrCodeInvalidFormat},
		{"unknown format", Format("xml"), `<x/>`, errors.ErrCodeInvalidFormat},
		{"empty table", FormatTOML, ``, errors.ErrCodeInvalidDecoder},
		{"bad name", FormatTOML, "[[decoder]]\nname = \"C.LW\"\nops = [\"connect 1 1 1\"]", errors.ErrCodeInvalidDecoder},
		{"duplicate", FormatYAML, "decoders:\n  - {name: a, ops: [connect 1 1 1]}\n  - {name: a, ops: [connect 2 2 2]}", errors.ErrCodeInvalidDecoder},
		{"bad op syntax", FormatTOML, "[[decoder]]\nname = \"a\"\nops = [\"route 1 2 3\"]", errors.ErrCodeInvalidOp},
		{"descending", FormatTOML, "[[decoder]]\nname = \"a\"\nops = [\"connect 5 5 4\"]", errors.ErrCodeInvalidOp},
		{"past bit 31", FormatTOML, "[[decoder]]\nname = \"a\"\nops = [\"connect 2 6 28\"]", errors.ErrCodeInvalidOp},
		{"no routing", FormatTOML, "[[decoder]]\nname = \"a\"\nops = [\"const 0 1\"]", errors.ErrCodeInvalidOp},
		{"bad level", FormatTOML, "[[decoder]]\nname = \"a\"\nops = [\"connect 1 1 1\", \"level 3 16\"]", errors.ErrCodeInvalidOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"t.toml":  tomlTable,
		"t.yml":   yamlTable,
		"t.jsonc": jsoncTable,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		tbl, err := Load(path)
		if err != nil {
			t.Errorf("Load(%s): %v", name, err)
			continue
		}
		if diff := cmp.Diff([]string{"jalr", "lui"}, tbl.Names()); diff != "" {
			t.Errorf("Load(%s) names mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Load(filepath.Join(dir, "t.xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.xml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestParseDecoder(t *testing.T) {
	d, err := ParseDecoder([]byte(`{"name": "jr", "ops": ["connect 7 11 15", "const 0 0b1100111"]}`))
	if err != nil {
		t.Fatalf("ParseDecoder: %v", err)
	}
	if d.Name != "jr" || len(d.Ops) != 2 {
		t.Errorf("ParseDecoder = %+v", d)
	}

	if _, err := ParseDecoder([]byte(`{"name": "jr", "ops": ["connect 7 11 3"]}`)); !errors.Is(err, errors.ErrCodeInvalidOp) {
		t.Errorf("descending op error = %v, want %s", err, errors.ErrCodeInvalidOp)
	}
}

func TestRVCSourceIsACopy(t *testing.T) {
	src := RVCSource()
	src[0] = 'X'
	if RVCSource()[0] == 'X' {
		t.Error("RVCSource exposes the embedded bytes")
	}
}
