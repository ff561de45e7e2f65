package route

import "testing"

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"connect 7 11 7", Connect(7, 11, 7)},
		{"  extend 12 25  31 ", Extend(12, 25, 31)},
		{"const 0 0b1101111", Const(0, 0b1101111)},
		{"const 12 0x2", Const(12, 2)},
		{"const 7 1", Const(7, 1)},
		{"level 3 12", Level(3, 12)},
	}

	for _, tt := range tests {
		got, err := ParseOp(tt.in)
		if err != nil {
			t.Errorf("ParseOp(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOp(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseOpErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"route 1 2 3",
		"connect 1 2",
		"connect 1 2 3 4",
		"extend a 2 3",
		"const 0 0b102",
		"const 0 0x1ffffffff",
		"level 3",
	} {
		if _, err := ParseOp(in); err == nil {
			t.Errorf("ParseOp(%q) succeeded, want error", in)
		}
	}
}

func TestOpTextRoundTrip(t *testing.T) {
	for _, op := range []Op{Connect(2, 6, 20), Extend(12, 12, 20), Const(0, 0b0100011), Level(31, 15)} {
		text, err := op.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%+v): %v", op, err)
		}
		var got Op
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != op {
			t.Errorf("round trip of %q = %+v, want %+v", text, got, op)
		}
	}
}

func TestOpMarshalTextUnknownKind(t *testing.T) {
	if _, err := (Op{}).MarshalText(); err == nil {
		t.Error("MarshalText of zero op succeeded")
	}
}

func TestOpValidate(t *testing.T) {
	tests := []struct {
		op Op
		ok bool
	}{
		{Connect(7, 11, 7), true},
		{Connect(12, 12, 31), true},
		{Connect(2, 6, 27), true},
		{Connect(2, 6, 28), false}, // destination runs past bit 31
		{Connect(6, 2, 20), false}, // empty range
		{Connect(5, 5, 4), false},  // descends
		{Connect(15, 16, 20), false},
		{Connect(-1, 2, 3), false},
		{Extend(12, 12, 20), true},
		{Extend(12, 25, 31), true},
		{Extend(12, 11, 20), false},
		{Extend(12, 20, 20), false},
		{Extend(12, 20, 32), false},
		{Extend(16, 20, 25), false},
		{Const(0, 0b1101111), true},
		{Const(0, 0), true},
		{Const(31, 1), true},
		{Const(31, 2), false},
		{Const(25, 0xff), false},
		{Level(0, 0), true},
		{Level(31, 15), true},
		{Level(3, 16), false},
		{Level(32, 1), false},
		{Op{Kind: 9}, false},
	}

	for _, tt := range tests {
		err := tt.op.Validate()
		if tt.ok && err != nil {
			t.Errorf("%v: unexpected error: %v", tt.op, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%v: Validate succeeded, want error", tt.op)
		}
	}
}
