package route

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// InputBits is the width of the compressed instruction field.
const InputBits = 16

// OpKind identifies a routing operation.
type OpKind uint8

const (
	OpConnect OpKind = iota + 1
	OpExtend
	OpConst
	OpLevel
)

var opNames = map[OpKind]string{
	OpConnect: "connect",
	OpExtend:  "extend",
	OpConst:   "const",
	OpLevel:   "level",
}

func (k OpKind) String() string {
	if s, ok := opNames[k]; ok {
		return s
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one routing operation of a decoder. Which fields are meaningful
// depends on Kind:
//
//	connect  Start..End -> To     copy a bit range
//	extend   Bit, Start..End      route Bit to End, fill Start+1..End-1
//	const    Start, Value         force the set bits of Value from Start up
//	level    Bit, Level           store an analog level at Bit
//
// The text form is the kind followed by its operands, for example
// "connect 7 11 7", "extend 12 12 20", "const 0 0b1101111" or "level 3 12".
type Op struct {
	Kind  OpKind
	Bit   int
	Start int
	End   int
	To    int
	Value uint32
	Level int
}

// Connect returns an op copying bits start..end onto to..to+(end-start).
func Connect(start, end, to int) Op {
	return Op{Kind: OpConnect, Start: start, End: end, To: to}
}

// Extend returns an op routing bit to end and filling start+1..end-1.
func Extend(bit, start, end int) Op {
	return Op{Kind: OpExtend, Bit: bit, Start: start, End: end}
}

// Const returns an op forcing the set bits of value onto start and up.
func Const(start int, value uint32) Op {
	return Op{Kind: OpConst, Start: start, Value: value}
}

// Level returns an op storing analog level ss at bit.
func Level(bit, ss int) Op {
	return Op{Kind: OpLevel, Bit: bit, Level: ss}
}

// String returns the text form of the op.
func (o Op) String() string {
	switch o.Kind {
	case OpConnect:
		return fmt.Sprintf("connect %d %d %d", o.Start, o.End, o.To)
	case OpExtend:
		return fmt.Sprintf("extend %d %d %d", o.Bit, o.Start, o.End)
	case OpConst:
		return fmt.Sprintf("const %d 0b%b", o.Start, o.Value)
	case OpLevel:
		return fmt.Sprintf("level %d %d", o.Bit, o.Level)
	}
	return o.Kind.String()
}

// ParseOp parses the text form of an op. It checks syntax only; use
// [Op.Validate] for range checks.
func ParseOp(s string) (Op, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Op{}, errors.New("empty op")
	}
	kind, args := fields[0], fields[1:]

	want := map[string]int{"connect": 3, "extend": 3, "const": 2, "level": 2}
	n, ok := want[kind]
	if !ok {
		return Op{}, fmt.Errorf("unknown op %q", kind)
	}
	if len(args) != n {
		return Op{}, fmt.Errorf("%s takes %d operands, got %d", kind, n, len(args))
	}

	if kind == "const" {
		start, err := strconv.Atoi(args[0])
		if err != nil {
			return Op{}, fmt.Errorf("const start: %w", err)
		}
		// Base prefix 0 accepts 0b, 0x and 0o literals.
		v, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return Op{}, fmt.Errorf("const value: %w", err)
		}
		return Const(start, uint32(v)), nil
	}

	nums := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return Op{}, fmt.Errorf("%s operand %d: %w", kind, i+1, err)
		}
		nums[i] = v
	}
	switch kind {
	case "connect":
		return Connect(nums[0], nums[1], nums[2]), nil
	case "extend":
		return Extend(nums[0], nums[1], nums[2]), nil
	default:
		return Level(nums[0], nums[1]), nil
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if _, ok := opNames[o.Kind]; !ok {
		return nil, fmt.Errorf("unknown op kind %d", o.Kind)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(text []byte) error {
	op, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

func inField(name string, v int) error {
	if v < 0 || v >= Bits {
		return fmt.Errorf("%s %d outside 0..%d", name, v, Bits-1)
	}
	return nil
}

// Validate checks that the op fits the 32-bit output field and never
// routes a bit downwards.
func (o Op) Validate() error {
	switch o.Kind {
	case OpConnect:
		if err := errors.Join(inField("start", o.Start), inField("end", o.End), inField("to", o.To)); err != nil {
			return err
		}
		if o.End < o.Start {
			return fmt.Errorf("empty range %d..%d", o.Start, o.End)
		}
		if o.End >= InputBits {
			return fmt.Errorf("source bit %d outside the %d-bit input", o.End, InputBits)
		}
		if o.To < o.Start {
			return fmt.Errorf("destination %d below source %d", o.To, o.Start)
		}
		if last := o.To + o.End - o.Start; last >= Bits {
			return fmt.Errorf("destination range ends at %d, outside 0..%d", last, Bits-1)
		}
	case OpExtend:
		if err := errors.Join(inField("bit", o.Bit), inField("start", o.Start), inField("end", o.End)); err != nil {
			return err
		}
		if o.Bit >= InputBits {
			return fmt.Errorf("source bit %d outside the %d-bit input", o.Bit, InputBits)
		}
		if o.Start < o.Bit || o.End <= o.Start {
			return fmt.Errorf("extend needs bit <= start < end, got %d %d %d", o.Bit, o.Start, o.End)
		}
	case OpConst:
		if err := inField("start", o.Start); err != nil {
			return err
		}
		if o.Value != 0 {
			if top := o.Start + bits.Len32(o.Value) - 1; top >= Bits {
				return fmt.Errorf("constant reaches bit %d, outside 0..%d", top, Bits-1)
			}
		}
	case OpLevel:
		if err := inField("bit", o.Bit); err != nil {
			return err
		}
		if o.Level < 0 || o.Level > 15 {
			return fmt.Errorf("level %d outside 0..15", o.Level)
		}
	default:
		return fmt.Errorf("unknown op kind %d", o.Kind)
	}
	return nil
}

// routes reports whether the op claims a lane.
func (o Op) routes() bool {
	return o.Kind == OpConnect || o.Kind == OpExtend
}
