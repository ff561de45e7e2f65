package voxel

import "fmt"

// Pos is a cell position inside a grid.
type Pos struct {
	X, Y, Z int
}

// P is shorthand for Pos{x, y, z}.
func P(x, y, z int) Pos {
	return Pos{X: x, Y: y, Z: z}
}

// Offset returns p moved by the given deltas.
func (p Pos) Offset(dx, dy, dz int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Up returns p moved n cells up.
func (p Pos) Up(n int) Pos {
	return p.Offset(0, n, 0)
}

// Step returns p moved n cells towards dir.
func (p Pos) Step(dir Direction, n int) Pos {
	switch dir {
	case North:
		return p.Offset(0, 0, -n)
	case South:
		return p.Offset(0, 0, n)
	case East:
		return p.Offset(n, 0, 0)
	case West:
		return p.Offset(-n, 0, 0)
	}
	panic(fmt.Sprintf("voxel: invalid direction %d", dir))
}

// DirectionTo returns the coarse horizontal direction from p to other.
// The x axis is compared first; z is only consulted when x is equal.
// It panics if p and other share both x and z.
func (p Pos) DirectionTo(other Pos) Direction {
	switch {
	case p.X > other.X:
		return West
	case p.X < other.X:
		return East
	case p.Z > other.Z:
		return North
	case p.Z < other.Z:
		return South
	}
	panic(fmt.Sprintf("voxel: no direction from %v to %v", p, other))
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Direction is one of the four horizontal cardinal directions.
type Direction uint8

const (
	North Direction = iota // -z
	South                  // +z
	East                   // +x
	West                   // -x
)

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}
