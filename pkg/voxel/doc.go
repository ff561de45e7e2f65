// Package voxel provides the dense 3D cell store that every circuit layout
// is written into.
//
// A [Grid] is a fixed-size box of cells. Each cell holds a palette [ID], a
// small integer that stands for a block descriptor such as
// "minecraft:repeater[facing=north]". The grid owns its [Palette]; ids are
// only meaningful relative to the grid that issued them.
//
// # Coordinates
//
// Positions are integer triples. X and Z span the horizontal plane, Y is
// vertical. Horizontal movement uses [Direction]; there is no vertical
// direction value, vertical offsets are always explicit.
//
// # Linearization
//
// Cells are stored x fastest, then y, then z:
//
//	index = x + sx*y + sx*sy*z
//
// The schematic codec iterates y-outer, z-middle, x-inner and reads cells
// through [Grid.Get], so the storage order is not visible on the wire.
//
// # Failure model
//
// Writing outside the grid means the layout plan is wrong. [Grid.Set]
// panics with an [*OutOfBoundsError] instead of clamping or returning an
// error; the build that triggered it is abandoned.
//
// # Storage levels
//
// Besides block ids, a grid keeps a sparse side table of analog signal
// levels (0..15) for storage container cells. The schematic codec turns
// each entry into a block entity whose item count encodes the level.
package voxel
