// Package schematic serializes voxel grids into Sponge schematic (version
// 2) files.
//
// A schematic is one NBT compound named "Schematic":
//
//	Width, Length, Height   int16   x, z and y extents
//	Palette                 compound descriptor -> int32 id
//	Metadata                compound WEOffsetX/Y/Z int32
//	BlockData               byte[]  one LEB128 varint per cell
//	BlockEntities           list    storage containers and their items
//	Version                 int32   always 2
//	DataVersion             int32   target data version
//
// BlockData lists cells y-outer, z-middle, x-inner. Each id is written
// as an unsigned LEB128 integer: seven data bits per byte, high bit set
// when more bytes follow.
//
// [Encode] builds the in-memory [Schematic] from a grid; [Schematic.Write]
// emits it gzip-compressed, which is what schematic consumers expect on
// disk. [Read] accepts both compressed and raw NBT and [Schematic.Grid]
// rebuilds the grid, so every artifact can be verified cell for cell.
//
// # Storage containers
//
// Cells marked with a storage level become barrel block entities. The
// level is encoded as an item count (see [Items]) spread over stacks of
// 64, slot 0 first.
package schematic
