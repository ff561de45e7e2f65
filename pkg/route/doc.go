// Package route turns bit-routing operations into physical circuit layouts.
//
// A decoder copies bits from a 16-bit input field onto positions of a
// 32-bit output field, optionally broadcasting one bit over a span (sign
// extension) or forcing bits to a constant. Each copy is a [Connection]
// between two bus lines: the signal leaves line a, climbs a tower and
// enters line b.
//
// # Lanes
//
// Every connection occupies a lane, a vertical slice of the layout at
// x = 2*lane. Connections whose bit spans overlap must not share a lane.
// [Slots] records, for each of the 32 bit positions, the lowest lane still
// free; claiming a span takes one past the highest value in it and raises
// the whole span above the new lane.
//
// The allocation is greedy and depends on the order operations are
// issued. Reordering a decoder's operations can change how many lanes,
// and therefore how wide a grid, it needs.
//
// # Jobs
//
// A [Job] is one decoder: an ordered list of [Op] values. [Job.Build]
// sizes a grid, replays the operations through a [Router] and adds the
// output frame that every decoder shares (buses, inverters and the layer
// repeaters on the frame column).
//
// # Failure model
//
// The router assumes well-formed operations: destinations never precede
// their source bit and all bits fit the 32-bit field. Violations panic.
// Input from files or the network should go through [Op.Validate] or
// [Job.Validate] first.
package route
