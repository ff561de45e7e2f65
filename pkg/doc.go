// Package pkg provides the libraries behind circuitgen, a layout compiler
// that turns instruction decoder tables into redstone schematics.
//
// # Overview
//
// A decoder is a list of routing ops that move bits of a 16-bit compressed
// RISC-V instruction onto the 32-bit instruction it expands to. circuitgen
// routes every op through a fixed-depth voxel volume and exports the result
// as a Sponge schematic. The packages are:
//
//  1. [voxel] - Block model, palette and the 3-D grid
//  2. [wire] - Drawing primitives: dust runs, towers, constants
//  3. [route] - Lane allocation and the router that drives [wire]
//  4. [decoders] - Decoder tables in TOML, YAML or JSONC, plus the built-in RVC table
//  5. [schematic] - Sponge v2 NBT encoding and decoding
//  6. [pipeline] - Build orchestration, reports and caching
//  7. [cache] - File, Redis and MongoDB build caches
//  8. [server] - HTTP build service
//
// # Architecture
//
// The data flow through circuitgen:
//
//	Decoder table
//	      ↓
//	 [decoders] (parse + validate ops)
//	      ↓
//	 [route] (plan lanes, draw into a [voxel.Grid])
//	      ↓
//	 [schematic] (encode palette, block data, containers)
//	      ↓
//	 .schem / .nbt / JSON / CBOR / DOT / SVG
//
// # Quick Start
//
//	d, _ := decoders.RVC().Lookup("jr")
//	res, err := d.Job().Build(nil)
//	if err != nil {
//	    return err
//	}
//	s := schematic.Encode(res.Grid, schematic.Options{})
//	data, err := s.Marshal()
package pkg
