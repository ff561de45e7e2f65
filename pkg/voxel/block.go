package voxel

import "fmt"

// Kind identifies the type of a cell independent of its orientation or
// power state.
type Kind uint8

const (
	Air           Kind = iota // background
	Concrete                  // solid conductor support
	Slab                      // top slab, transparent to downward power
	Dust                      // transmission cell, plain shape
	CrossDust                 // transmission cell, connected on all sides
	Repeater                  // amplifier, needs Facing
	Target                    // marker that redirects dust into it
	Torch                     // standing torch; Lit selects the explicit state
	WallTorch                 // wall-mounted torch, needs Facing
	RedstoneBlock             // constant power source
	Barrel                    // storage container holding an analog level
)

// Lit is the explicit power state of a torch. LitDefault omits the state
// from the descriptor.
type Lit uint8

const (
	LitDefault Lit = iota
	LitOn
	LitOff
)

// Block is a cell type with its attributes. Blocks are interned into a
// grid palette via their descriptor string.
type Block struct {
	Kind   Kind
	Facing Direction // Repeater, WallTorch
	Lit    Lit       // Torch
}

// Common blocks.
var (
	AirBlock      = Block{Kind: Air}
	ConcreteBlock = Block{Kind: Concrete}
	SlabBlock     = Block{Kind: Slab}
	DustBlock     = Block{Kind: Dust}
	CrossBlock    = Block{Kind: CrossDust}
	TargetBlock   = Block{Kind: Target}
	PowerBlock    = Block{Kind: RedstoneBlock}
	BarrelBlock   = Block{Kind: Barrel}
)

// RepeaterFacing returns a repeater facing dir.
func RepeaterFacing(dir Direction) Block {
	return Block{Kind: Repeater, Facing: dir}
}

// TorchLit returns a standing torch with an explicit power state.
func TorchLit(on bool) Block {
	if on {
		return Block{Kind: Torch, Lit: LitOn}
	}
	return Block{Kind: Torch, Lit: LitOff}
}

// Descriptor renders the block as the flat string used in schematic
// palettes.
func (b Block) Descriptor() string {
	switch b.Kind {
	case Air:
		return "minecraft:air"
	case Concrete:
		return "minecraft:gray_concrete"
	case Slab:
		return "minecraft:smooth_stone_slab[type=top]"
	case Dust:
		return "minecraft:redstone_wire"
	case CrossDust:
		return "minecraft:redstone_wire[north=side,east=side,west=side,south=side]"
	case Repeater:
		return "minecraft:repeater[facing=" + b.Facing.String() + "]"
	case Target:
		return "minecraft:target"
	case Torch:
		switch b.Lit {
		case LitOn:
			return "minecraft:redstone_torch[lit=true]"
		case LitOff:
			return "minecraft:redstone_torch[lit=false]"
		}
		return "minecraft:redstone_torch"
	case WallTorch:
		return "minecraft:redstone_wall_torch[facing=" + b.Facing.String() + "]"
	case RedstoneBlock:
		return "minecraft:redstone_block"
	case Barrel:
		return "minecraft:barrel[facing=up]"
	}
	panic(fmt.Sprintf("voxel: unknown block kind %d", b.Kind))
}

// EntityID is the block entity id written for cells that carry extra
// state, or "" if the block has none.
func (b Block) EntityID() string {
	if b.Kind == Barrel {
		return "minecraft:barrel"
	}
	return ""
}

func (b Block) String() string {
	return b.Descriptor()
}
