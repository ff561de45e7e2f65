package schematic

import "math"

const (
	// ContainerSlots is the number of item stacks a storage container holds.
	ContainerSlots = 27

	// StackSize is the item capacity of one stack.
	StackSize = 64

	// LevelItem is the item used to fill storage containers.
	LevelItem = "minecraft:redstone"
)

// Items returns how many items a 27-slot container must hold to emit the
// analog signal level ss (0..15).
func Items(ss int) int {
	switch {
	case ss <= 0:
		return 0
	case ss >= 15:
		return ContainerSlots * StackSize
	}
	return int(math.Ceil(float64(32*ContainerSlots*ss)/7 - 1))
}

// Stacks splits Items(ss) into consecutive full stacks followed by the
// remainder. Element k is the size of the stack in slot k.
func Stacks(ss int) []int {
	remaining := Items(ss)
	var out []int
	for remaining > 0 {
		n := min(remaining, StackSize)
		out = append(out, n)
		remaining -= StackSize
	}
	return out
}

// LevelFor returns the smallest level whose item count reaches items.
func LevelFor(items int) int {
	for ss := 0; ss < 15; ss++ {
		if Items(ss) >= items {
			return ss
		}
	}
	return 15
}

// Contents returns the item records for a container at level ss.
func Contents(ss int) []Item {
	stacks := Stacks(ss)
	items := make([]Item, len(stacks))
	for k, n := range stacks {
		items[k] = Item{Slot: int8(k), ID: LevelItem, Count: int8(n)}
	}
	return items
}
