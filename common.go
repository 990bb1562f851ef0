package supergrid

import (
	"math"
	"math/bits"
)

// vectorKey packs a 2D cell coordinate into a single table key.
func vectorKey(x, y uint32) uint64 {
	return uint64(x)<<32 | uint64(y)
}

// hashKey is the identity. Cell keys and entity IDs are already spread well
// enough, and the table sizing in NewTable assumes this distribution.
func hashKey(k uint64) uint64 {
	return k
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}

// tableSlots is the slot count of a table sized for sizeHint entities.
func tableSlots(sizeHint int) int {
	if sizeHint < 1 {
		sizeHint = 1
	}
	return int(nextPowerOfTwo(uint64(sizeHint)*1000)) + 1
}

// saturatingAdd returns a+b, clamped to MaxUint32.
func saturatingAdd(a, b uint32) uint32 {
	s := a + b
	if s < a {
		return math.MaxUint32
	}
	return s
}

// cellRange is an inclusive range of cell coordinates.
type cellRange struct {
	minX, minY uint32
	maxX, maxY uint32
}

func cellRangeOf(x, y, width, height, shift uint32) cellRange {
	return cellRange{
		minX: x >> shift,
		minY: y >> shift,
		maxX: saturatingAdd(x, width) >> shift,
		maxY: saturatingAdd(y, height) >> shift,
	}
}

// single reports whether the range covers exactly one cell.
func (r cellRange) single() bool {
	return r.minX == r.maxX && r.minY == r.maxY
}
