package ciggurat

import (
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// bitmask256 represents a set of up to MaxComponentTypes component IDs.
// Each bit corresponds to a component ID; a set bit means the component
// is part of the set. The type is a plain value: assignment clones it
// and == is set equality, so storages and systems each own their masks.
type bitmask256 [4]uint64

// set enables the bit corresponding to the given component ID.
func (m *bitmask256) set(bit uint8) {
	i := bit >> 6 // (bit / 64) to find the uint64 index
	o := bit & 63 // (bit % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// unset disables the bit corresponding to the given component ID.
func (m *bitmask256) unset(bit uint8) {
	i := bit >> 6
	o := bit & 63
	m[i] &= ^(uint64(1) << uint64(o))
}

// has checks if a specific bit is set in the mask.
func (m bitmask256) has(bit uint8) bool {
	i := bit >> 6
	o := bit & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// count returns the number of set bits.
func (m bitmask256) count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// first returns the lowest set bit, or false if the mask is empty.
func (m bitmask256) first() (uint8, bool) {
	return m.next(0)
}

// next returns the lowest set bit whose ID is >= from, or false if no
// such bit exists. from may exceed the bit range so that callers can
// advance past bit 255 without wrapping.
func (m bitmask256) next(from int) (uint8, bool) {
	for w := from >> 6; w < len(m); w++ {
		word := m[w]
		if w == from>>6 {
			word &= ^uint64(0) << uint64(from&63)
		}
		if word != 0 {
			return uint8(w<<6 + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

// contains checks if all the bits set in sub are also set in m. This is
// the subset test used for must-have matching.
func (m bitmask256) contains(sub bitmask256) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// intersects checks if this mask has any bits in common with another.
func (m bitmask256) intersects(other bitmask256) bool {
	return (m[0]&other[0] != 0) ||
		(m[1]&other[1] != 0) ||
		(m[2]&other[2] != 0) ||
		(m[3]&other[3] != 0)
}

// intersect returns a new mask holding the bits present in both masks.
func (m bitmask256) intersect(other bitmask256) bitmask256 {
	return bitmask256{
		m[0] & other[0],
		m[1] & other[1],
		m[2] & other[2],
		m[3] & other[3],
	}
}

// hash returns a stable hash of the mask, used to bucket storages in
// the world's mask-keyed table.
func (m bitmask256) hash() uint64 {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[0:8], m[0])
	binary.LittleEndian.PutUint64(b[8:16], m[1])
	binary.LittleEndian.PutUint64(b[16:24], m[2])
	binary.LittleEndian.PutUint64(b[24:32], m[3])
	return xxhash.Sum64(b[:])
}
