// Package bits provides the fixed-width colour bitset every cell in
// the grid carries: one bit per candidate colour, with set-algebra
// methods over the mask.
package bits

import gobits "math/bits"

// MaxColors is the widest colour count a ColorSet can represent.
// Colour 0 is always the background colour. A fixed 32-bit word keeps
// every operation a single machine instruction; 32 colours is ample
// for any real nonogram.
const MaxColors = 32

// ColorSet is a bitmask over colours 0..31. Bit i set means colour i is
// still a candidate for the cell.
type ColorSet uint32

// Full returns a ColorSet with colours 0..n-1 set.
func Full(n int) ColorSet {
	if n <= 0 {
		return 0
	}
	if n >= MaxColors {
		return ^ColorSet(0)
	}
	return ColorSet(1<<uint(n)) - 1
}

// Single returns a ColorSet containing only colour c.
func Single(c int) ColorSet {
	return ColorSet(1) << uint(c)
}

// Test reports whether colour c is a member of the set.
func (s ColorSet) Test(c int) bool {
	if c < 0 || c >= MaxColors {
		return false
	}
	return s&(1<<uint(c)) != 0
}

// Set returns s with colour c added.
func (s ColorSet) Set(c int) ColorSet {
	if c < 0 || c >= MaxColors {
		return s
	}
	return s | (1 << uint(c))
}

// Clear returns s with colour c removed.
func (s ColorSet) Clear(c int) ColorSet {
	if c < 0 || c >= MaxColors {
		return s
	}
	return s &^ (1 << uint(c))
}

// PopCount returns the number of candidate colours in s.
func (s ColorSet) PopCount() int {
	return gobits.OnesCount32(uint32(s))
}

// IsEmpty reports whether no colour remains, the contradiction state.
func (s ColorSet) IsEmpty() bool {
	return s == 0
}

// Only returns the single colour in s and true, if s has exactly one
// candidate; otherwise (0, false).
func (s ColorSet) Only() (int, bool) {
	if gobits.OnesCount32(uint32(s)) != 1 {
		return 0, false
	}
	return gobits.TrailingZeros32(uint32(s)), true
}

// Union returns the set union of s and o.
func (s ColorSet) Union(o ColorSet) ColorSet {
	return s | o
}

// Intersect returns the set intersection of s and o.
func (s ColorSet) Intersect(o ColorSet) ColorSet {
	return s & o
}

// Subtract returns colours in s that are not in o.
func (s ColorSet) Subtract(o ColorSet) ColorSet {
	return s &^ o
}

// Equals reports whether s and o contain exactly the same colours.
func (s ColorSet) Equals(o ColorSet) bool {
	return s == o
}

// IsSubsetOf reports whether every colour in s is also in o.
func (s ColorSet) IsSubsetOf(o ColorSet) bool {
	return s&o == s
}

// ToSlice returns the candidate colours of s in ascending order.
func (s ColorSet) ToSlice() []int {
	var out []int
	for c := 0; c < MaxColors; c++ {
		if s.Test(c) {
			out = append(out, c)
		}
	}
	return out
}

// ForEach calls fn once per candidate colour in ascending order.
func (s ColorSet) ForEach(fn func(colour int)) {
	for c := 0; c < MaxColors; c++ {
		if s.Test(c) {
			fn(c)
		}
	}
}
