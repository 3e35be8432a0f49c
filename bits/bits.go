// Package bits provides fixed-width bit-vector primitives shared by the
// instruction decoder and the ALU: sub-range extraction, sign extension,
// field concatenation, and modular 32-bit arithmetic.
package bits

// Slice extracts bits [hi:lo] (inclusive, hi >= lo) from word and returns
// them right-aligned in the low bits of the result.
func Slice(word uint32, hi, lo uint) uint32 {
	width := hi - lo + 1
	mask := uint32(1)<<width - 1
	return (word >> lo) & mask
}

// Bit extracts a single bit and returns it as 0 or 1.
func Bit(word uint32, pos uint) uint32 {
	return (word >> pos) & 1
}

// SignExtend sign-extends the low `width` bits of value to a full 32-bit
// signed value, returned as its uint32 bit pattern.
func SignExtend(value uint32, width uint) uint32 {
	shift := 32 - width
	return uint32(int32(value<<shift) >> shift)
}

// Field is one (value, width) operand of Concat, which packs fields into a
// single word most significant field first, analogous to Verilog {a, b, c}
// concatenation.
type Field struct {
	Value uint32
	Width uint
}

// Concat concatenates fields most-significant-first into a single word.
func Concat(fields ...Field) uint32 {
	var out uint32
	for _, f := range fields {
		mask := uint32(1)<<f.Width - 1
		out = (out << f.Width) | (f.Value & mask)
	}
	return out
}

// AddMod32 performs modulo-2^32 addition; Go's uint32 arithmetic already
// wraps, so this simply documents the invariant at call sites that compute
// addresses or branch targets.
func AddMod32(a, b uint32) uint32 {
	return a + b
}
