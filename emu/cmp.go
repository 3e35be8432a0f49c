package emu

import "github.com/rv32pipe/sim/insts"

// Comparator implements the RV32I branch conditions. RV32I carries no
// persistent condition-flags register; each branch compares its two operand
// values directly, so this type is a pure function rather than something
// wired to the register file.
type Comparator struct{}

// NewComparator creates a new Comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare evaluates the branch condition for op (one of the six RV32I
// branch opcodes) against operands a (rs1 value) and b (rs2 value),
// returning true iff the branch is taken.
func (c *Comparator) Compare(op insts.Op, a, b uint32) bool {
	switch op {
	case insts.OpBEQ:
		return a == b
	case insts.OpBNE:
		return a != b
	case insts.OpBLT:
		return int32(a) < int32(b)
	case insts.OpBGE:
		return int32(a) >= int32(b)
	case insts.OpBLTU:
		return a < b
	case insts.OpBGEU:
		return a >= b
	default:
		return false
	}
}
