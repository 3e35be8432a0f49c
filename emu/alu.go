package emu

import "github.com/rv32pipe/sim/insts"

// ALU implements RV32I combinational arithmetic and logic. Unlike an
// instruction-level ALU wired directly to the register file, this ALU is a
// pure function of its two operands: the pipeline's EX stage supplies
// already-forwarded operand values and never lets the ALU touch the register
// file itself, since a RAW-hazard operand may not be the value currently
// resident in the register file at all.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Exec computes the result of an RV32I ALU operation. a and b are the two
// operand bit patterns already selected by the EX-stage operand muxes;
// interpretation of sign is internal to the operation (SRA, SLT).
func (u *ALU) Exec(op insts.Op, a, b uint32) uint32 {
	switch op {
	case insts.OpADD, insts.OpADDI:
		return a + b
	case insts.OpSUB:
		return a - b
	case insts.OpXOR, insts.OpXORI:
		return a ^ b
	case insts.OpOR, insts.OpORI:
		return a | b
	case insts.OpAND, insts.OpANDI:
		return a & b
	case insts.OpSLL, insts.OpSLLI:
		return a << (b & 0x1F)
	case insts.OpSRL, insts.OpSRLI:
		return a >> (b & 0x1F)
	case insts.OpSRA, insts.OpSRAI:
		return uint32(int32(a) >> (b & 0x1F))
	case insts.OpSLT, insts.OpSLTI:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case insts.OpSLTU, insts.OpSLTIU:
		if a < b {
			return 1
		}
		return 0
	// LUI, branches, and jumps carry no ALU op: LUI writes back its
	// immediate, and branch/jump targets are computed by the EX stage
	// directly. AUIPC, loads, and stores reach the ALU as OpADD above.
	default:
		return 0
	}
}
