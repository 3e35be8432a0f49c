// Package control provides the RV32I control unit: a pure function from a
// decoded instruction to the control-signal record the pipeline's later
// stages consume. It is pulled out of the decode stage into its own named
// unit, generalizing the switch-over-instruction-format pattern a pipeline's
// DecodeStage would otherwise have to inline directly.
package control

import "github.com/rv32pipe/sim/insts"

// ASrc selects the EX stage's first ALU operand.
type ASrc uint8

const (
	ASrcRs1 ASrc = iota
	ASrcPC
)

// BSrc selects the EX stage's second ALU operand.
type BSrc uint8

const (
	BSrcRs2 BSrc = iota
	BSrcImm
	// BSrcFour selects the literal 4. Decode never selects it: JAL/JALR
	// link values come from the PC+4 carried in the pipeline latches.
	BSrcFour
)

// WBSrc selects which value the WB stage writes to the register file.
type WBSrc uint8

const (
	WBSrcALU WBSrc = iota
	WBSrcMem
	WBSrcPCPlus4
	WBSrcImm // LUI: the upper immediate itself (AUIPC writes back the ALU's PC+imm via WBSrcALU)
)

// BranchKind classifies an instruction's effect on control flow.
type BranchKind uint8

const (
	BranchNone BranchKind = iota
	BranchConditional
	BranchUnconditional // JAL
	BranchIndirect      // JALR
)

// MemWidth is the width of a load/store access.
type MemWidth uint8

const (
	MemNone MemWidth = iota
	MemByte
	MemHalf
	MemWord
)

// Signals is the control-flags record derived purely from a decoded
// instruction.
type Signals struct {
	ALUOp insts.Op // no-op (OpUnknown) when the instruction does not use the ALU
	CMPOp insts.Op // one of the six branch opcodes, or OpUnknown if not a branch

	ASrc ASrc
	BSrc BSrc

	WBSrc    WBSrc
	RegWrite bool

	Branch BranchKind

	MemWidth  MemWidth
	MemSigned bool // true for LB/LH, false for LBU/LHU/LW
	MemRead   bool
	MemWrite  bool

	Halt    bool // EBREAK
	Illegal bool // unknown opcode/funct combination
}

// Decode derives the control signals for a decoded instruction.
func Decode(inst *insts.Instruction) Signals {
	var s Signals

	switch inst.Op {
	case insts.OpUnknown:
		s.Illegal = true
		return s

	case insts.OpADD, insts.OpSUB, insts.OpXOR, insts.OpOR, insts.OpAND,
		insts.OpSLL, insts.OpSRL, insts.OpSRA, insts.OpSLT, insts.OpSLTU:
		s.ALUOp = inst.Op
		s.ASrc = ASrcRs1
		s.BSrc = BSrcRs2
		s.WBSrc = WBSrcALU
		s.RegWrite = true

	case insts.OpADDI, insts.OpXORI, insts.OpORI, insts.OpANDI,
		insts.OpSLLI, insts.OpSRLI, insts.OpSRAI, insts.OpSLTI, insts.OpSLTIU:
		s.ALUOp = immALUOp(inst.Op)
		s.ASrc = ASrcRs1
		s.BSrc = BSrcImm
		s.WBSrc = WBSrcALU
		s.RegWrite = true

	case insts.OpLB, insts.OpLH, insts.OpLW, insts.OpLBU, insts.OpLHU:
		s.ALUOp = insts.OpADD
		s.ASrc = ASrcRs1
		s.BSrc = BSrcImm
		s.WBSrc = WBSrcMem
		s.RegWrite = true
		s.MemRead = true
		s.MemWidth, s.MemSigned = loadWidth(inst.Op)

	case insts.OpSB, insts.OpSH, insts.OpSW:
		s.ALUOp = insts.OpADD
		s.ASrc = ASrcRs1
		s.BSrc = BSrcImm
		s.MemWrite = true
		s.MemWidth = storeWidth(inst.Op)

	case insts.OpBEQ, insts.OpBNE, insts.OpBLT, insts.OpBGE, insts.OpBLTU, insts.OpBGEU:
		s.CMPOp = inst.Op
		s.ASrc = ASrcPC
		s.BSrc = BSrcImm
		s.Branch = BranchConditional

	case insts.OpLUI:
		s.WBSrc = WBSrcImm
		s.RegWrite = true

	case insts.OpAUIPC:
		s.ALUOp = insts.OpADD
		s.ASrc = ASrcPC
		s.BSrc = BSrcImm
		s.WBSrc = WBSrcALU
		s.RegWrite = true

	case insts.OpJAL:
		s.ASrc = ASrcPC
		s.BSrc = BSrcImm
		s.WBSrc = WBSrcPCPlus4
		s.RegWrite = true
		s.Branch = BranchUnconditional

	case insts.OpJALR:
		s.ASrc = ASrcRs1
		s.BSrc = BSrcImm
		s.WBSrc = WBSrcPCPlus4
		s.RegWrite = true
		s.Branch = BranchIndirect

	case insts.OpEBREAK:
		s.Halt = true

	default:
		s.Illegal = true
	}

	return s
}

// immALUOp maps an *I opcode to the shared ALU operation it executes.
func immALUOp(op insts.Op) insts.Op {
	switch op {
	case insts.OpADDI:
		return insts.OpADD
	case insts.OpXORI:
		return insts.OpXOR
	case insts.OpORI:
		return insts.OpOR
	case insts.OpANDI:
		return insts.OpAND
	case insts.OpSLLI:
		return insts.OpSLL
	case insts.OpSRLI:
		return insts.OpSRL
	case insts.OpSRAI:
		return insts.OpSRA
	case insts.OpSLTI:
		return insts.OpSLT
	case insts.OpSLTIU:
		return insts.OpSLTU
	default:
		return insts.OpUnknown
	}
}

func loadWidth(op insts.Op) (MemWidth, bool) {
	switch op {
	case insts.OpLB:
		return MemByte, true
	case insts.OpLH:
		return MemHalf, true
	case insts.OpLW:
		return MemWord, false
	case insts.OpLBU:
		return MemByte, false
	case insts.OpLHU:
		return MemHalf, false
	default:
		return MemNone, false
	}
}

func storeWidth(op insts.Op) MemWidth {
	switch op {
	case insts.OpSB:
		return MemByte
	case insts.OpSH:
		return MemHalf
	case insts.OpSW:
		return MemWord
	default:
		return MemNone
	}
}
