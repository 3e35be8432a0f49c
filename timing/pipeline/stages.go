package pipeline

import (
	"github.com/rv32pipe/sim/bits"
	"github.com/rv32pipe/sim/control"
	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/insts"
)

// FetchStage reads one instruction word per cycle from instruction memory.
type FetchStage struct{}

// Fetch reads the word at pc. ok is false once pc has run past the end of
// the loaded image, signalling the pipeline should stop issuing new
// instructions.
func (FetchStage) Fetch(pc uint32, mem *emu.Memory) (IFID, bool) {
	word, ok := mem.FetchWord(pc)
	if !ok {
		return IFID{}, false
	}
	return IFID{Valid: true, PC: pc, Word: word}, true
}

// DecodeStage turns a fetched word into a decoded instruction, its control
// signals, and the register operands currently resident in the register
// file (subject to forwarding/stalling resolved by the pipeline driver).
type DecodeStage struct {
	Decoder *insts.Decoder
}

// Decode produces the ID/EX latch contents for a fetched instruction.
func (s DecodeStage) Decode(f IFID, regs *emu.RegFile) IDEX {
	if !f.Valid {
		return IDEX{}
	}

	inst := s.Decoder.Decode(f.Word)
	return IDEX{
		Valid:  true,
		PC:     f.PC,
		Inst:   inst,
		Ctrl:   control.Decode(inst),
		Rs1Val: regs.ReadReg(inst.Rs1),
		Rs2Val: regs.ReadReg(inst.Rs2),
	}
}

// ExecuteStage runs the ALU/comparator and resolves branch/jump targets.
// rs1Val/rs2Val are the operands after the driver has applied forwarding.
type ExecuteStage struct {
	ALU *emu.ALU
	CMP *emu.Comparator
}

// Execute produces the EX/MEM latch contents.
func (s ExecuteStage) Execute(d IDEX, rs1Val, rs2Val uint32) EXMEM {
	if !d.Valid {
		return EXMEM{}
	}

	ctrl := d.Ctrl
	inst := d.Inst

	opA := rs1Val
	if ctrl.ASrc == control.ASrcPC {
		opA = d.PC
	}
	opB := rs2Val
	switch ctrl.BSrc {
	case control.BSrcImm:
		opB = inst.Imm
	case control.BSrcFour:
		opB = 4
	}

	result := s.ALU.Exec(ctrl.ALUOp, opA, opB)

	taken := false
	target := bits.AddMod32(d.PC, inst.Imm)
	switch ctrl.Branch {
	case control.BranchConditional:
		taken = s.CMP.Compare(ctrl.CMPOp, rs1Val, rs2Val)
	case control.BranchUnconditional:
		taken = true
	case control.BranchIndirect:
		taken = true
		target = bits.AddMod32(rs1Val, inst.Imm) &^ 1
	}

	return EXMEM{
		Valid:        true,
		PC:           d.PC,
		Ctrl:         ctrl,
		Rd:           inst.Rd,
		ALUResult:    result,
		StoreVal:     rs2Val,
		Imm:          inst.Imm,
		PCPlus4:      bits.AddMod32(d.PC, 4),
		BranchTaken:  taken,
		BranchTarget: target,
	}
}

// MemoryStage performs the data-memory access for loads and stores.
type MemoryStage struct{}

// Access produces the MEM/WB latch contents.
func (MemoryStage) Access(e EXMEM, mem *emu.Memory) MEMWB {
	if !e.Valid {
		return MEMWB{}
	}

	var memResult uint32
	addr := e.ALUResult

	switch {
	case e.Ctrl.MemRead:
		switch e.Ctrl.MemWidth {
		case control.MemByte:
			if e.Ctrl.MemSigned {
				memResult = mem.ReadSigned8(addr)
			} else {
				memResult = uint32(mem.Read8(addr))
			}
		case control.MemHalf:
			if e.Ctrl.MemSigned {
				memResult = mem.ReadSigned16(addr)
			} else {
				memResult = uint32(mem.Read16(addr))
			}
		case control.MemWord:
			memResult = mem.Read32(addr)
		}
	case e.Ctrl.MemWrite:
		switch e.Ctrl.MemWidth {
		case control.MemByte:
			mem.Write8(addr, byte(e.StoreVal))
		case control.MemHalf:
			mem.Write16(addr, uint16(e.StoreVal))
		case control.MemWord:
			mem.Write32(addr, e.StoreVal)
		}
	}

	return MEMWB{
		Valid:     true,
		Ctrl:      e.Ctrl,
		Rd:        e.Rd,
		ALUResult: e.ALUResult,
		MemResult: memResult,
		PCPlus4:   e.PCPlus4,
		Imm:       e.Imm,
	}
}

// WritebackStage commits a value to the register file.
type WritebackStage struct{}

// Writeback applies the MEM/WB latch's result, if any, to regs.
func (WritebackStage) Writeback(w MEMWB, regs *emu.RegFile) {
	if !w.Valid || !w.Ctrl.RegWrite {
		return
	}

	var value uint32
	switch w.Ctrl.WBSrc {
	case control.WBSrcALU:
		value = w.ALUResult
	case control.WBSrcMem:
		value = w.MemResult
	case control.WBSrcPCPlus4:
		value = w.PCPlus4
	case control.WBSrcImm:
		value = w.Imm
	}

	regs.WriteReg(w.Rd, value)
}
