// Package pipeline implements the five-stage in-order RV32I pipeline: the
// stage latches (this file), the per-stage logic (stages.go), hazard
// detection/forwarding (hazard.go), and the cycle-by-cycle driver
// (pipeline.go).
package pipeline

import (
	"github.com/rv32pipe/sim/control"
	"github.com/rv32pipe/sim/insts"
)

// IFID is the latch between Fetch and Decode.
type IFID struct {
	Valid bool
	PC    uint32
	Word  uint32
}

// Clear turns the latch into a bubble.
func (r *IFID) Clear() {
	*r = IFID{}
}

// IDEX is the latch between Decode and Execute. It carries both the decoded
// instruction and the control signals derived from it, plus the register
// operands read at decode time (subject to forwarding in EX).
type IDEX struct {
	Valid bool

	PC   uint32
	Inst *insts.Instruction
	Ctrl control.Signals

	Rs1Val uint32
	Rs2Val uint32
}

func (r *IDEX) Clear() {
	*r = IDEX{}
}

// EXMEM is the latch between Execute and Memory.
type EXMEM struct {
	Valid bool

	PC        uint32
	Ctrl      control.Signals
	Rd        uint8
	ALUResult uint32
	StoreVal  uint32 // the (possibly forwarded) rs2 value, for stores
	Imm       uint32 // carried through for LUI's raw-immediate writeback
	PCPlus4   uint32 // carried through for JAL/JALR's link-register writeback
	BranchTaken  bool
	BranchTarget uint32
}

func (r *EXMEM) Clear() {
	*r = EXMEM{}
}

// MEMWB is the latch between Memory and Writeback.
type MEMWB struct {
	Valid bool

	Ctrl      control.Signals
	Rd        uint8
	ALUResult uint32
	MemResult uint32
	PCPlus4   uint32
	Imm       uint32
}

func (r *MEMWB) Clear() {
	*r = MEMWB{}
}
