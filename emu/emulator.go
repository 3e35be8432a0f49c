// Package emu provides functional RV32I emulation: the register file, the
// byte-addressed memory, the ALU/comparator, and a single-cycle-per-
// instruction Emulator used as a reference oracle the pipelined driver's
// final state can be checked against.
package emu

import (
	"fmt"

	"github.com/rv32pipe/sim/bits"
	"github.com/rv32pipe/sim/control"
	"github.com/rv32pipe/sim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true once an EBREAK has executed or fetch has run past the
	// end of the loaded program image.
	Halted bool

	// Err is set if the instruction stream hit something the emulator
	// cannot execute: an illegal opcode, or the cycle/instruction budget.
	Err error
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithResetPC sets the PC the emulator starts fetching from.
func WithResetPC(pc uint32) EmulatorOption {
	return func(e *Emulator) { e.pc = pc }
}

// WithMaxInstructions bounds how many instructions Run will execute before
// giving up on a non-terminating program. Zero means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) { e.maxInstructions = max }
}

// Emulator executes RV32I instructions one at a time, with no pipelining,
// stalling, or forwarding: every instruction's effects are fully visible to
// the next before it is fetched.
type Emulator struct {
	regs    *RegFile
	mem     *Memory
	decoder *insts.Decoder
	alu     *ALU
	cmp     *Comparator

	pc               uint32
	instructionCount uint64
	maxInstructions  uint64
}

// NewEmulator creates an Emulator backed by mem.
func NewEmulator(mem *Memory, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regs:    &RegFile{},
		mem:     mem,
		decoder: insts.NewDecoder(),
		alu:     NewALU(),
		cmp:     NewComparator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Regs returns the emulator's register file.
func (e *Emulator) Regs() *RegFile { return e.regs }

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory { return e.mem }

// PC returns the current program counter.
func (e *Emulator) PC() uint32 { return e.pc }

// InstructionCount returns the number of instructions executed so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// Reset clears the register file, instruction counter, and PC. Memory
// contents are left untouched.
func (e *Emulator) Reset() {
	e.regs = &RegFile{}
	e.instructionCount = 0
	e.pc = 0
}

// Step fetches, decodes, and executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: fmt.Errorf("max instructions reached")}
	}

	word, ok := e.mem.FetchWord(e.pc)
	if !ok {
		return StepResult{Halted: true}
	}

	inst := e.decoder.Decode(word)
	result := e.execute(inst)
	e.instructionCount++
	return result
}

// Run steps the emulator until it halts or an error occurs.
func (e *Emulator) Run() StepResult {
	for {
		result := e.Step()
		if result.Halted || result.Err != nil {
			return result
		}
	}
}

// execute applies one decoded instruction's effects to registers, memory,
// and the PC.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	ctrl := control.Decode(inst)

	if ctrl.Illegal {
		return StepResult{Err: fmt.Errorf("illegal instruction 0x%08x at pc=0x%08x", inst.Word, e.pc)}
	}
	if ctrl.Halt {
		return StepResult{Halted: true}
	}

	rs1Val := e.regs.ReadReg(inst.Rs1)
	rs2Val := e.regs.ReadReg(inst.Rs2)

	opA := rs1Val
	if ctrl.ASrc == control.ASrcPC {
		opA = e.pc
	}
	opB := rs2Val
	if ctrl.BSrc == control.BSrcImm {
		opB = inst.Imm
	}

	aluResult := e.alu.Exec(ctrl.ALUOp, opA, opB)

	var memResult uint32
	addr := aluResult
	switch {
	case ctrl.MemRead:
		switch ctrl.MemWidth {
		case control.MemByte:
			if ctrl.MemSigned {
				memResult = e.mem.ReadSigned8(addr)
			} else {
				memResult = uint32(e.mem.Read8(addr))
			}
		case control.MemHalf:
			if ctrl.MemSigned {
				memResult = e.mem.ReadSigned16(addr)
			} else {
				memResult = uint32(e.mem.Read16(addr))
			}
		case control.MemWord:
			memResult = e.mem.Read32(addr)
		}
	case ctrl.MemWrite:
		switch ctrl.MemWidth {
		case control.MemByte:
			e.mem.Write8(addr, byte(rs2Val))
		case control.MemHalf:
			e.mem.Write16(addr, uint16(rs2Val))
		case control.MemWord:
			e.mem.Write32(addr, rs2Val)
		}
	}

	pcPlus4 := bits.AddMod32(e.pc, 4)
	if ctrl.RegWrite {
		var value uint32
		switch ctrl.WBSrc {
		case control.WBSrcALU:
			value = aluResult
		case control.WBSrcMem:
			value = memResult
		case control.WBSrcPCPlus4:
			value = pcPlus4
		case control.WBSrcImm:
			value = inst.Imm
		}
		e.regs.WriteReg(inst.Rd, value)
	}

	switch ctrl.Branch {
	case control.BranchConditional:
		if e.cmp.Compare(ctrl.CMPOp, rs1Val, rs2Val) {
			e.pc = bits.AddMod32(e.pc, inst.Imm)
		} else {
			e.pc = pcPlus4
		}
	case control.BranchUnconditional:
		e.pc = bits.AddMod32(e.pc, inst.Imm)
	case control.BranchIndirect:
		e.pc = bits.AddMod32(rs1Val, inst.Imm) &^ 1
	default:
		e.pc = pcPlus4
	}

	return StepResult{}
}
