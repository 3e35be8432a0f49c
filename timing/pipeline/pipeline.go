package pipeline

import (
	"github.com/rv32pipe/sim/bits"
	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/insts"
)

// Stats holds cycle-accounting counters accumulated over a run.
type Stats struct {
	Cycles       uint64
	Instructions uint64
	StallCycles  uint64
	FlushCycles  uint64
}

// CPI returns cycles per retired instruction, or zero before anything has
// retired.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithMemory installs a pre-populated data/instruction memory.
func WithMemory(mem *emu.Memory) Option {
	return func(p *Pipeline) { p.mem = mem }
}

// WithResetPC sets the PC the pipeline (re)starts fetching from.
func WithResetPC(pc uint32) Option {
	return func(p *Pipeline) { p.resetPC = pc }
}

// Pipeline is the five-stage in-order RV32I pipeline described by the
// stage/latch/hazard types in this package. Stage latches are
// double-buffered: each Tick computes every stage's "next" latch from the
// current ones, then swaps next into current, so stages within one cycle
// always observe the previous cycle's state.
type Pipeline struct {
	regs *emu.RegFile
	mem  *emu.Memory

	decoder *insts.Decoder
	fetch   FetchStage
	decode  DecodeStage
	execute ExecuteStage
	memory  MemoryStage
	wb      WritebackStage
	hazard  HazardUnit

	pc      uint32
	resetPC uint32

	ifid  IFID
	idex  IDEX
	exmem EXMEM
	memwb MEMWB

	fetchDone bool // Fetch has run off the end of the instruction image
	halted    bool // EBREAK has retired

	stats Stats
}

// New constructs a Pipeline ready to run from its reset PC.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		regs:    &emu.RegFile{},
		mem:     emu.NewMemory(),
		decoder: insts.NewDecoder(),
	}
	p.decode.Decoder = p.decoder
	p.execute.ALU = emu.NewALU()
	p.execute.CMP = emu.NewComparator()

	for _, opt := range opts {
		opt(p)
	}
	p.pc = p.resetPC
	return p
}

// Regs exposes the architectural register file.
func (p *Pipeline) Regs() *emu.RegFile { return p.regs }

// Memory exposes the data/instruction memory.
func (p *Pipeline) Memory() *emu.Memory { return p.mem }

// Stats returns the accumulated cycle-accounting counters.
func (p *Pipeline) Stats() Stats { return p.stats }

// PC returns the program counter the pipeline will fetch from next.
func (p *Pipeline) PC() uint32 { return p.pc }

// Halted reports whether an EBREAK has retired through Writeback.
func (p *Pipeline) Halted() bool { return p.halted }

// Done reports whether the pipeline has nothing left to do: halted, or
// fetch has run dry and every in-flight latch has drained.
func (p *Pipeline) Done() bool {
	if p.halted {
		return true
	}
	return p.fetchDone && !p.ifid.Valid && !p.idex.Valid && !p.exmem.Valid && !p.memwb.Valid
}

// Reset clears all latches, the register file and halts state, and rewinds
// the PC to resetPC. Memory contents are left untouched.
func (p *Pipeline) Reset() {
	p.regs = &emu.RegFile{}
	p.ifid.Clear()
	p.idex.Clear()
	p.exmem.Clear()
	p.memwb.Clear()
	p.pc = p.resetPC
	p.fetchDone = false
	p.halted = false
	p.stats = Stats{}
}

// Tick advances the pipeline by exactly one cycle.
func (p *Pipeline) Tick() {
	if p.halted {
		return
	}
	p.stats.Cycles++

	var nextIFID IFID
	var nextIDEX IDEX
	var nextEXMEM EXMEM
	var nextMEMWB MEMWB

	// Writeback first: commits using this cycle's MEM/WB latch, so the
	// Decode stage running later in the same cycle sees the freshly
	// written register value (same-cycle write-then-read register file).
	p.wb.Writeback(p.memwb, p.regs)
	if p.memwb.Valid {
		p.stats.Instructions++
		if p.memwb.Ctrl.Halt {
			p.halted = true
		}
	}

	nextMEMWB = p.memory.Access(p.exmem, p.mem)

	if p.idex.Valid {
		rs1 := p.hazard.Forward(p.idex.Inst.Rs1, p.idex.Rs1Val, p.exmem, p.memwb)
		rs2 := p.hazard.Forward(p.idex.Inst.Rs2, p.idex.Rs2Val, p.exmem, p.memwb)
		nextEXMEM = p.execute.Execute(p.idex, rs1, rs2)
	}

	stall := p.hazard.LoadUseHazard(p.idex, decodeRs1(p.ifid, p.decoder), decodeRs2(p.ifid, p.decoder))
	if stall {
		nextIDEX = IDEX{} // inject a bubble; the stalled instruction re-decodes next cycle
		nextIFID = p.ifid // hold fetch's output, it re-decodes once the load clears
		p.stats.StallCycles++
	} else {
		nextIDEX = p.decode.Decode(p.ifid, p.regs)

		if !p.fetchDone && !p.branchFlush(nextEXMEM) {
			f, ok := p.fetch.Fetch(p.pc, p.mem)
			if ok {
				nextIFID = f
				p.pc = bits.AddMod32(p.pc, 4)
			} else {
				p.fetchDone = true
			}
		}
	}

	if p.branchFlush(nextEXMEM) {
		nextIFID = IFID{}
		nextIDEX = IDEX{}
		p.pc = nextEXMEM.BranchTarget
		p.fetchDone = false
		p.stats.FlushCycles += 2
	}

	p.ifid = nextIFID
	p.idex = nextIDEX
	p.exmem = nextEXMEM
	p.memwb = nextMEMWB
}

// branchFlush reports whether the instruction now sitting in EX/MEM
// redirected control flow, which flushes the two younger (IF/ID and ID/EX)
// latches.
func (p *Pipeline) branchFlush(e EXMEM) bool {
	return e.Valid && e.BranchTaken
}

// decodeRs1/decodeRs2 peek the source registers of the instruction in IF/ID
// without committing a full Decode, so the hazard unit can check for a
// load-use stall before Decode actually runs this cycle.
func decodeRs1(f IFID, d *insts.Decoder) uint8 {
	if !f.Valid {
		return 0
	}
	return d.Decode(f.Word).Rs1
}

func decodeRs2(f IFID, d *insts.Decoder) uint8 {
	if !f.Valid {
		return 0
	}
	return d.Decode(f.Word).Rs2
}

// Run ticks the pipeline until Done or maxCycles have elapsed, whichever
// comes first, and returns how many cycles actually ran.
func (p *Pipeline) Run(maxCycles uint64) uint64 {
	var ran uint64
	for ran < maxCycles && !p.Done() {
		p.Tick()
		ran++
	}
	return ran
}

// RunCycles ticks the pipeline exactly n times, regardless of Done.
func (p *Pipeline) RunCycles(n uint64) {
	for i := uint64(0); i < n; i++ {
		p.Tick()
	}
}
