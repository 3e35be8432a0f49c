// Package core provides the cycle-accurate CPU core model.
// It wraps the pipeline implementation to provide a high-level interface.
package core

import (
	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/timing/pipeline"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of stall cycles.
	Stalls uint64
	// Flushes is the number of cycles lost to pipeline flushes (two per
	// taken branch or jump).
	Flushes uint64
}

// CPI returns cycles per retired instruction, or zero before anything has
// retired.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core represents a cycle-accurate CPU core model.
// It wraps a 5-stage pipeline and provides a simple interface for simulation.
type Core struct {
	// Pipeline is the underlying 5-stage pipeline.
	Pipeline *pipeline.Pipeline
}

// NewCore creates a new Core backed by mem, fetching from resetPC.
func NewCore(mem *emu.Memory, resetPC uint32) *Core {
	return &Core{
		Pipeline: pipeline.New(
			pipeline.WithMemory(mem),
			pipeline.WithResetPC(resetPC),
		),
	}
}

// Regs exposes the architectural register file.
func (c *Core) Regs() *emu.RegFile {
	return c.Pipeline.Regs()
}

// Memory exposes the data/instruction memory.
func (c *Core) Memory() *emu.Memory {
	return c.Pipeline.Memory()
}

// Tick executes one pipeline cycle.
func (c *Core) Tick() {
	c.Pipeline.Tick()
}

// Halted returns true once an EBREAK has retired.
func (c *Core) Halted() bool {
	return c.Pipeline.Halted()
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	pipeStats := c.Pipeline.Stats()
	return Stats{
		Cycles:       pipeStats.Cycles,
		Instructions: pipeStats.Instructions,
		Stalls:       pipeStats.StallCycles,
		Flushes:      pipeStats.FlushCycles,
	}
}

// Run ticks the core until it halts or maxCycles elapse, whichever comes
// first, and reports how many cycles actually ran.
func (c *Core) Run(maxCycles uint64) uint64 {
	return c.Pipeline.Run(maxCycles)
}

// RunCycles ticks the core exactly n times, regardless of halt state.
func (c *Core) RunCycles(n uint64) {
	c.Pipeline.RunCycles(n)
}

// Reset clears all core state, rewinding the PC to the pipeline's reset PC.
func (c *Core) Reset() {
	c.Pipeline.Reset()
}
