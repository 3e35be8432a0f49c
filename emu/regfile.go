// Package emu provides the architectural functional units shared by the
// pipelined driver and the functional reference emulator: the register
// file, instruction/data memory, the ALU, and the branch comparator.
package emu

// RegFile represents the RV32I architectural register file: 32 general
// purpose registers x0..x31. x0 is hardwired to zero: reads always return 0
// and writes are silently discarded.
type RegFile struct {
	// X holds registers x0-x31. X[0] is kept at zero by convention but is
	// never read directly — ReadReg/WriteReg enforce the hardwiring so a
	// stray direct field write can't violate the invariant undetected.
	X [32]uint32
}

// ReadReg reads a register value. x0 always reads as zero.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == 0 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to x0 are silently
// discarded, preserving the "r0 is always zero" invariant.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == 0 {
		return
	}
	r.X[reg] = value
}
