package emu

// Memory models both instruction memory (IMEM) and data memory (DMEM).
// IMEM is an ordered, read-only sequence of 32-bit words populated once
// before simulation; DMEM is a sparse byte-addressed, little-endian store
// with byte/half/word access. Both are backed by the same sparse byte map
// here, since nothing requires IMEM and DMEM to occupy disjoint address
// spaces.
type Memory struct {
	data       map[uint32]byte
	fetchLimit uint32 // first byte address past the loaded IMEM image
}

// NewMemory creates an empty memory. Uninitialized reads return zero.
func NewMemory() *Memory {
	return &Memory{data: make(map[uint32]byte)}
}

// LoadProgram installs a program image as IMEM, starting at byte address 0.
func (m *Memory) LoadProgram(words []uint32) {
	for i, w := range words {
		m.Write32(uint32(i*4), w)
	}
	m.fetchLimit = uint32(len(words) * 4)
}

// LoadBytes installs raw bytes at addr, for loaders (e.g. the ELF loader)
// that place segments at arbitrary addresses rather than a dense word array
// starting at zero.
func (m *Memory) LoadBytes(addr uint32, data []byte) {
	for i, b := range data {
		m.data[addr+uint32(i)] = b
	}
}

// SetFetchLimit marks limit as the first byte address Fetch must refuse,
// for images (e.g. loaded from an ELF entry point) whose extent LoadProgram
// cannot infer on its own.
func (m *Memory) SetFetchLimit(limit uint32) {
	m.fetchLimit = limit
}

// FetchWord reads the instruction word at the given byte address. ok is
// false once pc has advanced past the end of the loaded program image,
// which the fetch stage treats as the normal end-of-program halt condition.
func (m *Memory) FetchWord(pc uint32) (word uint32, ok bool) {
	if pc >= m.fetchLimit {
		return 0, false
	}
	return m.Read32(pc), true
}

// Read8 reads a single byte; uninitialized addresses read as zero.
func (m *Memory) Read8(addr uint32) byte {
	return m.data[addr]
}

// Write8 writes a single byte.
func (m *Memory) Write8(addr uint32, value byte) {
	m.data[addr] = value
}

// Read16 reads a little-endian half-word.
func (m *Memory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 writes a little-endian half-word.
func (m *Memory) Write16(addr uint32, value uint16) {
	m.Write8(addr, byte(value))
	m.Write8(addr+1, byte(value>>8))
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint32) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint32, value uint32) {
	m.Write16(addr, uint16(value))
	m.Write16(addr+2, uint16(value>>16))
}

// ReadSigned8/16 sign-extend a loaded byte/half-word to a 32-bit value, for
// LB/LH. Unsigned loads (LBU/LHU/LW) use Read8/Read16/Read32 directly.
func (m *Memory) ReadSigned8(addr uint32) uint32 {
	return uint32(int32(int8(m.Read8(addr))))
}

func (m *Memory) ReadSigned16(addr uint32) uint32 {
	return uint32(int32(int16(m.Read16(addr))))
}
