package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/timing/core"
)

func encodeI(imm12 uint32, rs1, funct3, rd, opcode uint32) uint32 {
	return (imm12&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func addi(rd, rs1 uint32, imm int32) uint32 {
	return encodeI(uint32(imm), rs1, 0b000, rd, 0b0010011)
}

func ebreakWord() uint32 {
	return encodeI(1, 0, 0, 0, 0b1110011)
}

var _ = Describe("Core", func() {
	var (
		memory *emu.Memory
		c      *core.Core
	)

	BeforeEach(func() {
		memory = emu.NewMemory()
		c = core.NewCore(memory, 0)
	})

	It("creates a core with a pipeline", func() {
		Expect(c).NotTo(BeNil())
		Expect(c.Pipeline).NotTo(BeNil())
	})

	It("is not halted initially", func() {
		Expect(c.Halted()).To(BeFalse())
	})

	It("executes instructions through tick", func() {
		memory.LoadProgram([]uint32{
			addi(1, 0, 42),
			addi(0, 0, 0),
			addi(0, 0, 0),
			ebreakWord(),
		})

		for i := 0; i < 10; i++ {
			c.Tick()
		}

		Expect(c.Regs().ReadReg(1)).To(Equal(uint32(42)))
	})

	It("returns stats after ticking", func() {
		memory.LoadProgram([]uint32{addi(1, 0, 1), ebreakWord()})

		c.Tick()
		c.Tick()

		Expect(c.Stats().Cycles).To(Equal(uint64(2)))
	})

	It("runs until halt", func() {
		memory.LoadProgram([]uint32{addi(1, 0, 10), ebreakWord()})

		c.Run(1000)

		Expect(c.Halted()).To(BeTrue())
		Expect(c.Regs().ReadReg(1)).To(Equal(uint32(10)))
	})

	It("runs for a fixed number of cycles regardless of halt state", func() {
		memory.LoadProgram([]uint32{
			addi(1, 1, 1),
			addi(0, 0, 0),
			addi(0, 0, 0),
			addi(0, 0, 0),
			addi(0, 0, 0),
		})

		c.RunCycles(5)

		Expect(c.Stats().Cycles).To(Equal(uint64(5)))
		Expect(c.Halted()).To(BeFalse())
	})

	It("stops the run loop once halted", func() {
		memory.LoadProgram([]uint32{ebreakWord()})

		ran := c.Run(100)

		Expect(c.Halted()).To(BeTrue())
		Expect(ran).To(BeNumerically("<", 100))
	})

	It("resets cycle/instruction counters and halt state", func() {
		memory.LoadProgram([]uint32{addi(1, 0, 1), ebreakWord()})
		c.Run(1000)
		Expect(c.Stats().Cycles).To(BeNumerically(">", 0))

		c.Reset()

		Expect(c.Stats().Cycles).To(Equal(uint64(0)))
		Expect(c.Stats().Instructions).To(Equal(uint64(0)))
		Expect(c.Halted()).To(BeFalse())
	})
})
