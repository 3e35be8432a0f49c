package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/emu"
	"github.com/rv32pipe/sim/insts"
)

var _ = Describe("ALU", func() {
	var alu *emu.ALU

	BeforeEach(func() {
		alu = emu.NewALU()
	})

	It("computes ADD", func() {
		Expect(alu.Exec(insts.OpADD, 5, 7)).To(Equal(uint32(12)))
	})

	It("computes SUB with unsigned wraparound", func() {
		Expect(alu.Exec(insts.OpSUB, 0, 1)).To(Equal(uint32(0xFFFFFFFF)))
	})

	It("computes bitwise XOR/OR/AND", func() {
		Expect(alu.Exec(insts.OpXOR, 0b1100, 0b1010)).To(Equal(uint32(0b0110)))
		Expect(alu.Exec(insts.OpOR, 0b1100, 0b1010)).To(Equal(uint32(0b1110)))
		Expect(alu.Exec(insts.OpAND, 0b1100, 0b1010)).To(Equal(uint32(0b1000)))
	})

	It("computes SLL/SRL using only the low 5 bits of the shift amount", func() {
		Expect(alu.Exec(insts.OpSLL, 1, 4)).To(Equal(uint32(16)))
		Expect(alu.Exec(insts.OpSRL, 0x80000000, 4)).To(Equal(uint32(0x08000000)))
		Expect(alu.Exec(insts.OpSLL, 1, 36)).To(Equal(uint32(16))) // 36 & 0x1F == 4
	})

	It("computes SRA as an arithmetic (sign-preserving) shift", func() {
		Expect(alu.Exec(insts.OpSRA, 0x80000000, 4)).To(Equal(uint32(0xF8000000)))
	})

	It("computes SLT as a signed comparison", func() {
		Expect(alu.Exec(insts.OpSLT, 0xFFFFFFFF, 1)).To(Equal(uint32(1))) // -1 < 1
		Expect(alu.Exec(insts.OpSLT, 1, 0xFFFFFFFF)).To(Equal(uint32(0)))
	})

	It("computes SLTU as an unsigned comparison", func() {
		Expect(alu.Exec(insts.OpSLTU, 0xFFFFFFFF, 1)).To(Equal(uint32(0))) // huge unsigned, not < 1
		Expect(alu.Exec(insts.OpSLTU, 1, 0xFFFFFFFF)).To(Equal(uint32(1)))
	})
})

var _ = Describe("Comparator", func() {
	var cmp *emu.Comparator

	BeforeEach(func() {
		cmp = emu.NewComparator()
	})

	It("evaluates BEQ/BNE", func() {
		Expect(cmp.Compare(insts.OpBEQ, 3, 3)).To(BeTrue())
		Expect(cmp.Compare(insts.OpBNE, 3, 3)).To(BeFalse())
	})

	It("evaluates signed BLT/BGE", func() {
		Expect(cmp.Compare(insts.OpBLT, 0xFFFFFFFF, 1)).To(BeTrue()) // -1 < 1
		Expect(cmp.Compare(insts.OpBGE, 1, 0xFFFFFFFF)).To(BeTrue())
	})

	It("evaluates unsigned BLTU/BGEU", func() {
		Expect(cmp.Compare(insts.OpBLTU, 0xFFFFFFFF, 1)).To(BeFalse())
		Expect(cmp.Compare(insts.OpBGEU, 0xFFFFFFFF, 1)).To(BeTrue())
	})
})
