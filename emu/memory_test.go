package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("reads uninitialized addresses as zero", func() {
		Expect(mem.Read32(0x100)).To(Equal(uint32(0)))
	})

	It("round-trips a word in little-endian order", func() {
		mem.Write32(0x10, 0x12345678)
		Expect(mem.Read8(0x10)).To(Equal(byte(0x78)))
		Expect(mem.Read8(0x11)).To(Equal(byte(0x56)))
		Expect(mem.Read8(0x12)).To(Equal(byte(0x34)))
		Expect(mem.Read8(0x13)).To(Equal(byte(0x12)))
		Expect(mem.Read32(0x10)).To(Equal(uint32(0x12345678)))
	})

	It("round-trips a half-word", func() {
		mem.Write16(0x20, 0xBEEF)
		Expect(mem.Read16(0x20)).To(Equal(uint16(0xBEEF)))
	})

	It("sign-extends a negative byte load", func() {
		mem.Write8(0x30, 0xFF)
		Expect(mem.ReadSigned8(0x30)).To(Equal(uint32(0xFFFFFFFF)))
	})

	It("sign-extends a negative half-word load", func() {
		mem.Write16(0x40, 0x8000)
		Expect(mem.ReadSigned16(0x40)).To(Equal(uint32(0xFFFF8000)))
	})

	Describe("LoadBytes / SetFetchLimit", func() {
		It("loads raw bytes at an arbitrary address and marks the fetch limit", func() {
			mem.LoadBytes(0x400, []byte{0x78, 0x56, 0x34, 0x12})
			mem.SetFetchLimit(0x404)

			word, ok := mem.FetchWord(0x400)
			Expect(ok).To(BeTrue())
			Expect(word).To(Equal(uint32(0x12345678)))

			_, ok = mem.FetchWord(0x404)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("LoadProgram / FetchWord", func() {
		It("fetches loaded words and reports end-of-image past the last one", func() {
			mem.LoadProgram([]uint32{0x11111111, 0x22222222})

			word, ok := mem.FetchWord(0)
			Expect(ok).To(BeTrue())
			Expect(word).To(Equal(uint32(0x11111111)))

			word, ok = mem.FetchWord(4)
			Expect(ok).To(BeTrue())
			Expect(word).To(Equal(uint32(0x22222222)))

			_, ok = mem.FetchWord(8)
			Expect(ok).To(BeFalse())
		})
	})
})
