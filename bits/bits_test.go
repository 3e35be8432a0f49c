package bits_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/bits"
)

var _ = Describe("Slice", func() {
	It("extracts a mid-word field", func() {
		word := uint32(0b1111_0000_1010_0000_0000_0000_0000_0000)
		Expect(bits.Slice(word, 31, 28)).To(Equal(uint32(0b1111)))
		Expect(bits.Slice(word, 27, 24)).To(Equal(uint32(0b0000)))
	})

	It("extracts a single bit", func() {
		Expect(bits.Bit(0x80000000, 31)).To(Equal(uint32(1)))
		Expect(bits.Bit(0x80000000, 30)).To(Equal(uint32(0)))
	})
})

var _ = Describe("SignExtend", func() {
	It("leaves a positive value unchanged", func() {
		Expect(bits.SignExtend(0x3FF, 12)).To(Equal(uint32(0x3FF)))
	})

	It("sign-extends a negative 12-bit immediate", func() {
		// -1 encoded in 12 bits is 0xFFF.
		Expect(bits.SignExtend(0xFFF, 12)).To(Equal(uint32(0xFFFFFFFF)))
	})

	It("sign-extends a negative 13-bit branch offset", func() {
		// -8 as a 13-bit value.
		Expect(bits.SignExtend(0x1FF8, 13)).To(Equal(uint32(0xFFFFFFF8)))
	})
})

var _ = Describe("Concat", func() {
	It("packs fields most-significant first", func() {
		got := bits.Concat(
			bits.Field{Value: 0b1, Width: 1},
			bits.Field{Value: 0b10, Width: 2},
			bits.Field{Value: 0b101, Width: 3},
		)
		Expect(got).To(Equal(uint32(0b1_10_101)))
	})
})

var _ = Describe("AddMod32", func() {
	It("wraps around at 2^32", func() {
		Expect(bits.AddMod32(0xFFFFFFFF, 1)).To(Equal(uint32(0)))
	})
})
