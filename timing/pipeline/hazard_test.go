package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32pipe/sim/control"
	"github.com/rv32pipe/sim/insts"
	"github.com/rv32pipe/sim/timing/pipeline"
)

var _ = Describe("HazardUnit", func() {
	var hz pipeline.HazardUnit

	Describe("LoadUseHazard", func() {
		It("stalls when the instruction ahead in ID/EX is a load producing rs1", func() {
			idex := pipeline.IDEX{
				Valid: true,
				Inst:  &insts.Instruction{Rd: 3},
				Ctrl:  control.Signals{MemRead: true},
			}
			Expect(hz.LoadUseHazard(idex, 3, 0)).To(BeTrue())
		})

		It("does not stall for an ALU producer", func() {
			idex := pipeline.IDEX{
				Valid: true,
				Inst:  &insts.Instruction{Rd: 3},
				Ctrl:  control.Signals{MemRead: false},
			}
			Expect(hz.LoadUseHazard(idex, 3, 0)).To(BeFalse())
		})

		It("never stalls for x0", func() {
			idex := pipeline.IDEX{
				Valid: true,
				Inst:  &insts.Instruction{Rd: 0},
				Ctrl:  control.Signals{MemRead: true},
			}
			Expect(hz.LoadUseHazard(idex, 0, 0)).To(BeFalse())
		})
	})

	Describe("Forward", func() {
		It("forwards an EX/MEM ALU result", func() {
			exmem := pipeline.EXMEM{Valid: true, Rd: 5, ALUResult: 99, Ctrl: control.Signals{RegWrite: true}}
			Expect(hz.Forward(5, 0, exmem, pipeline.MEMWB{})).To(Equal(uint32(99)))
		})

		It("refuses to forward an EX/MEM load, since ALUResult there is only the address", func() {
			exmem := pipeline.EXMEM{Valid: true, Rd: 5, ALUResult: 0x1000, Ctrl: control.Signals{RegWrite: true, MemRead: true}}
			memwb := pipeline.MEMWB{Valid: true, Rd: 5, MemResult: 42, Ctrl: control.Signals{RegWrite: true, WBSrc: control.WBSrcMem}}
			Expect(hz.Forward(5, 0, exmem, memwb)).To(Equal(uint32(42)))
		})

		It("falls back to MEM/WB when EX/MEM does not produce rs", func() {
			memwb := pipeline.MEMWB{Valid: true, Rd: 7, ALUResult: 11, Ctrl: control.Signals{RegWrite: true}}
			Expect(hz.Forward(7, 0, pipeline.EXMEM{}, memwb)).To(Equal(uint32(11)))
		})

		It("falls back to the decode-time value when nothing forwards", func() {
			Expect(hz.Forward(9, 123, pipeline.EXMEM{}, pipeline.MEMWB{})).To(Equal(uint32(123)))
		})

		It("never forwards into x0", func() {
			exmem := pipeline.EXMEM{Valid: true, Rd: 0, ALUResult: 99, Ctrl: control.Signals{RegWrite: true}}
			Expect(hz.Forward(0, 0, exmem, pipeline.MEMWB{})).To(Equal(uint32(0)))
		})
	})
})
