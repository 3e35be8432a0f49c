package pipeline

import "github.com/rv32pipe/sim/control"

// HazardUnit detects load-use hazards during decode and resolves RAW
// hazards by forwarding producer values into EX.
type HazardUnit struct{}

// LoadUseHazard reports whether the instruction currently in ID (reading
// rs1/rs2) must stall for one cycle because the instruction ahead of it in
// ID/EX is a load that has not yet produced its result.
func (HazardUnit) LoadUseHazard(idex IDEX, rs1, rs2 uint8) bool {
	if !idex.Valid || !idex.Ctrl.MemRead || idex.Inst.Rd == 0 {
		return false
	}
	return idex.Inst.Rd == rs1 || idex.Inst.Rd == rs2
}

// Forward resolves the value EX should use for source register rs, given
// the value read at decode time (idexVal) and the two producer latches
// further down the pipeline. EX/MEM is preferred over MEM/WB since it holds
// the more recently issued producer.
//
// A load sitting in EX/MEM has not fetched its data yet — ALUResult there is
// only the computed address — so it must never be forwarded; the consumer
// instead waits one more cycle and picks the value up from MEM/WB once the
// load has run through Memory.
func (HazardUnit) Forward(rs uint8, idexVal uint32, exmem EXMEM, memwb MEMWB) uint32 {
	if rs == 0 {
		return idexVal
	}

	if exmem.Valid && exmem.Ctrl.RegWrite && exmem.Rd == rs && !exmem.Ctrl.MemRead {
		switch exmem.Ctrl.WBSrc {
		case control.WBSrcPCPlus4:
			return exmem.PCPlus4
		case control.WBSrcImm:
			return exmem.Imm
		default:
			return exmem.ALUResult
		}
	}

	if memwb.Valid && memwb.Ctrl.RegWrite && memwb.Rd == rs {
		switch memwb.Ctrl.WBSrc {
		case control.WBSrcMem:
			return memwb.MemResult
		case control.WBSrcPCPlus4:
			return memwb.PCPlus4
		case control.WBSrcImm:
			return memwb.Imm
		default:
			return memwb.ALUResult
		}
	}

	return idexVal
}
