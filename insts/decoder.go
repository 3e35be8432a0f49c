package insts

import "github.com/rv32pipe/sim/bits"

// Op represents an RV32I opcode.
type Op uint8

// RV32I opcodes supported by this simulator.
const (
	OpUnknown Op = iota
	OpADD
	OpSUB
	OpXOR
	OpOR
	OpAND
	OpSLL
	OpSRL
	OpSRA
	OpSLT
	OpSLTU
	OpADDI
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpSLTI
	OpSLTIU
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpEBREAK
)

// Format represents an instruction encoding format.
type Format uint8

// RV32I instruction formats.
const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

// Raw RV32I opcode field values (bits [6:0]) for the instructions this
// simulator supports.
const (
	opcodeOp     = 0b0110011 // R-type: ADD/SUB/... register-register
	opcodeOpImm  = 0b0010011 // I-type: ADDI/... register-immediate
	opcodeLoad   = 0b0000011 // I-type: LB/LH/LW/LBU/LHU
	opcodeStore  = 0b0100011 // S-type: SB/SH/SW
	opcodeBranch = 0b1100011 // B-type: BEQ/BNE/...
	opcodeLUI    = 0b0110111 // U-type
	opcodeAUIPC  = 0b0010111 // U-type
	opcodeJAL    = 0b1101111 // J-type
	opcodeJALR   = 0b1100111 // I-type
	opcodeSystem = 0b1110011 // EBREAK (and friends, unsupported)
)

// Instruction represents a decoded RV32I instruction.
type Instruction struct {
	Word   uint32 // raw instruction word, kept for error reporting/tracing
	Op     Op
	Format Format

	Rd     uint8
	Rs1    uint8
	Rs2    uint8
	Funct3 uint8
	Funct7 uint8

	// Imm is the sign-extended 32-bit immediate; unused fields are zero.
	// Stored as the uint32 bit pattern of the signed value.
	Imm uint32
}

// Decoder decodes RV32I machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word. An instruction whose
// opcode/funct3/funct7 combination is not in the supported subset decodes to
// Op == OpUnknown (Format is FormatUnknown only when the opcode itself is not
// recognised; otherwise it names the opcode's format); the caller (the control unit and,
// above it, the driver) is responsible for treating that as a fatal decode
// error.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Word: word, Op: OpUnknown, Format: FormatUnknown}

	opcode := bits.Slice(word, 6, 0)

	switch opcode {
	case opcodeOp:
		d.decodeR(word, inst)
	case opcodeOpImm:
		d.decodeOpImm(word, inst)
	case opcodeLoad:
		d.decodeLoad(word, inst)
	case opcodeStore:
		d.decodeStore(word, inst)
	case opcodeBranch:
		d.decodeBranch(word, inst)
	case opcodeLUI:
		d.decodeU(word, inst, OpLUI)
	case opcodeAUIPC:
		d.decodeU(word, inst, OpAUIPC)
	case opcodeJAL:
		d.decodeJAL(word, inst)
	case opcodeJALR:
		d.decodeJALR(word, inst)
	case opcodeSystem:
		d.decodeSystem(word, inst)
	}

	return inst
}

func rFields(word uint32) (rd, funct3, rs1, rs2, funct7 uint32) {
	rd = bits.Slice(word, 11, 7)
	funct3 = bits.Slice(word, 14, 12)
	rs1 = bits.Slice(word, 19, 15)
	rs2 = bits.Slice(word, 24, 20)
	funct7 = bits.Slice(word, 31, 25)
	return
}

// decodeR decodes the R-type register-register ALU instructions.
func (d *Decoder) decodeR(word uint32, inst *Instruction) {
	rd, funct3, rs1, rs2, funct7 := rFields(word)
	inst.Format = FormatR
	inst.Rd = uint8(rd)
	inst.Rs1 = uint8(rs1)
	inst.Rs2 = uint8(rs2)
	inst.Funct3 = uint8(funct3)
	inst.Funct7 = uint8(funct7)

	// funct7 is 0, or 0b0100000 for SUB/SRA; any other value is outside the
	// supported subset.
	if funct7 != 0 && !(funct7 == 0b0100000 && (funct3 == 0b000 || funct3 == 0b101)) {
		return
	}

	switch funct3 {
	case 0b000:
		if funct7 == 0b0100000 {
			inst.Op = OpSUB
		} else {
			inst.Op = OpADD
		}
	case 0b100:
		inst.Op = OpXOR
	case 0b110:
		inst.Op = OpOR
	case 0b111:
		inst.Op = OpAND
	case 0b001:
		inst.Op = OpSLL
	case 0b101:
		if funct7 == 0b0100000 {
			inst.Op = OpSRA
		} else {
			inst.Op = OpSRL
		}
	case 0b010:
		inst.Op = OpSLT
	case 0b011:
		inst.Op = OpSLTU
	}
}

// decodeOpImm decodes the I-type register-immediate ALU instructions.
func (d *Decoder) decodeOpImm(word uint32, inst *Instruction) {
	rd, funct3, rs1, _, _ := rFields(word)
	imm12 := bits.Slice(word, 31, 20)
	inst.Format = FormatI
	inst.Rd = uint8(rd)
	inst.Rs1 = uint8(rs1)
	inst.Funct3 = uint8(funct3)
	inst.Imm = bits.SignExtend(imm12, 12)

	switch funct3 {
	case 0b000:
		inst.Op = OpADDI
	case 0b100:
		inst.Op = OpXORI
	case 0b110:
		inst.Op = OpORI
	case 0b111:
		inst.Op = OpANDI
	case 0b010:
		inst.Op = OpSLTI
	case 0b011:
		inst.Op = OpSLTIU
	case 0b001:
		// SLLI: shamt in imm[4:0], imm[11:5] must be 0b0000000.
		inst.Funct7 = uint8(bits.Slice(word, 31, 25))
		inst.Imm = bits.Slice(word, 24, 20)
		if inst.Funct7 == 0 {
			inst.Op = OpSLLI
		}
	case 0b101:
		// SRLI/SRAI: shamt in imm[4:0], distinguished by imm[11:5].
		inst.Funct7 = uint8(bits.Slice(word, 31, 25))
		inst.Imm = bits.Slice(word, 24, 20)
		switch inst.Funct7 {
		case 0b0100000:
			inst.Op = OpSRAI
		case 0:
			inst.Op = OpSRLI
		}
	}
}

// decodeLoad decodes the I-type load instructions.
func (d *Decoder) decodeLoad(word uint32, inst *Instruction) {
	rd, funct3, rs1, _, _ := rFields(word)
	imm12 := bits.Slice(word, 31, 20)
	inst.Format = FormatI
	inst.Rd = uint8(rd)
	inst.Rs1 = uint8(rs1)
	inst.Funct3 = uint8(funct3)
	inst.Imm = bits.SignExtend(imm12, 12)

	switch funct3 {
	case 0b000:
		inst.Op = OpLB
	case 0b001:
		inst.Op = OpLH
	case 0b010:
		inst.Op = OpLW
	case 0b100:
		inst.Op = OpLBU
	case 0b101:
		inst.Op = OpLHU
	}
}

// decodeStore decodes the S-type store instructions.
// imm = {word[31:25], word[11:7]}, sign-extended.
func (d *Decoder) decodeStore(word uint32, inst *Instruction) {
	_, funct3, rs1, rs2, funct7 := rFields(word)
	immLo := bits.Slice(word, 11, 7)
	inst.Format = FormatS
	inst.Rs1 = uint8(rs1)
	inst.Rs2 = uint8(rs2)
	inst.Funct3 = uint8(funct3)
	imm := bits.Concat(
		bits.Field{Value: funct7, Width: 7},
		bits.Field{Value: immLo, Width: 5},
	)
	inst.Imm = bits.SignExtend(imm, 12)

	switch funct3 {
	case 0b000:
		inst.Op = OpSB
	case 0b001:
		inst.Op = OpSH
	case 0b010:
		inst.Op = OpSW
	}
}

// decodeBranch decodes the B-type branch instructions.
// imm = {word[31], word[7], word[30:25], word[11:8], 0}, sign-extended, byte offset.
func (d *Decoder) decodeBranch(word uint32, inst *Instruction) {
	_, funct3, rs1, rs2, _ := rFields(word)
	inst.Format = FormatB
	inst.Rs1 = uint8(rs1)
	inst.Rs2 = uint8(rs2)
	inst.Funct3 = uint8(funct3)

	imm12 := bits.Bit(word, 31)
	imm11 := bits.Bit(word, 7)
	imm10_5 := bits.Slice(word, 30, 25)
	imm4_1 := bits.Slice(word, 11, 8)
	imm := bits.Concat(
		bits.Field{Value: imm12, Width: 1},
		bits.Field{Value: imm11, Width: 1},
		bits.Field{Value: imm10_5, Width: 6},
		bits.Field{Value: imm4_1, Width: 4},
		bits.Field{Value: 0, Width: 1},
	)
	inst.Imm = bits.SignExtend(imm, 13)

	switch funct3 {
	case 0b000:
		inst.Op = OpBEQ
	case 0b001:
		inst.Op = OpBNE
	case 0b100:
		inst.Op = OpBLT
	case 0b101:
		inst.Op = OpBGE
	case 0b110:
		inst.Op = OpBLTU
	case 0b111:
		inst.Op = OpBGEU
	}
}

// decodeU decodes the U-type upper-immediate instructions (LUI, AUIPC).
// imm = {word[31:12], 12'b0}; already MSB-aligned, no sign extension needed.
func (d *Decoder) decodeU(word uint32, inst *Instruction, op Op) {
	rd := bits.Slice(word, 11, 7)
	imm20 := bits.Slice(word, 31, 12)
	inst.Format = FormatU
	inst.Rd = uint8(rd)
	inst.Imm = imm20 << 12
	inst.Op = op
}

// decodeJAL decodes the J-type unconditional jump.
// imm = {word[31], word[19:12], word[20], word[30:21], 0}, sign-extended, byte offset.
func (d *Decoder) decodeJAL(word uint32, inst *Instruction) {
	rd := bits.Slice(word, 11, 7)
	inst.Format = FormatJ
	inst.Rd = uint8(rd)
	inst.Op = OpJAL

	imm20 := bits.Bit(word, 31)
	imm19_12 := bits.Slice(word, 19, 12)
	imm11 := bits.Bit(word, 20)
	imm10_1 := bits.Slice(word, 30, 21)
	imm := bits.Concat(
		bits.Field{Value: imm20, Width: 1},
		bits.Field{Value: imm19_12, Width: 8},
		bits.Field{Value: imm11, Width: 1},
		bits.Field{Value: imm10_1, Width: 10},
		bits.Field{Value: 0, Width: 1},
	)
	inst.Imm = bits.SignExtend(imm, 21)
}

// decodeJALR decodes the I-type indirect jump.
func (d *Decoder) decodeJALR(word uint32, inst *Instruction) {
	rd, funct3, rs1, _, _ := rFields(word)
	imm12 := bits.Slice(word, 31, 20)
	inst.Format = FormatI
	inst.Rd = uint8(rd)
	inst.Rs1 = uint8(rs1)
	inst.Funct3 = uint8(funct3)
	inst.Imm = bits.SignExtend(imm12, 12)
	inst.Op = OpJALR
}

// decodeSystem decodes EBREAK; all other SYSTEM-opcode encodings remain
// OpUnknown (privileged/CSR instructions are not supported).
func (d *Decoder) decodeSystem(word uint32, inst *Instruction) {
	imm12 := bits.Slice(word, 31, 20)
	funct3, rd, rs1 := bits.Slice(word, 14, 12), bits.Slice(word, 11, 7), bits.Slice(word, 19, 15)
	if funct3 == 0 && rd == 0 && rs1 == 0 && imm12 == 1 {
		inst.Format = FormatI
		inst.Op = OpEBREAK
	}
}
