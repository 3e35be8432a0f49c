// Package insts provides RV32I instruction definitions and decoding.
//
// This package implements decoding of RV32I machine code into a structured
// instruction representation. It supports the base integer subset:
//   - Register-register ALU ops: ADD, SUB, XOR, OR, AND, SLL, SRL, SRA, SLT, SLTU
//   - Register-immediate ALU ops: ADDI, XORI, ORI, ANDI, SLLI, SRLI, SRAI, SLTI, SLTIU
//   - Loads: LB, LH, LW, LBU, LHU
//   - Stores: SB, SH, SW
//   - Branches: BEQ, BNE, BLT, BGE, BLTU, BGEU
//   - Upper immediates: LUI, AUIPC
//   - Jumps: JAL, JALR
//   - System: EBREAK
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00208093) // ADDI x1, x1, 2
package insts
