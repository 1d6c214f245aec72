package cpu

// Kind identifies one of the 8080's 78 mnemonics. Several opcodes can share
// a Kind (e.g. every MOV r,r' byte shares KindMOV); conditional jumps/calls/
// returns each get their own Kind because their branch predicate differs.
type Kind int

const (
	KindNOP Kind = iota
	KindLXI
	KindSTAX
	KindINX
	KindINR
	KindDCR
	KindMVI
	KindRLC
	KindDAD
	KindLDAX
	KindDCX
	KindRRC
	KindRAL
	KindRAR
	KindSHLD
	KindDAA
	KindLHLD
	KindCMA
	KindSTA
	KindSTC
	KindLDA
	KindCMC
	KindMOV
	KindHLT
	KindADD
	KindADC
	KindSUB
	KindSBB
	KindANA
	KindXRA
	KindORA
	KindCMP
	KindRNZ
	KindPOP
	KindJNZ
	KindJMP
	KindCNZ
	KindPUSH
	KindADI
	KindRST
	KindRZ
	KindRET
	KindJZ
	KindCZ
	KindCALL
	KindACI
	KindRNC
	KindJNC
	KindOUT
	KindCNC
	KindSUI
	KindRC
	KindJC
	KindIN
	KindCC
	KindSBI
	KindRPO
	KindXTHL
	KindJPO
	KindCPO
	KindANI
	KindRPE
	KindPCHL
	KindJPE
	KindXCHG
	KindCPE
	KindXRI
	KindRP
	KindJP
	KindDI
	KindCP
	KindORI
	KindRM
	KindSPHL
	KindJM
	KindEI
	KindCM
	KindCPI
)

// OperandKind tags what shape of operand a Descriptor carries, per spec: a
// register index, a register pair identifier, two register indices (MOV),
// or none.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandReg
	OperandRegPair
	OperandRegReg
)

// OperandSpec is the tagged-variant operand descriptor consumed uniformly
// by the executor, in place of the per-case operand massaging a plain
// switch would otherwise require.
type OperandSpec struct {
	Kind OperandKind
	Reg  RegID  // OperandReg; OperandRegReg: the destination
	Src  RegID  // OperandRegReg: the source
	Pair PairID // OperandRegPair
}

// Descriptor is the immutable, per-opcode entry of the instruction table.
type Descriptor struct {
	Kind           Kind
	Mnemonic       string
	Length         byte // 1, 2, or 3
	CyclesNotTaken byte
	CyclesTaken    byte
	Operand        OperandSpec
}

// Table is the 256-entry instruction table, indexed by opcode byte. It is
// built once in init and never mutated afterwards.
var Table [256]Descriptor

// regOrder maps the 8080's 3-bit register field encoding (0-7) to the
// register it names, including M (memory at HL) at index 6.
var regOrder = [8]RegID{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA}

func reg(id RegID) OperandSpec     { return OperandSpec{Kind: OperandReg, Reg: id} }
func pair(id PairID) OperandSpec   { return OperandSpec{Kind: OperandRegPair, Pair: id} }
func none() OperandSpec            { return OperandSpec{Kind: OperandNone} }
func regreg(dst, src RegID) OperandSpec {
	return OperandSpec{Kind: OperandRegReg, Reg: dst, Src: src}
}

// u sets a descriptor with identical taken/not-taken cycle counts, which is
// every instruction except conditional CALL/RET.
func u(kind Kind, mnemonic string, length, cycles byte, operand OperandSpec) Descriptor {
	return Descriptor{Kind: kind, Mnemonic: mnemonic, Length: length, CyclesNotTaken: cycles, CyclesTaken: cycles, Operand: operand}
}

// c2 sets a descriptor whose cost differs by whether the branch/call/return
// condition held.
func c2(kind Kind, mnemonic string, length, notTaken, taken byte, operand OperandSpec) Descriptor {
	return Descriptor{Kind: kind, Mnemonic: mnemonic, Length: length, CyclesNotTaken: notTaken, CyclesTaken: taken, Operand: operand}
}

func init() {
	buildLowRows()
	buildMovRow()
	buildAluRows()
	buildHighRows()
	aliasUndocumented()
}

// buildLowRows fills in opcodes 0x00-0x3F: NOP/LXI/STAX/INX/INR/DCR/MVI/RLC
// and friends, one row (0x_0-0x_F) per register pair (BC, DE, HL, SP/M/A).
func buildLowRows() {
	Table[0x00] = u(KindNOP, "NOP", 1, 4, none())
	Table[0x01] = u(KindLXI, "LXI", 3, 10, pair(PairBC))
	Table[0x02] = u(KindSTAX, "STAX", 1, 7, pair(PairBC))
	Table[0x03] = u(KindINX, "INX", 1, 5, pair(PairBC))
	Table[0x04] = u(KindINR, "INR", 1, 5, reg(RegB))
	Table[0x05] = u(KindDCR, "DCR", 1, 5, reg(RegB))
	Table[0x06] = u(KindMVI, "MVI", 2, 7, reg(RegB))
	Table[0x07] = u(KindRLC, "RLC", 1, 4, none())
	Table[0x08] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x09] = u(KindDAD, "DAD", 1, 10, pair(PairBC))
	Table[0x0A] = u(KindLDAX, "LDAX", 1, 7, pair(PairBC))
	Table[0x0B] = u(KindDCX, "DCX", 1, 5, pair(PairBC))
	Table[0x0C] = u(KindINR, "INR", 1, 5, reg(RegC))
	Table[0x0D] = u(KindDCR, "DCR", 1, 5, reg(RegC))
	Table[0x0E] = u(KindMVI, "MVI", 2, 7, reg(RegC))
	Table[0x0F] = u(KindRRC, "RRC", 1, 4, none())

	Table[0x10] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x11] = u(KindLXI, "LXI", 3, 10, pair(PairDE))
	Table[0x12] = u(KindSTAX, "STAX", 1, 7, pair(PairDE))
	Table[0x13] = u(KindINX, "INX", 1, 5, pair(PairDE))
	Table[0x14] = u(KindINR, "INR", 1, 5, reg(RegD))
	Table[0x15] = u(KindDCR, "DCR", 1, 5, reg(RegD))
	Table[0x16] = u(KindMVI, "MVI", 2, 7, reg(RegD))
	Table[0x17] = u(KindRAL, "RAL", 1, 4, none())
	Table[0x18] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x19] = u(KindDAD, "DAD", 1, 10, pair(PairDE))
	Table[0x1A] = u(KindLDAX, "LDAX", 1, 7, pair(PairDE))
	Table[0x1B] = u(KindDCX, "DCX", 1, 5, pair(PairDE))
	Table[0x1C] = u(KindINR, "INR", 1, 5, reg(RegE))
	Table[0x1D] = u(KindDCR, "DCR", 1, 5, reg(RegE))
	Table[0x1E] = u(KindMVI, "MVI", 2, 7, reg(RegE))
	Table[0x1F] = u(KindRAR, "RAR", 1, 4, none())

	Table[0x20] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x21] = u(KindLXI, "LXI", 3, 10, pair(PairHL))
	Table[0x22] = u(KindSHLD, "SHLD", 3, 16, none())
	Table[0x23] = u(KindINX, "INX", 1, 5, pair(PairHL))
	Table[0x24] = u(KindINR, "INR", 1, 5, reg(RegH))
	Table[0x25] = u(KindDCR, "DCR", 1, 5, reg(RegH))
	Table[0x26] = u(KindMVI, "MVI", 2, 7, reg(RegH))
	Table[0x27] = u(KindDAA, "DAA", 1, 4, none())
	Table[0x28] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x29] = u(KindDAD, "DAD", 1, 10, pair(PairHL))
	Table[0x2A] = u(KindLHLD, "LHLD", 3, 16, none())
	Table[0x2B] = u(KindDCX, "DCX", 1, 5, pair(PairHL))
	Table[0x2C] = u(KindINR, "INR", 1, 5, reg(RegL))
	Table[0x2D] = u(KindDCR, "DCR", 1, 5, reg(RegL))
	Table[0x2E] = u(KindMVI, "MVI", 2, 7, reg(RegL))
	Table[0x2F] = u(KindCMA, "CMA", 1, 4, none())

	Table[0x30] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x31] = u(KindLXI, "LXI", 3, 10, pair(PairSP))
	Table[0x32] = u(KindSTA, "STA", 3, 13, none())
	Table[0x33] = u(KindINX, "INX", 1, 5, pair(PairSP))
	Table[0x34] = u(KindINR, "INR", 1, 10, reg(RegM))
	Table[0x35] = u(KindDCR, "DCR", 1, 10, reg(RegM))
	Table[0x36] = u(KindMVI, "MVI", 2, 10, reg(RegM))
	Table[0x37] = u(KindSTC, "STC", 1, 4, none())
	Table[0x38] = u(KindNOP, "NOP", 1, 4, none()) // undocumented alias
	Table[0x39] = u(KindDAD, "DAD", 1, 10, pair(PairSP))
	Table[0x3A] = u(KindLDA, "LDA", 3, 13, none())
	Table[0x3B] = u(KindDCX, "DCX", 1, 5, pair(PairSP))
	Table[0x3C] = u(KindINR, "INR", 1, 5, reg(RegA))
	Table[0x3D] = u(KindDCR, "DCR", 1, 5, reg(RegA))
	Table[0x3E] = u(KindMVI, "MVI", 2, 7, reg(RegA))
	Table[0x3F] = u(KindCMC, "CMC", 1, 4, none())
}

// buildMovRow fills 0x40-0x7F: MOV r,r' for every (dst,src) pair, except
// 0x76 which is HLT. Cost is 7 cycles when M is the source or destination,
// 5 cycles otherwise.
func buildMovRow() {
	for dstIdx, dst := range regOrder {
		for srcIdx, src := range regOrder {
			op := byte(0x40 + dstIdx*8 + srcIdx)
			if dst == RegM && src == RegM {
				continue // 0x76 is HLT, not MOV M,M
			}
			cycles := byte(5)
			if dst == RegM || src == RegM {
				cycles = 7
			}
			Table[op] = u(KindMOV, "MOV", 1, cycles, regreg(dst, src))
		}
	}
	Table[0x76] = u(KindHLT, "HLT", 1, 7, none())
}

// buildAluRows fills 0x80-0xBF: the eight ALU ops (ADD/ADC/SUB/SBB/ANA/XRA/
// ORA/CMP) each applied to all eight register operands. Cost is 7 cycles
// when the operand is M, 4 cycles otherwise.
func buildAluRows() {
	ops := [8]struct {
		kind Kind
		name string
	}{
		{KindADD, "ADD"}, {KindADC, "ADC"}, {KindSUB, "SUB"}, {KindSBB, "SBB"},
		{KindANA, "ANA"}, {KindXRA, "XRA"}, {KindORA, "ORA"}, {KindCMP, "CMP"},
	}
	for opIdx, op := range ops {
		for srcIdx, src := range regOrder {
			code := byte(0x80 + opIdx*8 + srcIdx)
			cycles := byte(4)
			if src == RegM {
				cycles = 7
			}
			Table[code] = u(op.kind, op.name, 1, cycles, reg(src))
		}
	}
}

// buildHighRows fills 0xC0-0xFF: the eight conditional return/jump/call
// groups (NZ, Z, NC, C, PO, PE, P, M), PUSH/POP, RST, and the remaining
// unconditional instructions (JMP, CALL, RET, immediate-ALU, I/O, XCHG,
// XTHL, SPHL, PCHL, DI, EI).
func buildHighRows() {
	Table[0xC0] = c2(KindRNZ, "RNZ", 1, 5, 11, none())
	Table[0xC1] = u(KindPOP, "POP", 1, 10, pair(PairBC))
	Table[0xC2] = u(KindJNZ, "JNZ", 3, 10, none())
	Table[0xC3] = u(KindJMP, "JMP", 3, 10, none())
	Table[0xC4] = c2(KindCNZ, "CNZ", 3, 11, 17, none())
	Table[0xC5] = u(KindPUSH, "PUSH", 1, 11, pair(PairBC))
	Table[0xC6] = u(KindADI, "ADI", 2, 7, none())
	Table[0xC7] = u(KindRST, "RST", 1, 11, none())
	Table[0xC8] = c2(KindRZ, "RZ", 1, 5, 11, none())
	Table[0xC9] = u(KindRET, "RET", 1, 10, none())
	Table[0xCA] = u(KindJZ, "JZ", 3, 10, none())
	Table[0xCB] = u(KindJMP, "JMP", 3, 10, none()) // undocumented alias
	Table[0xCC] = c2(KindCZ, "CZ", 3, 11, 17, none())
	Table[0xCD] = u(KindCALL, "CALL", 3, 17, none())
	Table[0xCE] = u(KindACI, "ACI", 2, 7, none())
	Table[0xCF] = u(KindRST, "RST", 1, 11, none())

	Table[0xD0] = c2(KindRNC, "RNC", 1, 5, 11, none())
	Table[0xD1] = u(KindPOP, "POP", 1, 10, pair(PairDE))
	Table[0xD2] = u(KindJNC, "JNC", 3, 10, none())
	Table[0xD3] = u(KindOUT, "OUT", 2, 10, none())
	Table[0xD4] = c2(KindCNC, "CNC", 3, 11, 17, none())
	Table[0xD5] = u(KindPUSH, "PUSH", 1, 11, pair(PairDE))
	Table[0xD6] = u(KindSUI, "SUI", 2, 7, none())
	Table[0xD7] = u(KindRST, "RST", 1, 11, none())
	Table[0xD8] = c2(KindRC, "RC", 1, 5, 11, none())
	Table[0xD9] = u(KindRET, "RET", 1, 10, none()) // undocumented alias
	Table[0xDA] = u(KindJC, "JC", 3, 10, none())
	Table[0xDB] = u(KindIN, "IN", 2, 10, none())
	Table[0xDC] = c2(KindCC, "CC", 3, 11, 17, none())
	Table[0xDD] = u(KindCALL, "CALL", 3, 17, none()) // undocumented alias
	Table[0xDE] = u(KindSBI, "SBI", 2, 7, none())
	Table[0xDF] = u(KindRST, "RST", 1, 11, none())

	Table[0xE0] = c2(KindRPO, "RPO", 1, 5, 11, none())
	Table[0xE1] = u(KindPOP, "POP", 1, 10, pair(PairHL))
	Table[0xE2] = u(KindJPO, "JPO", 3, 10, none())
	Table[0xE3] = u(KindXTHL, "XTHL", 1, 18, none())
	Table[0xE4] = c2(KindCPO, "CPO", 3, 11, 17, none())
	Table[0xE5] = u(KindPUSH, "PUSH", 1, 11, pair(PairHL))
	Table[0xE6] = u(KindANI, "ANI", 2, 7, none())
	Table[0xE7] = u(KindRST, "RST", 1, 11, none())
	Table[0xE8] = c2(KindRPE, "RPE", 1, 5, 11, none())
	Table[0xE9] = u(KindPCHL, "PCHL", 1, 5, none())
	Table[0xEA] = u(KindJPE, "JPE", 3, 10, none())
	Table[0xEB] = u(KindXCHG, "XCHG", 1, 4, none())
	Table[0xEC] = c2(KindCPE, "CPE", 3, 11, 17, none())
	Table[0xED] = u(KindCALL, "CALL", 3, 17, none()) // undocumented alias
	Table[0xEE] = u(KindXRI, "XRI", 2, 7, none())
	Table[0xEF] = u(KindRST, "RST", 1, 11, none())

	Table[0xF0] = c2(KindRP, "RP", 1, 5, 11, none())
	Table[0xF1] = u(KindPOP, "POP", 1, 10, pair(PairPSW))
	Table[0xF2] = u(KindJP, "JP", 3, 10, none())
	Table[0xF3] = u(KindDI, "DI", 1, 4, none())
	Table[0xF4] = c2(KindCP, "CP", 3, 11, 17, none())
	Table[0xF5] = u(KindPUSH, "PUSH", 1, 11, pair(PairPSW))
	Table[0xF6] = u(KindORI, "ORI", 2, 7, none())
	Table[0xF7] = u(KindRST, "RST", 1, 11, none())
	Table[0xF8] = c2(KindRM, "RM", 1, 5, 11, none())
	Table[0xF9] = u(KindSPHL, "SPHL", 1, 5, none())
	Table[0xFA] = u(KindJM, "JM", 3, 10, none())
	Table[0xFB] = u(KindEI, "EI", 1, 4, none())
	Table[0xFC] = c2(KindCM, "CM", 3, 11, 17, none())
	Table[0xFD] = u(KindCALL, "CALL", 3, 17, none()) // undocumented alias
	Table[0xFE] = u(KindCPI, "CPI", 2, 7, none())
	Table[0xFF] = u(KindRST, "RST", 1, 11, none())
}

// aliasUndocumented is a no-op now that the 12 undefined byte values are
// assigned directly above; it documents, in one place, which opcodes Intel
// left undefined and what real 8080 silicon decodes them as: 0x08, 0x10,
// 0x18, 0x20, 0x28, 0x30, 0x38 -> NOP; 0xCB -> JMP; 0xD9 -> RET; 0xDD, 0xED,
// 0xFD -> CALL.
func aliasUndocumented() {}
