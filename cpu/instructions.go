package cpu

// handler implements one mnemonic Kind. It receives the already-decoded
// Descriptor and the raw opcode byte (needed only by RST, to recover the
// vector bits), mutates the Cpu in place, and reports whether a
// conditional branch/call/return was taken -- Step uses this to pick
// CyclesTaken vs CyclesNotTaken. Unconditional instructions always
// report true, which is harmless since their two cycle counts are equal.
type handler func(c *Cpu, d Descriptor, opcode byte) bool

// Operand resolves an 8-bit operand register, substituting a memory access
// at HL for the pseudo-register M.
func (c *Cpu) Operand(id RegID) byte {
	if id == RegM {
		return c.Mem.ReadByte(c.Regs.Pair(PairHL))
	}
	return c.Regs.Get(id)
}

// SetOperand writes an 8-bit operand register, substituting a memory write
// at HL for the pseudo-register M.
func (c *Cpu) SetOperand(id RegID, v byte) {
	if id == RegM {
		c.Mem.WriteByte(c.Regs.Pair(PairHL), v)
		return
	}
	c.Regs.Set(id, v)
}

// push writes v onto the stack (high byte at SP-1, low byte at SP-2) and
// decrements SP by 2.
func (c *Cpu) push(v uint16) {
	hi, lo := splitWord(v)
	c.Mem.WriteByte(c.Regs.SP-1, hi)
	c.Mem.WriteByte(c.Regs.SP-2, lo)
	c.Regs.SP -= 2
}

// pop reads a 16-bit value off the stack (low byte at SP, high byte at
// SP+1) and increments SP by 2.
func (c *Cpu) pop() uint16 {
	lo := c.Mem.ReadByte(c.Regs.SP)
	hi := c.Mem.ReadByte(c.Regs.SP + 1)
	c.Regs.SP += 2
	return packWord(hi, lo)
}

// condHolds evaluates the branch predicate for a conditional jump, call, or
// return Kind.
func condHolds(c *Cpu, kind Kind) bool {
	switch kind {
	case KindJNZ, KindCNZ, KindRNZ:
		return !c.Flag(FlagZero)
	case KindJZ, KindCZ, KindRZ:
		return c.Flag(FlagZero)
	case KindJNC, KindCNC, KindRNC:
		return !c.Flag(FlagCarry)
	case KindJC, KindCC, KindRC:
		return c.Flag(FlagCarry)
	case KindJPO, KindCPO, KindRPO:
		return !c.Flag(FlagParity)
	case KindJPE, KindCPE, KindRPE:
		return c.Flag(FlagParity)
	case KindJP, KindCP, KindRP:
		return !c.Flag(FlagSign)
	case KindJM, KindCM, KindRM:
		return c.Flag(FlagSign)
	default:
		panic("cpu: condHolds called with a non-conditional Kind")
	}
}

// handlers dispatches each mnemonic Kind to its implementation. Built once
// at init and never mutated, matching Table's own immutability.
var handlers map[Kind]handler

func init() {
	handlers = map[Kind]handler{
		KindNOP: func(c *Cpu, d Descriptor, op byte) bool { return true },

		// data movement
		KindLXI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.SetPair(d.Operand.Pair, c.immWord())
			return true
		},
		KindSTAX: func(c *Cpu, d Descriptor, op byte) bool {
			c.Mem.WriteByte(c.Regs.Pair(d.Operand.Pair), c.Regs.A)
			return true
		},
		KindLDAX: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A = c.Mem.ReadByte(c.Regs.Pair(d.Operand.Pair))
			return true
		},
		KindLDA: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A = c.Mem.ReadByte(c.immWord())
			return true
		},
		KindSTA: func(c *Cpu, d Descriptor, op byte) bool {
			c.Mem.WriteByte(c.immWord(), c.Regs.A)
			return true
		},
		KindLHLD: func(c *Cpu, d Descriptor, op byte) bool {
			addr := c.immWord()
			c.Regs.L = c.Mem.ReadByte(addr)
			c.Regs.H = c.Mem.ReadByte(addr + 1)
			return true
		},
		KindSHLD: func(c *Cpu, d Descriptor, op byte) bool {
			addr := c.immWord()
			c.Mem.WriteByte(addr, c.Regs.L)
			c.Mem.WriteByte(addr+1, c.Regs.H)
			return true
		},
		KindMOV: func(c *Cpu, d Descriptor, op byte) bool {
			c.SetOperand(d.Operand.Reg, c.Operand(d.Operand.Src))
			return true
		},
		KindMVI: func(c *Cpu, d Descriptor, op byte) bool {
			c.SetOperand(d.Operand.Reg, c.immByte())
			return true
		},
		KindXCHG: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.D, c.Regs.H = c.Regs.H, c.Regs.D
			c.Regs.E, c.Regs.L = c.Regs.L, c.Regs.E
			return true
		},
		KindXTHL: func(c *Cpu, d Descriptor, op byte) bool {
			sp := c.Regs.SP
			lo := c.Mem.ReadByte(sp)
			hi := c.Mem.ReadByte(sp + 1)
			c.Mem.WriteByte(sp, c.Regs.L)
			c.Mem.WriteByte(sp+1, c.Regs.H)
			c.Regs.L, c.Regs.H = lo, hi
			return true
		},
		KindSPHL: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.SP = c.Regs.Pair(PairHL)
			return true
		},
		KindPCHL: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.PC = c.Regs.Pair(PairHL)
			return true
		},

		// arithmetic / logic, register or memory operand
		KindADD: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.add(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), false, FlagsAll)
			return true
		},
		KindADC: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.add(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), c.Flag(FlagCarry), FlagsAll)
			return true
		},
		KindSUB: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), false, FlagsAll)
			return true
		},
		KindSBB: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), c.Flag(FlagCarry), FlagsAll)
			return true
		},
		KindANA: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.and(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), FlagsAll)
			return true
		},
		KindXRA: func(c *Cpu, d Descriptor, op byte) bool {
			operand := c.Operand(d.Operand.Reg)
			c.Regs.A, c.Regs.F = alu{}.logic(c.Regs.F, c.Regs.A^operand, FlagsAll)
			return true
		},
		KindORA: func(c *Cpu, d Descriptor, op byte) bool {
			operand := c.Operand(d.Operand.Reg)
			c.Regs.A, c.Regs.F = alu{}.logic(c.Regs.F, c.Regs.A|operand, FlagsAll)
			return true
		},
		KindCMP: func(c *Cpu, d Descriptor, op byte) bool {
			_, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.Operand(d.Operand.Reg), false, FlagsAll)
			return true
		},

		// arithmetic / logic, immediate operand
		KindADI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.add(c.Regs.F, c.Regs.A, c.immByte(), false, FlagsAll)
			return true
		},
		KindACI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.add(c.Regs.F, c.Regs.A, c.immByte(), c.Flag(FlagCarry), FlagsAll)
			return true
		},
		KindSUI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.immByte(), false, FlagsAll)
			return true
		},
		KindSBI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.immByte(), c.Flag(FlagCarry), FlagsAll)
			return true
		},
		KindANI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.and(c.Regs.F, c.Regs.A, c.immByte(), FlagsAll)
			return true
		},
		KindXRI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.logic(c.Regs.F, c.Regs.A^c.immByte(), FlagsAll)
			return true
		},
		KindORI: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A, c.Regs.F = alu{}.logic(c.Regs.F, c.Regs.A|c.immByte(), FlagsAll)
			return true
		},
		KindCPI: func(c *Cpu, d Descriptor, op byte) bool {
			_, c.Regs.F = alu{}.sub(c.Regs.F, c.Regs.A, c.immByte(), false, FlagsAll)
			return true
		},

		// increment / decrement
		KindINR: func(c *Cpu, d Descriptor, op byte) bool {
			v := c.Operand(d.Operand.Reg)
			result, newF := alu{}.add(c.Regs.F, v, 1, false, FlagSign|FlagZero|FlagParity|FlagAuxCarry)
			c.SetOperand(d.Operand.Reg, result)
			c.Regs.F = newF
			return true
		},
		KindDCR: func(c *Cpu, d Descriptor, op byte) bool {
			v := c.Operand(d.Operand.Reg)
			result, newF := alu{}.sub(c.Regs.F, v, 1, false, FlagSign|FlagZero|FlagParity|FlagAuxCarry)
			c.SetOperand(d.Operand.Reg, result)
			c.Regs.F = newF
			return true
		},
		KindINX: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.SetPair(d.Operand.Pair, c.Regs.Pair(d.Operand.Pair)+1)
			return true
		},
		KindDCX: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.SetPair(d.Operand.Pair, c.Regs.Pair(d.Operand.Pair)-1)
			return true
		},
		KindDAD: func(c *Cpu, d Descriptor, op byte) bool {
			hl := c.Regs.Pair(PairHL)
			rp := c.Regs.Pair(d.Operand.Pair)
			sum := uint32(hl) + uint32(rp)
			c.Regs.SetPair(PairHL, uint16(sum))
			c.Regs.F = setFlag(c.Regs.F, FlagCarry, sum > 0xffff)
			c.Regs.F = enforceFlagConstants(c.Regs.F)
			return true
		},
		KindDAA: func(c *Cpu, d Descriptor, op byte) bool {
			a := c.Regs.A
			carry := c.Flag(FlagCarry)
			ac := c.Flag(FlagAuxCarry)

			if a&0x0f > 9 || ac {
				sum := uint16(a) + 0x06
				ac = (a&0x0f)+0x06 > 0x0f
				if sum > 0xff {
					carry = true
				}
				a = byte(sum)
			}
			if (a>>4)&0x0f > 9 || carry {
				sum := uint16(a) + 0x60
				if sum > 0xff {
					carry = true
				}
				a = byte(sum)
			}

			c.Regs.A = a
			f := c.Regs.F
			f = setFlag(f, FlagCarry, carry)
			f = setFlag(f, FlagAuxCarry, ac)
			f = setFlag(f, FlagZero, a == 0)
			f = setFlag(f, FlagSign, a&0x80 != 0)
			f = setFlag(f, FlagParity, evenParity(a))
			c.Regs.F = enforceFlagConstants(f)
			return true
		},
		KindCMA: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.A = ^c.Regs.A
			return true
		},
		KindCMC: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, !c.Flag(FlagCarry)))
			return true
		},
		KindSTC: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, true))
			return true
		},

		// rotates
		KindRLC: func(c *Cpu, d Descriptor, op byte) bool {
			bit7 := c.Regs.A&0x80 != 0
			c.Regs.A = c.Regs.A<<1 | boolByte(bit7)
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, bit7))
			return true
		},
		KindRRC: func(c *Cpu, d Descriptor, op byte) bool {
			bit0 := c.Regs.A&0x01 != 0
			c.Regs.A = c.Regs.A>>1 | boolByte(bit0)<<7
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, bit0))
			return true
		},
		KindRAL: func(c *Cpu, d Descriptor, op byte) bool {
			oldCarry := c.Flag(FlagCarry)
			bit7 := c.Regs.A&0x80 != 0
			c.Regs.A = c.Regs.A<<1 | boolByte(oldCarry)
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, bit7))
			return true
		},
		KindRAR: func(c *Cpu, d Descriptor, op byte) bool {
			oldCarry := c.Flag(FlagCarry)
			bit0 := c.Regs.A&0x01 != 0
			c.Regs.A = boolByte(oldCarry)<<7 | c.Regs.A>>1
			c.Regs.F = enforceFlagConstants(setFlag(c.Regs.F, FlagCarry, bit0))
			return true
		},

		// stack / control flow
		KindPUSH: func(c *Cpu, d Descriptor, op byte) bool {
			c.push(c.Regs.Pair(d.Operand.Pair))
			return true
		},
		KindPOP: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.SetPair(d.Operand.Pair, c.pop())
			return true
		},
		KindJMP: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.PC = c.immWord()
			return true
		},
		KindCALL: func(c *Cpu, d Descriptor, op byte) bool {
			addr := c.immWord()
			c.push(c.Regs.PC)
			c.Regs.PC = addr
			return true
		},
		KindRET: func(c *Cpu, d Descriptor, op byte) bool {
			c.Regs.PC = c.pop()
			return true
		},
		KindRST: func(c *Cpu, d Descriptor, op byte) bool {
			n := (op >> 3) & 0x07
			c.push(c.Regs.PC)
			c.Regs.PC = uint16(n) * 8
			return true
		},

		// reserved-effect opcodes: recognized, fully accounted for
		// cycles/PC, no peripheral effect implemented -- Step reports
		// these as Pause to the host.
		KindHLT: func(c *Cpu, d Descriptor, op byte) bool { return true },
		KindIN:  func(c *Cpu, d Descriptor, op byte) bool { return true },
		KindOUT: func(c *Cpu, d Descriptor, op byte) bool { return true },
		KindEI:  func(c *Cpu, d Descriptor, op byte) bool { return true },
		KindDI:  func(c *Cpu, d Descriptor, op byte) bool { return true },
	}

	for _, cond := range []struct {
		jmp, call, ret Kind
	}{
		{KindJNZ, KindCNZ, KindRNZ},
		{KindJZ, KindCZ, KindRZ},
		{KindJNC, KindCNC, KindRNC},
		{KindJC, KindCC, KindRC},
		{KindJPO, KindCPO, KindRPO},
		{KindJPE, KindCPE, KindRPE},
		{KindJP, KindCP, KindRP},
		{KindJM, KindCM, KindRM},
	} {
		cond := cond
		handlers[cond.jmp] = func(c *Cpu, d Descriptor, op byte) bool {
			if !condHolds(c, d.Kind) {
				return false
			}
			c.Regs.PC = c.immWord()
			return true
		}
		handlers[cond.call] = func(c *Cpu, d Descriptor, op byte) bool {
			if !condHolds(c, d.Kind) {
				return false
			}
			addr := c.immWord()
			c.push(c.Regs.PC)
			c.Regs.PC = addr
			return true
		}
		handlers[cond.ret] = func(c *Cpu, d Descriptor, op byte) bool {
			if !condHolds(c, d.Kind) {
				return false
			}
			c.Regs.PC = c.pop()
			return true
		}
	}
}

// boolByte converts a bool to 0 or 1, for folding carry-in bits into shift
// results without a branch at each call site.
func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
