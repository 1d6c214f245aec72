// Package cpu implements the Intel 8080 8-bit microprocessor: the
// fetch-decode-execute pipeline, the ALU and its five condition flags, the
// full 256-opcode dispatch table, the register file, stack discipline, and
// cycle accounting.
package cpu

import (
	"fmt"

	"driven/mem"
)

// State is one of the three machine states a Cpu can be in.
type State int

const (
	Running State = iota
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// StatusKind is the outcome of a single Step call.
type StatusKind int

const (
	// Continue means the instruction ran to completion with no
	// unsupported effect.
	Continue StatusKind = iota
	// Pause means the instruction was HLT, IN, OUT, EI, or DI: PC and
	// the cycle counter are already advanced past it, and the host
	// decides whether to resume.
	Pause
	// Fault means the opcode's descriptor named a Kind with no handler.
	// Every Kind in the table has one, so this is unreachable; Fault exists as a
	// defensive backstop, not a real code path.
	Fault
)

func (s StatusKind) String() string {
	switch s {
	case Continue:
		return "continue"
	case Pause:
		return "pause"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

// StepResult is what Step returns after one fetch-decode-execute cycle.
type StepResult struct {
	Status StatusKind
	Opcode byte
	Kind   Kind // meaningful when Status is Pause or Fault
}

// Cpu is an owned, independently instantiable emulation of one 8080: its
// register file, the memory device it is bound to, its run state, and its
// cycle counter. Multiple Cpu values may run concurrently provided each
// owns its own Memory; there is no process-wide mutable state.
type Cpu struct {
	Regs  Registers
	Mem   mem.Memory
	State State

	cycles uint64
}

// Init binds the Cpu to mem and resets it to its power-on state: F=0x02
// (only the mandatory bit 1 set), SP=0x0100, PC=0x0000, cycle_count=0. The
// SP=0x0100 choice is the original source's, not an architectural mandate of
// the 8080 itself, but is kept as the reset default for compatibility with
// programs that assume it.
func (c *Cpu) Init(memory mem.Memory) {
	c.Mem = memory
	c.Regs = Registers{F: 0x02, SP: 0x0100, PC: 0x0000}
	c.State = Running
	c.cycles = 0
}

// CycleCount returns the number of machine cycles elapsed since Init.
func (c *Cpu) CycleCount() uint64 {
	return c.cycles
}

// Register reads one of the 8-bit registers B, C, D, E, H, L, A, F. Use
// Operand (in instructions.go) to additionally resolve the pseudo-register
// M against memory.
func (c *Cpu) Register(id RegID) byte {
	return c.Regs.Get(id)
}

// Pair reads one of the 16-bit register-pair views BC, DE, HL, SP, PC, PSW.
func (c *Cpu) Pair(id PairID) uint16 {
	return c.Regs.Pair(id)
}

// immByte reads the single immediate byte belonging to a just-decoded
// 2-byte instruction. PC has already been pre-advanced past the whole
// instruction (see Step), so the immediate sits at PC-1.
func (c *Cpu) immByte() byte {
	return c.Mem.ReadByte(c.Regs.PC - 1)
}

// immWord reads the 16-bit immediate (little-endian) belonging to a
// just-decoded 3-byte instruction. PC has already been pre-advanced past
// the whole instruction, so the immediate word sits at PC-2.
func (c *Cpu) immWord() uint16 {
	return c.Mem.ReadWord(c.Regs.PC - 2)
}

// Step performs one fetch-decode-execute cycle:
//
//  1. read the opcode at PC
//  2. look up its Descriptor in Table
//  3. pre-advance PC by the descriptor's byte length
//  4. dispatch to the mnemonic's handler, which may further overwrite PC
//     (jumps, calls, returns) or read immediate bytes relative to the old
//     opcode address
//  5. add the taken or not-taken cycle count to the cycle counter
//
// If the Cpu is Halted, Step is a no-op that still accounts HLT's 7 cycles
// and returns Pause again, reflecting real 8080 behavior of re-fetching HLT
// forever absent an interrupt (out of scope here). If the Cpu is Faulted,
// Step returns Fault without touching any further state.
func (c *Cpu) Step() StepResult {
	if c.State == Faulted {
		return StepResult{Status: Fault}
	}
	if c.State == Halted {
		c.cycles += 7
		return StepResult{Status: Pause, Kind: KindHLT}
	}

	opcode := c.Mem.ReadByte(c.Regs.PC)
	d := Table[opcode]

	c.Regs.PC += uint16(d.Length)

	handle, ok := handlers[d.Kind]
	if !ok {
		c.State = Faulted
		return StepResult{Status: Fault, Opcode: opcode, Kind: d.Kind}
	}

	taken := handle(c, d, opcode)

	if taken {
		c.cycles += uint64(d.CyclesTaken)
	} else {
		c.cycles += uint64(d.CyclesNotTaken)
	}

	switch d.Kind {
	case KindHLT:
		c.State = Halted
		return StepResult{Status: Pause, Opcode: opcode, Kind: d.Kind}
	case KindIN, KindOUT, KindEI, KindDI:
		return StepResult{Status: Pause, Opcode: opcode, Kind: d.Kind}
	}

	return StepResult{Status: Continue, Opcode: opcode, Kind: d.Kind}
}

// String renders a one-line register/flag summary, handy for debugger
// status lines and test failure output.
func (c *Cpu) String() string {
	return fmt.Sprintf(
		"PC=%04x SP=%04x A=%02x BC=%04x DE=%04x HL=%04x F=%02x [S=%t Z=%t AC=%t P=%t C=%t] cycles=%d state=%s",
		c.Regs.PC, c.Regs.SP, c.Regs.A, c.Pair(PairBC), c.Pair(PairDE), c.Pair(PairHL), c.Regs.F,
		c.Flag(FlagSign), c.Flag(FlagZero), c.Flag(FlagAuxCarry), c.Flag(FlagParity), c.Flag(FlagCarry),
		c.cycles, c.State,
	)
}
