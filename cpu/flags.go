package cpu

import "driven/mask"

// FlagMask names one or more of the five condition flags that an ALU call
// may update. Bits follow F's own layout, so a mask can be built directly
// from the Flag* constants with bitwise OR.
type FlagMask byte

// Flag bit positions within F, following the 8080 data sheet.
//
//	7654 3210
//	SZ_A _P1C
const (
	FlagCarry     FlagMask = 1 << 0
	flagBit1               = 1 << 1 // hard-wired to 1
	FlagParity    FlagMask = 1 << 2
	flagBit3               = 1 << 3 // hard-wired to 0
	FlagAuxCarry  FlagMask = 1 << 4
	flagBit5               = 1 << 5 // hard-wired to 0
	FlagZero      FlagMask = 1 << 6
	FlagSign      FlagMask = 1 << 7

	FlagsNone FlagMask = 0
	FlagsAll  FlagMask = FlagCarry | FlagParity | FlagAuxCarry | FlagZero | FlagSign
)

// enforceFlagConstants reproduces the 8080's hard-wired F bits on any value
// that is about to become the flag register: bit 1 is always 1; bits 3 and 5
// are always 0. This applies whether F is freshly computed by the ALU or
// loaded wholesale via POP PSW.
func enforceFlagConstants(f byte) byte {
	f |= flagBit1
	f &^= flagBit3
	f &^= flagBit5
	return f
}

// testFlag reports whether the named flag bit is set in f.
func testFlag(f byte, bit FlagMask) bool {
	return f&byte(bit) != 0
}

// setFlag returns f with the named flag bit set to on.
func setFlag(f byte, bit FlagMask, on bool) byte {
	if on {
		return f | byte(bit)
	}
	return f &^ byte(bit)
}

// evenParity reports whether b has an even number of 1-bits -- the 8080's
// Parity flag is set precisely when this holds.
func evenParity(b byte) bool {
	return mask.IsSet(parityLookup[b], mask.I8)
}

// parityLookup is a precomputed table of "has even parity" encoded as bit 0
// of each entry, indexed by byte value; built once at init time rather than
// computed per call via bits.OnesCount, since Parity is consulted on nearly
// every ALU op.
var parityLookup [256]byte

func init() {
	for b := 0; b < 256; b++ {
		ones := 0
		for v := b; v != 0; v &= v - 1 {
			ones++
		}
		if ones%2 == 0 {
			parityLookup[b] = 1
		}
	}
}

// Flag reads a single flag bit from the CPU's current F register.
func (c *Cpu) Flag(bit FlagMask) bool {
	return testFlag(c.Regs.F, bit)
}
