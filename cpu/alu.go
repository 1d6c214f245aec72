package cpu

import "driven/mask"

// alu performs the 8080's 8-bit arithmetic/logic operations. It is pure with
// respect to everything except the flag register it is handed: every call
// takes the current F byte and a mask naming which flags the caller is
// allowed to update, and returns the new operand value plus the new F.
type alu struct{}

// add computes target+addend (+carryIn, for ADC) and returns the 8-bit
// result along with an updated flag byte. Only the flags named in upd are
// written into the returned F; all others are copied from f unchanged.
//
// ADC's "add the carry in the same pass" requirement (spec note: doing a
// second, separate +1 add can mis-set Carry/AuxCarry) is satisfied by folding
// carryIn into the 9-bit/nibble sums below rather than performing two adds.
func (alu) add(f byte, target, addend byte, carryIn bool, upd FlagMask) (byte, byte) {
	var cin byte
	if carryIn {
		cin = 1
	}

	sum9 := uint16(target) + uint16(addend) + uint16(cin)
	result := byte(sum9)

	halfSum := (target & 0x0f) + (addend & 0x0f) + cin

	if upd&FlagCarry != 0 {
		f = setFlag(f, FlagCarry, sum9 > 0xff)
	}
	if upd&FlagAuxCarry != 0 {
		f = setFlag(f, FlagAuxCarry, halfSum > 0x0f)
	}
	if upd&FlagZero != 0 {
		f = setFlag(f, FlagZero, result == 0)
	}
	if upd&FlagSign != 0 {
		f = setFlag(f, FlagSign, mask.IsSet(result, mask.I1))
	}
	if upd&FlagParity != 0 {
		f = setFlag(f, FlagParity, evenParity(result))
	}
	return result, enforceFlagConstants(f)
}

// sub computes target-subtrahend(-borrowIn, for SBB) via add of the one's
// complement of subtrahend, then inverts the adder's Carry so that Carry
// means "a borrow occurred", the 8080's convention for SUB/SBB/CMP.
//
// target-subtrahend-borrowIn == target+(^subtrahend)+(1-borrowIn), so
// borrowIn is threaded into add's own carryIn (1 when not borrowing, 0 when
// borrowing) rather than pre-added into the complemented byte. Folding it in
// this way, like ADC above, keeps the nibble-boundary carry in the same
// single pass add() already computes: pre-adding it into the byte before
// complementing loses that carry whenever the adjusted subtrahend's low
// nibble is zero (e.g. SUB A itself, which the 8080 quirkily reports with
// AuxCarry set).
func (alu) sub(f byte, target, subtrahend byte, borrowIn bool, upd FlagMask) (byte, byte) {
	result, newF := alu{}.add(f, target, ^subtrahend, !borrowIn, upd)
	if upd&FlagCarry != 0 {
		newF = setFlag(newF, FlagCarry, !testFlag(newF, FlagCarry))
	}
	return result, newF
}

// and computes target&operand. Zero/Sign/Parity follow the result; Carry is
// always cleared. Auxiliary Carry follows the 8080's documented erratum: it
// is set to the OR of bit 3 of the two operands, not simply cleared.
func (alu) and(f byte, target, operand byte, upd FlagMask) (byte, byte) {
	result := target & operand
	if upd&FlagZero != 0 {
		f = setFlag(f, FlagZero, result == 0)
	}
	if upd&FlagSign != 0 {
		f = setFlag(f, FlagSign, mask.IsSet(result, mask.I1))
	}
	if upd&FlagParity != 0 {
		f = setFlag(f, FlagParity, evenParity(result))
	}
	if upd&FlagCarry != 0 {
		f = setFlag(f, FlagCarry, false)
	}
	if upd&FlagAuxCarry != 0 {
		bit3 := mask.IsSet(target, mask.I5) || mask.IsSet(operand, mask.I5)
		f = setFlag(f, FlagAuxCarry, bit3)
	}
	return result, enforceFlagConstants(f)
}

// logic sets the flags for an OR/XOR result the caller has already computed
// and returns that result. Zero/Sign/Parity follow the result; Carry and
// Auxiliary Carry are always cleared.
func (alu) logic(f byte, result byte, upd FlagMask) (byte, byte) {
	if upd&FlagZero != 0 {
		f = setFlag(f, FlagZero, result == 0)
	}
	if upd&FlagSign != 0 {
		f = setFlag(f, FlagSign, mask.IsSet(result, mask.I1))
	}
	if upd&FlagParity != 0 {
		f = setFlag(f, FlagParity, evenParity(result))
	}
	if upd&FlagCarry != 0 {
		f = setFlag(f, FlagCarry, false)
	}
	if upd&FlagAuxCarry != 0 {
		f = setFlag(f, FlagAuxCarry, false)
	}
	return result, enforceFlagConstants(f)
}
