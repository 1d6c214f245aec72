// Package mem provides the flat byte-addressable memory device the CPU
// operates on.
package mem

// A Bus is the central object that holds the 8080's address space. There is
// no mirroring or bank-switching; the address space is the full, flat 64 KiB
// range, starting at 0x0000.
//
// A Bus is connected to a consumer (e.g. Cpu) by means of a pointer, e.g.
// c.Init(&mem.Bus{}).
type Bus struct {
	Ram [64 * 1024]byte // 64 kB, zeroed on init
}

// Memory is the interface the cpu package depends on, so tests can substitute
// a tracing or fake implementation in place of a real Bus.
type Memory interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, data byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, data uint16)
}

// ReadByte returns the byte at addr. Every uint16 address falls inside the
// 64 KiB backing array, so no bounds error is possible.
func (b *Bus) ReadByte(addr uint16) byte {
	return b.Ram[addr]
}

// WriteByte stores data at addr.
func (b *Bus) WriteByte(addr uint16, data byte) {
	b.Ram[addr] = data
}

// ReadWord returns the little-endian word formed by the byte at addr (low)
// and the byte at addr+1 (high). addr+1 wraps at 0xffff.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := b.Ram[addr]
	hi := b.Ram[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord stores data at addr in little-endian order: the low byte goes to
// addr, the high byte to addr+1.
func (b *Bus) WriteWord(addr uint16, data uint16) {
	b.Ram[addr] = byte(data)
	b.Ram[addr+1] = byte(data >> 8)
}

// Load copies program into the Bus starting at addr. It is the in-memory
// counterpart to the loader package's file-based Load.
func (b *Bus) Load(program []byte, addr uint16) {
	copy(b.Ram[addr:], program)
}
