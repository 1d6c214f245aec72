package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteByte(t *testing.T) {
	b := &Bus{}
	b.WriteByte(0x1234, 0xab)
	assert.Equal(t, byte(0xab), b.ReadByte(0x1234))
}

func TestReadWriteWordLittleEndian(t *testing.T) {
	b := &Bus{}
	b.WriteWord(0x0010, 0xbeef)
	assert.Equal(t, byte(0xef), b.Ram[0x0010])
	assert.Equal(t, byte(0xbe), b.Ram[0x0011])
	assert.Equal(t, uint16(0xbeef), b.ReadWord(0x0010))
}

func TestReadWordWrapsAtTopOfAddressSpace(t *testing.T) {
	b := &Bus{}
	b.Ram[0xffff] = 0x34
	b.Ram[0x0000] = 0x12
	assert.Equal(t, uint16(0x1234), b.ReadWord(0xffff))
}

func TestLoad(t *testing.T) {
	b := &Bus{}
	b.Load([]byte{0x3e, 0x02, 0xc6, 0x03}, 0x0100)
	assert.Equal(t, byte(0x3e), b.Ram[0x0100])
	assert.Equal(t, byte(0x03), b.Ram[0x0103])
}
