package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driven/mem"
)

func TestLoadCopiesBytesAtAddress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x3E, 0x02, 0x76}, 0o644))

	bus := &mem.Bus{}
	err := Load(bus, path, 0x0100)
	require.NoError(t, err)

	assert.Equal(t, byte(0x3E), bus.ReadByte(0x0100))
	assert.Equal(t, byte(0x02), bus.ReadByte(0x0101))
	assert.Equal(t, byte(0x76), bus.ReadByte(0x0102))
}

func TestLoadRejectsOversizeImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	bus := &mem.Bus{}
	err := Load(bus, path, 0xFFFF)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	bus := &mem.Bus{}
	err := Load(bus, "/nonexistent/path/prog.bin", 0)
	assert.Error(t, err)
}
