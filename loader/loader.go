// Package loader reads 8080 program binaries from disk into a Cpu's
// memory, and exposes a small intel-hex-free raw-binary format: the file's
// bytes are copied verbatim starting at a load address.
package loader

import (
	"fmt"
	"os"

	"driven/log"
	"driven/mem"
)

// MaxSize is the 8080's entire addressable memory; a file that does not fit
// below 0x10000 starting at its load address cannot be a valid program
// image for this machine.
const MaxSize = 64 * 1024

// Load reads path and copies its bytes into bus starting at addr. It
// returns an error if the file does not exist, can't be read, or would run
// past the top of the 8080's 64 KiB address space.
func Load(bus *mem.Bus, path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loader: reading %s: %w", path, err)
	}
	if int(addr)+len(data) > MaxSize {
		return fmt.Errorf("loader: %s (%d bytes) does not fit at 0x%04x within a 64KiB address space", path, len(data), addr)
	}
	bus.Load(data, addr)
	log.Logger.Debug().Str("path", path).Int("bytes", len(data)).Uint16("addr", addr).Msg("loaded program")
	return nil
}
