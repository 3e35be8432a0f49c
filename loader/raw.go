package loader

import (
	"encoding/binary"
	"fmt"
	"os"
)

// LoadRaw reads a flat little-endian word stream, for programs assembled
// directly to RV32I machine code without ELF packaging.
func LoadRaw(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw binary: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw binary length %d is not a multiple of 4", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}
	return words, nil
}
