// Package rom reads CHIP-8 program images from the filesystem.
package rom

import (
	"errors"
	"fmt"
	"os"

	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/logger"
)

// ErrEmpty is returned for a ROM file with no content.
var ErrEmpty = errors.New("rom file is empty")

// Load reads the ROM at path and checks that it fits into program memory.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rom '%s': %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("reading rom '%s': %w", path, ErrEmpty)
	}
	if len(data) > chip8.MaxROMSize {
		return nil, fmt.Errorf("reading rom '%s' (%d bytes): %w", path, len(data), chip8.ErrROMTooLarge)
	}
	logger.Logf("rom", "read %s (%d bytes)", path, len(data))
	return data, nil
}
