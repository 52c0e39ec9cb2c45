// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"fmt"
	"io"

	"github.com/lassandro/golc3vm/pkg/encoding"
)

// Memory is the 65536-word address space with the memory-mapped keyboard
// device at DEV_KBSR/DEV_KBDR. The Keyboard poll source is injectable so
// the mapping stays testable without a real terminal.
type Memory struct {
	Keyboard Keyboard

	cells [MEMORY_SIZE]uint16
}

func (mem *Memory) Reset() {
	for i := range mem.cells {
		mem.cells[i] = 0x0000
	}
}

// Read returns the word at addr. Reading DEV_KBSR polls the keyboard as a
// side effect: if a byte is available the status cell becomes 0x8000 and the
// data cell receives the byte, otherwise the status cell becomes 0. No other
// address has read side effects.
func (mem *Memory) Read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		if mem.Keyboard != nil {
			if key, ok := mem.Keyboard.TryReadByte(); ok {
				mem.cells[DEV_KBSR] = 1 << 15
				mem.cells[DEV_KBDR] = uint16(key)
			} else {
				mem.cells[DEV_KBSR] = 0
			}
		} else {
			mem.cells[DEV_KBSR] = 0
		}
	}

	return mem.cells[addr]
}

func (mem *Memory) Write(addr uint16, value uint16) {
	mem.cells[addr] = value
}

// Peek returns the word at addr without device side effects. Inspection
// tooling uses it so that dumping memory cannot consume keyboard input.
func (mem *Memory) Peek(addr uint16) uint16 {
	return mem.cells[addr]
}

// Range copies count words starting at addr. Unlike the uint16 accessors the
// arguments come from outside the 16-bit address space, so the bounds are
// checked and ErrOutOfBounds reported rather than assumed unreachable.
func (mem *Memory) Range(addr int, count int) ([]uint16, error) {
	if addr < 0 || count < 0 || addr+count > MEMORY_SIZE {
		return nil, fmt.Errorf(
			"%w: %#04x+%d", ErrOutOfBounds, addr, count,
		)
	}

	result := make([]uint16, count)
	copy(result, mem.cells[addr:addr+count])
	return result, nil
}

// LoadImage reads a program image: two big-endian bytes of origin address
// followed by consecutive big-endian words placed into memory starting at
// the origin. Loading stops at end of input or at the last valid address.
func (mem *Memory) LoadImage(reader io.Reader) error {
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(reader, scratch); err != nil {
		return fmt.Errorf("Error reading image origin: %w", err)
	}

	addr := int(encoding.JoinBytes(scratch[0], scratch[1]))

	for addr < MEMORY_SIZE-1 {
		_, err := io.ReadFull(reader, scratch)

		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("Error reading image word: %w", err)
		}

		mem.cells[addr] = encoding.JoinBytes(scratch[0], scratch[1])
		addr++
	}

	return nil
}
