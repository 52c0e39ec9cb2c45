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
)

// trap dispatches a console I/O system call. GETC and IN block on the
// keyboard until a byte arrives; there is no timeout, matching the emulated
// hardware. Display output is flushed before any blocking read so prompts
// are visible while the machine waits.
func (mc *Machine) trap(code TrapCode) error {
	switch code {

	// GETC: R0 <- one keyboard byte, zero extended; flags set
	case TRAP_GETC:
		key, err := mc.readKey()

		if err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(mc.State.Registers[0])

	// OUT: display <- low byte of R0
	case TRAP_OUT:
		if err := mc.putChar(byte(mc.State.Registers[0])); err != nil {
			return err
		}

		return mc.flushDisplay()

	// PUTS: write one character per word starting at mem[R0], stopping at
	// the first zero word
	case TRAP_PUTS:
		for addr := mc.State.Registers[0]; ; addr++ {
			word := mc.read(addr)

			if word == 0x0000 {
				break
			}

			if err := mc.putChar(byte(word)); err != nil {
				return err
			}
		}

		return mc.flushDisplay()

	// IN: prompt, then R0 <- one keyboard byte, echoed; flags set
	case TRAP_IN:
		for _, c := range []byte("Enter a character: ") {
			if err := mc.putChar(c); err != nil {
				return err
			}
		}

		key, err := mc.readKey()

		if err != nil {
			return err
		}

		if err := mc.putChar(key); err != nil {
			return err
		}

		if err := mc.flushDisplay(); err != nil {
			return err
		}

		mc.State.Registers[0] = uint16(key)
		mc.setFlags(mc.State.Registers[0])

	// PUTSP: write two packed characters per word starting at mem[R0], low
	// byte first, high byte skipped when zero, stopping at the first zero
	// word
	case TRAP_PUTSP:
		for addr := mc.State.Registers[0]; ; addr++ {
			word := mc.read(addr)

			if word == 0x0000 {
				break
			}

			if err := mc.putChar(byte(word)); err != nil {
				return err
			}

			if word>>8 != 0 {
				if err := mc.putChar(byte(word >> 8)); err != nil {
					return err
				}
			}
		}

		return mc.flushDisplay()

	// HALT: stop the machine
	case TRAP_HALT:
		mc.State.Halted = true

	default:
		// Unreachable: Decode rejects unmapped trap codes
		return fmt.Errorf("%w: %#02x", ErrUnknownTrap, uint16(code))
	}

	return nil
}

func (mc *Machine) readKey() (byte, error) {
	if mc.Devices == nil || mc.Devices.Keyboard == nil {
		return 0, fmt.Errorf("Error reading keyboard: no device attached")
	}

	if err := mc.flushDisplay(); err != nil {
		return 0, err
	}

	key, err := mc.Devices.Keyboard.ReadByte()

	if err != nil {
		return 0, fmt.Errorf("Error reading keyboard: %w", err)
	}

	return key, nil
}

func (mc *Machine) putChar(c byte) error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return fmt.Errorf("Error writing display: no device attached")
	}

	if err := mc.Devices.Display.WriteByte(c); err != nil {
		return fmt.Errorf("Error writing display: %w", err)
	}

	return nil
}

func (mc *Machine) flushDisplay() error {
	if mc.Devices == nil || mc.Devices.Display == nil {
		return nil
	}

	if err := mc.Devices.Display.Flush(); err != nil {
		return fmt.Errorf("Error flushing display: %w", err)
	}

	return nil
}
