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
	"errors"
)

// All of these are fatal: the machine halts and stays halted, a fresh
// machine must be constructed to run another program.
var (
	// Decode encountered an unrecognized top-level opcode
	ErrUnknownOpcode = errors.New("Unknown opcode")

	// Decode encountered a trap code outside the documented set
	ErrUnknownTrap = errors.New("Unknown trap code")

	// The reserved opcode was executed
	ErrIllegalInstruction = errors.New("Illegal instruction")

	// An address outside the 16-bit address space was requested
	ErrOutOfBounds = errors.New("Address out of bounds")
)
