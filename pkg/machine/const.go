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

// Memory is addressed 0x0000-0xFFFF inclusive
const MEMORY_SIZE = 1 << 16

// Program counter position after reset, the start of the user memory space
const PC_START uint16 = 0x3000

// R7 conventionally holds subroutine return addresses
const REG_RET = 7

// Condition is the machine's condition-code state: after a flag-setting
// instruction exactly one of the N/Z/P bits is set, and before the first one
// none are (COND_UNSET).
type Condition uint16

const (
	COND_UNSET Condition = 0
	COND_POS   Condition = 1 << 0
	COND_ZERO  Condition = 1 << 1
	COND_NEG   Condition = 1 << 2
)

// TrapCode identifies a console I/O system call
type TrapCode uint16

const (
	TRAP_GETC  TrapCode = 0x20
	TRAP_OUT   TrapCode = 0x21
	TRAP_PUTS  TrapCode = 0x22
	TRAP_IN    TrapCode = 0x23
	TRAP_PUTSP TrapCode = 0x24
	TRAP_HALT  TrapCode = 0x25
)

// Memory mapped keyboard device
const (
	DEV_KBSR uint16 = 0xFE00
	DEV_KBDR uint16 = 0xFE02
)

const (
	OP_ADD  uint16 = 0b0001
	OP_AND  uint16 = 0b0101
	OP_BR   uint16 = 0b0000
	OP_JMP  uint16 = 0b1100
	OP_JSR  uint16 = 0b0100
	OP_LD   uint16 = 0b0010
	OP_LDI  uint16 = 0b1010
	OP_LDR  uint16 = 0b0110
	OP_LEA  uint16 = 0b1110
	OP_NOT  uint16 = 0b1001
	OP_RTI  uint16 = 0b1000
	OP_ST   uint16 = 0b0011
	OP_STI  uint16 = 0b1011
	OP_STR  uint16 = 0b0111
	OP_TRAP uint16 = 0b1111

	// Reserved
	OP_RES uint16 = 0b1101
)
