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

	"github.com/lassandro/golc3vm/pkg/encoding"
)

// Instruction is a decoded instruction word. The set of implementations is
// closed: one per opcode family plus the Reserved sentinel. Values are
// constructed by Decode, consumed once by the machine, and never mutated.
//
// Offsets and immediates are stored sign-extended to 16 bits so that
// wraparound register/PC arithmetic can use them directly; String renders
// them back as signed assembly operands.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// Operand is the second source of ADD and AND: either a register index or a
// sign-extended five bit immediate.
type Operand struct {
	Imm   bool
	Value uint16
}

func (op Operand) String() string {
	if op.Imm {
		return fmt.Sprintf("#%d", int16(op.Value))
	}
	return fmt.Sprintf("R%d", op.Value)
}

type Add struct {
	DR  uint16
	SR1 uint16
	SR2 Operand
}

type And struct {
	DR  uint16
	SR1 uint16
	SR2 Operand
}

type Br struct {
	N      bool
	Z      bool
	P      bool
	Offset uint16
}

type Jmp struct {
	BaseR uint16
}

type Ret struct{}

type Jsr struct {
	Offset uint16
}

type Jsrr struct {
	BaseR uint16
}

type Ld struct {
	DR     uint16
	Offset uint16
}

type Ldi struct {
	DR     uint16
	Offset uint16
}

type Ldr struct {
	DR     uint16
	BaseR  uint16
	Offset uint16
}

type Lea struct {
	DR     uint16
	Offset uint16
}

type Not struct {
	DR uint16
	SR uint16
}

type Rti struct{}

type St struct {
	SR     uint16
	Offset uint16
}

type Sti struct {
	SR     uint16
	Offset uint16
}

type Str struct {
	SR     uint16
	BaseR  uint16
	Offset uint16
}

type Trap struct {
	Code TrapCode
}

// Reserved is the unused opcode 1101. It decodes successfully but executing
// it halts the machine with ErrIllegalInstruction.
type Reserved struct{}

func (Add) instruction()      {}
func (And) instruction()      {}
func (Br) instruction()       {}
func (Jmp) instruction()      {}
func (Ret) instruction()      {}
func (Jsr) instruction()      {}
func (Jsrr) instruction()     {}
func (Ld) instruction()       {}
func (Ldi) instruction()      {}
func (Ldr) instruction()      {}
func (Lea) instruction()      {}
func (Not) instruction()      {}
func (Rti) instruction()      {}
func (St) instruction()       {}
func (Sti) instruction()      {}
func (Str) instruction()      {}
func (Trap) instruction()     {}
func (Reserved) instruction() {}

func (op Add) String() string {
	return fmt.Sprintf("ADD R%d, R%d, %s", op.DR, op.SR1, op.SR2)
}

func (op And) String() string {
	return fmt.Sprintf("AND R%d, R%d, %s", op.DR, op.SR1, op.SR2)
}

func (op Br) String() string {
	mnemonic := "BR"
	if op.N {
		mnemonic += "n"
	}
	if op.Z {
		mnemonic += "z"
	}
	if op.P {
		mnemonic += "p"
	}
	return fmt.Sprintf("%s #%d", mnemonic, int16(op.Offset))
}

func (op Jmp) String() string {
	return fmt.Sprintf("JMP R%d", op.BaseR)
}

func (Ret) String() string {
	return "RET"
}

func (op Jsr) String() string {
	return fmt.Sprintf("JSR #%d", int16(op.Offset))
}

func (op Jsrr) String() string {
	return fmt.Sprintf("JSRR R%d", op.BaseR)
}

func (op Ld) String() string {
	return fmt.Sprintf("LD R%d, #%d", op.DR, int16(op.Offset))
}

func (op Ldi) String() string {
	return fmt.Sprintf("LDI R%d, #%d", op.DR, int16(op.Offset))
}

func (op Ldr) String() string {
	return fmt.Sprintf("LDR R%d, R%d, #%d", op.DR, op.BaseR, int16(op.Offset))
}

func (op Lea) String() string {
	return fmt.Sprintf("LEA R%d, #%d", op.DR, int16(op.Offset))
}

func (op Not) String() string {
	return fmt.Sprintf("NOT R%d, R%d", op.DR, op.SR)
}

func (Rti) String() string {
	return "RTI"
}

func (op St) String() string {
	return fmt.Sprintf("ST R%d, #%d", op.SR, int16(op.Offset))
}

func (op Sti) String() string {
	return fmt.Sprintf("STI R%d, #%d", op.SR, int16(op.Offset))
}

func (op Str) String() string {
	return fmt.Sprintf("STR R%d, R%d, #%d", op.SR, op.BaseR, int16(op.Offset))
}

func (op Trap) String() string {
	switch op.Code {
	case TRAP_GETC:
		return "GETC"
	case TRAP_OUT:
		return "OUT"
	case TRAP_PUTS:
		return "PUTS"
	case TRAP_IN:
		return "IN"
	case TRAP_PUTSP:
		return "PUTSP"
	case TRAP_HALT:
		return "HALT"
	}
	return fmt.Sprintf("TRAP x%02X", uint16(op.Code))
}

func (Reserved) String() string {
	return "RES"
}

// Decode converts a raw instruction word into its Instruction value. The top
// four bits select the opcode family, the remaining bits are sliced per the
// fixed layout documented above each case.
func Decode(word uint16) (Instruction, error) {
	switch word >> 12 {

	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		return Add{
			DR:  (word >> 9) & 0x7,
			SR1: (word >> 6) & 0x7,
			SR2: decodeOperand(word),
		}, nil

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		return And{
			DR:  (word >> 9) & 0x7,
			SR1: (word >> 6) & 0x7,
			SR2: decodeOperand(word),
		}, nil

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		return Br{
			N:      (word>>11)&0x1 == 1,
			Z:      (word>>10)&0x1 == 1,
			P:      (word>>9)&0x1 == 1,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		baser := (word >> 6) & 0x7
		if baser == REG_RET {
			return Ret{}, nil
		}
		return Jmp{BaseR: baser}, nil

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		if (word>>11)&0x1 == 1 {
			return Jsr{Offset: encoding.SignExtend(word&0x7FF, 11)}, nil
		}
		return Jsrr{BaseR: (word >> 6) & 0x7}, nil

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		return Ld{
			DR:     (word >> 9) & 0x7,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		return Ldi{
			DR:     (word >> 9) & 0x7,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		return Ldr{
			DR:     (word >> 9) & 0x7,
			BaseR:  (word >> 6) & 0x7,
			Offset: encoding.SignExtend(word&0x3F, 6),
		}, nil

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		return Lea{
			DR:     (word >> 9) & 0x7,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		return Not{
			DR: (word >> 9) & 0x7,
			SR: (word >> 6) & 0x7,
		}, nil

	// RTI  |1000    |000000000000            | Return from interrupt
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RTI:
		return Rti{}, nil

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		return St{
			SR:     (word >> 9) & 0x7,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		return Sti{
			SR:     (word >> 9) & 0x7,
			Offset: encoding.SignExtend(word&0x1FF, 9),
		}, nil

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		return Str{
			SR:     (word >> 9) & 0x7,
			BaseR:  (word >> 6) & 0x7,
			Offset: encoding.SignExtend(word&0x3F, 6),
		}, nil

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		code := TrapCode(encoding.ZeroExtend(word&0xFF, 8))
		switch code {
		case TRAP_GETC, TRAP_OUT, TRAP_PUTS, TRAP_IN, TRAP_PUTSP, TRAP_HALT:
			return Trap{Code: code}, nil
		}
		return nil, fmt.Errorf("%w: %#02x", ErrUnknownTrap, uint16(code))

	// RES  |1101    |                        | Reserved (illegal)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RES:
		return Reserved{}, nil
	}

	// Unreachable: every value of the top nibble is covered above, but the
	// decode contract stays checked rather than assumed
	return nil, fmt.Errorf("%w: %#04x", ErrUnknownOpcode, word)
}

func decodeOperand(word uint16) Operand {
	if (word>>5)&0x1 == 1 {
		return Operand{Imm: true, Value: encoding.SignExtend(word&0x1F, 5)}
	}
	return Operand{Value: word & 0x7}
}
