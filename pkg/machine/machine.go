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
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	mc.Memory.Reset()

	mc.Program = PC_START
	mc.Condition = COND_UNSET
	mc.Halted = false
}

// LoadImage resets the machine and loads a program image, leaving the
// machine ready to Run from PC_START.
func (mc *Machine) LoadImage(reader io.Reader) error {
	mc.State.Reset()

	if mc.Devices != nil {
		mc.State.Memory.Keyboard = mc.Devices.Keyboard
	}

	return mc.State.Memory.LoadImage(reader)
}

// Run steps the machine until it halts. A non-nil error is the termination
// reason of a fatal condition (decode failure, illegal instruction, console
// I/O failure); the machine is left halted either way and is not resumable.
func (mc *Machine) Run() error {
	for !mc.State.Halted {
		if err := mc.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Step performs one fetch-decode-execute cycle
func (mc *Machine) Step() error {
	pc := mc.State.Program
	word := mc.read(pc)

	mc.State.Program++

	instruction, err := Decode(word)

	if err != nil {
		mc.State.Halted = true
		return err
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(pc, instruction, mc)
	}

	if err := mc.execute(instruction); err != nil {
		mc.State.Halted = true
		return err
	}

	return nil
}

func (mc *Machine) execute(instruction Instruction) error {
	switch op := instruction.(type) {

	// ADD: DR <- SR1 + SR2/imm5
	case Add:
		result := mc.State.Registers[op.SR1] + mc.operand(op.SR2)
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// AND: DR <- SR1 & SR2/imm5
	case And:
		result := mc.State.Registers[op.SR1] & mc.operand(op.SR2)
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// BR: PC <- PC + PCoffset9 when an asserted bit matches the live flag
	case Br:
		var want Condition
		if op.N {
			want |= COND_NEG
		}
		if op.Z {
			want |= COND_ZERO
		}
		if op.P {
			want |= COND_POS
		}

		if want&mc.State.Condition != 0 {
			mc.State.Program += op.Offset
		}

	// JMP: PC <- BaseR
	case Jmp:
		mc.State.Program = mc.State.Registers[op.BaseR]

	// RET: PC <- R7
	case Ret:
		mc.State.Program = mc.State.Registers[REG_RET]

	// JSR: R7 <- PC, PC <- PC + PCoffset11
	case Jsr:
		mc.State.Registers[REG_RET] = mc.State.Program
		mc.State.Program += op.Offset

	// JSRR: R7 <- PC, PC <- BaseR
	case Jsrr:
		mc.State.Registers[REG_RET] = mc.State.Program
		mc.State.Program = mc.State.Registers[op.BaseR]

	// LD: DR <- mem[PC + PCoffset9]
	case Ld:
		result := mc.read(mc.State.Program + op.Offset)
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// LDI: DR <- mem[mem[PC + PCoffset9]]
	case Ldi:
		result := mc.read(mc.read(mc.State.Program + op.Offset))
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// LDR: DR <- mem[BaseR + offset6]
	case Ldr:
		result := mc.read(mc.State.Registers[op.BaseR] + op.Offset)
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// LEA: DR <- PC + PCoffset9 (the address itself, no memory access)
	case Lea:
		result := mc.State.Program + op.Offset
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// NOT: DR <- ^SR
	case Not:
		result := ^mc.State.Registers[op.SR]
		mc.State.Registers[op.DR] = result
		mc.setFlags(result)

	// RTI: no interrupt table exists in this machine, so nothing to return
	// from
	case Rti:

	// ST: mem[PC + PCoffset9] <- SR
	case St:
		mc.write(mc.State.Program+op.Offset, mc.State.Registers[op.SR])

	// STI: mem[mem[PC + PCoffset9]] <- SR
	case Sti:
		mc.write(
			mc.read(mc.State.Program+op.Offset),
			mc.State.Registers[op.SR],
		)

	// STR: mem[BaseR + offset6] <- SR
	case Str:
		mc.write(
			mc.State.Registers[op.BaseR]+op.Offset,
			mc.State.Registers[op.SR],
		)

	// TRAP: R7 <- PC, then dispatch by code
	case Trap:
		mc.State.Registers[REG_RET] = mc.State.Program
		return mc.trap(op.Code)

	case Reserved:
		return fmt.Errorf("%w: reserved opcode", ErrIllegalInstruction)
	}

	return nil
}

func (mc *Machine) operand(op Operand) uint16 {
	if op.Imm {
		return op.Value
	}

	return mc.State.Registers[op.Value]
}

func (mc *Machine) setFlags(value uint16) {
	if value == 0 {
		mc.State.Condition = COND_ZERO
	} else if value>>15 == 1 {
		mc.State.Condition = COND_NEG
	} else {
		mc.State.Condition = COND_POS
	}
}

func (mc *Machine) read(addr uint16) uint16 {
	value := mc.State.Memory.Read(addr)

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return value
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory.Write(addr, value)

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}
