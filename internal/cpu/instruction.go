package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/asciiboy/internal/types"
)

// Instruction describes a decoded instruction, for diagnostics.
// Targets that are dereferenced as a memory address are flagged by
// T1Address/T2Address. Mnemonics of instructions that take immediates
// carry their operands in the mnemonic itself (e.g. "LD BC, d16").
type Instruction struct {
	Mnemonic  string
	Target1   types.TargetID
	Target2   types.TargetID
	T1Address bool
	T2Address bool
	Opcode    uint16 // 0xCBxx for CB prefixed instructions
	TwoByte   bool
	Origin    uint16 // address of the opcode
}

func (i Instruction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "0x%04X: ", i.Origin)
	if i.TwoByte {
		fmt.Fprintf(&b, "[0x%04X] ", i.Opcode)
	} else {
		fmt.Fprintf(&b, "[0x%02X] ", i.Opcode)
	}
	b.WriteString(i.Mnemonic)

	operand := func(t types.TargetID, address bool) string {
		if address {
			return "(" + t.String() + ")"
		}
		return t.String()
	}
	if i.Target1 != types.NoTarget {
		b.WriteString(" " + operand(i.Target1, i.T1Address))
	}
	if i.Target2 != types.NoTarget {
		if i.Target1 != types.NoTarget {
			b.WriteString(",")
		}
		b.WriteString(" " + operand(i.Target2, i.T2Address))
	}
	return b.String()
}

// handler is an entry of the opcode table.
type handler struct {
	name string
	fn   func(*CPU)
}

// InstructionSet holds the instructions that are not decoded from
// their bit pattern. Unused opcodes are filled with an illegal handler.
var InstructionSet [256]handler

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = handler{
		name: name,
		fn:   fn,
	}
}

// illegal handles the opcodes that have no instruction on the SM83.
// Only the PC advances.
func illegal(c *CPU) {
	c.log.Debugf("unimplemented opcode 0x%02X at 0x%04X", c.instr.Opcode, c.instr.Origin)
}

// register pair tables, indexed by bits 5-4 of the opcode
var (
	pairs      = [4]types.TargetID{types.BC, types.DE, types.HL, types.SP}
	stackPairs = [4]types.TargetID{types.BC, types.DE, types.HL, types.AF}
	conditions = [4]string{"NZ", "Z", "NC", "C"}
	aluNames   = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
)

// condition evaluates the condition encoded in bits 4-3 of the opcode.
func (c *CPU) condition(opcode uint8) bool {
	switch opcode >> 3 & 3 {
	case 0:
		return !c.flags.Zero
	case 1:
		return c.flags.Zero
	case 2:
		return !c.flags.Carry
	default:
		return c.flags.Carry
	}
}
