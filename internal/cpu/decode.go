package cpu

import (
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/utils"
)

// decodeLoad decodes LD r, r' (0x40-0x7F, except 0x76 which is HALT).
// Bits 5-3 select the destination, bits 2-0 the source.
func (c *CPU) decodeLoad(opcode uint8) {
	dst, src := TargetFromIndex(opcode>>3), TargetFromIndex(opcode)
	c.instr.Mnemonic = "LD"
	c.instr.Target1, c.instr.T1Address = dst, dst == types.HL
	c.instr.Target2, c.instr.T2Address = src, src == types.HL

	c.writeTarget(dst, c.readTarget(src))
}

// decodeALU decodes the 8-bit arithmetic block (0x80-0xBF). Bits 5-3
// select the operation, bits 2-0 the operand.
func (c *CPU) decodeALU(opcode uint8) {
	src := TargetFromIndex(opcode)
	c.instr.Mnemonic = aluNames[opcode>>3&7]
	c.instr.Target1 = types.A
	c.instr.Target2, c.instr.T2Address = src, src == types.HL

	c.alu(opcode>>3&7, c.readTarget(src))
}

// alu performs the operation selected by op on A and n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op & 7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.compare(n)
	}
}

var cbNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// decodeCB decodes a CB prefixed instruction. Bits 7-6 select the
// group (shift/rotate, BIT, RES, SET), bits 5-3 the operation or bit
// number and bits 2-0 the operand.
func (c *CPU) decodeCB(opcode uint8) {
	target := TargetFromIndex(opcode)
	bit := opcode >> 3 & 7

	c.instr.TwoByte = true
	c.instr.Opcode = 0xCB00 | uint16(opcode)
	c.instr.Target2, c.instr.T2Address = target, target == types.HL

	value := c.readTarget(target)
	switch opcode >> 6 {
	case 0:
		c.instr.Mnemonic = cbNames[bit]
		c.instr.Target1, c.instr.Target2 = c.instr.Target2, types.NoTarget
		c.instr.T1Address, c.instr.T2Address = c.instr.T2Address, false
		c.writeTarget(target, c.shift(bit, value))
	case 1:
		c.instr.Mnemonic = "BIT " + string('0'+rune(bit)) + ","
		c.testBit(value, bit)
	case 2:
		c.instr.Mnemonic = "RES " + string('0'+rune(bit)) + ","
		c.writeTarget(target, utils.ClearBit(value, bit))
	case 3:
		c.instr.Mnemonic = "SET " + string('0'+rune(bit)) + ","
		c.writeTarget(target, utils.SetBit(value, bit))
	}
}

// shift performs the rotate/shift operation selected by op.
func (c *CPU) shift(op uint8, value uint8) uint8 {
	switch op & 7 {
	case 0:
		return c.rotateLeftCarry(value)
	case 1:
		return c.rotateRightCarry(value)
	case 2:
		return c.rotateLeft(value)
	case 3:
		return c.rotateRight(value)
	case 4:
		return c.shiftLeftArithmetic(value)
	case 5:
		return c.shiftRightArithmetic(value)
	case 6:
		return c.swap(value)
	default:
		return c.shiftRightLogical(value)
	}
}
