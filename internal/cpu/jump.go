package cpu

import (
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/utils"
)

// pushStack pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) pushStack(value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.regs.SP--
	c.writeByte(c.regs.SP, high)
	c.regs.SP--
	c.writeByte(c.regs.SP, low)
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	low := c.readByte(c.regs.SP)
	c.regs.SP++
	high := c.readByte(c.regs.SP)
	c.regs.SP++
	return utils.BytesToUint16(high, low)
}

// push pushes the given register pair onto the stack.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func (c *CPU) push(t types.TargetID) {
	value := c.regs.get16(t)
	if t == types.AF {
		value = value&0xFF00 | uint16(c.flags.FlagsToByte())
	}
	c.tick()
	c.pushStack(value)
}

// pop pops the given register pair off the stack. Popping into AF
// loads the flags, the lower nibble of F always reads 0.
//
//	POP nn
//	nn = AF, BC, DE, HL
func (c *CPU) pop(t types.TargetID) {
	value := c.popStack()
	if t == types.AF {
		c.flags.ByteToFlags(uint8(value))
	}
	c.regs.set16(t, value)
	if t == types.AF {
		c.regs.set8(types.F, c.flags.FlagsToByte())
	}
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.tick()
	c.pushStack(c.regs.PC)
	c.regs.PC = address
}

// callConditional reads the 16-bit address operand and calls it if the
// given condition is true.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) callConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.call(address)
	}
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.regs.PC = c.popStack()
	c.tick()
}

// retConditional returns if the given condition is true. The condition
// check itself takes an M-cycle.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(condition bool) {
	c.tick()
	if condition {
		c.ret()
	}
}

// jumpAbsolute jumps to the given address.
//
//	JP nn
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsolute(address uint16) {
	c.regs.PC = address
	c.tick()
}

// jumpAbsoluteConditional reads the 16-bit address operand and jumps to
// it if the given condition is true.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpAbsoluteConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.jumpAbsolute(address)
	}
}

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.regs.PC += uint16(int8(offset))
	c.tick()
}

// jumpRelativeConditional reads the signed offset operand and jumps
// relative to the current PC if the given condition is true.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelativeConditional(condition bool) {
	offset := c.readOperand()
	if condition {
		c.jumpRelative(offset)
	}
}

// restart pushes the current PC onto the stack and jumps to one of the
// fixed restart vectors.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) restart(vector uint16) {
	c.call(vector)
}
