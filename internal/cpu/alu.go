package cpu

import (
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/utils"
)

// add adds n, and the carry flag when withCarry is set, to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	a := c.regs.get8(types.A)
	carry := utils.BoolToUint8(withCarry && c.flags.Carry)
	result := a + n + carry

	c.setFlags(
		result == 0,
		false,
		utils.HalfCarryAdd(a, n) || utils.HalfCarryAdd(a+n, carry),
		utils.OverflowAdd(a, n) || utils.OverflowAdd(a+n, carry),
	)
	c.regs.set8(types.A, result)
}

// sub subtracts n, and the carry flag when withCarry is set, from the A
// Register.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	c.regs.set8(types.A, c.subtract(n, withCarry))
}

func (c *CPU) subtract(n uint8, withCarry bool) uint8 {
	a := c.regs.get8(types.A)
	carry := utils.BoolToUint8(withCarry && c.flags.Carry)
	result := a - n - carry

	c.setFlags(
		result == 0,
		true,
		utils.HalfCarrySub(a, n) || utils.HalfCarrySub(a-n, carry),
		utils.UnderflowSub(a, n) || utils.UnderflowSub(a-n, carry),
	)
	return result
}

// compare compares n to the A Register, by subtracting it and
// discarding the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero. (A == n)
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow. (A < n)
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	a := c.regs.get8(types.A) & n
	c.regs.set8(types.A, a)
	c.setFlags(a == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	a := c.regs.get8(types.A) | n
	c.regs.set8(types.A, a)
	c.setFlags(a == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	a := c.regs.get8(types.A) ^ n
	c.regs.set8(types.A, a)
	c.setFlags(a == 0, false, false, false)
}

// increment increments the given target by 1.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(t types.TargetID) {
	value := c.readTarget(t)
	result := value + 1
	c.setFlags(result == 0, false, utils.HalfCarryAdd(value, 1), c.flags.Carry)
	c.writeTarget(t, result)
}

// decrement decrements the given target by 1.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(t types.TargetID) {
	value := c.readTarget(t)
	result := value - 1
	c.setFlags(result == 0, true, utils.HalfCarrySub(value, 1), c.flags.Carry)
	c.writeTarget(t, result)
}

// addHL adds the given register pair to HL.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(t types.TargetID) {
	hl, n := c.regs.get16(types.HL), c.regs.get16(t)
	c.setFlags(c.flags.Zero, false, hl&0x0FFF+n&0x0FFF > 0x0FFF, utils.OverflowAdd(hl, n))
	c.regs.set16(types.HL, hl+n)
	c.tick()
}

// addSPSigned returns SP plus a signed 8-bit offset. The half carry and
// carry flags come from the unsigned addition of the low byte of SP and
// the offset.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	sp := c.regs.SP
	c.setFlags(false, false, utils.HalfCarryAdd(uint8(sp), offset), utils.OverflowAdd(uint8(sp), offset))
	return sp + uint16(int8(offset))
}

// decimalAdjust adjusts the A Register so that it holds the binary
// coded decimal result of the previous addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	a := c.regs.get8(types.A)
	carry := c.flags.Carry

	var adjust uint8
	if c.flags.HalfCarry || (!c.flags.Subtract && a&0x0F > 0x09) {
		adjust |= 0x06
	}
	if c.flags.Carry || (!c.flags.Subtract && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.flags.Subtract {
		a -= adjust
	} else {
		a += adjust
	}

	c.setFlags(a == 0, c.flags.Subtract, false, carry)
	c.regs.set8(types.A, a)
}

// testBit tests the given bit of value.
//
//	BIT b, n
//	b = 0 - 7
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit b of value is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, bit uint8) {
	c.setFlags(!utils.TestBit(value, bit), false, true, c.flags.Carry)
}
