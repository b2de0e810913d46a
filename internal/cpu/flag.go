package cpu

import "github.com/thelolagemann/asciiboy/pkg/utils"

type Flag = uint8

// bit positions of the flags in the F register
const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// FlagRegister is the unpacked form of the F register. Bits 3-0 of F
// do not exist on the hardware and always read back as 0.
type FlagRegister struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// ByteToFlags unpacks bits 7, 6, 5 and 4 of the given byte. The lower
// nibble is ignored.
func (f *FlagRegister) ByteToFlags(b uint8) {
	f.Zero = utils.TestBit(b, FlagZero)
	f.Subtract = utils.TestBit(b, FlagSubtract)
	f.HalfCarry = utils.TestBit(b, FlagHalfCarry)
	f.Carry = utils.TestBit(b, FlagCarry)
}

// FlagsToByte packs the flags into the F register layout.
func (f FlagRegister) FlagsToByte() uint8 {
	var b uint8
	b = utils.SetBitTo(b, FlagZero, f.Zero)
	b = utils.SetBitTo(b, FlagSubtract, f.Subtract)
	b = utils.SetBitTo(b, FlagHalfCarry, f.HalfCarry)
	b = utils.SetBitTo(b, FlagCarry, f.Carry)
	return b
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.flags = FlagRegister{Zero: zero, Subtract: subtract, HalfCarry: halfCarry, Carry: carry}
}
