package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/asciiboy/internal/types"
)

// ErrInvalidTarget is returned by the register accessors when the
// target does not name a register of the requested width.
var ErrInvalidTarget = errors.New("invalid register target")

// RegisterSet holds the 8-bit registers A, F, B, C, D, E, H and L in a
// fixed buffer, along with the 16-bit SP and PC. The buffer is laid out
// so that each register pair is stored big-endian, the high register
// first:
//
//	index  0  1  2  3  4  5  6  7
//	       A  F  B  C  D  E  H  L
//	       AF    BC    DE    HL
//
// Writing either half of a pair is immediately visible through the
// 16-bit view, and vice versa.
type RegisterSet struct {
	raw [8]uint8

	SP uint16
	PC uint16
}

// NewRegisterSet returns a RegisterSet initialised to the given boot state.
func NewRegisterSet(boot types.BootState) RegisterSet {
	return RegisterSet{
		raw: [8]uint8{boot.A, boot.F, boot.B, boot.C, boot.D, boot.E, boot.H, boot.L},
		SP:  boot.SP,
		PC:  boot.PC,
	}
}

func (r *RegisterSet) get8(t types.TargetID) uint8 {
	return r.raw[t-types.A]
}

func (r *RegisterSet) set8(t types.TargetID, v uint8) {
	r.raw[t-types.A] = v
}

func (r *RegisterSet) get16(t types.TargetID) uint16 {
	switch t {
	case types.SP:
		return r.SP
	case types.PC:
		return r.PC
	}
	i := (t - types.AF) * 2
	return uint16(r.raw[i])<<8 | uint16(r.raw[i+1])
}

func (r *RegisterSet) set16(t types.TargetID, v uint16) {
	switch t {
	case types.SP:
		r.SP = v
		return
	case types.PC:
		r.PC = v
		return
	}
	i := (t - types.AF) * 2
	r.raw[i] = uint8(v >> 8)
	r.raw[i+1] = uint8(v)
}

// GetByteReg returns the value of one of the 8-bit registers.
func (r *RegisterSet) GetByteReg(t types.TargetID) (uint8, error) {
	if !t.Is8Bit() {
		return 0, fmt.Errorf("GetByteReg(%s): %w", t, ErrInvalidTarget)
	}
	return r.get8(t), nil
}

// SetByteReg sets one of the 8-bit registers.
func (r *RegisterSet) SetByteReg(t types.TargetID, value uint8) error {
	if !t.Is8Bit() {
		return fmt.Errorf("SetByteReg(%s): %w", t, ErrInvalidTarget)
	}
	r.set8(t, value)
	return nil
}

// GetShortReg returns the value of a register pair, SP or PC.
func (r *RegisterSet) GetShortReg(t types.TargetID) (uint16, error) {
	if !t.Is16Bit() {
		return 0, fmt.Errorf("GetShortReg(%s): %w", t, ErrInvalidTarget)
	}
	return r.get16(t), nil
}

// SetShortReg sets a register pair, SP or PC.
func (r *RegisterSet) SetShortReg(t types.TargetID, value uint16) error {
	if !t.Is16Bit() {
		return fmt.Errorf("SetShortReg(%s): %w", t, ErrInvalidTarget)
	}
	r.set16(t, value)
	return nil
}

func (r *RegisterSet) String() string {
	return fmt.Sprintf("(A: 0x%02X | F: 0b%08b | B: 0x%02X | C: 0x%02X | D: 0x%02X | E: 0x%02X | H: 0x%02X | L: 0x%02X | SP: 0x%04X | PC: 0x%04X)",
		r.raw[0], r.raw[1], r.raw[2], r.raw[3], r.raw[4], r.raw[5], r.raw[6], r.raw[7], r.SP, r.PC)
}

// registerIndex is the operand order of the 3-bit register field used
// throughout the instruction set. Index 6 is (HL), the byte in memory
// that HL points to.
var registerIndex = [8]types.TargetID{
	types.B, types.C, types.D, types.E, types.H, types.L, types.HL, types.A,
}

// TargetFromIndex converts a 3-bit register field to a TargetID. Only
// the lower 3 bits of id are used.
func TargetFromIndex(id uint8) types.TargetID {
	return registerIndex[id&0x7]
}
