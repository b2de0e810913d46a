// Package cpu implements the Sharp SM83 processor used by the DMG.
package cpu

import (
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/log"
	"github.com/thelolagemann/asciiboy/pkg/utils"
)

// Bus is the memory the CPU executes against.
type Bus interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, value uint8)
}

type Mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal Mode = iota
	// ModeHalt is entered by HALT, the CPU idles until an interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP, the CPU idles until a joypad
	// interrupt is pending or it is woken by the host.
	ModeStop
)

const (
	regIF = 0xFF0F
	regIE = 0xFFFF
)

// CPU represents the DMG CPU. It is responsible for executing instructions.
type CPU struct {
	regs  RegisterSet
	flags FlagRegister

	// ime is the interrupt master enable. EI and DI stage their value
	// in nextIME, which takes effect when the next instruction starts.
	ime     bool
	nextIME bool
	mode    Mode

	bus    Bus
	cycles int
	instr  Instruction

	log log.Logger

	// Debug traces every instruction through the logger.
	Debug bool
}

type Opt func(*CPU)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithBootState starts the CPU from the given register state.
func WithBootState(b types.BootState) Opt {
	return func(c *CPU) {
		c.regs = NewRegisterSet(b)
	}
}

// NewCPU returns a CPU in the DMG power-on state.
func NewCPU(opts ...Opt) *CPU {
	c := &CPU{
		regs: NewRegisterSet(types.DMGBootState),
		log:  log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registers returns the register file. Changes made through it are
// seen by the next instruction.
func (c *CPU) Registers() *RegisterSet {
	return &c.regs
}

// Flags returns the flags currently held in F.
func (c *CPU) Flags() FlagRegister {
	var f FlagRegister
	f.ByteToFlags(c.regs.get8(types.F))
	return f
}

func (c *CPU) IME() bool {
	return c.ime
}

func (c *CPU) Mode() Mode {
	return c.mode
}

// LastInstruction returns the most recently decoded instruction.
func (c *CPU) LastInstruction() Instruction {
	return c.instr
}

// Wake returns the CPU to normal mode from HALT or STOP.
func (c *CPU) Wake() {
	c.mode = ModeNormal
}

// Execute runs a single instruction. opcode must be the byte at PC, the
// PC is advanced past it and any operands. It returns the number of
// clock cycles the instruction took.
func (c *CPU) Execute(opcode uint8, bus Bus) int {
	c.bus = bus
	c.cycles = 0
	c.instr = Instruction{Opcode: uint16(opcode), Origin: c.regs.PC}
	c.flags.ByteToFlags(c.regs.get8(types.F))
	flags := c.flags
	c.regs.PC++

	// a pending EI/DI takes effect now
	c.ime = c.nextIME

	switch {
	case opcode >= 0x40 && opcode < 0x80 && opcode != 0x76:
		c.decodeLoad(opcode)
	case opcode >= 0x80 && opcode < 0xC0:
		c.decodeALU(opcode)
	case opcode == 0xCB:
		c.decodeCB(c.readOperand())
	default:
		instruction := InstructionSet[opcode]
		c.instr.Mnemonic = instruction.name
		instruction.fn(c)
	}

	// F is only rewritten when the flags changed
	if c.flags != flags {
		c.regs.set8(types.F, c.flags.FlagsToByte())
	}
	c.cycles += 4

	if c.Debug {
		c.log.Debugf("%-24s %s", c.instr, &c.regs)
	}

	return c.cycles
}

// Step advances the CPU by one instruction, or by a single idle M-cycle
// while halted or stopped, servicing a pending interrupt afterwards if
// interrupts are enabled. It returns the number of clock cycles used.
func (c *CPU) Step(bus Bus) int {
	c.bus = bus

	switch c.mode {
	case ModeHalt:
		if c.pendingInterrupts() == 0 {
			return 4
		}
		c.mode = ModeNormal
		if c.ime {
			return 4 + c.serviceInterrupt(c.pendingInterrupts())
		}
	case ModeStop:
		if c.pendingInterrupts()&types.JoypadInterrupt == 0 {
			return 4
		}
		c.mode = ModeNormal
		if c.ime {
			return 4 + c.serviceInterrupt(c.pendingInterrupts())
		}
	}

	cycles := c.Execute(bus.ReadByte(c.regs.PC), bus)
	if c.ime {
		if pending := c.pendingInterrupts(); pending != 0 {
			cycles += c.serviceInterrupt(pending)
		}
	}
	return cycles
}

func (c *CPU) pendingInterrupts() uint8 {
	return c.bus.ReadByte(regIE) & c.bus.ReadByte(regIF) & types.InterruptMask
}

// serviceInterrupt dispatches the highest priority interrupt in pending,
// pushing PC and jumping to its vector. It leaves HALT and STOP.
func (c *CPU) serviceInterrupt(pending uint8) int {
	c.mode = ModeNormal
	for i := uint8(0); i < 5; i++ {
		if pending&(1<<i) == 0 {
			continue
		}

		c.ime, c.nextIME = false, false
		c.bus.WriteByte(regIF, c.bus.ReadByte(regIF)&^(1<<i))

		c.pushStack(c.regs.PC)
		c.regs.PC = 0x0040 + uint16(i)*8
		c.log.Debugf("servicing interrupt %d, jumping to 0x%04X", i, c.regs.PC)
		break
	}
	return 20
}

// tick accounts for an internal M-cycle that does not touch the bus.
func (c *CPU) tick() {
	c.cycles += 4
}

// readByte reads from the bus, accounting for the M-cycle it takes.
func (c *CPU) readByte(address uint16) uint8 {
	c.cycles += 4
	return c.bus.ReadByte(address)
}

// writeByte writes to the bus, accounting for the M-cycle it takes.
func (c *CPU) writeByte(address uint16, value uint8) {
	c.cycles += 4
	c.bus.WriteByte(address, value)
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.regs.PC)
	c.regs.PC++
	return value
}

// readOperand16 reads a little-endian 16-bit immediate.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return utils.BytesToUint16(c.readOperand(), low)
}

// readTarget returns the value of an 8-bit register, or the byte
// pointed to by HL when t is HL.
func (c *CPU) readTarget(t types.TargetID) uint8 {
	if t == types.HL {
		return c.readByte(c.regs.get16(types.HL))
	}
	return c.regs.get8(t)
}

// writeTarget is the counterpart of readTarget.
func (c *CPU) writeTarget(t types.TargetID, value uint8) {
	if t == types.HL {
		c.writeByte(c.regs.get16(types.HL), value)
		return
	}
	c.regs.set8(t, value)
}

// Save implements types.Stater.
func (c *CPU) Save(s *types.State) {
	s.WriteData(c.regs.raw[:])
	s.Write16(c.regs.SP)
	s.Write16(c.regs.PC)
	s.WriteBool(c.ime)
	s.WriteBool(c.nextIME)
	s.Write8(c.mode)
}

// Load implements types.Stater.
func (c *CPU) Load(s *types.State) {
	s.ReadData(c.regs.raw[:])
	c.regs.SP = s.Read16()
	c.regs.PC = s.Read16()
	c.ime = s.ReadBool()
	c.nextIME = s.ReadBool()
	c.mode = s.Read8()
}
