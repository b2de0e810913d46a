package cpu

import (
	"testing"

	"github.com/thelolagemann/asciiboy/internal/types"
)

// testBus is a flat 64KiB memory.
type testBus struct {
	mem [0x10000]uint8
}

func (b *testBus) ReadByte(address uint16) uint8 {
	return b.mem[address]
}

func (b *testBus) WriteByte(address uint16, value uint8) {
	b.mem[address] = value
}

// newTestCPU returns a CPU in the DMG boot state with program placed
// at the entry point.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	bus := &testBus{}
	copy(bus.mem[types.EntryPoint:], program)
	return NewCPU(), bus
}

func execute(c *CPU, bus *testBus) int {
	return c.Execute(bus.ReadByte(c.regs.PC), bus)
}

func TestCPU_Execute(t *testing.T) {
	t.Run("NOP", func(t *testing.T) {
		c, bus := newTestCPU(0x00)
		if cycles := execute(c, bus); cycles != 4 {
			t.Errorf("expected 4 cycles, got %d", cycles)
		}
		if c.regs.PC != 0x0101 {
			t.Errorf("expected PC 0x0101, got 0x%04X", c.regs.PC)
		}
	})
	t.Run("LD B, (HL)", func(t *testing.T) {
		c, bus := newTestCPU(0x46)
		bus.mem[0x8493] = 0x42
		if cycles := execute(c, bus); cycles != 8 {
			t.Errorf("expected 8 cycles, got %d", cycles)
		}
		if b, _ := c.regs.GetByteReg(types.B); b != 0x42 {
			t.Errorf("expected B to be 0x42, got 0x%02X", b)
		}
	})
	t.Run("LD (HL), A", func(t *testing.T) {
		c, bus := newTestCPU(0x77)
		execute(c, bus)
		if bus.mem[0x8493] != 0x01 {
			t.Errorf("expected 0x01 at (HL), got 0x%02X", bus.mem[0x8493])
		}
	})
	t.Run("ADD A, d8 half carry", func(t *testing.T) {
		c, bus := newTestCPU(0xC6, 0x01)
		_ = c.regs.SetByteReg(types.A, 0x0F)
		if cycles := execute(c, bus); cycles != 8 {
			t.Errorf("expected 8 cycles, got %d", cycles)
		}
		if a, _ := c.regs.GetByteReg(types.A); a != 0x10 {
			t.Errorf("expected A to be 0x10, got 0x%02X", a)
		}
		f := c.Flags()
		if f.Zero || f.Subtract || !f.HalfCarry || f.Carry {
			t.Errorf("expected only H set, got %+v", f)
		}
		if c.regs.PC != 0x0102 {
			t.Errorf("expected PC 0x0102, got 0x%04X", c.regs.PC)
		}
	})
	t.Run("DAA after ADD", func(t *testing.T) {
		c, bus := newTestCPU(0xC6, 0x27, 0x27)
		_ = c.regs.SetByteReg(types.A, 0x15)
		execute(c, bus)
		execute(c, bus)
		if a, _ := c.regs.GetByteReg(types.A); a != 0x42 {
			t.Errorf("expected A to be 0x42, got 0x%02X", a)
		}
		if f := c.Flags(); f.Zero || f.HalfCarry || f.Carry {
			t.Errorf("expected Z, H and C clear, got %+v", f)
		}
	})
	t.Run("illegal opcode", func(t *testing.T) {
		for _, op := range []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
			c, bus := newTestCPU(op)
			before := c.regs
			if cycles := execute(c, bus); cycles != 4 {
				t.Errorf("0x%02X: expected 4 cycles, got %d", op, cycles)
			}
			before.PC++
			if c.regs != before {
				t.Errorf("0x%02X: expected %s, got %s", op, &before, &c.regs)
			}
		}
	})
	t.Run("illegal opcode keeps F", func(t *testing.T) {
		c, bus := newTestCPU(0xD3)
		_ = c.regs.SetByteReg(types.F, 0x0F)
		execute(c, bus)
		if f, _ := c.regs.GetByteReg(types.F); f != 0x0F {
			t.Errorf("expected F 0x0F, got 0x%02X", f)
		}
	})
	t.Run("PUSH AF, POP BC", func(t *testing.T) {
		c, bus := newTestCPU(0xF5, 0xC1)
		_ = c.regs.SetShortReg(types.AF, 0x12FF)
		if cycles := execute(c, bus); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if cycles := execute(c, bus); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if bc, _ := c.regs.GetShortReg(types.BC); bc != 0x12F0 {
			t.Errorf("expected BC 0x12F0, got 0x%04X", bc)
		}
		if c.regs.SP != 0xFFFE {
			t.Errorf("expected SP 0xFFFE, got 0x%04X", c.regs.SP)
		}
	})
	t.Run("POP AF masks F", func(t *testing.T) {
		c, bus := newTestCPU(0xF1)
		c.regs.SP = 0xC000
		bus.mem[0xC000] = 0xFF
		bus.mem[0xC001] = 0x34
		execute(c, bus)
		if af, _ := c.regs.GetShortReg(types.AF); af != 0x34F0 {
			t.Errorf("expected AF 0x34F0, got 0x%04X", af)
		}
		if f := c.Flags(); !f.Zero || !f.Subtract || !f.HalfCarry || !f.Carry {
			t.Errorf("expected all flags set, got %+v", f)
		}
	})
	t.Run("LD (a16), SP", func(t *testing.T) {
		c, bus := newTestCPU(0x08, 0x00, 0xC1)
		if cycles := execute(c, bus); cycles != 20 {
			t.Errorf("expected 20 cycles, got %d", cycles)
		}
		if bus.mem[0xC100] != 0xFE || bus.mem[0xC101] != 0xFF {
			t.Errorf("expected FE FF, got %02X %02X", bus.mem[0xC100], bus.mem[0xC101])
		}
	})
	t.Run("LD A, (HL+)", func(t *testing.T) {
		c, bus := newTestCPU(0x2A)
		bus.mem[0x8493] = 0x99
		execute(c, bus)
		if a, _ := c.regs.GetByteReg(types.A); a != 0x99 {
			t.Errorf("expected A 0x99, got 0x%02X", a)
		}
		if hl, _ := c.regs.GetShortReg(types.HL); hl != 0x8494 {
			t.Errorf("expected HL 0x8494, got 0x%04X", hl)
		}
	})
	t.Run("LDH", func(t *testing.T) {
		c, bus := newTestCPU(0xE0, 0x80, 0xF0, 0x81)
		bus.mem[0xFF81] = 0x5A
		if cycles := execute(c, bus); cycles != 12 {
			t.Errorf("expected 12 cycles, got %d", cycles)
		}
		if bus.mem[0xFF80] != 0x01 {
			t.Errorf("expected 0x01 at 0xFF80, got 0x%02X", bus.mem[0xFF80])
		}
		execute(c, bus)
		if a, _ := c.regs.GetByteReg(types.A); a != 0x5A {
			t.Errorf("expected A 0x5A, got 0x%02X", a)
		}
	})
}

func TestCPU_InterruptLatch(t *testing.T) {
	t.Run("EI is delayed by one instruction", func(t *testing.T) {
		c, bus := newTestCPU(0xFB, 0x00, 0xF3, 0x00)
		execute(c, bus)
		if c.IME() {
			t.Error("expected IME to be clear directly after EI")
		}
		execute(c, bus)
		if !c.IME() {
			t.Error("expected IME to be set after the instruction following EI")
		}
		execute(c, bus)
		if !c.IME() {
			t.Error("expected IME to remain set directly after DI")
		}
		execute(c, bus)
		if c.IME() {
			t.Error("expected IME to be clear after the instruction following DI")
		}
	})
	t.Run("interrupt serviced after EI", func(t *testing.T) {
		c, bus := newTestCPU(0xFB, 0x00, 0x00)
		bus.mem[regIE] = 0x01
		bus.mem[regIF] = 0x01
		if cycles := c.Step(bus); cycles != 4 {
			t.Errorf("expected 4 cycles, got %d", cycles)
		}
		if cycles := c.Step(bus); cycles != 24 {
			t.Errorf("expected 24 cycles, got %d", cycles)
		}
		if c.regs.PC != 0x0040 {
			t.Errorf("expected PC 0x0040, got 0x%04X", c.regs.PC)
		}
		if bus.mem[regIF] != 0x00 {
			t.Errorf("expected IF to be cleared, got 0x%02X", bus.mem[regIF])
		}
		if c.regs.SP != 0xFFFC || bus.mem[0xFFFD] != 0x01 || bus.mem[0xFFFC] != 0x02 {
			t.Errorf("expected 0x0102 pushed to 0xFFFC, got SP 0x%04X", c.regs.SP)
		}
		if c.IME() {
			t.Error("expected IME to be cleared by the dispatch")
		}
	})
	t.Run("priority", func(t *testing.T) {
		c, bus := newTestCPU(0xFB, 0x00)
		bus.mem[regIE] = 0x1F
		bus.mem[regIF] = 0x14
		c.Step(bus)
		c.Step(bus)
		if c.regs.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.regs.PC)
		}
		if bus.mem[regIF] != 0x10 {
			t.Errorf("expected IF 0x10, got 0x%02X", bus.mem[regIF])
		}
	})
	t.Run("RETI enables immediately", func(t *testing.T) {
		c, bus := newTestCPU(0xD9)
		c.regs.SP = 0xC000
		bus.mem[0xC000] = 0x00
		bus.mem[0xC001] = 0x02
		if cycles := execute(c, bus); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if !c.IME() {
			t.Error("expected IME to be set")
		}
		if c.regs.PC != 0x0200 {
			t.Errorf("expected PC 0x0200, got 0x%04X", c.regs.PC)
		}
	})
}

func TestCPU_Halt(t *testing.T) {
	t.Run("wakes without IME", func(t *testing.T) {
		c, bus := newTestCPU(0x76, 0x00)
		c.Step(bus)
		if c.Mode() != ModeHalt {
			t.Fatalf("expected halt mode, got %d", c.Mode())
		}
		if cycles := c.Step(bus); cycles != 4 || c.regs.PC != 0x0101 {
			t.Errorf("expected idle cycle at 0x0101, got %d cycles at 0x%04X", cycles, c.regs.PC)
		}

		bus.mem[regIE] = 0x04
		bus.mem[regIF] = 0x04
		c.Step(bus)
		if c.Mode() != ModeNormal {
			t.Errorf("expected normal mode, got %d", c.Mode())
		}
		if c.regs.PC != 0x0102 {
			t.Errorf("expected PC 0x0102, got 0x%04X", c.regs.PC)
		}
		if bus.mem[regIF] != 0x04 {
			t.Errorf("expected IF to be untouched, got 0x%02X", bus.mem[regIF])
		}
	})
	t.Run("wakes into interrupt with IME", func(t *testing.T) {
		c, bus := newTestCPU(0xFB, 0x76)
		c.Step(bus)
		c.Step(bus)
		if c.Mode() != ModeHalt {
			t.Fatalf("expected halt mode, got %d", c.Mode())
		}
		bus.mem[regIE] = 0x01
		bus.mem[regIF] = 0x01
		if cycles := c.Step(bus); cycles != 24 {
			t.Errorf("expected 24 cycles, got %d", cycles)
		}
		if c.regs.PC != 0x0040 {
			t.Errorf("expected PC 0x0040, got 0x%04X", c.regs.PC)
		}
	})
	t.Run("interrupt already pending with IME", func(t *testing.T) {
		c, bus := newTestCPU(0x76)
		c.ime, c.nextIME = true, true
		bus.mem[regIE] = 0x01
		bus.mem[regIF] = 0x01
		bus.mem[0x0040] = 0x3E // LD A, 0x42
		bus.mem[0x0041] = 0x42

		if cycles := c.Step(bus); cycles != 24 {
			t.Errorf("expected 24 cycles, got %d", cycles)
		}
		if c.Mode() != ModeNormal {
			t.Fatalf("expected normal mode after dispatch, got %d", c.Mode())
		}
		if c.regs.PC != 0x0040 {
			t.Errorf("expected PC 0x0040, got 0x%04X", c.regs.PC)
		}
		c.Step(bus)
		if a, _ := c.regs.GetByteReg(types.A); a != 0x42 {
			t.Errorf("expected handler to load 0x42 into A, got 0x%02X", a)
		}
	})
}

func TestCPU_Stop(t *testing.T) {
	c, bus := newTestCPU(0x10, 0x00, 0x00, 0x00)
	if cycles := execute(c, bus); cycles != 4 {
		t.Errorf("expected 4 cycles, got %d", cycles)
	}
	if c.Mode() != ModeStop || c.regs.PC != 0x0102 {
		t.Fatalf("expected stop mode at 0x0102, got mode %d at 0x%04X", c.Mode(), c.regs.PC)
	}

	bus.mem[regIE] = 0x04
	bus.mem[regIF] = 0x04
	c.Step(bus)
	if c.Mode() != ModeStop {
		t.Error("expected timer interrupt to leave the CPU stopped")
	}

	bus.mem[regIE] = 0x10
	bus.mem[regIF] = 0x10
	c.Step(bus)
	if c.Mode() != ModeNormal || c.regs.PC != 0x0103 {
		t.Errorf("expected joypad to wake the CPU, got mode %d at 0x%04X", c.Mode(), c.regs.PC)
	}

	c.mode = ModeStop
	c.Wake()
	if c.Mode() != ModeNormal {
		t.Error("expected Wake to leave stop mode")
	}
}

func TestCPU_State(t *testing.T) {
	c, bus := newTestCPU(0xFB, 0x3E, 0x77)
	execute(c, bus)
	execute(c, bus)
	c.regs.SP = 0xD000

	s := types.NewState()
	c.Save(s)

	loaded := NewCPU()
	loaded.Load(types.StateFromBytes(s.Bytes()))
	if loaded.regs != c.regs {
		t.Errorf("expected %s, got %s", &c.regs, &loaded.regs)
	}
	if loaded.IME() != c.IME() || loaded.nextIME != c.nextIME || loaded.Mode() != c.Mode() {
		t.Error("expected interrupt state to be restored")
	}
}

func TestWithBootState(t *testing.T) {
	c := NewCPU(WithBootState(types.ModelBootStates[types.DMGABC]))
	if af, _ := c.Registers().GetShortReg(types.AF); af != 0x01B0 {
		t.Errorf("expected AF 0x01B0, got 0x%04X", af)
	}
	if f := c.Flags(); !f.Zero || f.Subtract || !f.HalfCarry || !f.Carry {
		t.Errorf("expected Z, H and C, got %+v", f)
	}
}
