package cpu

import "github.com/thelolagemann/asciiboy/internal/types"

func init() {
	for i := 0; i < 256; i++ {
		DefineInstruction(uint8(i), "ILLEGAL", illegal)
	}

	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// STOP is followed by a padding byte
		c.regs.PC++
		c.mode = ModeStop
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.nextIME = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.nextIME = true
	})

	// 8-bit loads through memory
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) {
		c.writeByte(c.regs.get16(types.BC), c.regs.get8(types.A))
	})
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) {
		c.writeByte(c.regs.get16(types.DE), c.regs.get8(types.A))
	})
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		hl := c.regs.get16(types.HL)
		c.writeByte(hl, c.regs.get8(types.A))
		c.regs.set16(types.HL, hl+1)
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		hl := c.regs.get16(types.HL)
		c.writeByte(hl, c.regs.get8(types.A))
		c.regs.set16(types.HL, hl-1)
	})
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) {
		c.regs.set8(types.A, c.readByte(c.regs.get16(types.BC)))
	})
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) {
		c.regs.set8(types.A, c.readByte(c.regs.get16(types.DE)))
	})
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		hl := c.regs.get16(types.HL)
		c.regs.set8(types.A, c.readByte(hl))
		c.regs.set16(types.HL, hl+1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		hl := c.regs.get16(types.HL)
		c.regs.set8(types.A, c.readByte(hl))
		c.regs.set16(types.HL, hl-1)
	})
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.regs.get8(types.A))
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.regs.set8(types.A, c.readByte(0xFF00+uint16(c.readOperand())))
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.regs.get8(types.C)), c.regs.get8(types.A))
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.regs.set8(types.A, c.readByte(0xFF00+uint16(c.regs.get8(types.C))))
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.regs.get8(types.A))
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.regs.set8(types.A, c.readByte(c.readOperand16()))
	})

	// 16-bit loads
	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.regs.SP))
		c.writeByte(address+1, uint8(c.regs.SP>>8))
	})
	DefineInstruction(0xF8, "LD HL, SP+e", func(c *CPU) {
		c.regs.set16(types.HL, c.addSPSigned(c.readOperand()))
		c.tick()
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.regs.SP = c.regs.get16(types.HL)
		c.tick()
	})
	DefineInstruction(0xE8, "ADD SP, e", func(c *CPU) {
		c.regs.SP = c.addSPSigned(c.readOperand())
		c.tick()
		c.tick()
	})

	// instructions indexed by a register pair in bits 5-4
	for i := uint8(0); i < 4; i++ {
		rp, rp2 := pairs[i], stackPairs[i]
		DefineInstruction(0x01|i<<4, "LD "+rp.String()+", d16", func(c *CPU) {
			c.regs.set16(rp, c.readOperand16())
		})
		DefineInstruction(0x03|i<<4, "INC "+rp.String(), func(c *CPU) {
			c.regs.set16(rp, c.regs.get16(rp)+1)
			c.tick()
		})
		DefineInstruction(0x0B|i<<4, "DEC "+rp.String(), func(c *CPU) {
			c.regs.set16(rp, c.regs.get16(rp)-1)
			c.tick()
		})
		DefineInstruction(0x09|i<<4, "ADD HL, "+rp.String(), func(c *CPU) {
			c.addHL(rp)
		})
		DefineInstruction(0xC1|i<<4, "POP "+rp2.String(), func(c *CPU) {
			c.pop(rp2)
		})
		DefineInstruction(0xC5|i<<4, "PUSH "+rp2.String(), func(c *CPU) {
			c.push(rp2)
		})
	}

	// instructions indexed by a register in bits 5-3
	for i := uint8(0); i < 8; i++ {
		t := TargetFromIndex(i)
		name := t.String()
		if t == types.HL {
			name = "(HL)"
		}
		DefineInstruction(0x04|i<<3, "INC "+name, func(c *CPU) {
			c.increment(t)
		})
		DefineInstruction(0x05|i<<3, "DEC "+name, func(c *CPU) {
			c.decrement(t)
		})
		DefineInstruction(0x06|i<<3, "LD "+name+", d8", func(c *CPU) {
			c.writeTarget(t, c.readOperand())
		})

		op := i
		DefineInstruction(0xC6|i<<3, aluNames[i]+" A, d8", func(c *CPU) {
			c.alu(op, c.readOperand())
		})
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, "RST "+rstNames[i], func(c *CPU) {
			c.restart(vector)
		})
	}

	// rotates on A, these always reset the zero flag
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.regs.set8(types.A, c.rotateLeftCarry(c.regs.get8(types.A)))
		c.flags.Zero = false
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.regs.set8(types.A, c.rotateRightCarry(c.regs.get8(types.A)))
		c.flags.Zero = false
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.regs.set8(types.A, c.rotateLeft(c.regs.get8(types.A)))
		c.flags.Zero = false
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.regs.set8(types.A, c.rotateRight(c.regs.get8(types.A)))
		c.flags.Zero = false
	})

	DefineInstruction(0x27, "DAA", func(c *CPU) {
		c.decimalAdjust()
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.regs.set8(types.A, ^c.regs.get8(types.A))
		c.flags.Subtract = true
		c.flags.HalfCarry = true
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.flags.Zero, false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.flags.Zero, false, false, !c.flags.Carry)
	})

	// control flow
	DefineInstruction(0x18, "JR e", func(c *CPU) {
		c.jumpRelative(c.readOperand())
	})
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.jumpAbsolute(c.readOperand16())
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.regs.PC = c.regs.get16(types.HL)
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(c.readOperand16())
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.ime, c.nextIME = true, true
	})
	for i := uint8(0); i < 4; i++ {
		cc := conditions[i]
		DefineInstruction(0x20|i<<3, "JR "+cc+", e", func(c *CPU) {
			c.jumpRelativeConditional(c.condition(uint8(c.instr.Opcode)))
		})
		DefineInstruction(0xC2|i<<3, "JP "+cc+", a16", func(c *CPU) {
			c.jumpAbsoluteConditional(c.condition(uint8(c.instr.Opcode)))
		})
		DefineInstruction(0xC4|i<<3, "CALL "+cc+", a16", func(c *CPU) {
			c.callConditional(c.condition(uint8(c.instr.Opcode)))
		})
		DefineInstruction(0xC0|i<<3, "RET "+cc, func(c *CPU) {
			c.retConditional(c.condition(uint8(c.instr.Opcode)))
		})
	}
}

var rstNames = [8]string{"00H", "08H", "10H", "18H", "20H", "28H", "30H", "38H"}
