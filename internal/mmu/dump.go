package mmu

import (
	"fmt"
	"strings"
)

// peek reads memory without logging and without honouring the locks.
// Memory that cannot be read returns 0x00.
func (m *MMU) peek(address uint16) uint8 {
	region := regions[address]
	offset := address - regionStarts[region]

	switch region {
	case Echo:
		return m.peek(address - 0x2000)
	case ROM0:
		return m.rom1[offset]
	case ROMX:
		if m.rom2Index >= 0 && m.rom2Index < len(m.rom2) {
			return m.rom2[m.rom2Index][offset]
		}
	case VRAM:
		return m.vram[offset]
	case ERAM:
		if m.eramIndex < 0 || m.eramIndex >= m.eramBanks {
			return 0
		}
		if m.save != nil {
			v, err := m.save.ReadByteAt(int64(m.eramIndex)*ERAMBankSize + int64(offset))
			if err != nil {
				return 0
			}
			return v
		}
		return m.eram[m.eramIndex][offset]
	case WRAM:
		return m.wram[offset]
	case OAM:
		return m.oam[offset]
	case IO:
		return m.io[offset]
	case HRAM:
		return m.hram[offset]
	case IE:
		return m.ieReg
	}
	return 0
}

// Dump returns a hex dump of the whole address space, 32 bytes per row.
func (m *MMU) Dump() string {
	var b strings.Builder
	b.Grow(0x10000*3 + 0x800*7 + 64)

	b.WriteString("--BEGIN MEMORY DUMP--\n")
	for row := 0; row < 0x10000; row += 32 {
		fmt.Fprintf(&b, "$%04X", row)
		for i := row; i < row+32; i++ {
			fmt.Fprintf(&b, " %02X", m.peek(uint16(i)))
		}
		b.WriteByte('\n')
	}
	b.WriteString("--END MEMORY DUMP--\n")
	return b.String()
}
