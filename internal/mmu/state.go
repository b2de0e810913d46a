package mmu

import "github.com/thelolagemann/asciiboy/internal/types"

var _ types.Stater = (*MMU)(nil)

// Save implements types.Stater. ROM is not saved, and neither is
// external RAM that lives in a save file.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.vram[:])
	s.WriteData(m.wram[:])
	s.WriteData(m.oam[:])
	s.WriteData(m.io[:])
	s.WriteData(m.hram[:])
	s.Write8(m.ieReg)
	s.Write32(uint32(m.rom2Index))
	s.Write32(uint32(m.eramIndex))
	s.WriteBool(m.vramLocked)
	s.WriteBool(m.oamLocked)

	s.Write32(uint32(len(m.eram)))
	for i := range m.eram {
		s.WriteData(m.eram[i][:])
	}
}

// Load implements types.Stater. In-memory external RAM is only
// restored when the bank count matches the loaded cartridge.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.vram[:])
	s.ReadData(m.wram[:])
	s.ReadData(m.oam[:])
	s.ReadData(m.io[:])
	s.ReadData(m.hram[:])
	m.ieReg = s.Read8()
	m.rom2Index = int(int32(s.Read32()))
	m.eramIndex = int(int32(s.Read32()))
	m.vramLocked = s.ReadBool()
	m.oamLocked = s.ReadBool()

	banks := int(s.Read32())
	var bank [ERAMBankSize]uint8
	for i := 0; i < banks && s.Err() == nil; i++ {
		s.ReadData(bank[:])
		if banks == len(m.eram) {
			m.eram[i] = bank
		}
	}
}
