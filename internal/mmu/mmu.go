// Package mmu provides the memory management unit of the DMG. It owns
// every addressable memory region, decodes addresses into them and
// applies the access rules of each one.
package mmu

import (
	"github.com/thelolagemann/asciiboy/pkg/log"
)

const (
	// ROMBankSize is the size of a ROM bank (16kB).
	ROMBankSize = 0x4000
	// ERAMBankSize is the size of an external RAM bank (8kB).
	ERAMBankSize = 0x2000

	// openBus is returned for reads that no memory answers.
	openBus = 0xFF
)

// MMU is the memory management unit for the DMG. It handles all
// memory reads and writes to the 64kB address space.
type MMU struct {
	// 0x0000 - 0x3FFF - static ROM bank
	rom1 [ROMBankSize]uint8
	// 0x4000 - 0x7FFF - switchable ROM banks, rom2[0] is physical bank 1
	rom2      [][ROMBankSize]uint8
	rom2Index int

	vram  [0x2000]uint8
	wram  [0x2000]uint8
	oam   [0xA0]uint8
	io    [0x80]uint8
	hram  [0x7F]uint8
	ieReg uint8

	// 0xA000 - 0xBFFF - external RAM, either in memory or in a save file
	eram       [][ERAMBankSize]uint8
	eramIndex  int
	eramBanks  int
	persistent bool
	save       *SaveFile
	mbc        uint8

	vramLocked bool
	oamLocked  bool

	log log.Logger
}

type Opt func(*MMU)

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.log = l
	}
}

// New returns an MMU with all memory cleared and no cartridge loaded.
// Until SetROM2 is called the switchable ROM bank reads as open bus.
func New(opts ...Opt) *MMU {
	m := &MMU{
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ReadByte reads from the given address as the CPU.
func (m *MMU) ReadByte(address uint16) uint8 {
	return m.Read(address, false)
}

// WriteByte writes to the given address as the CPU.
func (m *MMU) WriteByte(address uint16, value uint8) {
	m.Write(address, value, false)
}

// PPURead reads from the given address ignoring the VRAM and OAM locks.
func (m *MMU) PPURead(address uint16) uint8 {
	return m.Read(address, true)
}

// PPUWrite writes to the given address ignoring the VRAM and OAM locks.
func (m *MMU) PPUWrite(address uint16, value uint8) {
	m.Write(address, value, true)
}

// Read returns the value at the given address. Locked regions, invalid
// banks and unmapped memory read as 0xFF, unless bypassLocks is set,
// in which case locked regions are read regardless.
func (m *MMU) Read(address uint16, bypassLocks bool) uint8 {
	region := regions[address]
	offset := address - regionStarts[region]

	switch region {
	case Echo:
		return m.Read(address-0x2000, bypassLocks)
	case Unmapped:
		m.log.Debugf("read of unmapped memory 0x%04X", address)
		return openBus
	case ROM0:
		return m.rom1[offset]
	case ROMX:
		if m.rom2Index < 0 || m.rom2Index >= len(m.rom2) {
			m.log.Debugf("read of invalid ROM bank %d", m.rom2Index)
			return openBus
		}
		return m.rom2[m.rom2Index][offset]
	case VRAM:
		if m.vramLocked && !bypassLocks {
			return openBus
		}
		return m.vram[offset]
	case ERAM:
		if m.eramIndex < 0 || m.eramIndex >= m.eramBanks {
			m.log.Debugf("read of invalid ERAM bank %d", m.eramIndex)
			return openBus
		}
		return m.readERAM(m.eramIndex, offset)
	case WRAM:
		return m.wram[offset]
	case OAM:
		if m.oamLocked && !bypassLocks {
			return openBus
		}
		return m.oam[offset]
	case IO:
		return m.io[offset]
	case HRAM:
		return m.hram[offset]
	case IE:
		return m.ieReg
	}

	m.log.Errorf("invalid address 0x%04X", address)
	return openBus
}

// Write writes value to the given address. Writes to ROM, locked
// regions, invalid banks and unmapped memory are ignored, unless
// bypassLocks is set, in which case locked regions are written
// regardless.
func (m *MMU) Write(address uint16, value uint8, bypassLocks bool) {
	region := regions[address]
	offset := address - regionStarts[region]

	switch region {
	case Echo:
		m.Write(address-0x2000, value, bypassLocks)
	case Unmapped:
		m.log.Debugf("write of unmapped memory 0x%04X", address)
	case ROM0, ROMX:
		// TODO: MBC registers are mapped here, bank switching is only
		// available through SetROM2Index and SetERAMIndex for now.
		m.log.Debugf("write of 0x%02X to ROM 0x%04X ignored", value, address)
	case VRAM:
		if m.vramLocked && !bypassLocks {
			return
		}
		m.vram[offset] = value
	case ERAM:
		if m.eramIndex < 0 || m.eramIndex >= m.eramBanks {
			m.log.Debugf("write to invalid ERAM bank %d", m.eramIndex)
			return
		}
		m.writeERAM(m.eramIndex, offset, value)
	case WRAM:
		m.wram[offset] = value
	case OAM:
		if m.oamLocked && !bypassLocks {
			return
		}
		m.oam[offset] = value
	case IO:
		m.io[offset] = value
	case HRAM:
		m.hram[offset] = value
	case IE:
		m.ieReg = value
	default:
		m.log.Errorf("invalid address 0x%04X", address)
	}
}

// readERAM reads from an external RAM bank, which must be valid.
func (m *MMU) readERAM(bank int, offset uint16) uint8 {
	if m.save != nil {
		v, err := m.save.ReadByteAt(int64(bank)*ERAMBankSize + int64(offset))
		if err != nil {
			m.log.Errorf("reading %s: %v", m.save.Path, err)
			return openBus
		}
		return v
	}
	return m.eram[bank][offset]
}

// writeERAM writes to an external RAM bank, which must be valid.
func (m *MMU) writeERAM(bank int, offset uint16, value uint8) {
	if m.save != nil {
		if err := m.save.WriteByteAt(int64(bank)*ERAMBankSize+int64(offset), value); err != nil {
			m.log.Errorf("writing %s: %v", m.save.Path, err)
		}
		return
	}
	m.eram[bank][offset] = value
}

// SetROM1 copies bank into the static ROM bank.
func (m *MMU) SetROM1(bank *[ROMBankSize]uint8) {
	m.rom1 = *bank
}

// SetROM2 hands the switchable ROM banks to the MMU. banks[0] is the
// second bank of the ROM, as the first is always mapped by SetROM1.
func (m *MMU) SetROM2(banks [][ROMBankSize]uint8) {
	m.rom2 = banks
	m.rom2Index = 0
}

// SetERAM sets up the external RAM. If persistent is set the banks are
// backed by the save file at savePath, which is created if needed. If
// the save file cannot be opened the banks are kept in memory instead
// and the cartridge is treated as not persistent.
func (m *MMU) SetERAM(bankCount int, persistent bool, savePath string, mbc uint8) {
	if m.save != nil {
		if err := m.save.Close(); err != nil {
			m.log.Errorf("closing %s: %v", m.save.Path, err)
		}
		m.save = nil
	}

	m.eramBanks = bankCount
	m.eramIndex = 0
	m.persistent = persistent
	m.mbc = mbc
	m.eram = nil

	if persistent && bankCount > 0 {
		save, err := OpenSaveFile(savePath, int64(bankCount)*ERAMBankSize)
		if err != nil {
			m.log.Errorf("could not open %s, saves will not be permanent: %v", savePath, err)
			m.persistent = false
		} else {
			m.save = save
		}
	}

	if m.save == nil {
		m.eram = make([][ERAMBankSize]uint8, bankCount)
	}
}

func (m *MMU) SetROM2Index(index int) {
	m.rom2Index = index
}

func (m *MMU) ROM2Index() int {
	return m.rom2Index
}

func (m *MMU) SetERAMIndex(index int) {
	m.eramIndex = index
}

func (m *MMU) ERAMIndex() int {
	return m.eramIndex
}

func (m *MMU) SetVRAMLocked(locked bool) {
	m.vramLocked = locked
}

func (m *MMU) VRAMLocked() bool {
	return m.vramLocked
}

func (m *MMU) SetOAMLocked(locked bool) {
	m.oamLocked = locked
}

func (m *MMU) OAMLocked() bool {
	return m.oamLocked
}

// ROM2Banks returns the number of switchable ROM banks.
func (m *MMU) ROM2Banks() int {
	return len(m.rom2)
}

// ERAMBanks returns the number of external RAM banks.
func (m *MMU) ERAMBanks() int {
	return m.eramBanks
}

// Persistent reports whether external RAM is battery backed. It is
// false when the save file could not be opened.
func (m *MMU) Persistent() bool {
	return m.persistent
}

// MBC returns the cartridge type the external RAM was set up for.
func (m *MMU) MBC() uint8 {
	return m.mbc
}

// Close closes the save file, if there is one.
func (m *MMU) Close() error {
	if m.save == nil {
		return nil
	}
	err := m.save.Close()
	m.save = nil
	return err
}
