package cartridge

import (
	"fmt"
	"strings"
)

const (
	// HeaderStart is the file offset of the cartridge header.
	HeaderStart = 0x0100
	// HeaderSize is the length of the header, 0x0100-0x014F.
	HeaderSize = 0x50
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// Type is the cartridge type byte, which names the memory bank
// controller and the hardware on the cartridge.
type Type uint8

const (
	ROM                     Type = 0x00
	MBC1                    Type = 0x01
	MBC1RAM                 Type = 0x02
	MBC1RAMBATT             Type = 0x03
	MBC2                    Type = 0x05
	MBC2BATT                Type = 0x06
	ROMRAM                  Type = 0x08
	ROMRAMBATT              Type = 0x09
	MMM01                   Type = 0x0B
	MMM01RAM                Type = 0x0C
	MMM01RAMBATT            Type = 0x0D
	MBC3TIMERBATT           Type = 0x0F
	MBC3TIMERRAMBATT        Type = 0x10
	MBC3                    Type = 0x11
	MBC3RAM                 Type = 0x12
	MBC3RAMBATT             Type = 0x13
	MBC5                    Type = 0x19
	MBC5RAM                 Type = 0x1A
	MBC5RAMBATT             Type = 0x1B
	MBC5RUMBLE              Type = 0x1C
	MBC5RUMBLERAM           Type = 0x1D
	MBC5RUMBLERAMBATT       Type = 0x1E
	MBC6                    Type = 0x20
	MBC7SENSORRUMBLERAMBATT Type = 0x22
	POCKETCAMERA            Type = 0xFC
	BANDAITAMA5             Type = 0xFD
	HUDSONHUC3              Type = 0xFE
	HUDSONHUC1              Type = 0xFF
)

// BatteryBacked reports whether the cartridge keeps its external RAM
// powered by a battery, and so needs a save file.
func (t Type) BatteryBacked() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MMM01RAMBATT, MBC3TIMERBATT,
		MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT,
		MBC7SENSORRUMBLERAMBATT, HUDSONHUC1:
		return true
	}
	return false
}

// ROMBanks returns the number of 16kB ROM banks for the ROM size code
// at 0x0148. Valid codes are 0x00 (2 banks, 32kB) to 0x08 (512 banks, 8MB).
func ROMBanks(code uint8) (int, error) {
	if code > 0x08 {
		return 0, fmt.Errorf("%w: invalid ROM size 0x%02X", ErrBadHeader, code)
	}
	return 2 << code, nil
}

var ramBanks = map[uint8]int{
	0x00: 0,
	0x02: 1,  // 8kB
	0x03: 4,  // 32kB
	0x04: 16, // 128kB
	0x05: 8,  // 64kB
}

// RAMBanks returns the number of 8kB external RAM banks for the RAM
// size code at 0x0149.
func RAMBanks(code uint8) (int, error) {
	banks, ok := ramBanks[code]
	if !ok {
		return 0, fmt.Errorf("%w: invalid RAM size 0x%02X", ErrBadHeader, code)
	}
	return banks, nil
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on. Offsets below are
// relative to the start of the header.
type Header struct {
	// 0x34-0x43 - Title of the game, without trailing NULs
	Title string

	// 0x3F-0x42 - ManufacturerCode of the game, only meaningful on
	// newer cartridges where the title is shorter
	ManufacturerCode string

	// 0x43 - CGB flag. In older cartridges this byte is part of the title.
	CartridgeGBMode Flag

	// 0x44-0x45 - NewLicenseeCode, used when OldLicenseeCode is 0x33
	NewLicenseeCode string
	// 0x46 - set when the cartridge supports SGB functions
	SGBFlag bool
	// 0x47 - memory bank controller and cartridge hardware
	CartridgeType Type
	// 0x48, 0x49 - ROM and RAM size codes
	ROMSizeCode uint8
	RAMSizeCode uint8
	// 0x4A - 0x00 for Japan, 0x01 for everywhere else
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	ROMBanks int
	RAMBanks int
}

// ValidChecksum reports whether the header checksum at 0x4D matches the
// header. The checksum covers 0x34-0x4C: starting from 0, every byte is
// subtracted along with 1, which is summing the complement of each byte.
func ValidChecksum(header []byte) bool {
	if len(header) != HeaderSize {
		return false
	}
	var sum uint8
	for _, b := range header[0x34:0x4D] {
		sum += ^b
	}
	return sum == header[0x4D]
}

// ParseHeader parses the 0x50 byte header of a ROM. It does not check
// the header checksum.
func ParseHeader(header []byte) (Header, error) {
	h := Header{}
	if len(header) != HeaderSize {
		return h, fmt.Errorf("%w: invalid header length %d", ErrBadHeader, len(header))
	}

	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00")
	h.ManufacturerCode = string(header[0x3F:0x43])
	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])
	h.ROMSizeCode = header[0x48]
	h.RAMSizeCode = header[0x49]
	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	var err error
	if h.ROMBanks, err = ROMBanks(h.ROMSizeCode); err != nil {
		return h, err
	}
	if h.RAMBanks, err = RAMBanks(h.RAMSizeCode); err != nil {
		return h, err
	}

	return h, nil
}

func (h Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%s | Type: 0x%02X | Mode: %s | ROM: %d banks | RAM: %d banks", h.Title, uint8(h.CartridgeType), h.Hardware(), h.ROMBanks, h.RAMBanks)
}
