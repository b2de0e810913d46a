package mmu

// Region is one of the areas of the DMG address space.
type Region uint8

const (
	Echo     Region = iota // 0xE000 - 0xFDFF - mirror of 0xC000 - 0xDDFF
	Unmapped               // 0xFEA0 - 0xFEFF - not usable
	ROM0                   // 0x0000 - 0x3FFF - static ROM bank (16kB)
	ROMX                   // 0x4000 - 0x7FFF - switchable ROM bank (16kB)
	VRAM                   // 0x8000 - 0x9FFF - video RAM (8kB)
	ERAM                   // 0xA000 - 0xBFFF - switchable external RAM bank (8kB)
	WRAM                   // 0xC000 - 0xDFFF - work RAM (8kB)
	OAM                    // 0xFE00 - 0xFE9F - sprite attribute table (160B)
	IO                     // 0xFF00 - 0xFF7F - I/O registers (128B)
	HRAM                   // 0xFF80 - 0xFFFE - high RAM (127B)
	IE                     // 0xFFFF - interrupt enable register
)

var regionNames = [...]string{
	Echo:     "ECHO",
	Unmapped: "UNMAPPED",
	ROM0:     "ROM0",
	ROMX:     "ROMX",
	VRAM:     "VRAM",
	ERAM:     "ERAM",
	WRAM:     "WRAM",
	OAM:      "OAM",
	IO:       "IO",
	HRAM:     "HRAM",
	IE:       "IE",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "INVALID"
}

// regionBounds lists the regions in decode order, the first region
// containing an address wins.
var regionBounds = []struct {
	region     Region
	start, end int // inclusive
}{
	{Echo, 0xE000, 0xFDFF},
	{Unmapped, 0xFEA0, 0xFEFF},
	{ROM0, 0x0000, 0x3FFF},
	{ROMX, 0x4000, 0x7FFF},
	{VRAM, 0x8000, 0x9FFF},
	{ERAM, 0xA000, 0xBFFF},
	{WRAM, 0xC000, 0xDFFF},
	{OAM, 0xFE00, 0xFE9F},
	{IO, 0xFF00, 0xFF7F},
	{HRAM, 0xFF80, 0xFFFE},
	{IE, 0xFFFF, 0xFFFF},
}

// regions maps every address to its region, and regionStarts every
// region to its first address.
var (
	regions      [0x10000]Region
	regionStarts [IE + 1]uint16
)

func init() {
	var decoded [0x10000]bool
	for _, b := range regionBounds {
		regionStarts[b.region] = uint16(b.start)
		for i := b.start; i <= b.end; i++ {
			if !decoded[i] {
				regions[i] = b.region
				decoded[i] = true
			}
		}
	}
	for _, ok := range decoded {
		if !ok {
			panic("mmu: address space not fully decoded")
		}
	}
}

// RegionOf returns the region address decodes to.
func RegionOf(address uint16) Region {
	return regions[address]
}
