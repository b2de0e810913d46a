// Package cartridge loads DMG cartridges. A cartridge is validated and
// parsed once, after which its banks are handed over to the MMU.
package cartridge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/asciiboy/internal/mmu"
	"github.com/thelolagemann/asciiboy/pkg/log"
	"github.com/thelolagemann/asciiboy/pkg/utils"
)

// ROMExtension is the file extension of a Game Boy ROM.
const ROMExtension = ".gb"

// Cartridge describes a loaded cartridge. The ROM and external RAM
// themselves are owned by the MMU.
type Cartridge struct {
	romPath    string
	savPath    string
	header     Header
	persistent bool
	checksum   uint64

	archives bool
	log      log.Logger
}

type Opt func(*Cartridge)

// WithLogger sets the logger used while loading.
func WithLogger(l log.Logger) Opt {
	return func(c *Cartridge) {
		c.log = l
	}
}

// WithArchives allows the ROM to be given as a .7z or .zip archive, in
// which case the first .gb file inside it is loaded.
func WithArchives() Opt {
	return func(c *Cartridge) {
		c.archives = true
	}
}

// New loads the ROM at path into m. The MMU is only modified once the
// whole ROM was read and validated, so on error m is left untouched.
//
// Errors wrap ErrInvalidArgument when the path cannot be used, and
// ErrCorrupt when the contents are not a valid ROM.
func New(path string, m *mmu.MMU, opts ...Opt) (*Cartridge, error) {
	c := &Cartridge{
		romPath: path,
		savPath: strings.TrimSuffix(path, filepath.Ext(path)) + ".sav",
		log:     log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}

	rc, err := c.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if err := c.load(bufio.NewReader(rc), m); err != nil {
		return nil, err
	}

	c.log.Infof("loaded %s: %s", path, c.header)
	return c, nil
}

// open returns a reader for the ROM image, unpacking it from an archive
// when allowed.
func (c *Cartridge) open() (io.ReadCloser, error) {
	if c.archives && utils.IsArchive(c.romPath) {
		rc, name, err := utils.OpenArchived(c.romPath, ROMExtension)
		if errors.Is(err, utils.ErrNoEntry) {
			return nil, fmt.Errorf("%w: %v", ErrNotROM, err)
		} else if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c.romPath, err)
		}
		c.log.Debugf("loading %s from %s", name, c.romPath)
		return rc, nil
	}

	if !strings.EqualFold(filepath.Ext(c.romPath), ROMExtension) {
		return nil, fmt.Errorf("%w: %s", ErrNotROM, c.romPath)
	}
	f, err := os.Open(c.romPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, c.romPath, err)
	}
	return f, nil
}

// load reads the ROM from r in a single pass: the static bank, which
// holds the header, then every switchable bank.
func (c *Cartridge) load(r io.Reader, m *mmu.MMU) error {
	hash := xxhash.New()
	r = io.TeeReader(r, hash)

	var static [mmu.ROMBankSize]uint8
	n, staticErr := io.ReadFull(r, static[:])
	if n < HeaderStart+HeaderSize {
		return fmt.Errorf("%w: could not read header: %v", ErrBadHeader, staticErr)
	}

	raw := static[HeaderStart : HeaderStart+HeaderSize]
	if !ValidChecksum(raw) {
		return fmt.Errorf("%w: checksum mismatch", ErrBadHeader)
	}
	header, err := ParseHeader(raw)
	if err != nil {
		return err
	}
	if staticErr != nil {
		return fmt.Errorf("%w: static bank: %v", ErrTruncated, staticErr)
	}

	// the static bank covers bank 0, so banks[0] is bank 1
	banks := make([][mmu.ROMBankSize]uint8, header.ROMBanks-1)
	for i := range banks {
		if _, err := io.ReadFull(r, banks[i][:]); err != nil {
			return fmt.Errorf("%w: bank %d of %d: %v", ErrTruncated, i+1, header.ROMBanks, err)
		}
	}

	c.header = header
	c.persistent = header.CartridgeType.BatteryBacked()
	c.checksum = hash.Sum64()

	m.SetERAM(header.RAMBanks, c.persistent, c.savPath, uint8(header.CartridgeType))
	m.SetROM1(&static)
	m.SetROM2(banks)
	return nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

func (c *Cartridge) ROMFilePath() string {
	return c.romPath
}

// SAVFilePath returns the path of the save file, the ROM path with its
// extension replaced by .sav. It is only used by battery backed cartridges.
func (c *Cartridge) SAVFilePath() string {
	return c.savPath
}

func (c *Cartridge) Title() string {
	return c.header.Title
}

// MBC returns the cartridge type byte.
func (c *Cartridge) MBC() uint8 {
	return uint8(c.header.CartridgeType)
}

func (c *Cartridge) ROMBankAmount() int {
	return c.header.ROMBanks
}

func (c *Cartridge) RAMBankAmount() int {
	return c.header.RAMBanks
}

// Persistent reports whether the cartridge is battery backed.
func (c *Cartridge) Persistent() bool {
	return c.persistent
}

// Checksum returns the xxhash of the ROM image, which identifies the
// cartridge for save states.
func (c *Cartridge) Checksum() uint64 {
	return c.checksum
}
