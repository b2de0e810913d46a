package cartridge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by the errors caused by the ROM path.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when the ROM file does not exist or cannot be accessed.
	ErrNotFound = fmt.Errorf("%w: file does not exist", ErrInvalidArgument)
	// ErrNotROM is returned when the file is not a .gb Game Boy ROM.
	ErrNotROM = fmt.Errorf("%w: file is not a .gb Game Boy ROM", ErrInvalidArgument)

	// ErrCorrupt is wrapped by the errors caused by the ROM contents.
	ErrCorrupt = errors.New("ROM is corrupt")
	// ErrBadHeader is returned when the header cannot be read, fails its
	// checksum or holds an unknown ROM or RAM size.
	ErrBadHeader = fmt.Errorf("%w: bad header", ErrCorrupt)
	// ErrTruncated is returned when the file ends before every ROM bank
	// named by the header was read.
	ErrTruncated = fmt.Errorf("%w: could not read all ROM banks", ErrCorrupt)
)
