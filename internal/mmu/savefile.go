package mmu

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
)

// SaveFile is the battery backed external RAM of a cartridge, kept in a
// .sav file beside the ROM. Every access goes straight to the file, so
// nothing is lost if the emulator exits without closing it.
type SaveFile struct {
	f    *os.File
	size int64

	Path string // the path to the save file
}

// OpenSaveFile opens the save file at path, creating it if it does not
// exist. Files smaller than size are grown to size, larger files are
// left as they are.
func OpenSaveFile(path string, size int64) (*SaveFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening save file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening save file: %w", err)
	}
	if info.Size() < size {
		if err := f.Truncate(size); err != nil {
			f.Close()
			return nil, fmt.Errorf("resizing save file: %w", err)
		}
	}

	return &SaveFile{
		f:    f,
		size: size,
		Path: path,
	}, nil
}

// ReadByteAt reads the byte at the given offset.
func (s *SaveFile) ReadByteAt(offset int64) (uint8, error) {
	var b [1]byte
	if _, err := s.f.ReadAt(b[:], offset); err != nil {
		return 0xFF, err
	}
	return b[0], nil
}

// WriteByteAt writes value at the given offset.
func (s *SaveFile) WriteByteAt(offset int64, value uint8) error {
	_, err := s.f.WriteAt([]byte{value}, offset)
	return err
}

// Bytes returns the first size bytes of the save file.
func (s *SaveFile) Bytes() ([]byte, error) {
	b := make([]byte, s.size)
	if _, err := s.f.ReadAt(b, 0); err != nil {
		return nil, err
	}
	return b, nil
}

// Close flushes and closes the save file. The file is released even
// when flushing fails, and both errors are reported.
func (s *SaveFile) Close() error {
	if s.f == nil {
		return nil
	}
	var result *multierror.Error
	if err := s.f.Sync(); err != nil {
		result = multierror.Append(result, fmt.Errorf("sync %s: %w", s.Path, err))
	}
	if err := s.f.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	s.f = nil
	return result.ErrorOrNil()
}
