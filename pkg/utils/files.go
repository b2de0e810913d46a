package utils

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrNoEntry is returned when an archive holds no file with the
// requested extension.
var ErrNoEntry = errors.New("archive has no matching entry")

// IsArchive reports whether the filename has an archive extension
// that OpenArchived understands.
func IsArchive(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".7z", ".zip":
		return true
	}
	return false
}

// archivedFile closes the archive entry together with the archive.
type archivedFile struct {
	io.ReadCloser
	archive io.Closer
}

func (a *archivedFile) Close() error {
	err := a.ReadCloser.Close()
	if cerr := a.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenArchived opens the first file inside the given .7z or .zip archive
// whose name ends with ext, returning a reader for the decompressed data
// and the name of the entry.
func OpenArchived(filename, ext string) (io.ReadCloser, string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".7z":
		r, err := sevenzip.OpenReader(filename)
		if err != nil {
			return nil, "", err
		}
		for _, f := range r.File {
			if !strings.EqualFold(filepath.Ext(f.Name), ext) {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				r.Close()
				return nil, "", err
			}
			return &archivedFile{ReadCloser: rc, archive: r}, f.Name, nil
		}
		r.Close()
	case ".zip":
		r, err := zip.OpenReader(filename)
		if err != nil {
			return nil, "", err
		}
		for _, f := range r.File {
			if !strings.EqualFold(filepath.Ext(f.Name), ext) {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				r.Close()
				return nil, "", err
			}
			return &archivedFile{ReadCloser: rc, archive: r}, f.Name, nil
		}
		r.Close()
	default:
		return nil, "", fmt.Errorf("%s: unsupported archive", filename)
	}

	return nil, "", fmt.Errorf("%s: %w (%s)", filename, ErrNoEntry, ext)
}
