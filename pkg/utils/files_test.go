package utils

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, data := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenArchived(t *testing.T) {
	dir := t.TempDir()

	t.Run("zip", func(t *testing.T) {
		path := filepath.Join(dir, "game.zip")
		writeZip(t, path, map[string][]byte{
			"readme.txt": []byte("hello"),
			"game.gb":    {0x01, 0x02, 0x03},
		})

		rc, name, err := OpenArchived(path, ".gb")
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()

		if name != "game.gb" {
			t.Errorf("expected entry game.gb, got %s", name)
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != 3 || data[2] != 0x03 {
			t.Errorf("unexpected entry contents %v", data)
		}
	})
	t.Run("no entry", func(t *testing.T) {
		path := filepath.Join(dir, "empty.zip")
		writeZip(t, path, map[string][]byte{"readme.txt": []byte("hello")})

		if _, _, err := OpenArchived(path, ".gb"); !errors.Is(err, ErrNoEntry) {
			t.Errorf("expected ErrNoEntry, got %v", err)
		}
	})
	t.Run("unsupported", func(t *testing.T) {
		if IsArchive("game.gb") {
			t.Errorf("expected game.gb not to be an archive")
		}
		if _, _, err := OpenArchived(filepath.Join(dir, "game.rar"), ".gb"); err == nil {
			t.Errorf("expected an error for an unsupported archive")
		}
	})
}
