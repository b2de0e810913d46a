package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	l.Infof("cartridge %s loaded", "TETRIS")
	l.Errorf("save file %s unavailable", "tetris.sav")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug message to be discarded, got %q", out)
	}
	if !strings.Contains(out, "cartridge TETRIS loaded") {
		t.Errorf("expected info message, got %q", out)
	}
	if !strings.Contains(out, "level=error") {
		t.Errorf("expected error level in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	if err != nil {
		t.Fatal(err)
	}
	if level != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", level)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
