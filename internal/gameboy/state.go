package gameboy

import (
	"errors"
	"fmt"
	"os"

	"github.com/thelolagemann/asciiboy/internal/types"
)

var (
	// ErrInvalidState is returned when the data is not a save state.
	ErrInvalidState = errors.New("invalid save state")
	// ErrStateMismatch is returned when a save state was made with a
	// different ROM.
	ErrStateMismatch = errors.New("save state belongs to another ROM")
)

// SaveState returns the state of the CPU and the MMU, tagged with the
// checksum of the ROM.
func (g *GameBoy) SaveState() []byte {
	return g.state().Bytes()
}

func (g *GameBoy) state() *types.State {
	s := types.NewState()
	s.Write64(g.Cartridge.Checksum())
	g.CPU.Save(s)
	g.MMU.Save(s)
	return s
}

// SaveStateToFile writes the current save state to filename.
func (g *GameBoy) SaveStateToFile(filename string) error {
	return g.state().SaveToFile(filename)
}

// LoadStateFromFile restores a save state written by SaveStateToFile.
func (g *GameBoy) LoadStateFromFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return g.LoadState(b)
}

// LoadState restores a state made by SaveState. Nothing is changed when
// an error is returned.
func (g *GameBoy) LoadState(b []byte) error {
	if expected := len(g.SaveState()); len(b) != expected {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidState, expected, len(b))
	}

	s := types.StateFromBytes(b)
	if sum := s.Read64(); sum != g.Cartridge.Checksum() {
		return fmt.Errorf("%w: 0x%016X", ErrStateMismatch, sum)
	}
	g.CPU.Load(s)
	g.MMU.Load(s)
	return s.Err()
}
