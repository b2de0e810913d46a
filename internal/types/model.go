package types

import "strings"

type Model int // The Model used in emulation.

const (
	Unset  Model = iota // Unset - Model hasn't been set - behaves as DMG0
	DMG0                // DMG0 - early Game Boy, only released in Japan
	DMGABC              // DMGABC - Standard Game Boy
	MGB                 // MGB - Pocket Game Boy
)

var ModelNames = map[Model]string{
	DMG0:   "DMG0",
	DMGABC: "DMG",
	MGB:    "MGB",
	Unset:  "Unset",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// BootState is the CPU register state left behind by the boot ROM,
// used when the emulator starts directly at the cartridge entry point.
type BootState struct {
	A, F, B, C, D, E, H, L uint8

	SP uint16
	PC uint16
}

const (
	// EntryPoint is where every boot ROM hands over to the cartridge.
	EntryPoint uint16 = 0x0100
	// StackTop is the stack pointer every boot ROM leaves behind.
	StackTop uint16 = 0xFFFE
)

// DMGBootState is the default power-on register state.
var DMGBootState = BootState{
	A: 0x01, F: 0x00, B: 0xFF, C: 0x13, D: 0x00, E: 0xC1, H: 0x84, L: 0x93,
	SP: StackTop,
	PC: EntryPoint,
}

// ModelBootStates - model specific starting CPU registers.
var ModelBootStates = map[Model]BootState{
	Unset:  DMGBootState,
	DMG0:   DMGBootState,
	DMGABC: {A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D, SP: StackTop, PC: EntryPoint},
	MGB:    {A: 0xFF, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D, SP: StackTop, PC: EntryPoint},
}

// BootStateFor returns the boot state of the model, falling back to
// DMGBootState for models without a profile.
func BootStateFor(m Model) BootState {
	if s, ok := ModelBootStates[m]; ok {
		return s
	}
	return DMGBootState
}
