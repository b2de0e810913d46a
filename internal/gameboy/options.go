package gameboy

import (
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// Debug traces every executed instruction through the logger.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// AsModel starts the CPU with the register state the boot ROM of the
// given model leaves behind.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.log = log
	}
}

// WithArchives allows the ROM to be loaded from a .7z or .zip archive.
func WithArchives() Opt {
	return func(gb *GameBoy) {
		gb.archives = true
	}
}

// WithPeripheral attaches a component that is ticked after every
// instruction by the cycles it took.
func WithPeripheral(p types.Peripheral) Opt {
	return func(gb *GameBoy) {
		gb.peripherals = append(gb.peripherals, p)
	}
}

// Speed sets the emulation speed used by Run, 1 being real time. A
// speed of 0 or less runs frames as fast as possible.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = speed
	}
}
