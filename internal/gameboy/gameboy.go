// Package gameboy ties the CPU, the MMU and the cartridge together into
// a DMG that can be stepped one instruction or one frame at a time.
package gameboy

import (
	"context"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/asciiboy/internal/cartridge"
	"github.com/thelolagemann/asciiboy/internal/cpu"
	"github.com/thelolagemann/asciiboy/internal/mmu"
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 154 scanlines * 456 cycles
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	Cartridge *cartridge.Cartridge

	peripherals []types.Peripheral

	model    types.Model
	speed    float64
	archives bool
	debug    bool
	log      log.Logger

	cycles uint64
	frames uint64
}

// NewGameBoy returns a GameBoy with the ROM at romPath inserted, ready
// to execute from the cartridge entry point.
func NewGameBoy(romPath string, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		speed: 1,
		log:   log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.New(mmu.WithLogger(g.log))

	cartOpts := []cartridge.Opt{cartridge.WithLogger(g.log)}
	if g.archives {
		cartOpts = append(cartOpts, cartridge.WithArchives())
	}
	cart, err := cartridge.New(romPath, g.MMU, cartOpts...)
	if err != nil {
		return nil, err
	}
	g.Cartridge = cart

	g.CPU = cpu.NewCPU(
		cpu.WithLogger(g.log),
		cpu.WithBootState(types.BootStateFor(g.model)),
	)
	g.CPU.Debug = g.debug

	g.log.Infof("running %s as %s", cart.Title(), g.model)
	return g, nil
}

// InternalSpeedHz returns the clock speed of the emulated CPU.
func (g *GameBoy) InternalSpeedHz() uint32 {
	return ClockSpeed
}

// CyclesPerFrame returns the number of clock cycles in a frame.
func (g *GameBoy) CyclesPerFrame() int {
	return CyclesPerFrame
}

// Step executes a single instruction and advances every peripheral by
// the cycles it took, which are returned.
func (g *GameBoy) Step() int {
	cycles := g.CPU.Step(g.MMU)
	for _, p := range g.peripherals {
		p.Tick(cycles)
	}
	g.cycles += uint64(cycles)
	return cycles
}

// Frame steps the emulation until a frame worth of cycles has run, and
// returns the number of cycles that were run.
func (g *GameBoy) Frame() int {
	cycles := 0
	for cycles < CyclesPerFrame {
		cycles += g.Step()
	}
	g.frames++
	return cycles
}

// Cycles returns the number of cycles run since the GameBoy was created.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Frames returns the number of frames run since the GameBoy was created.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// frameTime returns the wall clock time of a frame at the configured speed.
func (g *GameBoy) frameTime() time.Duration {
	return time.Duration(float64(time.Second) * CyclesPerFrame / ClockSpeed / g.speed)
}

// Run runs frames until ctx is done, paced to the configured speed,
// and returns the context's error.
func (g *GameBoy) Run(ctx context.Context) error {
	if g.speed <= 0 {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				g.Frame()
			}
		}
	}

	ticker := time.NewTicker(g.frameTime())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.Frame()
		}
	}
}

// Dump returns a hex dump of the address space.
func (g *GameBoy) Dump() string {
	return g.MMU.Dump()
}

// Close releases the save file of the cartridge and closes every
// attached peripheral that implements io.Closer.
func (g *GameBoy) Close() error {
	var result *multierror.Error
	if err := g.MMU.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	for _, p := range g.peripherals {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}
