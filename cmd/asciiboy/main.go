package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/asciiboy/internal/gameboy"
	"github.com/thelolagemann/asciiboy/internal/types"
	"github.com/thelolagemann/asciiboy/pkg/log"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	asModel := flag.String("model", "dmg0", "The model to emulate. Can be dmg0, dmg or mgb")
	stateFile := flag.String("state", "", "The state file to resume from if it exists, written on exit")
	frames := flag.Int("frames", 0, "The number of frames to run, 0 runs until interrupted")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at, 0 is unthrottled")
	debug := flag.Bool("debug", false, "Trace every executed instruction")
	dump := flag.Bool("dump", false, "Print a memory dump on exit")
	archives := flag.Bool("archives", false, "Allow the rom to be loaded from a .zip or .7z archive")
	logLevel := flag.String("log-level", "info", "The log level (debug, info, error)")
	flag.Parse()

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *debug {
		level = logrus.DebugLevel
	}
	logger := log.NewWithLevel(os.Stderr, level)

	model := types.StringToModel(*asModel)
	if model == types.Unset {
		logger.Errorf("unknown model %s, using the default boot state", *asModel)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.AsModel(model),
		gameboy.Speed(*speed),
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}
	if *archives {
		opts = append(opts, gameboy.WithArchives())
	}

	gb, err := gameboy.NewGameBoy(*romFile, opts...)
	if err != nil {
		logger.Errorf("could not load %s: %v", *romFile, err)
		os.Exit(1)
	}

	if *stateFile != "" {
		if err := gb.LoadStateFromFile(*stateFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Errorf("could not load state %s: %v", *stateFile, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *frames > 0 {
		for i := 0; i < *frames && ctx.Err() == nil; i++ {
			gb.Frame()
		}
	} else {
		_ = gb.Run(ctx)
	}
	logger.Infof("ran %d frames (%d cycles)", gb.Frames(), gb.Cycles())

	if *stateFile != "" {
		if err := gb.SaveStateToFile(*stateFile); err != nil {
			logger.Errorf("could not save state %s: %v", *stateFile, err)
		}
	}
	if *dump {
		fmt.Print(gb.Dump())
	}
	if err := gb.Close(); err != nil {
		logger.Errorf("could not close: %v", err)
		os.Exit(1)
	}
}
