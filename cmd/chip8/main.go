package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	chip8 "github.com/p47t/chip8"
	"github.com/p47t/chip8/internal/config"
	"github.com/p47t/chip8/internal/logger"
	"github.com/p47t/chip8/internal/random"
	"github.com/p47t/chip8/internal/rom"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func init() {
	// glfw calls are only allowed from the main thread
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Parse("chip8", os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	if !cfg.Quiet {
		logger.SetEcho(os.Stdout)
	}
	logger.Logf("chip8", "version %s", buildinfo.Version(version, commit, date))
	logger.Log("chip8", cfg.String())

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	data, err := rom.Load(cfg.ROMPath)
	if err != nil {
		return err
	}

	sys := chip8.NewSystem(random.NewRandom(cfg.Seed))
	if err := sys.LoadROM(data); err != nil {
		return err
	}

	var emu Emulator
	if err := emu.Initialize(sys, cfg); err != nil {
		return err
	}
	defer emu.Terminate()

	return emu.Loop()
}
