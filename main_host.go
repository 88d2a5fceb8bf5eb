//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"brass/app"
	"brass/hal"
	"brass/internal/buildinfo"
	"brass/internal/config"
)

func main() {
	var (
		configPath string
		headless   bool
		hz         int
		ticks      uint64
		shape      string
		use24h     bool
		color      bool
		debug      bool
		version    bool
	)
	flag.StringVar(&configPath, "config", "", "Config file (YAML, or TOML by extension).")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", config.DefaultHz, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&shape, "shape", config.DefaultShape, "Display shape: rect or round.")
	flag.BoolVar(&use24h, "24h", true, "Use a 24 hour clock.")
	flag.BoolVar(&color, "color", true, "Simulate a colour display.")
	flag.BoolVar(&debug, "debug", false, "Log debug lines.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Full())
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hz":
			cfg.Headless.Hz = hz
		case "ticks":
			cfg.Headless.Ticks = ticks
		case "shape":
			cfg.Display.Shape = shape
		case "24h":
			cfg.Clock.Use24h = use24h
		case "color":
			cfg.Display.Color = color
		case "debug":
			cfg.Log.Debug = debug
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	appCfg := cfg.AppConfig()
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg.HeadlessConfig()); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(cfg.WindowConfig(), newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
