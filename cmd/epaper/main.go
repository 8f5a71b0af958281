// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// epaper drives a Waveshare e-paper panel.
//
// Usage:
//
//	epaper [flags] clear|text <message>|demo|sleep
//
// Examples:
//
//	# Clear a 2.9" panel on the HAT
//	epaper -model 2in9 clear
//
//	# Preview a 4.2" panel on the terminal
//	epaper -model 4in2 -simulate text "Hello from periph!"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/GermanBionicSystems/epaper/epaper"
	"github.com/GermanBionicSystems/epaper/epaper/epapertest"
	"github.com/GermanBionicSystems/epaper/termview"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	configFile := flag.String("config", "", "YAML configuration file")
	model := flag.String("model", "", "panel model, one of "+modelList())
	partial := flag.Bool("partial", false, "use the partial update waveform")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	simulate := flag.Bool("simulate", false, "record the traffic and print the frame instead of using the bus")
	scale := flag.Int("scale", 0, "pixels per terminal cell with -simulate")
	spiName := flag.String("spi", "", "SPI port name, first available when empty")
	dc := flag.String("dc", "", "data/command pin")
	cs := flag.String("cs", "", "chip select pin")
	rst := flag.String("rst", "", "reset pin")
	busy := flag.String("busy", "", "busy pin")
	timeout := flag.Duration("busy-timeout", 0, "give up waiting for the busy line, 0 waits forever")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] clear|text <message>|demo|sleep\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *model
		case "partial":
			cfg.Partial = *partial
		case "log-level":
			cfg.LogLevel = *logLevel
		case "simulate":
			cfg.Simulate = *simulate
		case "scale":
			cfg.Scale = *scale
		case "spi":
			cfg.SPI = *spiName
		case "dc":
			cfg.Pins.DC = *dc
		case "cs":
			cfg.Pins.CS = *cs
		case "rst":
			cfg.Pins.RST = *rst
		case "busy":
			cfg.Pins.Busy = *busy
		case "busy-timeout":
			cfg.BusyTimeout = *timeout
		}
	})

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	epaper.SetLogger(logger)

	opts, err := cfg.opts()
	if err != nil {
		return err
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Simulate {
		r := &epapertest.Recorder{}
		d := epaper.New(r, opts)
		if err := run(ctx, d, flag.Args()); err != nil {
			return err
		}
		logger.Info("simulated", "model", d.Model(), "state", d.State(), "commands", len(r.Commands))
		p := d.Profile()
		return termview.Render(nil, d.Buffer().Bytes(), p.Width, p.Height, cfg.Scale)
	}

	d, port, err := open(&cfg, opts)
	if err != nil {
		return err
	}
	defer port.Close()
	defer d.Close()
	logger.Info("opened", "dev", d.String())
	return run(ctx, d, flag.Args())
}

// open connects to the panel described by cfg. The caller closes the Dev
// then the port.
func open(cfg *Config, opts *epaper.Opts) (*epaper.Dev, spi.PortCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}

	b, err := spireg.Open(cfg.SPI)
	if err != nil {
		return nil, nil, err
	}

	d, err := openDev(b, cfg, opts)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return d, b, nil
}

func openDev(b spi.Port, cfg *Config, opts *epaper.Opts) (*epaper.Dev, error) {
	if cfg.Pins.hat() {
		return epaper.NewHat(b, opts)
	}

	pins := map[string]gpio.PinIO{}
	for name, pin := range map[string]string{"dc": cfg.Pins.DC, "cs": cfg.Pins.CS, "rst": cfg.Pins.RST, "busy": cfg.Pins.Busy} {
		if pin == "" {
			continue
		}
		p := gpioreg.ByName(pin)
		if p == nil {
			return nil, fmt.Errorf("%s pin %q not found", name, pin)
		}
		pins[name] = p
	}
	return epaper.NewSPI(b, pins["dc"], pins["cs"], pins["rst"], pins["busy"], opts)
}

// run executes one command on d.
func run(ctx context.Context, d *epaper.Dev, args []string) error {
	if _, err := d.Init(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "clear":
		if _, err := d.Clear(ctx, 0xFF); err != nil {
			return err
		}
		_, err := d.Display(ctx)
		return err

	case "text":
		drawText(d.Buffer(), strings.Join(args[1:], " "))
		if _, err := d.SetFrame(ctx); err != nil {
			return err
		}
		_, err := d.Display(ctx)
		return err

	case "demo":
		img, err := demoImage(d.Bounds(), "Hello from periph!")
		if err != nil {
			return err
		}
		return d.Draw(d.Bounds(), img, image.Point{})

	case "sleep":
		_, err := d.Sleep(ctx)
		return err
	}

	return fmt.Errorf("unknown command %q", args[0])
}

func modelList() string {
	var names []string
	for _, m := range epaper.Models() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "epaper: %s.\n", err)
		os.Exit(1)
	}
}
