// Package commands implements the eepromctl subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/moffa90/go-eeprom25/eeprom"
	"github.com/moffa90/go-eeprom25/internal/config"
	"github.com/moffa90/go-eeprom25/periphspi"
	"github.com/moffa90/go-eeprom25/sim"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitMismatch     = 2
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath string
	DeviceName string
	Verbose    bool
	Progress   bool
}

// Env is an opened device plus the streams commands write to.
type Env struct {
	Device *eeprom.Device
	Stdout io.Writer
	Stderr io.Writer

	closer io.Closer
}

// Open loads the configuration, opens the bus and creates the selected
// device. Without a config file the device is a simulated 25LC320A.
func Open(opts Options, stdout, stderr io.Writer) (*Env, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	dc, err := cfg.Device(opts.DeviceName)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	devOpts := append(dc.Options(), eeprom.WithLogger(logger))
	if opts.Progress {
		devOpts = append(devOpts, eeprom.WithProgressCallback(progressPrinter(stderr)))
	}

	bus, closer, err := openBus(cfg)
	if err != nil {
		return nil, err
	}

	dev, err := eeprom.New(bus, eeprom.ChipSelect(dc.ChipSelect), devOpts...)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("device %s: %w", dc.Name, err)
	}

	logger.Debug("device opened",
		"name", dc.Name,
		"part", dev.Part().String(),
		"chip_select", dc.ChipSelect,
		"simulated", cfg.Bus.Simulate,
	)

	return &Env{Device: dev, Stdout: stdout, Stderr: stderr, closer: closer}, nil
}

// Close releases the bus.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

func openBus(cfg *config.Config) (eeprom.Bus, io.Closer, error) {
	if cfg.Bus.Simulate {
		chips := make([]*sim.Device, 0, len(cfg.Devices))
		for i := range cfg.Devices {
			d := &cfg.Devices[i]
			chips = append(chips, sim.New(
				sim.WithPart(d.Geometry()),
				sim.WithLine(eeprom.ChipSelect(d.ChipSelect)),
			))
		}
		bus, err := sim.NewBus(chips...)
		if err != nil {
			return nil, nil, err
		}
		return bus, nil, nil
	}

	pins := make(map[eeprom.ChipSelect]string, len(cfg.Devices))
	for _, d := range cfg.Devices {
		pins[eeprom.ChipSelect(d.ChipSelect)] = d.Pin
	}
	bus, err := periphspi.Open(periphspi.Config{
		Port:        cfg.Bus.Port,
		Frequency:   physic.Frequency(cfg.Bus.SpeedHz) * physic.Hertz,
		ChipSelects: pins,
	})
	if err != nil {
		return nil, nil, err
	}
	return bus, bus, nil
}

func progressPrinter(w io.Writer) eeprom.ProgressCallback {
	return func(p eeprom.Progress) {
		if p.Phase == eeprom.PhaseComplete {
			fmt.Fprintf(w, "\r%-12s %5.1f%% (%d/%d bytes, %s)\n",
				p.Phase, p.Percentage, p.Done, p.Total, p.ElapsedTime.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(w, "\r%-12s %5.1f%%", p.Phase, p.Percentage)
	}
}
