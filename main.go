package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/wobbly/internal/desktop"
	"github.com/olivier-w/wobbly/internal/ui"
	"github.com/olivier-w/wobbly/internal/wobbly"
)

type options struct {
	cfg     wobbly.Config
	fps     int
	logPath string
}

func parseFlags(args []string) (options, error) {
	opts := options{cfg: wobbly.DefaultConfig()}

	fs := flag.NewFlagSet("wobbly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Float64Var(&opts.cfg.Friction, "friction", opts.cfg.Friction, "velocity damping per frame")
	fs.Float64Var(&opts.cfg.K, "k", opts.cfg.K, "spring constant")
	fs.Float64Var(&opts.cfg.Mass, "mass", opts.cfg.Mass, "mass of each mesh point")
	fs.IntVar(&opts.cfg.XTiles, "tiles-x", opts.cfg.XTiles, "horizontal mesh tiles")
	fs.IntVar(&opts.cfg.YTiles, "tiles-y", opts.cfg.YTiles, "vertical mesh tiles")
	fs.Float64Var(&opts.cfg.StopVelocity, "stop-velocity", opts.cfg.StopVelocity, "aggregate velocity at which a released window settles")
	fs.BoolVar(&opts.cfg.LegacyAnchorRow, "legacy-anchor", false, "pick the grab row from width and x tiles")
	fs.IntVar(&opts.fps, "fps", 60, "frames per second while animating")
	fs.StringVar(&opts.logPath, "log", "", "write effect events to this file")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if opts.fps < 1 || opts.fps > 240 {
		return options{}, fmt.Errorf("fps %d out of range 1-240", opts.fps)
	}
	if err := opts.cfg.Validate(); err != nil {
		return options{}, err
	}
	return opts, nil
}

// seedDesktop lays out the demo windows, back to front.
func seedDesktop(d *desktop.Desktop) {
	d.Add(&desktop.Window{ID: "notes", Title: "notes", X: 70, Y: 30, W: 56, H: 40, Hue: 0.58})
	d.Add(&desktop.Window{ID: "tooltip", Title: "tooltip", X: 140, Y: 12, W: 28, H: 12, Hue: 0.12, Popup: true})
	d.Add(&desktop.Window{ID: "term", Title: "terminal", X: 8, Y: 8, W: 80, H: 48, Hue: 0.33})
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := log.New(io.Discard, "", 0)
	if opts.logPath != "" {
		f, err := tea.LogToFile(opts.logPath, "wobbly")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.Default()
	} else {
		// Stray log output would corrupt the alt screen.
		log.SetOutput(io.Discard)
	}

	d, err := desktop.New(opts.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	d.SetLogger(logger)
	seedDesktop(d)

	program := tea.NewProgram(ui.New(d, opts.fps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
