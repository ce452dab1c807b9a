package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/pythonian23/lattice/internal/config"
	"github.com/pythonian23/lattice/internal/diag"
	"github.com/pythonian23/lattice/internal/monitoring"
	"github.com/pythonian23/lattice/internal/render"
	"github.com/pythonian23/lattice/internal/scene"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a JSON run configuration")
		outPath    = flag.String("o", "", "output GIF path (stdout when empty)")
		plotPath   = flag.String("plot", "", "optional PNG path for the mass/speed history plot")
		profMode   = flag.String("profile", "", "enable profiling: cpu or mem")
		quiet      = flag.Bool("q", false, "suppress progress logging")
	)
	flag.Parse()

	if *quiet {
		monitoring.SetLogger(nil)
	}

	switch *profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profMode)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg = loaded
	}

	if err := run(cfg, *outPath, *plotPath); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(cfg *config.Config, outPath, plotPath string) error {
	s, err := scene.New(cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	r := render.NewRenderer(cfg.PixelScale, cfg.SpeedGain)
	anim := render.Animation{}
	var hist diag.History

	c := make(chan scene.Frame, 16)
	go s.Run(c)

	for frame := range c {
		anim.Add(r.Render(frame.Speed, frame.Solid, frame.Tracers), cfg.GifDelay)
		hist.Add(frame.Summary)

		if monitoring.ReportFrame(frame.Index) {
			monitoring.Logf("Frame %v: %v", frame.Index+1, frame.Summary)
		}
	}

	monitoring.Logf("Completed %v frames, mass drift %.3g%%.", anim.Len(), 100*hist.Drift())

	if plotPath != "" {
		if err := hist.SavePlot(plotPath); err != nil {
			return err
		}
		monitoring.Logf("History plot saved to %s", plotPath)
	}

	if err := anim.Encode(out); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}
