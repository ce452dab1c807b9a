package main

import (
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythonian23/lattice/internal/config"
	"github.com/pythonian23/lattice/internal/monitoring"
)

func TestRun(t *testing.T) {
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(orig) })

	cfg := config.Default()
	cfg.Width, cfg.Height = 30, 20
	cfg.Frames = 4
	cfg.StepsPerFrame = 3
	cfg.Tracers = 20
	cfg.PixelScale = 2
	cfg.Inlets = []config.Inlet{{X: 3, Y0: 8, Y1: 11, DX: 1, Value: 0.1}}
	cfg.Obstacles = nil

	dir := t.TempDir()
	out := filepath.Join(dir, "run.gif")
	plot := filepath.Join(dir, "history.png")
	require.NoError(t, run(cfg, out, plot))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, cfg.Frames+1)
	assert.Equal(t, 60, g.Image[0].Bounds().Dx())
	assert.Equal(t, 40, g.Image[0].Bounds().Dy())

	_, err = os.Stat(plot)
	assert.NoError(t, err)
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Frames = 0
	assert.Error(t, run(cfg, filepath.Join(t.TempDir(), "x.gif"), ""))
}
