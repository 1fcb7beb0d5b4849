package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/boxblur"
	"github.com/gogpu/boxblur/internal/imageio"
)

// writeImage saves a w×h gradient raster to dir/name and returns the path
// and the raster.
func writeImage(t *testing.T, dir, name string, w, h int) (string, *boxblur.Raster) {
	t.Helper()
	r, err := boxblur.NewRaster(w, h)
	require.NoError(t, err)
	for y := range h {
		for x := range w {
			r.SetPixel(x, y, boxblur.Pixel{R: uint8(x * 25), G: uint8(y * 25), B: uint8((x + y) * 10)})
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, imageio.Save(path, r))
	return path, r
}

// parseConfig resolves the root command configuration for args.
func parseConfig(t *testing.T, args ...string) (config, error) {
	t.Helper()
	cmd := newRootCommand(io.Discard, io.Discard)
	require.NoError(t, cmd.ParseFlags(args))
	v, err := newViper(cmd.Flags())
	if err != nil {
		return config{}, err
	}
	return loadConfig(v)
}

// resetLogger restores the silent logger after commands install one.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { boxblur.SetLogger(nil) })
}
