package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/boxblur"
	"github.com/gogpu/boxblur/internal/filter"
	"github.com/gogpu/boxblur/internal/imageio"
)

// Phase names reported after each file.
const (
	phaseLoad  = "Load"
	phaseBlur  = "Blur"
	phaseWrite = "Write"
)

// errLoad marks failures to read or decode the input image.
var errLoad = errors.New("unable to load input image")

// processor blurs files with one filter configuration.
type processor struct {
	filter  filter.Filter
	quality int
}

func newProcessor(cfg config, eng *boxblur.Engine) (*processor, error) {
	f, err := filter.New(cfg.Method, cfg.Radius, eng)
	if err != nil {
		return nil, err
	}
	return &processor{
		filter:  f,
		quality: cfg.Quality,
	}, nil
}

// process loads input, filters it and writes the result to output.
// Decoding failures wrap errLoad.
func (p *processor) process(input, output string) (*phaseTimer, error) {
	t := newPhaseTimer(nil)

	src, err := imageio.Load(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errLoad, err)
	}
	t.mark(phaseLoad)

	dst, err := p.filter.Apply(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.filter.Name(), err)
	}
	t.mark(phaseBlur)

	if err := imageio.Save(output, dst, imageio.WithJPEGQuality(p.quality)); err != nil {
		return nil, err
	}
	t.mark(phaseWrite)

	boxblur.Logger().Info("processed",
		"input", input,
		"output", output,
		"method", p.filter.Name(),
		"width", src.Width(),
		"height", src.Height(),
		"blur", t.elapsed(phaseBlur))
	return t, nil
}

// batchOutputPath returns the output path for input inside dir. Inputs
// whose extension cannot be encoded are written as PNG.
func batchOutputPath(dir, input string) string {
	name := filepath.Base(input)
	if _, err := imageio.FormatFromPath(name); err != nil {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	}
	return filepath.Join(dir, name)
}

// batchOutputPaths maps every input to a distinct path inside dir. An input
// whose base name is already taken gets -1, -2, ... before the extension,
// in input order. Names are compared case-insensitively.
func batchOutputPaths(dir string, inputs []string) []string {
	used := make(map[string]bool, len(inputs))
	outputs := make([]string, len(inputs))
	for i, input := range inputs {
		base := batchOutputPath(dir, input)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		path := base
		for n := 1; used[strings.ToLower(path)]; n++ {
			path = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		if path != base {
			boxblur.Logger().Warn("batch: output renamed", "input", input, "output", path)
		}
		used[strings.ToLower(path)] = true
		outputs[i] = path
	}
	return outputs
}
