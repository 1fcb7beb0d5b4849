package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/boxblur"
)

func newBatchCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Blur several images concurrently into one directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig(cmd, stderr)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, args, stdout)
		},
	}
	cmd.Flags().String("out-dir", "output", "directory for blurred images")
	cmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "images processed at once")
	return cmd
}

// runBatch processes inputs with at most cfg.Jobs files in flight. Every
// input gets its own output file, see batchOutputPaths. The first failure
// stops scheduling of files that have not started yet.
func runBatch(ctx context.Context, cfg config, inputs []string, stdout io.Writer) error {
	if cfg.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1, got %d", cfg.Jobs)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	eng := boxblur.NewEngine(cfg.engineOptions()...)
	defer eng.Close()

	p, err := newProcessor(cfg, eng)
	if err != nil {
		return err
	}

	outputs := batchOutputPaths(cfg.OutDir, inputs)

	var mu sync.Mutex // serializes report lines
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := p.process(input, outputs[i])
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			mu.Lock()
			defer mu.Unlock()
			return t.report(stdout, input)
		})
	}
	return g.Wait()
}
