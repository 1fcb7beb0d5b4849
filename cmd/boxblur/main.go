// Command boxblur blurs image files with a clipped-window box filter and
// reports how long loading, blurring and writing took.
//
// Usage:
//
//	boxblur [-i input.jpg] [-o output/basic.jpg] [-r 9] [flags]
//	boxblur batch --out-dir DIR [--jobs N] FILE...
//	boxblur version
//
// Every flag can also be set through a BOXBLUR_* environment variable
// (BOXBLUR_RADIUS, BOXBLUR_LOG_LEVEL, ...) or a config file given with
// --config.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/boxblur"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "boxblur",
		Short:         "Blur an image with a clipped-window box filter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig(cmd, stderr)
			if err != nil {
				return err
			}
			return runSingle(cfg, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringP("input", "i", defaultInput, "input image")
	cmd.Flags().StringP("output", "o", defaultOutput, "output image; format follows the extension")
	addBlurFlags(cmd.PersistentFlags())

	cmd.AddCommand(newBatchCommand(stdout, stderr), newVersionCommand(stdout))
	return cmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(stdout, "boxblur %s\n", boxblur.Version)
		},
	}
}

// commandConfig resolves the configuration for cmd and installs the
// package logger at the configured level.
func commandConfig(cmd *cobra.Command, stderr io.Writer) (config, error) {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return config{}, err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return config{}, err
	}

	boxblur.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))
	return cfg, nil
}

// runSingle blurs cfg.Input into cfg.Output and prints the timing line.
func runSingle(cfg config, stdout io.Writer) error {
	eng := boxblur.NewEngine(cfg.engineOptions()...)
	defer eng.Close()

	p, err := newProcessor(cfg, eng)
	if err != nil {
		return err
	}

	t, err := p.process(cfg.Input, cfg.Output)
	if err != nil {
		return err
	}
	return t.report(stdout, "")
}
