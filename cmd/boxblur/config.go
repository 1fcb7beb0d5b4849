package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/boxblur"
	"github.com/gogpu/boxblur/internal/filter"
	"github.com/gogpu/boxblur/internal/imageio"
)

// Defaults match the classic single-image benchmark run.
const (
	defaultInput  = "input.jpg"
	defaultOutput = "output/basic.jpg"
	defaultRadius = 9
)

// envPrefix is prepended to every config key when read from the
// environment, e.g. BOXBLUR_RADIUS.
const envPrefix = "BOXBLUR"

// config is the resolved configuration for one command invocation.
type config struct {
	Input    string
	Output   string
	Radius   int
	Method   string
	Strategy boxblur.Strategy
	Rounding boxblur.Rounding
	Workers  int
	Quality  int
	LogLevel slog.Level

	OutDir string
	Jobs   int
}

// addBlurFlags registers the flags shared by every blurring command.
func addBlurFlags(fs *pflag.FlagSet) {
	fs.IntP("radius", "r", defaultRadius, "blur radius in pixels (window side is 2*radius+1)")
	fs.String("method", filter.MethodBox, "filter: "+strings.Join(filter.Methods(), ", "))
	fs.String("strategy", boxblur.StrategySlidingSum.String(), "box window sums: sliding or naive")
	fs.String("rounding", boxblur.RoundTruncate.String(), "box mean rounding: truncate or half-up")
	fs.Int("workers", 1, "goroutines per image (0 = all CPUs)")
	fs.Int("quality", imageio.DefaultJPEGQuality, "JPEG output quality (1-100)")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.String("config", "", "config file (YAML, TOML or JSON)")
}

// newViper returns a viper instance reading BOXBLUR_* environment
// variables and bound to fs. Flags set on the command line take
// precedence over the environment, which takes precedence over the config
// file, which takes precedence over flag defaults.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// loadConfig resolves and validates every setting held by v.
func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Input:   v.GetString("input"),
		Output:  v.GetString("output"),
		Radius:  v.GetInt("radius"),
		Method:  v.GetString("method"),
		Workers: v.GetInt("workers"),
		Quality: v.GetInt("quality"),
		OutDir:  v.GetString("out-dir"),
		Jobs:    v.GetInt("jobs"),
	}

	if cfg.Radius < 0 {
		return config{}, fmt.Errorf("radius must be >= 0, got %d", cfg.Radius)
	}

	var err error
	if cfg.Strategy, err = boxblur.ParseStrategy(v.GetString("strategy")); err != nil {
		return config{}, err
	}
	if cfg.Rounding, err = boxblur.ParseRounding(v.GetString("rounding")); err != nil {
		return config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return config{}, fmt.Errorf("log level: %w", err)
	}
	if _, err := filter.New(cfg.Method, cfg.Radius, nil); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// engineOptions converts the box engine settings into engine options.
func (c config) engineOptions() []boxblur.Option {
	return []boxblur.Option{
		boxblur.WithStrategy(c.Strategy),
		boxblur.WithRounding(c.Rounding),
		boxblur.WithWorkers(c.Workers),
	}
}
