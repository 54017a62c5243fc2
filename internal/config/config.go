// Package config loads simplemath settings from a TOML file.
//
// Example simplemath.toml:
//
//	[alias]
//	sentinel = "."
//	escape = "i"
//
//	[fold]
//	division-by-zero = "report"
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mpyw/simplemath/internal/alias"
	"github.com/mpyw/simplemath/internal/scan"
)

// Division-by-zero policies accepted in [fold].
const (
	PolicySkip   = "skip"
	PolicyReport = "report"
)

// Config is the decoded configuration file.
type Config struct {
	Alias Alias `toml:"alias"`
	Fold  Fold  `toml:"fold"`
}

// Alias configures the back-reference naming convention.
type Alias struct {
	Sentinel string `toml:"sentinel"`
	Escape   string `toml:"escape"`
}

// Fold configures constant folding.
type Fold struct {
	DivisionByZero string `toml:"division-by-zero"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Alias: Alias{
			Sentinel: string(alias.DefaultSentinel),
			Escape:   string(alias.DefaultEscape),
		},
		Fold: Fold{DivisionByZero: PolicySkip},
	}
}

// Load reads path on top of the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if len(c.Alias.Sentinel) != 1 {
		return fmt.Errorf("alias.sentinel must be a single byte, got %q", c.Alias.Sentinel)
	}
	if len(c.Alias.Escape) != 1 {
		return fmt.Errorf("alias.escape must be a single byte, got %q", c.Alias.Escape)
	}
	switch c.Fold.DivisionByZero {
	case PolicySkip, PolicyReport:
	default:
		return fmt.Errorf("fold.division-by-zero must be %q or %q, got %q",
			PolicySkip, PolicyReport, c.Fold.DivisionByZero)
	}
	return nil
}

// ScanOptions converts the configuration into scanner options.
// It assumes Validate has succeeded.
func (c *Config) ScanOptions() scan.Options {
	opts := scan.Options{
		Decoder: alias.Decoder{
			Sentinel: c.Alias.Sentinel[0],
			Escape:   c.Alias.Escape[0],
		},
		DivZero: scan.DivZeroSkip,
	}
	if c.Fold.DivisionByZero == PolicyReport {
		opts.DivZero = scan.DivZeroReport
	}
	return opts
}
