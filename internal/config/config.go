package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"sprite-extruder/internal/pipeline"
)

// Config holds all configurable pipeline and output settings.
//
// Zero values mean "not set" and are filled with defaults by Resolve.
// BlurSigma and UVOffset accept a negative value to mean "disabled",
// since 0 is indistinguishable from unset in a JSON config.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`

	// Pipeline settings
	CellSize  int     `json:"cell_size"`
	Iso       float64 `json:"iso"`
	Thickness float64 `json:"thickness"`
	BlurSigma float64 `json:"blur_sigma"`
	UVOffset  float64 `json:"uv_offset"`
	Height    float64 `json:"height"`
	MaxSize   int     `json:"max_size"`

	// Batch settings
	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean the flag was not given.
type Flags struct {
	OutputDir string
	CellSize  int
	Iso       float64
	Thickness float64
	BlurSigma float64
	UVOffset  float64
	Height    float64
	MaxSize   int
	Workers   int
}

// Resolve applies CLI overrides, then fills any remaining unset fields
// with the documented defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.CellSize > 0 {
		c.CellSize = flags.CellSize
	}
	if flags.Iso != 0 {
		c.Iso = flags.Iso
	}
	if flags.Thickness != 0 {
		c.Thickness = flags.Thickness
	}
	if flags.BlurSigma != 0 {
		c.BlurSigma = flags.BlurSigma
	}
	if flags.UVOffset != 0 {
		c.UVOffset = flags.UVOffset
	}
	if flags.Height != 0 {
		c.Height = flags.Height
	}
	if flags.MaxSize > 0 {
		c.MaxSize = flags.MaxSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.CellSize <= 0 {
		c.CellSize = 10
	}
	if c.Iso <= 0 {
		c.Iso = 0.5
	}
	if c.Thickness <= 0 {
		c.Thickness = 0.1
	}
	if c.BlurSigma == 0 {
		c.BlurSigma = 10.0
	}
	if c.UVOffset == 0 {
		c.UVOffset = 2.0
	}
	if c.Height <= 0 {
		c.Height = 1.0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Options assembles pipeline options from the resolved config plus the
// face-emission toggles, which are CLI-only.
func (c Config) Options(front, back, sides bool) pipeline.Options {
	o := pipeline.Default()
	o.CellSize = c.CellSize
	o.Iso = c.Iso
	o.Thickness = c.Thickness
	o.Height = c.Height
	o.MaxSize = c.MaxSize
	o.FrontFace = front
	o.BackFace = back
	o.SideWalls = sides

	o.BlurSigma = c.BlurSigma
	if c.BlurSigma < 0 {
		o.BlurSigma = 0
	}
	o.NormalUVOffset = c.UVOffset
	if c.UVOffset < 0 {
		o.NormalUVOffset = 0
	}
	return o
}
