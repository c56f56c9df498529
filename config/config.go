// Package config holds runtime configuration: defaults, TOML loading and
// validation. Defaults: images/ in, t_images/ out,
// threshold 200, one worker per logical CPU.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/chaos-io/bgclear/transparent"
	"github.com/chaos-io/bgclear/util"
)

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`  // debug | info | warn | error
	Format string `toml:"format"` // console | json
}

// Config holds all runtime settings.
type Config struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
	Threshold int    `toml:"threshold"`
	Workers   int    `toml:"workers"`
	// MaxSize caps the longest edge of each image before masking; 0 disables.
	MaxSize int     `toml:"max_size"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		InputDir:  "images",
		OutputDir: "t_images",
		Threshold: transparent.DefaultThreshold,
		Workers:   runtime.NumCPU(),
		MaxSize:   0,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults. Unknown keys are rejected. The result is normalized but not
// validated, so callers can apply overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(expandPath(path))
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize expands "~" and cleans directory paths.
func (c *Config) Normalize() {
	c.InputDir = normalizeDir(c.InputDir)
	c.OutputDir = normalizeDir(c.OutputDir)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate checks every field. It runs before any work is dispatched.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold %d: %w", c.Threshold, transparent.ErrInvalidThreshold)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive (got %d)", c.Workers)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("max_size must not be negative (got %d)", c.MaxSize)
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("input_dir and output_dir must be set")
	}
	if _, err := util.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("log format: unsupported value %q (use 'console' or 'json')", c.Logging.Format)
	}
	return nil
}

// ValidatePaths ensures the output directory is not inside (or equal to) the
// input directory, so a run never enumerates its own results. Both
// arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}

// ResolveDir returns the absolute form of dir with symlinks resolved as far
// as the path exists.
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func normalizeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(expandPath(path))
}

func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
