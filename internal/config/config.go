package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file probed in the working directory when no
// --config flag is given.
const DefaultFile = "cardforge.toml"

// Config represents the run configuration
type Config struct {
	Page   PageConfig   `toml:"page"`
	Assets AssetsConfig `toml:"assets"`
	Layout LayoutConfig `toml:"layout"`
}

// PageConfig controls the exported page: physical size, resolution, bleed
// and output format.
type PageConfig struct {
	DPI          int     `toml:"dpi"`
	CardWidthMM  float64 `toml:"card_width_mm"`
	CardHeightMM float64 `toml:"card_height_mm"`
	BleedMM      float64 `toml:"bleed_mm"`
	Format       string  `toml:"format"` // tiff, jpeg or png
}

// AssetsConfig locates the shared asset directory (frames, fonts, art/).
type AssetsConfig struct {
	Dir string `toml:"dir"`
}

// LayoutConfig holds text-fitting policy knobs.
type LayoutConfig struct {
	// OverflowPolicy decides what happens when text still does not fit at
	// the minimum font size: "truncate" (default) or "overflow".
	OverflowPolicy string `toml:"overflow_policy"`
}

// Default returns the built-in configuration: 63×88 mm card stock at
// 300 DPI, no bleed, CMYK TIFF output, assets in ./assets.
func Default() *Config {
	return &Config{
		Page: PageConfig{
			DPI:          300,
			CardWidthMM:  63.0,
			CardHeightMM: 88.0,
			BleedMM:      0.0,
			Format:       "tiff",
		},
		Assets: AssetsConfig{Dir: "assets"},
		Layout: LayoutConfig{OverflowPolicy: "truncate"},
	}
}

// Load reads a TOML config file, filling unset fields from Default. When
// path is empty, cardforge.toml in the working directory is used if it
// exists; otherwise the defaults are returned as-is.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); os.IsNotExist(err) {
			return Default(), nil
		}
		path = DefaultFile
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the exporter cannot honor.
func (c *Config) Validate() error {
	if c.Page.DPI <= 0 {
		return fmt.Errorf("config: dpi must be positive, got %d", c.Page.DPI)
	}
	if c.Page.CardWidthMM <= 0 || c.Page.CardHeightMM <= 0 {
		return fmt.Errorf("config: card dimensions must be positive")
	}
	if c.Page.BleedMM < 0 {
		return fmt.Errorf("config: bleed must not be negative")
	}
	switch c.Page.Format {
	case "tiff", "jpeg", "png":
	default:
		return fmt.Errorf("config: unsupported format %q (want tiff, jpeg or png)", c.Page.Format)
	}
	switch c.Layout.OverflowPolicy {
	case "truncate", "overflow":
	default:
		return fmt.Errorf("config: unknown overflow_policy %q (want truncate or overflow)", c.Layout.OverflowPolicy)
	}
	return nil
}
