// Package config provides configuration management for the paintbynumbers
// command-line tool.
//
// Configuration is loaded exclusively from a JSON file at
// ~/.config/paintbynumbers/config.json. No environment variables or
// auto-discovery mechanisms are used - all paths and pipeline settings are
// explicitly configured, with defaults filled in for anything omitted.
//
// Example config file:
//
//	{
//	  "output_dir": "/tmp/paintbynumbers",
//	  "log_level": "info",
//	  "k_means_clusters": 16,
//	  "k_means_color_space": "LAB",
//	  "narrow_strip_passes": 1,
//	  "remove_facets_smaller_than": 20,
//	  "max_facets": 400,
//	  "halve_border_segments": 2,
//	  "resize_max_width": 1024,
//	  "resize_max_height": 1024
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nuopel/paintbynumbers-go/pkg/pbn"
)

// Config holds the paintbynumbers command-line tool's configuration.
//
// All fields default when not specified in the config file, except
// OutputDir, which defaults to the OS temp dir.
type Config struct {
	// OutputDir is the directory written previews and result summaries go
	// into. Defaults to <os temp dir>/paintbynumbers if not specified.
	OutputDir string `json:"output_dir"`

	// LogLevel is the logging verbosity level.
	// Valid values: "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`

	KMeansClusters          int    `json:"k_means_clusters"`
	KMeansColorSpace        string `json:"k_means_color_space"`
	KMeansMinDelta          float64 `json:"k_means_min_delta"`
	NarrowStripPasses       int    `json:"narrow_strip_passes"`
	RemoveFacetsSmallerThan int    `json:"remove_facets_smaller_than"`
	MaxFacets               int    `json:"max_facets"`
	RemoveLargeFirst        bool   `json:"remove_large_first"`
	HalveBorderSegments     int    `json:"halve_border_segments"`
	ResizeMaxWidth          int    `json:"resize_max_width"`
	ResizeMaxHeight         int    `json:"resize_max_height"`
}

// Default configuration values applied when fields are not specified in the
// config file.
const (
	DefaultLogLevel               = "info"
	DefaultKMeansClusters         = 16
	DefaultKMeansColorSpace       = "RGB"
	DefaultKMeansMinDelta         = 1.0
	DefaultNarrowStripPasses      = 1
	DefaultRemoveFacetsSmallerThan = 20
	DefaultHalveBorderSegments    = 2
)

// Load loads configuration from the default config file at
// ~/.config/paintbynumbers/config.json. A missing file is not an error: an
// all-defaults Config is returned, since every field here has a usable
// default (unlike the Aseprite path this tool's teacher required).
func Load() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	data, err := os.ReadFile(getConfigFilePath())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// setDefaults fills in any field left unset after loading from file.
func (c *Config) setDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(os.TempDir(), "paintbynumbers")
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.KMeansClusters == 0 {
		c.KMeansClusters = DefaultKMeansClusters
	}
	if c.KMeansColorSpace == "" {
		c.KMeansColorSpace = DefaultKMeansColorSpace
	}
	if c.KMeansMinDelta == 0 {
		c.KMeansMinDelta = DefaultKMeansMinDelta
	}
	if c.NarrowStripPasses == 0 {
		c.NarrowStripPasses = DefaultNarrowStripPasses
	}
	if c.RemoveFacetsSmallerThan == 0 {
		c.RemoveFacetsSmallerThan = DefaultRemoveFacetsSmallerThan
	}
	if c.HalveBorderSegments == 0 {
		c.HalveBorderSegments = DefaultHalveBorderSegments
	}
}

// Validate checks that the configuration describes a usable run:
// OutputDir is writable and LogLevel/KMeansColorSpace name real options.
func (c *Config) Validate() error {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	testFile := filepath.Join(c.OutputDir, ".test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("output directory is not writable: %w", err)
	}
	os.Remove(testFile)

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	if _, err := c.colorSpace(); err != nil {
		return err
	}

	if c.KMeansClusters < 1 {
		return fmt.Errorf("k_means_clusters must be >= 1, got %d", c.KMeansClusters)
	}

	return nil
}

func (c *Config) colorSpace() (pbn.ColorSpace, error) {
	switch c.KMeansColorSpace {
	case "RGB":
		return pbn.RGBSpace, nil
	case "HSL":
		return pbn.HSLSpace, nil
	case "LAB":
		return pbn.LABSpace, nil
	default:
		return 0, fmt.Errorf("invalid k_means_color_space: %s (valid: RGB, HSL, LAB)", c.KMeansColorSpace)
	}
}

// Settings converts the loaded config into a pbn.Settings for Run.
func (c *Config) Settings() pbn.Settings {
	space, _ := c.colorSpace()
	s := pbn.Settings{
		KMeansClusters:          c.KMeansClusters,
		ColorSpace:              space,
		KMeansMinDelta:          c.KMeansMinDelta,
		NarrowStripPasses:       c.NarrowStripPasses,
		RemoveFacetsSmallerThan: c.RemoveFacetsSmallerThan,
		RemoveLargeFirst:        c.RemoveLargeFirst,
		HalveBorderSegments:     c.HalveBorderSegments,
		ResizeMaxWidth:          c.ResizeMaxWidth,
		ResizeMaxHeight:         c.ResizeMaxHeight,
	}
	if c.MaxFacets > 0 {
		s.MaxFacets = &c.MaxFacets
	}
	return s
}

// getConfigFilePath is a function variable that returns the default config
// file path. Can be overridden in tests.
var getConfigFilePath = func() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "paintbynumbers", "config.json")
}
