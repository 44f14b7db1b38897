package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "paintbynumbers-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				OutputDir:        tempDir,
				LogLevel:         "info",
				KMeansClusters:   16,
				KMeansColorSpace: "LAB",
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			config: &Config{
				OutputDir:        tempDir,
				LogLevel:         "verbose",
				KMeansClusters:   16,
				KMeansColorSpace: "RGB",
			},
			wantErr: true,
		},
		{
			name: "invalid color space",
			config: &Config{
				OutputDir:        tempDir,
				LogLevel:         "info",
				KMeansClusters:   16,
				KMeansColorSpace: "CMYK",
			},
			wantErr: true,
		},
		{
			name: "zero clusters",
			config: &Config{
				OutputDir:        tempDir,
				LogLevel:         "info",
				KMeansClusters:   0,
				KMeansColorSpace: "RGB",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.KMeansClusters != DefaultKMeansClusters {
		t.Errorf("KMeansClusters = %v, want %v", cfg.KMeansClusters, DefaultKMeansClusters)
	}
	if cfg.OutputDir == "" {
		t.Error("OutputDir should default to a non-empty path")
	}
}

func TestConfig_Settings(t *testing.T) {
	cfg := &Config{
		KMeansClusters:          8,
		KMeansColorSpace:        "HSL",
		KMeansMinDelta:          0.5,
		NarrowStripPasses:       2,
		RemoveFacetsSmallerThan: 10,
		MaxFacets:               50,
		HalveBorderSegments:     3,
	}

	s := cfg.Settings()

	if s.KMeansClusters != 8 {
		t.Errorf("KMeansClusters = %v, want 8", s.KMeansClusters)
	}
	if s.MaxFacets == nil || *s.MaxFacets != 50 {
		t.Errorf("MaxFacets = %v, want 50", s.MaxFacets)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	orig := getConfigFilePath
	defer func() { getConfigFilePath = orig }()

	getConfigFilePath = func() string {
		return filepath.Join(t.TempDir(), "does-not-exist.json")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.KMeansClusters != DefaultKMeansClusters {
		t.Errorf("KMeansClusters = %v, want default %v", cfg.KMeansClusters, DefaultKMeansClusters)
	}
}
