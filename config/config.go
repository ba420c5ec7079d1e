package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	LogLevel  string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`

	Storage   StorageConfig   `yaml:"storage"`
	Triplets  TripletsConfig  `yaml:"triplets"`
	Ranker    RankerConfig    `yaml:"ranker"`
	Labelling LabellingConfig `yaml:"labelling"`
	Download  DownloadConfig  `yaml:"download"`
	Discogs   DiscogsConfig   `yaml:"discogs"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type" validate:"oneof=local gcs"`

	// Local storage options
	OutputDir string `yaml:"output_dir" validate:"required"`
	TempDir   string `yaml:"temp_dir" validate:"required"`

	// GCS storage options
	Bucket          string `yaml:"bucket" validate:"required_if=Type gcs"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

type TripletsConfig struct {
	PerAnchor int  `yaml:"per_anchor" validate:"gte=1"`
	AllowSame bool `yaml:"allow_same"`
	// Seed is optional; unset means a fresh random seed each run.
	Seed *uint64 `yaml:"seed"`
}

type RankerConfig struct {
	TopK int `yaml:"top_k" validate:"gte=1"`
}

type LabellingConfig struct {
	TracksDir   string `yaml:"tracks_dir"`
	MatchesFile string `yaml:"matches_file" validate:"required"`
	// Backend of the match table: "csv" or "badger"
	Backend   string `yaml:"backend" validate:"oneof=csv badger"`
	BadgerDir string `yaml:"badger_dir" validate:"required_if=Backend badger"`
	// Seed of the pair shuffle; unset means DefaultLabellingSeed.
	Seed *uint64 `yaml:"seed"`
}

type DownloadConfig struct {
	Workers int           `yaml:"workers" validate:"gte=1,lte=64"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type DiscogsConfig struct {
	Database string `yaml:"database" validate:"required"`
}

// Default returns the configuration used when no file is present.
// DefaultLabellingSeed keeps labelling order stable across runs.
const DefaultLabellingSeed uint64 = 42

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. A missing file at DefaultPath yields the
// defaults; any other missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.OutputDir == "" {
		c.Storage.OutputDir = "output"
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = os.TempDir()
	}

	if c.Triplets.PerAnchor == 0 {
		c.Triplets.PerAnchor = 3
	}

	if c.Ranker.TopK == 0 {
		c.Ranker.TopK = 10
	}

	if c.Labelling.MatchesFile == "" {
		c.Labelling.MatchesFile = "matches.csv"
	}
	if c.Labelling.Backend == "" {
		c.Labelling.Backend = "csv"
	}
	if c.Labelling.Seed == nil {
		seed := DefaultLabellingSeed
		c.Labelling.Seed = &seed
	}

	if c.Download.Workers == 0 {
		c.Download.Workers = 4
	}
	if c.Download.Timeout == 0 {
		c.Download.Timeout = 2 * time.Minute
	}

	if c.Discogs.Database == "" {
		c.Discogs.Database = "discogs.db"
	}
}
