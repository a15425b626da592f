// Package config holds the settings of the visit command, loaded from YAML and overridden by flags
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Formats which the visit command can read
const (
	FormatParquet = "parquet"
	FormatJSONL   = "jsonl"
)

// Outputs which the visit command can write
const (
	OutputText = "text" // one line per BatchGroup
	OutputWire = "wire" // length-delimited protobuf BatchInfo messages
	OutputNone = "none" // summary only
)

// Config describes one traversal pass
type Config struct {
	Inputs           []string `yaml:"inputs"`            // globs, expanded in order
	Format           string   `yaml:"format"`            // parquet or jsonl
	BatchSize        int      `yaml:"batch_size"`        // rows per batch
	Columns          []string `yaml:"columns"`           // optional projection
	ConsumeRemainder bool     `yaml:"consume_remainder"` // merge trailing batches
	FirstIndex       int64    `yaml:"first_index"`       // index of the first file
	Shards           int      `yaml:"shards"`            // disjoint file partitions
	Parallelism      int      `yaml:"parallelism"`       // shards visited at once
	Output           string   `yaml:"output"`            // text, wire or none
	LogLevel         string   `yaml:"log_level"`
	Development      bool     `yaml:"development"` // human-readable logs
}

// Defaults returns the configuration used when neither a file nor flags say otherwise
func Defaults() Config {
	return Config{
		Format:      FormatParquet,
		BatchSize:   256,
		Shards:      1,
		Parallelism: 1,
		Output:      OutputText,
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func Validate(cfg Config) error {
	var errs *multierror.Error
	if len(cfg.Inputs) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("config: inputs empty"))
	}
	for _, in := range cfg.Inputs {
		if strings.TrimSpace(in) == "" {
			errs = multierror.Append(errs, fmt.Errorf("config: input cannot be empty"))
		}
	}
	switch cfg.Format {
	case FormatParquet, FormatJSONL:
	default:
		errs = multierror.Append(errs, fmt.Errorf("config: unknown format %q", cfg.Format))
	}
	if cfg.BatchSize < 1 {
		errs = multierror.Append(errs, fmt.Errorf("config: batch_size must be >= 1"))
	}
	if cfg.Shards < 1 {
		errs = multierror.Append(errs, fmt.Errorf("config: shards must be >= 1"))
	}
	if cfg.Parallelism < 1 {
		errs = multierror.Append(errs, fmt.Errorf("config: parallelism must be >= 1"))
	}
	switch cfg.Output {
	case OutputText, OutputWire, OutputNone:
	default:
		errs = multierror.Append(errs, fmt.Errorf("config: unknown output %q", cfg.Output))
	}
	return errs.ErrorOrNil()
}
