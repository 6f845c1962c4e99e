package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the YAML config file schema. Every field supplies a default
// that an explicitly set flag overrides.
type Config struct {
	Target  string `yaml:"target"`
	Retries *int   `yaml:"retries"`
	Delay   string `yaml:"delay"` // Go duration string, e.g. "500ms"
}

// LoadConfig reads and strictly decodes a YAML config file. Unknown fields
// are errors so typos surface instead of silently doing nothing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyConfigFile fills options from the config file for every flag the
// user did not set on the command line.
func applyConfigFile(opts *RootOptions, cmd *cobra.Command) error {
	if opts.ConfigPath == "" {
		return nil
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if cfg.Target != "" && !flags.Changed("target") {
		opts.Target = cfg.Target
	}
	if cfg.Retries != nil && !flags.Changed("retries") {
		opts.Retries = *cfg.Retries
	}
	if cfg.Delay != "" && !flags.Changed("delay") {
		d, err := time.ParseDuration(cfg.Delay)
		if err != nil {
			return fmt.Errorf("config delay: %w", err)
		}
		opts.Delay = d
	}
	return nil
}
