package twowaysort

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the pipeline settings, typically loaded from twowaysort.yml.
type Config struct {
	// Timeout bounds how long Sort waits at its barriers. Zero waits forever.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Verify checks the merged output against the input before returning it.
	Verify bool `yaml:"verify,omitempty"`
	// MaxScratch caps the merge scratch space in elements. Zero means no cap.
	MaxScratch int `yaml:"maxScratch,omitempty"`
}

// LoadConfig reads the YAML file at path. A missing file, or an empty path,
// yields the zero Config rather than an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.WithStack(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that can't be honoured.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.MaxScratch < 0 {
		return errors.Errorf("maxScratch must not be negative, got %d", c.MaxScratch)
	}
	return nil
}
