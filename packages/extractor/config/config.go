package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"i18next-parser-go/packages/extractor/catalog"
)

// Config holds the full extraction configuration. It is an explicit value
// threaded through the run, never process-wide state, so runs with different
// configurations can execute concurrently.
type Config struct {
	// Root is the directory the input globs are evaluated against
	Root string `yaml:"root"`
	// Locales are the target locales; one catalog set is written per locale
	Locales []string `yaml:"locales"`
	// Input are glob patterns selecting source files, relative to Root
	Input []string `yaml:"input"`
	// Output is the catalog path template; $LOCALE and $NAMESPACE are
	// substituted per catalog
	Output string `yaml:"output"`
	// DefaultNamespace receives entries that carry no namespace of their own
	DefaultNamespace string `yaml:"defaultNamespace"`
	// TransComponents is the allow-list of Trans-like component names
	TransComponents []string `yaml:"transComponents"`
	// TFunctions is the list of translation function names to extract
	TFunctions []string `yaml:"tFunctions"`
	// KeySeparator nests catalog keys; empty writes flat keys. Projects using
	// natural-language keys should leave it empty so sentence punctuation is
	// not treated as nesting.
	KeySeparator string `yaml:"keySeparator"`
	// NsSeparator splits a namespace prefix off extracted keys; empty
	// disables splitting
	NsSeparator string `yaml:"nsSeparator"`
	// ConflictPolicy is one of first, last, error
	ConflictPolicy string `yaml:"conflictPolicy"`
	// KeepRemoved retains keys in existing catalogs that are no longer
	// extracted from source
	KeepRemoved bool `yaml:"keepRemoved"`
	// Concurrency bounds the file-extraction worker pool; 0 means one worker
	// per CPU
	Concurrency int `yaml:"concurrency"`
	// DryRun analyzes and reports without writing catalog files
	DryRun bool `yaml:"-"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Root:             ".",
		Locales:          []string{"en"},
		Input:            []string{"src/**/*.js", "src/**/*.jsx", "src/**/*.ts", "src/**/*.tsx"},
		Output:           "locales/$LOCALE/$NAMESPACE.json",
		DefaultNamespace: "translation",
		TransComponents:  []string{"Trans"},
		TFunctions:       []string{"t"},
		KeySeparator:     ".",
		NsSeparator:      ":",
		ConflictPolicy:   "first",
	}
}

// Load reads a YAML configuration file and applies it over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for values the run cannot proceed with
func (c *Config) Validate() error {
	if len(c.Locales) == 0 {
		return errors.New("at least one locale is required")
	}
	if len(c.Input) == 0 {
		return errors.New("at least one input pattern is required")
	}
	if c.Output == "" {
		return errors.New("output template is required")
	}
	if c.DefaultNamespace == "" {
		return errors.New("default namespace is required")
	}
	if len(c.TransComponents) == 0 && len(c.TFunctions) == 0 {
		return errors.New("nothing to extract: no components and no functions configured")
	}
	if _, err := catalog.ParseConflictPolicy(c.ConflictPolicy); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}
