package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18next-parser-go/packages/extractor/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"en"}, cfg.Locales)
	assert.Equal(t, "translation", cfg.DefaultNamespace)
	assert.Equal(t, []string{"Trans"}, cfg.TransComponents)
	assert.Equal(t, []string{"t"}, cfg.TFunctions)
	assert.Equal(t, ".", cfg.KeySeparator)
	assert.Equal(t, ":", cfg.NsSeparator)
	assert.Equal(t, "first", cfg.ConflictPolicy)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".i18next-parser.yml")
	content := `
locales: [en, de, ar]
input:
  - "app/**/*.tsx"
output: "public/locales/$LOCALE/$NAMESPACE.json"
defaultNamespace: common
transComponents: [Trans, T]
keySeparator: ""
conflictPolicy: last
keepRemoved: true
concurrency: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de", "ar"}, cfg.Locales)
	assert.Equal(t, []string{"app/**/*.tsx"}, cfg.Input)
	assert.Equal(t, "public/locales/$LOCALE/$NAMESPACE.json", cfg.Output)
	assert.Equal(t, "common", cfg.DefaultNamespace)
	assert.Equal(t, []string{"Trans", "T"}, cfg.TransComponents)
	assert.Equal(t, "", cfg.KeySeparator)
	assert.Equal(t, "last", cfg.ConflictPolicy)
	assert.True(t, cfg.KeepRemoved)
	assert.Equal(t, 4, cfg.Concurrency)
	// untouched keys keep their defaults
	assert.Equal(t, ":", cfg.NsSeparator)
	assert.Equal(t, []string{"t"}, cfg.TFunctions)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"no locales", func(c *config.Config) { c.Locales = nil }},
		{"no input", func(c *config.Config) { c.Input = nil }},
		{"no output", func(c *config.Config) { c.Output = "" }},
		{"no namespace", func(c *config.Config) { c.DefaultNamespace = "" }},
		{"nothing to extract", func(c *config.Config) { c.TransComponents = nil; c.TFunctions = nil }},
		{"bad policy", func(c *config.Config) { c.ConflictPolicy = "maybe" }},
		{"negative concurrency", func(c *config.Config) { c.Concurrency = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
