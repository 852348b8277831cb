// Package config loads server settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/id-extract-mcp/internal/form"
	"github.com/ironsheep/id-extract-mcp/internal/ocr"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel       = "ID_EXTRACT_LOG_LEVEL"
	EnvLanguages      = "ID_EXTRACT_LANGUAGES"
	EnvDPI            = "ID_EXTRACT_DPI"
	EnvScratchDir     = "ID_EXTRACT_SCRATCH_DIR"
	EnvTessdataPrefix = "TESSDATA_PREFIX"
	EnvPdftoppm       = "ID_EXTRACT_PDFTOPPM"
)

// Config holds every runtime setting.
type Config struct {
	LogLevel       string     `yaml:"log_level"`
	Languages      []string   `yaml:"languages"`
	DPI            int        `yaml:"dpi"`
	ScratchDir     string     `yaml:"scratch_dir"`
	TessdataPrefix string     `yaml:"tessdata_prefix"`
	Pdftoppm       string     `yaml:"pdftoppm"`
	Form           FormConfig `yaml:"form"`
}

// FormConfig holds the fixed texts of the rendered form.
type FormConfig struct {
	Title  string `yaml:"title"`
	Footer string `yaml:"footer"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Languages:  append([]string(nil), ocr.DefaultLanguages...),
		DPI:        ocr.DefaultDPI,
		ScratchDir: os.TempDir(),
		Pdftoppm:   "pdftoppm",
		Form: FormConfig{
			Title:  form.DefaultTitle,
			Footer: form.DefaultFooter,
		},
	}
}

// Load reads settings from path on top of the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLanguages); ok && v != "" {
		c.Languages = SplitLanguages(v)
	}
	if v, ok := lookup(EnvDPI); ok && v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDPI, err)
		}
		c.DPI = dpi
	}
	if v, ok := lookup(EnvScratchDir); ok && v != "" {
		c.ScratchDir = v
	}
	if v, ok := lookup(EnvTessdataPrefix); ok && v != "" {
		c.TessdataPrefix = v
	}
	if v, ok := lookup(EnvPdftoppm); ok && v != "" {
		c.Pdftoppm = v
	}
	return nil
}

// SplitLanguages parses a Tesseract-style language list such as
// "eng+hin+mar". Empty entries are dropped.
func SplitLanguages(s string) []string {
	var out []string
	for _, lang := range strings.Split(s, "+") {
		if lang = strings.TrimSpace(lang); lang != "" {
			out = append(out, lang)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one OCR language is required")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("invalid dpi %d: must be positive", c.DPI)
	}
	if c.ScratchDir == "" {
		return fmt.Errorf("scratch_dir must not be empty")
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// FormOptions returns the renderer options for these settings.
func (c *Config) FormOptions() form.Options {
	return form.Options{Title: c.Form.Title, Footer: c.Form.Footer}
}

// PipelineConfig returns the OCR pipeline settings.
func (c *Config) PipelineConfig() ocr.Config {
	return ocr.Config{ScratchDir: c.ScratchDir, DPI: c.DPI}
}
