package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/retail-labels/labelgen/internal/compose"
	"github.com/retail-labels/labelgen/internal/document"
	"github.com/retail-labels/labelgen/internal/pdfs"
	"github.com/retail-labels/labelgen/internal/raster"
)

// Environment variables read by ApplyEnv.
const (
	EnvItemsPerPage = "LABELGEN_ITEMS_PER_PAGE"
	EnvOutput       = "LABELGEN_OUTPUT"
	EnvPaper        = "LABELGEN_PAPER"
	EnvConcurrency  = "LABELGEN_CONCURRENCY"
)

// Config holds everything a generation run can be tuned with.
type Config struct {
	ItemsPerPage int             `yaml:"items_per_page"`
	Output       string          `yaml:"output"`
	Paper        string          `yaml:"paper"`
	Concurrency  int             `yaml:"concurrency"`
	Layout       document.Layout `yaml:"layout"`
	Barcode      raster.Options  `yaml:"barcode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ItemsPerPage: compose.DefaultItemsPerPage,
		Output:       document.DefaultFilename,
		Paper:        pdfs.A4Size.Name,
		Concurrency:  4,
		Layout:       document.DefaultLayout(),
		Barcode:      raster.DefaultOptions(),
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from LABELGEN_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvItemsPerPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvItemsPerPage, v, err)
		}
		c.ItemsPerPage = n
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvConcurrency, v, err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvPaper); v != "" {
		c.Paper = v
	}
	return nil
}

// PaperSize resolves the configured paper.
func (c Config) PaperSize() (pdfs.PaperSize, error) {
	return pdfs.LookupPaperSize(c.Paper)
}

// Validate checks that the configuration can produce a document.
func (c Config) Validate() error {
	if c.ItemsPerPage <= 0 {
		return fmt.Errorf("items per page must be positive, got %d", c.ItemsPerPage)
	}
	paper, err := c.PaperSize()
	if err != nil {
		return err
	}
	if err := c.Layout.Validate(paper, c.ItemsPerPage); err != nil {
		return err
	}
	if c.Barcode.ModuleWidth <= 0 || c.Barcode.Height <= 0 {
		return errors.New("barcode module width and height must be positive")
	}
	if _, err := raster.ParseColor(c.Barcode.LineColor); err != nil {
		return err
	}
	if _, err := raster.ParseColor(c.Barcode.Background); err != nil {
		return err
	}
	return nil
}
