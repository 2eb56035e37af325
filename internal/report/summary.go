package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/retail-labels/labelgen/internal/models"
)

// RunConfig records the settings a document was generated with.
type RunConfig struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Paper        string `yaml:"paper"`
	ItemsPerPage int    `yaml:"itemsperpage"`
	SkipInvalid  bool   `yaml:"skipinvalid"`
	Timestamp    string `yaml:"timestamp"`
}

// LabelIssue describes a label printed without barcode.
type LabelIssue struct {
	Page      int    `yaml:"page"`
	Position  int    `yaml:"position"`
	Barcode   string `yaml:"barcode"`
	StyleName string `yaml:"stylename,omitempty"`
	Reason    string `yaml:"reason"`
}

// Summary is the YAML report of one generation run.
type Summary struct {
	Config         RunConfig    `yaml:"config"`
	State          string       `yaml:"state"`
	Error          string       `yaml:"error,omitempty"`
	Records        int          `yaml:"records"`
	Pages          int          `yaml:"pages"`
	Skipped        []string     `yaml:"skipped,omitempty"`
	RasterFailures []LabelIssue `yaml:"rasterfailures,omitempty"`
}

// NewRunConfig stamps cfg with the current time.
func NewRunConfig(input, output, paper string, itemsPerPage int, skipInvalid bool) RunConfig {
	return RunConfig{
		Input:        input,
		Output:       output,
		Paper:        paper,
		ItemsPerPage: itemsPerPage,
		SkipInvalid:  skipInvalid,
		Timestamp:    time.Now().Format("2006-01-02_15-04-05"),
	}
}

// Failures lists every label of pages that has no barcode image.
func Failures(pages []models.RenderedPage) []LabelIssue {
	var issues []LabelIssue
	for _, p := range pages {
		for i, l := range p.Labels {
			if l.HasBarcode() {
				continue
			}
			issues = append(issues, LabelIssue{
				Page:      p.Index + 1,
				Position:  i + 1,
				Barcode:   l.Record.Barcode,
				StyleName: l.StyleName,
				Reason:    l.RasterError,
			})
		}
	}
	return issues
}

// Save writes s as YAML to path, creating parent directories.
func Save(path string, s Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

// Load reads a summary written by Save.
func Load(path string) (Summary, error) {
	var s Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read summary: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse summary: %w", err)
	}
	return s, nil
}
