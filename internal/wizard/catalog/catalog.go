package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"bedrot-sim/internal/wizard/assets"
	"bedrot-sim/internal/wizard/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ============================================================
// Catalog Types
// ============================================================

type Step struct {
	Index       int             `yaml:"-" json:"index"`
	Key         string          `yaml:"key" json:"key"`
	Label       string          `yaml:"label" json:"label"`
	Icon        string          `yaml:"icon" json:"icon"`
	Category    models.Category `yaml:"category" json:"category,omitempty"`
	Heading     string          `yaml:"heading" json:"heading"`
	MaxChoices  int             `yaml:"max_choices" json:"max_choices,omitempty"`
	MaxLength   int             `yaml:"max_length" json:"max_length,omitempty"`
	Placeholder string          `yaml:"placeholder" json:"placeholder,omitempty"`
}

type Option struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Catalog struct {
	Steps   []Step                       `json:"steps"`
	Options map[models.Category][]Option `json:"options"`
}

type rawCatalog struct {
	Steps   []Step                       `yaml:"steps"`
	Options map[models.Category][]string `yaml:"options"`
}

var (
	once     sync.Once
	instance *Catalog
	parseErr error
)

// Default разбирает встроенный каталог один раз.
func Default() (*Catalog, error) {
	once.Do(func() {
		instance, parseErr = Parse(defaultCatalog)
	})
	return instance, parseErr
}

// Parse читает YAML каталога; пути картинок вычисляет резолвер, в YAML их нет.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(raw.Steps) != models.StepCount {
		return nil, fmt.Errorf("catalog has %d steps, want %d", len(raw.Steps), models.StepCount)
	}

	c := &Catalog{
		Steps:   raw.Steps,
		Options: make(map[models.Category][]Option, len(raw.Options)),
	}
	for i := range c.Steps {
		c.Steps[i].Index = i
	}
	for category, names := range raw.Options {
		options := make([]Option, 0, len(names))
		for _, name := range names {
			options = append(options, Option{Name: name, Image: imageFor(category, name)})
		}
		c.Options[category] = options
	}
	return c, nil
}

// StepAt возвращает шаг по индексу; ok=false вне диапазона.
func (c *Catalog) StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(c.Steps) {
		return Step{}, false
	}
	return c.Steps[index], true
}

func imageFor(category models.Category, name string) string {
	if category == models.CategoryScene {
		return assets.ResolveBackground(name)
	}
	return assets.ResolveImage(category, name)
}
