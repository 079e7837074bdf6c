// Package config loads the carbon.yaml document the demo CLI renders.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "carbon.yaml"

// SchemaMajor is the only major version of the document this build reads.
const SchemaMajor = "v1"

// Config represents carbon.yaml.
type Config struct {
	Version  string          `yaml:"version,omitempty"`
	Title    string          `yaml:"title,omitempty"`
	Updater  string          `yaml:"updater,omitempty"`
	Surface  SurfaceConfig   `yaml:"surface"`
	Sections []SectionConfig `yaml:"sections,omitempty"`
}

// SurfaceConfig sizes the terminal table.
type SurfaceConfig struct {
	Width             int  `yaml:"width,omitempty"`
	Height            int  `yaml:"height,omitempty"`
	Inset             int  `yaml:"inset,omitempty"`
	MultipleSelection bool `yaml:"multiple_selection,omitempty"`
	DisableSelection  bool `yaml:"disable_selection,omitempty"`
}

// SectionConfig is one section of the document.
type SectionConfig struct {
	ID     string       `yaml:"id,omitempty"`
	Header string       `yaml:"header,omitempty"`
	Footer string       `yaml:"footer,omitempty"`
	Items  []ItemConfig `yaml:"items"`
}

// ItemConfig is a label, or a spacer when Spacer is positive.
type ItemConfig struct {
	ID       string `yaml:"id,omitempty"`
	Text     string `yaml:"text,omitempty"`
	Selected bool   `yaml:"selected,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
	Spacer   int    `yaml:"spacer,omitempty"`
}

// Updater names.
const (
	UpdaterStaged = "staged"
	UpdaterReload = "reload"
)

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads carbon.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse parses a document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve fills defaults and validates cfg. The title defaults to the last
// element of the module path of the go.mod in dir, when there is one.
func Resolve(cfg *Config, dir string) (*Config, error) {
	out := *cfg
	out.Sections = append([]SectionConfig(nil), cfg.Sections...)

	out.Version = strings.TrimSpace(out.Version)
	if out.Version == "" {
		out.Version = SchemaMajor + ".0.0"
	}
	if !semver.IsValid(out.Version) {
		return nil, fmt.Errorf("invalid version %q: must be a semantic version such as v1.0.0", out.Version)
	}
	if major := semver.Major(out.Version); major != SchemaMajor {
		return nil, fmt.Errorf("unsupported version %s: this build reads %s documents", out.Version, SchemaMajor)
	}

	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" {
		out.Title = defaultTitle(dir)
	}

	switch out.Updater {
	case "":
		out.Updater = UpdaterStaged
	case UpdaterStaged, UpdaterReload:
	default:
		return nil, fmt.Errorf("unknown updater %q (use %s or %s)", out.Updater, UpdaterStaged, UpdaterReload)
	}

	if out.Surface.Width <= 0 {
		out.Surface.Width = 60
	}
	if out.Surface.Height <= 0 {
		out.Surface.Height = 12
	}
	if out.Surface.Inset < 0 || 2*out.Surface.Inset >= out.Surface.Width {
		return nil, fmt.Errorf("inset %d does not fit width %d", out.Surface.Inset, out.Surface.Width)
	}

	if len(out.Sections) == 0 {
		out.Sections = Sample()
	}
	if err := validateIDs(out.Sections); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sample is the document shown when none is configured.
func Sample() []SectionConfig {
	return []SectionConfig{
		{
			ID:     "fruit",
			Header: "Fruit",
			Footer: "Seasonal picks",
			Items: []ItemConfig{
				{Text: "Apple", Selected: true},
				{Text: "Banana"},
				{Text: "Cherry"},
				{Text: "Durian", Disabled: true},
			},
		},
		{
			ID:     "drinks",
			Header: "Drinks",
			Items: []ItemConfig{
				{Text: "Tea"},
				{Spacer: 1},
				{Text: "Coffee, brewed slowly over ice for a very long time"},
			},
		},
	}
}

// ItemID returns the identity of the item at index i of a section.
func (c SectionConfig) ItemID(i int) string {
	item := c.Items[i]
	switch {
	case item.ID != "":
		return item.ID
	case item.Spacer > 0:
		return fmt.Sprintf("spacer-%d", i)
	default:
		return item.Text
	}
}

// SectionID returns the identity of the section at index i.
func (c SectionConfig) SectionID(i int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("section-%d", i)
}

func validateIDs(sections []SectionConfig) error {
	seenSections := make(map[string]bool)
	for i, sec := range sections {
		id := sec.SectionID(i)
		if seenSections[id] {
			return fmt.Errorf("duplicate section id %q", id)
		}
		seenSections[id] = true

		seenItems := make(map[string]bool)
		for j, item := range sec.Items {
			if item.Spacer < 0 {
				return fmt.Errorf("section %q item %d: negative spacer", id, j)
			}
			if item.Spacer == 0 && strings.TrimSpace(item.Text) == "" {
				return fmt.Errorf("section %q item %d: text or spacer required", id, j)
			}
			itemID := sec.ItemID(j)
			if seenItems[itemID] {
				return fmt.Errorf("section %q: duplicate item id %q", id, itemID)
			}
			seenItems[itemID] = true
		}
	}
	return nil
}

func defaultTitle(dir string) string {
	path, err := modulePath(dir)
	if err != nil {
		return "carbon"
	}
	prefix, _, ok := module.SplitPathVersion(path)
	if !ok {
		prefix = path
	}
	parts := strings.Split(prefix, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return "carbon"
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
