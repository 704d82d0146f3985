package highlighter

import (
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultClassName = "hl"

// Config holds the options recognized by a Highlighter.
type Config struct {
	// ClassName is the marker class used when no color is active.
	ClassName string `yaml:"className" json:"className"`
	// Colors maps a color name to the marker class used for it.
	Colors map[string]string `yaml:"colors" json:"colors"`
	// ContainerSelector scopes highlighting to the first matching element.
	ContainerSelector   string   `yaml:"containerSelector" json:"containerSelector"`
	ContainersBlackList []string `yaml:"containersBlackList" json:"containersBlackList"`
	ContainersWhiteList []string `yaml:"containersWhiteList" json:"containersWhiteList"`
	// KeepEmptyNodes leaves zero-length split remnants in place on clear and
	// exposes split flags as marker attributes.
	KeepEmptyNodes bool `yaml:"keepEmptyNodes" json:"keepEmptyNodes"`
	ClearOnClick   bool `yaml:"clearOnClick" json:"clearOnClick"`
}

func (c *Config) defaults() {
	if c.ClassName == "" {
		c.ClassName = defaultClassName
	}
}

// Validate checks that every selector in c compiles.
func (c *Config) Validate() error {
	if c.ClassName == "" {
		return ErrEmptyClassName
	}
	for name, class := range c.Colors {
		if class == "" {
			return errors.Errorf("highlighter: color %q has no class", name)
		}
	}
	if c.ContainerSelector != "" {
		if _, err := cascadia.Compile(c.ContainerSelector); err != nil {
			return errors.Wrapf(err, "containerSelector %q", c.ContainerSelector)
		}
	}
	if _, err := compileSelectors(c.ContainersBlackList); err != nil {
		return errors.Wrap(err, "containersBlackList")
	}
	if _, err := compileSelectors(c.ContainersWhiteList); err != nil {
		return errors.Wrap(err, "containersWhiteList")
	}
	return nil
}

// markerClasses lists every class a marker may carry.
func (c *Config) markerClasses() []string {
	classes := []string{c.ClassName}
	for _, class := range c.Colors {
		classes = append(classes, class)
	}
	return classes
}

// LoadConfigFile reads a YAML config file and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read highlighter config")
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse highlighter config %s", path)
	}
	cfg.defaults()
	return cfg, nil
}

// Option customizes a Highlighter.
type Option func(*Highlighter)

// WithLogger sets the logger used by every component.
func WithLogger(log logrus.FieldLogger) Option {
	return func(h *Highlighter) {
		h.log = log
	}
}
