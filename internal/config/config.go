package config

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/idursun/layerview/internal/layer"
)

//go:embed default_config.toml
var defaultConfig string

// Current is the configuration in effect. It starts as the embedded default.
var Current = mustDefault()

type Config struct {
	UI     UIConfig          `toml:"ui"`
	Keys   KeyMappings[keys] `toml:"keys"`
	Groups []GroupConfig     `toml:"groups"`
}

type UIConfig struct {
	FrameIntervalMs int               `toml:"frame_interval_ms"`
	DoubleClickMs   int               `toml:"double_click_ms"`
	SplitPercent    float64           `toml:"split_percent"`
	DetailsPercent  float64           `toml:"details_percent"`
	ViewerStep      float32           `toml:"viewer_step"`
	Colors          map[string]string `toml:"colors"`
}

// GroupConfig is a layer group opened at startup, one panel each.
type GroupConfig struct {
	Name   string       `toml:"name"`
	Link   string       `toml:"link"`
	Layers []layer.Spec `toml:"layers"`
}

func (u UIConfig) FrameInterval() time.Duration {
	return time.Duration(u.FrameIntervalMs) * time.Millisecond
}

func (u UIConfig) DoubleClickInterval() time.Duration {
	return time.Duration(u.DoubleClickMs) * time.Millisecond
}

// Default returns a fresh copy of the embedded configuration.
func Default() (*Config, error) {
	c := &Config{}
	if err := decode(defaultConfig, c); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	return c, nil
}

func mustDefault() *Config {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads the file at path over the embedded default. Tables present in
// the file replace the defaults key by key; arrays replace whole arrays.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return c, nil
}

func decode(text string, c *Config) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if err := checkUndecoded(md); err != nil {
		return err
	}
	return c.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	names := make([]string, len(undecoded))
	for i, k := range undecoded {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys %s", strings.Join(names, ", "))
}

func (c *Config) Validate() error {
	if c.UI.FrameIntervalMs <= 0 {
		return fmt.Errorf("ui.frame_interval_ms must be positive, got %d", c.UI.FrameIntervalMs)
	}
	if c.UI.DoubleClickMs < 0 {
		return fmt.Errorf("ui.double_click_ms must not be negative, got %d", c.UI.DoubleClickMs)
	}
	for _, g := range c.Groups {
		if _, err := ParseLink(g.Link); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
		for _, spec := range g.Layers {
			if err := spec.Validate(); err != nil {
				return fmt.Errorf("group %q layer %q: %w", g.Name, spec.Name, err)
			}
		}
	}
	return nil
}
