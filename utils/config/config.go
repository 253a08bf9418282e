// Package config holds the yaml configuration of the block tables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bedrock-tool/blockmap/utils"
	"github.com/bedrock-tool/blockmap/utils/blockmapping"
	"github.com/bedrock-tool/blockmap/utils/resources"
	"gopkg.in/yaml.v3"
)

type Seed struct {
	Mode  string `yaml:"mode"`
	Value int64  `yaml:"value"`
}

type Epoch struct {
	Name        string `yaml:"name"`
	Protocol    int32  `yaml:"protocol"`
	LegacyIDs   string `yaml:"legacy_ids"`
	States      string `yaml:"states"`
	Properties  string `yaml:"properties,omitempty"`
	Palette     string `yaml:"palette,omitempty"`
	PaletteBlob string `yaml:"palette_blob,omitempty"`
}

type Config struct {
	Resources    string  `yaml:"resources"`
	Seed         Seed    `yaml:"seed"`
	Sentinel     int     `yaml:"sentinel"`
	WarmPalettes bool    `yaml:"warm_palettes"`
	Epochs       []Epoch `yaml:"epochs"`
}

// Default is used when no configuration file is given.
func Default() *Config {
	return &Config{
		Resources: "resources",
		Seed:      Seed{Mode: string(utils.SeedPID)},
		Sentinel:  blockmapping.DefaultSentinel,
		Epochs: []Epoch{
			{
				Name:      "1.12",
				Protocol:  361,
				LegacyIDs: "vanilla/block_id_map.json",
				States:    "vanilla/required_block_states.json",
				Palette:   blockmapping.PaletteLegacyList.String(),
			},
			{
				Name:       "1.13",
				Protocol:   388,
				LegacyIDs:  "vanilla/block_id_map_370.json",
				States:     "vanilla/required_block_states_370.json",
				Properties: "vanilla/advanced_block_states_370.json",
				Palette:    blockmapping.PaletteNBT.String(),
			},
		},
	}
}

// Load reads the configuration at path. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	c.Epochs = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if len(c.Epochs) == 0 {
		return blockmapping.ErrNoEpochs
	}
	if _, err := utils.ParseSeedMode(c.Seed.Mode); err != nil {
		return err
	}
	if !blockmapping.ValidLegacyID(c.Sentinel) {
		return fmt.Errorf("sentinel %d: %w", c.Sentinel, blockmapping.ErrLegacyIDRange)
	}
	var errs []error
	names := make(map[string]bool)
	protocols := make(map[int32]bool)
	for i, e := range c.Epochs {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("epoch %d: no name", i))
		}
		if names[e.Name] || protocols[e.Protocol] {
			errs = append(errs, fmt.Errorf("epoch %s: %w", e.Name, blockmapping.ErrDuplicateEpoch))
		}
		names[e.Name], protocols[e.Protocol] = true, true
		if e.Protocol <= 0 {
			errs = append(errs, fmt.Errorf("epoch %s: invalid protocol %d", e.Name, e.Protocol))
		}
		if e.LegacyIDs == "" || e.States == "" {
			errs = append(errs, fmt.Errorf("epoch %s: legacy_ids and states are required", e.Name))
		}
		strategy, err := blockmapping.ParsePaletteStrategy(e.Palette)
		if err != nil {
			errs = append(errs, fmt.Errorf("epoch %s: %w", e.Name, err))
		}
		if strategy == blockmapping.PaletteBlob && e.PaletteBlob == "" {
			errs = append(errs, fmt.Errorf("epoch %s: palette blob requires palette_blob", e.Name))
		}
	}
	return errors.Join(errs...)
}

// SeedValue resolves the configured seed mode.
func (c *Config) SeedValue() int64 {
	mode, _ := utils.ParseSeedMode(c.Seed.Mode)
	return utils.ProcessSeed(mode, c.Seed.Value)
}

// Sources loads the resources of every epoch.
func (c *Config) Sources(l *resources.Loader) ([]blockmapping.EpochSource, error) {
	sources := make([]blockmapping.EpochSource, 0, len(c.Epochs))
	for _, e := range c.Epochs {
		strategy, err := blockmapping.ParsePaletteStrategy(e.Palette)
		if err != nil {
			return nil, err
		}
		src, err := l.Load(e.Name, resources.Files{
			LegacyIDs:  e.LegacyIDs,
			States:     e.States,
			Properties: e.Properties,
			Blob:       e.PaletteBlob,
		})
		if err != nil {
			return nil, err
		}
		sources = append(sources, blockmapping.EpochSource{
			Epoch:   blockmapping.Epoch{Name: e.Name, Protocol: e.Protocol},
			Palette: strategy,
			Source:  src,
		})
	}
	return sources, nil
}

// Registry loads all resources and builds the block registry.
func (c *Config) Registry(l *resources.Loader) (*blockmapping.Registry, error) {
	sources, err := c.Sources(l)
	if err != nil {
		return nil, err
	}
	return blockmapping.NewRegistry(sources, blockmapping.Options{
		Seed:         c.SeedValue(),
		Sentinel:     &c.Sentinel,
		WarmPalettes: c.WarmPalettes,
	})
}
