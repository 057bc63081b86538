package env

import (
	"fmt"
	"os"

	"gacha_backend/internal/config"
	"gacha_backend/pkg/sampler"

	"gopkg.in/yaml.v3"
)

const (
	gachaConfigEnvName = "GACHA_CONFIG"
	defaultGachaConfig = "config.yaml"
)

type gachaYAML struct {
	Gacha struct {
		Table []struct {
			Label       string  `yaml:"label"`
			Probability float64 `yaml:"probability"`
		} `yaml:"table"`
	} `yaml:"gacha"`
}

type gachaConfig struct {
	table *sampler.Table
}

// GachaConfigPath - путь к YAML с таблицей вероятностей
func GachaConfigPath() string {
	if p := os.Getenv(gachaConfigEnvName); len(p) != 0 {
		return p
	}
	return defaultGachaConfig
}

// NewGachaConfigFromYAML читает таблицу вероятностей из YAML файла
func NewGachaConfigFromYAML(path string) (config.GachaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gacha config: %w", err)
	}
	return ParseGachaConfig(data)
}

// ParseGachaConfig разбирает YAML и проверяет таблицу
func ParseGachaConfig(data []byte) (config.GachaConfig, error) {
	var raw gachaYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse gacha config: %w", err)
	}

	entries := make([]sampler.Entry, 0, len(raw.Gacha.Table))
	for _, e := range raw.Gacha.Table {
		entries = append(entries, sampler.Entry{Label: e.Label, Probability: e.Probability})
	}

	table, err := sampler.NewTable(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid gacha table: %w", err)
	}

	return &gachaConfig{table: table}, nil
}

func (g *gachaConfig) Table() *sampler.Table {
	return g.table
}
