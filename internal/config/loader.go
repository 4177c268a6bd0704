package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// LoadBattle loads battle tuning from path. A missing file yields defaults.
func LoadBattle(path string) (BattleConfig, error) {
	cfg := DefaultBattle()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	for _, w := range cfg.Validate() {
		slog.Warn("battle config corrected", "path", path, "fix", w)
	}
	return cfg, nil
}

func LoadAll(dir string) (*BattleConfig, *AbilitiesConfig, *TemplatesConfig, *RosterConfig, error) {
	var ac AbilitiesConfig
	var tc TemplatesConfig
	var rc RosterConfig
	bc, err := LoadBattle(filepath.Join(dir, "battle.yaml"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "abilities.yaml"), &ac); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "templates.yaml"), &tc); err != nil {
		return nil, nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "roster.yaml"), &rc); err != nil {
		return nil, nil, nil, nil, err
	}
	return &bc, &ac, &tc, &rc, nil
}
