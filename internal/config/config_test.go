package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAll_Assets(t *testing.T) {
	bc, ac, tc, rc, err := LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)

	assert.Equal(t, 30, bc.MaxRounds)
	assert.Equal(t, 2, bc.SpeedTiers.TwoAttacks)
	assert.InDelta(t, 0.2, bc.Infection.Chance["monster"], 1e-9)
	assert.Equal(t, 12, bc.Infection.MoraleDrain)

	require.NotEmpty(t, ac.Abilities)
	var pact *Ability
	for i := range ac.Abilities {
		if ac.Abilities[i].ID == "blood_pact" {
			pact = &ac.Abilities[i]
		}
	}
	require.NotNil(t, pact)
	require.Len(t, pact.Effects, 2)
	assert.Equal(t, "self_sacrifice", pact.Effects[0].Kind)
	assert.Equal(t, 20, pact.Effects[0].AmountPercent)
	assert.InDelta(t, 1.0, pact.Effects[1].CostScaling, 1e-9)

	assert.InDelta(t, 1.15, tc.RankMultipliers[2], 1e-9)
	require.Len(t, rc.Heroes, 3)
	require.NotNil(t, rc.Heroes[2].Position)
	assert.Equal(t, 3, *rc.Heroes[2].Position)
	assert.Nil(t, rc.Heroes[0].Position)
}

func TestLoadBattle_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBattle(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBattle().MaxRounds, cfg.MaxRounds)
}

func TestLoadBattle_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rounds: 5\nretreat_morale_threshold: 10\n"), 0o644))

	cfg, err := LoadBattle(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, 10, cfg.RetreatMoraleThreshold)
	assert.Equal(t, DefaultBattle().SpeedTiers, cfg.SpeedTiers)
}

func TestLoadBattle_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rounds: [\n"), 0o644))

	_, err := LoadBattle(path)
	assert.Error(t, err)
}

func TestLoadAll_MissingAbilities(t *testing.T) {
	_, _, _, _, err := LoadAll(t.TempDir())
	assert.Error(t, err)
}

func TestBattleConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BattleConfig)
		wantWarns int
		check     func(t *testing.T, c BattleConfig)
	}{
		{
			name:      "defaults are clean",
			mutate:    func(*BattleConfig) {},
			wantWarns: 0,
		},
		{
			name:      "speed tiers reordered",
			mutate:    func(c *BattleConfig) { c.SpeedTiers = SpeedTiers{8, 2, 6, 4} },
			wantWarns: 1,
			check: func(t *testing.T, c BattleConfig) {
				assert.Equal(t, SpeedTiers{2, 4, 6, 8}, c.SpeedTiers)
			},
		},
		{
			name:      "non-positive max rounds",
			mutate:    func(c *BattleConfig) { c.MaxRounds = 0 },
			wantWarns: 1,
			check: func(t *testing.T, c BattleConfig) {
				assert.Equal(t, 30, c.MaxRounds)
			},
		},
		{
			name: "dodge and infection clamped",
			mutate: func(c *BattleConfig) {
				c.MaxDodgePercent = 140
				c.Infection.Chance = map[string]float64{"monster": 1.5}
			},
			wantWarns: 2,
			check: func(t *testing.T, c BattleConfig) {
				assert.Equal(t, 100, c.MaxDodgePercent)
				assert.InDelta(t, 1.0, c.Infection.Chance["monster"], 1e-9)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBattle()
			tt.mutate(&cfg)
			warns := cfg.Validate()
			assert.Len(t, warns, tt.wantWarns)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
