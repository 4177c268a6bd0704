package config

import (
	"fmt"
	"sort"
)

// BattleConfig holds the tuning values a battle session is constructed with.
type BattleConfig struct {
	RetreatMoraleThreshold int             `yaml:"retreat_morale_threshold"`
	MaxRounds              int             `yaml:"max_rounds"`
	SpeedTiers             SpeedTiers      `yaml:"speed_tiers"`
	MeleeRange             int             `yaml:"melee_range"`
	MaxDodgePercent        int             `yaml:"max_dodge_percent"`
	Infection              InfectionConfig `yaml:"infection"`
	CombatSpeed            float64         `yaml:"combat_speed"` // presentation pacing only
	Note                   string          `yaml:"note"`
}

// SpeedTiers are upper bounds on the speed stat; lower speed acts more often.
type SpeedTiers struct {
	TwoAttacks  int `yaml:"two_attacks"`
	ThreePerTwo int `yaml:"three_per_two"`
	OneAttack   int `yaml:"one_attack"`
	OnePerTwo   int `yaml:"one_per_two"`
}

// InfectionConfig drives the bog-rot proc on melee hits. Chance is keyed by
// the attacking side ("hero", "monster").
type InfectionConfig struct {
	Chance      map[string]float64 `yaml:"chance"`
	MoraleDrain int                `yaml:"morale_drain"`
}

func DefaultBattle() BattleConfig {
	return BattleConfig{
		RetreatMoraleThreshold: 0,
		MaxRounds:              30,
		SpeedTiers: SpeedTiers{
			TwoAttacks:  2,
			ThreePerTwo: 4,
			OneAttack:   6,
			OnePerTwo:   8,
		},
		MeleeRange:      2,
		MaxDodgePercent: 75,
		Infection: InfectionConfig{
			Chance:      map[string]float64{"hero": 0, "monster": 0.15},
			MoraleDrain: 10,
		},
		CombatSpeed: 1.0,
	}
}

// Validate corrects out-of-range values in place and returns one warning per fix.
func (c *BattleConfig) Validate() []string {
	var warns []string
	if c.MaxRounds <= 0 {
		warns = append(warns, fmt.Sprintf("max_rounds %d is not positive, using %d", c.MaxRounds, DefaultBattle().MaxRounds))
		c.MaxRounds = DefaultBattle().MaxRounds
	}
	if c.MeleeRange < 0 {
		warns = append(warns, fmt.Sprintf("melee_range %d is negative, using 0", c.MeleeRange))
		c.MeleeRange = 0
	}
	if c.MaxDodgePercent < 0 || c.MaxDodgePercent > 100 {
		clamped := min(max(c.MaxDodgePercent, 0), 100)
		warns = append(warns, fmt.Sprintf("max_dodge_percent %d out of [0,100], using %d", c.MaxDodgePercent, clamped))
		c.MaxDodgePercent = clamped
	}
	if c.Infection.MoraleDrain < 0 {
		warns = append(warns, "infection.morale_drain is negative, using 0")
		c.Infection.MoraleDrain = 0
	}
	for side, p := range c.Infection.Chance {
		if p < 0 || p > 1 {
			clamped := min(max(p, 0), 1)
			warns = append(warns, fmt.Sprintf("infection.chance[%s] %.2f out of [0,1], using %.2f", side, p, clamped))
			c.Infection.Chance[side] = clamped
		}
	}
	t := c.SpeedTiers
	levels := []int{t.TwoAttacks, t.ThreePerTwo, t.OneAttack, t.OnePerTwo}
	if !sort.IntsAreSorted(levels) {
		sort.Ints(levels)
		warns = append(warns, fmt.Sprintf("speed_tiers not ascending, reordered to %v", levels))
		c.SpeedTiers = SpeedTiers{
			TwoAttacks:  levels[0],
			ThreePerTwo: levels[1],
			OneAttack:   levels[2],
			OnePerTwo:   levels[3],
		}
	}
	return warns
}
