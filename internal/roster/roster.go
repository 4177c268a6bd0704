// Package roster populates combat units from stat templates and builds the
// two battle rosters.
package roster

import (
	"fmt"
	"log/slog"
	"math"

	"partybattle/internal/combat"
	"partybattle/internal/config"
)

// StatTemplate fills a unit's base stats.
type StatTemplate interface {
	ApplyBaseStats(u *combat.Unit) error
}

// SpecialAbilities grants extra abilities once the whole party is known.
type SpecialAbilities interface {
	ApplySpecialAbility(u *combat.Unit, party []combat.Unit)
}

// Templates is the YAML-backed StatTemplate and SpecialAbilities implementation.
type Templates struct {
	byID    map[string]config.StatTemplate
	rankMul map[int]float64
}

func NewTemplates(cfg *config.TemplatesConfig) *Templates {
	t := &Templates{byID: map[string]config.StatTemplate{}, rankMul: map[int]float64{}}
	if cfg == nil {
		return t
	}
	for _, tpl := range cfg.Templates {
		t.byID[tpl.ID] = tpl
	}
	for rank, mul := range cfg.RankMultipliers {
		t.rankMul[rank] = mul
	}
	return t
}

func (t *Templates) multiplier(rank int) float64 {
	if m, ok := t.rankMul[rank]; ok && m > 0 {
		return m
	}
	return 1.0
}

// ApplyBaseStats scales health, attack and defense by the rank multiplier.
// Morale, evasion and speed are not rank-scaled.
func (t *Templates) ApplyBaseStats(u *combat.Unit) error {
	tpl, ok := t.byID[u.Template]
	if !ok {
		return fmt.Errorf("unit %s: unknown template %q", u.ID, u.Template)
	}
	mul := t.multiplier(u.Rank)
	scale := func(v int) int { return int(math.Round(float64(v) * mul)) }

	if u.Name == "" {
		u.Name = tpl.Name
	}
	u.MaxHealth = scale(tpl.MaxHealth)
	u.Health = u.MaxHealth
	u.MaxMorale = tpl.MaxMorale
	u.Morale = u.MaxMorale
	u.Attack = scale(tpl.Attack)
	u.Defense = scale(tpl.Defense)
	u.Evasion = tpl.Evasion
	u.Speed = tpl.Speed
	u.Abilities = append([]string(nil), tpl.Abilities...)
	return nil
}

func (t *Templates) ApplySpecialAbility(u *combat.Unit, party []combat.Unit) {
	tpl, ok := t.byID[u.Template]
	if !ok {
		return
	}
	for _, sp := range tpl.Specials {
		if sp.Ability == "" || hasAbility(u, sp.Ability) {
			continue
		}
		if sp.WithTemplate != "" && !partyHas(party, sp.WithTemplate, u.ID) {
			continue
		}
		u.Abilities = append(u.Abilities, sp.Ability)
		slog.Debug("special ability granted", "unit", u.ID, "ability", sp.Ability)
	}
}

func hasAbility(u *combat.Unit, id string) bool {
	for _, a := range u.Abilities {
		if a == id {
			return true
		}
	}
	return false
}

func partyHas(party []combat.Unit, template, except string) bool {
	for i := range party {
		if party[i].Template == template && party[i].ID != except {
			return true
		}
	}
	return false
}

// Build creates one side's roster. Slots follow entry order; position
// defaults to the slot. specials may be nil.
func Build(entries []config.RosterEntry, side combat.Side, base StatTemplate, specials SpecialAbilities) ([]combat.Unit, error) {
	units := make([]combat.Unit, 0, len(entries))
	for i, e := range entries {
		u := combat.Unit{
			ID:       e.ID,
			Name:     e.Name,
			Template: e.Template,
			Side:     side,
			Slot:     i,
			Position: i,
			Rank:     max(e.Rank, 1),
		}
		if u.ID == "" {
			u.ID = fmt.Sprintf("%s%d", side, i+1)
		}
		if e.Position != nil {
			u.Position = *e.Position
		}
		if err := base.ApplyBaseStats(&u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if specials != nil {
		for i := range units {
			specials.ApplySpecialAbility(&units[i], units)
		}
	}
	return units, nil
}

// BuildBoth builds heroes and monsters from a roster config.
func BuildBoth(rc *config.RosterConfig, t *Templates) (heroes, monsters []combat.Unit, err error) {
	heroes, err = Build(rc.Heroes, combat.SideHero, t, t)
	if err != nil {
		return nil, nil, fmt.Errorf("building heroes: %w", err)
	}
	monsters, err = Build(rc.Monsters, combat.SideMonster, t, t)
	if err != nil {
		return nil, nil, fmt.Errorf("building monsters: %w", err)
	}
	return heroes, monsters, nil
}
