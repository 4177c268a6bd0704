package combat

import (
	"log/slog"
	"strings"

	"partybattle/internal/config"
)

var (
	selectionByName = map[string]SelectionType{
		"":                   SelectSingle,
		"single":             SelectSingle,
		"single_conditional": SelectSingleConditional,
		"all":                SelectAll,
	}
	groupByName = map[string]TargetGroup{
		"":      GroupEnemy,
		"enemy": GroupEnemy,
		"ally":  GroupAlly,
		"self":  GroupSelf,
	}
	criteriaByName = map[string]Criteria{
		"":               CriteriaDefault,
		"default":        CriteriaDefault,
		"lowest_health":  CriteriaLowestHealth,
		"highest_health": CriteriaHighestHealth,
		"lowest_morale":  CriteriaLowestMorale,
		"highest_morale": CriteriaHighestMorale,
		"lowest_attack":  CriteriaLowestAttack,
		"highest_attack": CriteriaHighestAttack,
		"random":         CriteriaRandom,
		"all_allies":     CriteriaAllAllies,
	}
	effectByName = map[string]EffectKind{
		"strike":         EffectStrike,
		"heal":           EffectHeal,
		"interrupt":      EffectInterrupt,
		"self_sacrifice": EffectSelfSacrifice,
		"instant_kill":   EffectInstantKill,
		"stat_effect":    EffectStat,
		"apply_status":   EffectApplyStatus,
	}
	checkByName = map[string]DefenseCheck{
		"":         CheckStandard,
		"standard": CheckStandard,
		"ignore":   CheckIgnore,
		"partial":  CheckPartial,
		"none":     CheckNone,
	}
	cooldownByName = map[string]CooldownType{
		"":       CooldownNone,
		"none":   CooldownNone,
		"action": CooldownAction,
		"round":  CooldownRound,
	}
	comparisonByName = map[string]Comparison{
		"lt": CompareLT,
		"le": CompareLE,
		"gt": CompareGT,
		"ge": CompareGE,
		"eq": CompareEQ,
	}
)

// AbilityBook holds validated ability definitions by ID.
type AbilityBook struct {
	byID   map[string]Ability
	logger *slog.Logger
}

// NewAbilityBook converts and validates configuration. Defects are corrected
// and logged, never returned.
func NewAbilityBook(cfg *config.AbilitiesConfig, logger *slog.Logger) *AbilityBook {
	if logger == nil {
		logger = slog.Default()
	}
	ab := &AbilityBook{byID: map[string]Ability{}, logger: logger}
	ab.byID[BasicAttackID] = BasicAttack()
	if cfg == nil {
		return ab
	}
	for _, def := range cfg.Abilities {
		if def.ID == "" {
			logger.Warn("ability without id skipped", "name", def.Name)
			continue
		}
		ab.Add(ab.convert(def))
	}
	return ab
}

// Add registers a programmatic ability, normalizing its targeting rule.
func (ab *AbilityBook) Add(a Ability) {
	for _, w := range a.Target.Normalize() {
		ab.logger.Warn("ability targeting corrected", "ability", a.ID, "fix", w)
	}
	if a.Cooldown < 0 {
		a.Cooldown = 0
	}
	ab.byID[a.ID] = a
}

func (ab *AbilityBook) Get(id string) (Ability, bool) {
	a, ok := ab.byID[id]
	return a, ok
}

// Instantiate resolves ability IDs in declaration order, dropping unknown IDs.
func (ab *AbilityBook) Instantiate(unitID string, ids []string) []Ability {
	out := make([]Ability, 0, len(ids))
	for _, id := range ids {
		a, ok := ab.byID[id]
		if !ok {
			ab.logger.Warn("unknown ability on unit", "unit", unitID, "ability", id)
			continue
		}
		out = append(out, a)
	}
	return out
}

func (ab *AbilityBook) convert(def config.Ability) Ability {
	a := Ability{
		ID:           def.ID,
		Name:         def.Name,
		Priority:     def.Priority,
		Cooldown:     def.Cooldown,
		CooldownType: lookup(ab, def.ID, "cooldown_type", def.CooldownType, cooldownByName, CooldownNone),
		MinRank:      def.MinRank,
		Animation:    def.Animation,
		Message:      def.Message,
		Target: TargetingRule{
			Selection:         lookup(ab, def.ID, "target.type", def.Target.Type, selectionByName, SelectSingle),
			Group:             lookup(ab, def.ID, "target.group", def.Target.Group, groupByName, GroupEnemy),
			MeleeOnly:         def.Target.MeleeOnly,
			Criteria:          lookup(ab, def.ID, "target.criteria", def.Target.Criteria, criteriaByName, CriteriaDefault),
			MustBeInfected:    def.Target.MustBeInfected,
			MustNotBeInfected: def.Target.MustNotBeInfected,
		},
	}
	if a.Name == "" {
		a.Name = def.ID
	}
	for _, c := range def.Conditions {
		subject := c.Subject
		if subject == "" {
			subject = "self"
		}
		a.Preconditions = append(a.Preconditions, Precondition{
			Subject:   lookup(ab, def.ID, "condition.subject", subject, groupByName, GroupSelf),
			Stat:      strings.ToLower(c.Stat),
			Op:        lookup(ab, def.ID, "condition.op", c.Op, comparisonByName, CompareGE),
			Threshold: c.Value,
			Percent:   c.Percent,
		})
	}
	for _, e := range def.Effects {
		kind, ok := effectByName[strings.ToLower(e.Kind)]
		if !ok {
			ab.logger.Warn("unknown effect kind skipped", "ability", def.ID, "kind", e.Kind)
			continue
		}
		ins := EffectInstruction{
			Kind: kind,
			Params: EffectParams{
				Multiplier:       e.Multiplier,
				ThresholdPercent: e.Threshold,
				Duration:         e.Duration,
				AmountPercent:    e.AmountPercent,
				AllowSelfKill:    e.AllowSelfKill,
				Tag:              strings.ToLower(e.Tag),
				Value:            e.Value,
				MoraleDamage:     e.MoraleDamage,
				CostScaling:      e.CostScaling,
			},
			Check:       lookup(ab, def.ID, "effect.check", e.Check, checkByName, CheckStandard),
			Undodgeable: e.Undodgeable,
		}
		if kind == EffectStrike && ins.Params.Multiplier == 0 {
			ins.Params.Multiplier = 1
		}
		a.Effects = append(a.Effects, ins)
	}
	return a
}

func lookup[T any](ab *AbilityBook, abilityID, field, name string, table map[string]T, fallback T) T {
	if v, ok := table[strings.ToLower(name)]; ok {
		return v
	}
	ab.logger.Warn("unknown ability field value, using default", "ability", abilityID, "field", field, "value", name)
	return fallback
}
