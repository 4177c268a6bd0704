package combat

type TargetGroup int

const (
	GroupEnemy TargetGroup = iota
	GroupAlly
	GroupSelf
)

type SelectionType int

const (
	SelectSingle SelectionType = iota
	SelectSingleConditional
	SelectAll
)

type Criteria int

const (
	CriteriaDefault Criteria = iota
	CriteriaLowestHealth
	CriteriaHighestHealth
	CriteriaLowestMorale
	CriteriaHighestMorale
	CriteriaLowestAttack
	CriteriaHighestAttack
	CriteriaRandom
	CriteriaAllAllies
)

type TargetingRule struct {
	Selection         SelectionType
	Group             TargetGroup
	MeleeOnly         bool
	Criteria          Criteria
	MustBeInfected    bool
	MustNotBeInfected bool
}

// Normalize repairs contradictory settings and returns a warning per repair.
func (r *TargetingRule) Normalize() []string {
	var warns []string
	if r.Criteria == CriteriaAllAllies && (r.Group != GroupAlly || r.Selection != SelectAll) {
		warns = append(warns, "all_allies criteria forces group=ally, type=all")
		r.Group = GroupAlly
		r.Selection = SelectAll
	}
	if r.MustBeInfected && r.MustNotBeInfected {
		warns = append(warns, "must_be_infected and must_not_be_infected both set, disabling both")
		r.MustBeInfected = false
		r.MustNotBeInfected = false
	}
	return warns
}

type EffectKind int

const (
	EffectStrike EffectKind = iota
	EffectHeal
	EffectInterrupt
	EffectSelfSacrifice
	EffectInstantKill
	EffectStat
	EffectApplyStatus
)

func (k EffectKind) String() string {
	switch k {
	case EffectStrike:
		return "strike"
	case EffectHeal:
		return "heal"
	case EffectInterrupt:
		return "interrupt"
	case EffectSelfSacrifice:
		return "self_sacrifice"
	case EffectInstantKill:
		return "instant_kill"
	case EffectStat:
		return "stat_effect"
	case EffectApplyStatus:
		return "apply_status"
	}
	return "unknown"
}

type DefenseCheck int

const (
	CheckStandard DefenseCheck = iota
	CheckIgnore
	CheckPartial
	CheckNone
)

// Mitigate applies the defense policy to raw damage.
func (c DefenseCheck) Mitigate(raw, defense int) int {
	var dmg int
	switch c {
	case CheckStandard:
		dmg = raw - defense
	case CheckPartial:
		dmg = raw - defense/2
	default:
		dmg = raw
	}
	if dmg < 0 {
		return 0
	}
	return dmg
}

// EffectParams is the union of per-kind parameters; each kind reads its own subset.
type EffectParams struct {
	Multiplier       float64 // strike, heal
	ThresholdPercent int     // instant kill gate, self-sacrifice minimum health
	Duration         int     // stat / status
	AmountPercent    int     // heal, self-sacrifice cost
	AllowSelfKill    bool    // self-sacrifice
	Tag              string  // stat / status
	Value            int     // stat / status
	MoraleDamage     int     // strike
	CostScaling      float64 // strike: bonus per point of the preceding sacrifice
}

type EffectInstruction struct {
	Kind        EffectKind
	Params      EffectParams
	Check       DefenseCheck
	Undodgeable bool
}

type Comparison int

const (
	CompareLT Comparison = iota
	CompareLE
	CompareGT
	CompareGE
	CompareEQ
)

func (c Comparison) Holds(v, threshold float64) bool {
	switch c {
	case CompareLT:
		return v < threshold
	case CompareLE:
		return v <= threshold
	case CompareGT:
		return v > threshold
	case CompareGE:
		return v >= threshold
	case CompareEQ:
		return v == threshold
	}
	return false
}

// Precondition compares a named stat of self, any ally or any enemy against a
// threshold. Percent compares against the stat's maximum (health, morale).
type Precondition struct {
	Subject   TargetGroup
	Stat      string
	Op        Comparison
	Threshold int
	Percent   bool
}

// Ability is immutable configuration; its only mutable counterpart is the
// cooldown held in AttackState.
type Ability struct {
	ID            string
	Name          string
	Priority      int
	Cooldown      int
	CooldownType  CooldownType
	MinRank       int
	Animation     string
	Message       string
	Preconditions []Precondition
	Target        TargetingRule
	Effects       []EffectInstruction
}

const BasicAttackID = "basic_attack"

// BasicAttack is the fallback used when no ability is eligible.
func BasicAttack() Ability {
	return Ability{
		ID:        BasicAttackID,
		Name:      "Attack",
		Animation: "attack",
		Message:   "{actor} attacks",
		Target:    TargetingRule{Selection: SelectSingle, Group: GroupEnemy},
		Effects: []EffectInstruction{
			{Kind: EffectStrike, Params: EffectParams{Multiplier: 1}, Check: CheckStandard},
		},
	}
}
