package config

type AbilitiesConfig struct {
	Abilities []Ability `yaml:"abilities"`
}

type Ability struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Priority     int         `yaml:"priority"`
	Cooldown     int         `yaml:"cooldown"`
	CooldownType string      `yaml:"cooldown_type"` // none | action | round
	MinRank      int         `yaml:"min_rank"`
	Animation    string      `yaml:"animation"`
	Message      string      `yaml:"message"`
	Conditions   []Condition `yaml:"conditions"`
	Target       Targeting   `yaml:"target"`
	Effects      []Effect    `yaml:"effects"`
	Note         string      `yaml:"note"`
}

type Condition struct {
	Subject string `yaml:"subject"` // self | ally | enemy
	Stat    string `yaml:"stat"`
	Op      string `yaml:"op"` // lt | le | gt | ge | eq
	Value   int    `yaml:"value"`
	Percent bool   `yaml:"percent"`
}

type Targeting struct {
	Type              string `yaml:"type"`  // single | single_conditional | all
	Group             string `yaml:"group"` // self | ally | enemy
	MeleeOnly         bool   `yaml:"melee_only"`
	Criteria          string `yaml:"criteria"`
	MustBeInfected    bool   `yaml:"must_be_infected"`
	MustNotBeInfected bool   `yaml:"must_not_be_infected"`
}

type Effect struct {
	Kind          string  `yaml:"kind"`
	Multiplier    float64 `yaml:"multiplier"`
	Threshold     int     `yaml:"threshold"`
	Duration      int     `yaml:"duration"`
	AmountPercent int     `yaml:"amount_percent"`
	AllowSelfKill bool    `yaml:"allow_self_kill"`
	Check         string  `yaml:"check"` // standard | ignore | partial | none
	Undodgeable   bool    `yaml:"undodgeable"`
	Tag           string  `yaml:"tag"`
	Value         int     `yaml:"value"`
	MoraleDamage  int     `yaml:"morale_damage"`
	CostScaling   float64 `yaml:"cost_scaling"`
}
