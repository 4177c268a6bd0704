package config

// TemplatesConfig feeds the stat-template collaborator that populates units
// before a battle starts.
type TemplatesConfig struct {
	Templates       []StatTemplate  `yaml:"templates"`
	RankMultipliers map[int]float64 `yaml:"rank_multipliers"`
}

type StatTemplate struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	MaxHealth int           `yaml:"max_health"`
	MaxMorale int           `yaml:"max_morale"`
	Attack    int           `yaml:"attack"`
	Defense   int           `yaml:"defense"`
	Evasion   int           `yaml:"evasion"`
	Speed     int           `yaml:"speed"`
	Abilities []string      `yaml:"abilities"`
	Specials  []SpecialRule `yaml:"specials"`
	Note      string        `yaml:"note"`
}

// SpecialRule grants an extra ability when the party contains a unit built
// from WithTemplate (or unconditionally when WithTemplate is empty).
type SpecialRule struct {
	Ability      string `yaml:"ability"`
	WithTemplate string `yaml:"with_template"`
}
