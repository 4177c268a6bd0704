package config

type RosterConfig struct {
	Heroes   []RosterEntry `yaml:"heroes"`
	Monsters []RosterEntry `yaml:"monsters"`
}

type RosterEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Rank     int    `yaml:"rank"`
	Position *int   `yaml:"position"` // defaults to the slot index
}
