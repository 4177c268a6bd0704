package combat

import "fmt"

// Unit is the per-combatant record. It is owned by the progression layer;
// a session copies units in and hands the final state back via Session.Units.
type Unit struct {
	ID       string
	Name     string
	Template string
	Side     Side
	Slot     int // party slot, 0-based
	Position int // rank on the battlefield; melee reaches positions below MeleeRange
	Rank     int

	Health    int
	MaxHealth int
	Morale    int
	MaxMorale int
	Attack    int
	Defense   int
	Evasion   int
	Speed     int // lower is faster

	Infected  bool
	Retreated bool

	Abilities []string
}

func (u *Unit) Alive() bool { return u.Health > 0 }

// Active reports whether the unit can still act or be targeted.
func (u *Unit) Active() bool { return u.Health > 0 && !u.Retreated }

func (u *Unit) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// Validate rejects non-positive maxima and clamps current values.
func (u *Unit) Validate() error {
	if u.MaxHealth <= 0 {
		return fmt.Errorf("unit %s: max health %d must be positive", u.ID, u.MaxHealth)
	}
	if u.MaxMorale <= 0 {
		return fmt.Errorf("unit %s: max morale %d must be positive", u.ID, u.MaxMorale)
	}
	u.Health = clamp(u.Health, 0, u.MaxHealth)
	u.Morale = clamp(u.Morale, 0, u.MaxMorale)
	return nil
}

// AddHealth applies delta clamped to [0, MaxHealth] and returns the delta actually applied.
func (u *Unit) AddHealth(delta int) int {
	old := u.Health
	u.Health = clamp(old+delta, 0, u.MaxHealth)
	return u.Health - old
}

// AddMorale applies delta clamped to [0, MaxMorale] and returns the delta actually applied.
func (u *Unit) AddMorale(delta int) int {
	old := u.Morale
	u.Morale = clamp(old+delta, 0, u.MaxMorale)
	return u.Morale - old
}

func (u *Unit) HealthPercent() float64 {
	if u.MaxHealth <= 0 {
		return 0
	}
	return float64(u.Health) * 100 / float64(u.MaxHealth)
}

// DisplayStats is the read-only projection handed to presentation.
type DisplayStats struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Side      string   `json:"side"`
	Slot      int      `json:"slot"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"max_health"`
	Morale    int      `json:"morale"`
	MaxMorale int      `json:"max_morale"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	Evasion   int      `json:"evasion"`
	Speed     int      `json:"speed"`
	Infected  bool     `json:"infected"`
	Dead      bool     `json:"dead"`
	Retreated bool     `json:"retreated"`
	Modifiers []string `json:"modifiers,omitempty"`
}

func (u *Unit) Display() DisplayStats {
	return DisplayStats{
		ID:        u.ID,
		Name:      u.DisplayName(),
		Side:      u.Side.String(),
		Slot:      u.Slot,
		Health:    u.Health,
		MaxHealth: u.MaxHealth,
		Morale:    u.Morale,
		MaxMorale: u.MaxMorale,
		Attack:    u.Attack,
		Defense:   u.Defense,
		Evasion:   u.Evasion,
		Speed:     u.Speed,
		Infected:  u.Infected,
		Dead:      !u.Alive(),
		Retreated: u.Retreated,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
