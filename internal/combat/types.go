package combat

import "fmt"

// Event is one entry of the combat log. LogLine events carry "text",
// "category" and optionally "unit" in the payload.
type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Log categories, used by presentation to pick a display colour.
const (
	CategorySystem = "system"
	CategoryAttack = "attack"
	CategoryDamage = "damage"
	CategoryMiss   = "miss"
	CategoryHeal   = "heal"
	CategoryStatus = "status"
	CategoryDeath  = "death"
	CategoryMorale = "morale"
)

type Side int

const (
	SideHero Side = iota
	SideMonster
)

func (s Side) String() string {
	switch s {
	case SideHero:
		return "hero"
	case SideMonster:
		return "monster"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

func (s Side) Opponent() Side {
	if s == SideHero {
		return SideMonster
	}
	return SideHero
}

// UnitID addresses a unit inside a session's arena.
type UnitID int

// UnitChange is the "unit changed" notification handed to presentation.
type UnitChange struct {
	Unit    UnitID `json:"unit"`
	Message string `json:"message"`
}

// ActionOutcome is everything one scheduled action produced, in order.
type ActionOutcome struct {
	Round     int          `json:"round"`
	Actor     UnitID       `json:"actor"`
	Ability   string       `json:"ability,omitempty"`
	Animation string       `json:"animation,omitempty"`
	Targets   []UnitID     `json:"targets,omitempty"`
	Skipped   bool         `json:"skipped,omitempty"`
	Retreated bool         `json:"retreated,omitempty"`
	Events    []Event      `json:"events"`
	Changed   []UnitChange `json:"changed,omitempty"`
	Infected  []UnitID     `json:"infected,omitempty"`
}

func (o *ActionOutcome) logLine(category string, unit string, format string, args ...any) {
	payload := map[string]any{"text": fmt.Sprintf(format, args...), "category": category}
	if unit != "" {
		payload["unit"] = unit
	}
	o.Events = append(o.Events, Event{Round: o.Round, Type: "LogLine", Payload: payload})
}

func (o *ActionOutcome) changed(id UnitID, format string, args ...any) {
	o.Changed = append(o.Changed, UnitChange{Unit: id, Message: fmt.Sprintf(format, args...)})
}

// Outcome is the termination state of a session.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeHeroesWin
	OutcomeMonstersWin
	OutcomeDraw
	OutcomeRetreat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeHeroesWin:
		return "heroes_win"
	case OutcomeMonstersWin:
		return "monsters_win"
	case OutcomeDraw:
		return "draw"
	case OutcomeRetreat:
		return "retreat"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
