package combat

import "encoding/json"

type SimResult struct {
	SessionID       string         `json:"session_id"`
	Outcome         Outcome        `json:"outcome"`
	Rounds          int            `json:"rounds"`
	Actions         int            `json:"actions"`
	Infections      int            `json:"infections"`
	Retreats        int            `json:"retreats"`
	Deaths          int            `json:"deaths"`
	DamageByUnit    map[string]int `json:"damage_by_unit,omitempty"`
	DamageByAbility map[string]int `json:"damage_by_ability,omitempty"`
	CombatSpeed     float64        `json:"combat_speed"`
	Units           []DisplayStats `json:"units"`
	Events          []Event        `json:"events,omitempty"`
}

// Result summarises the session. Events are included only when record is set.
func (s *Session) Result(record bool) SimResult {
	res := SimResult{
		SessionID:       s.ID.String(),
		Outcome:         s.outcome,
		Rounds:          s.round,
		Actions:         s.actions,
		Infections:      s.infections,
		DamageByUnit:    map[string]int{},
		DamageByAbility: map[string]int{},
		CombatSpeed:     s.cfg.CombatSpeed,
	}
	for k, v := range s.damageByUnit {
		res.DamageByUnit[k] = v
	}
	for k, v := range s.damageByAbility {
		res.DamageByAbility[k] = v
	}
	for i := range s.units {
		u := &s.units[i]
		if u.Retreated {
			res.Retreats++
		}
		if !u.Alive() {
			res.Deaths++
		}
		res.Units = append(res.Units, s.Snapshot(UnitID(i)))
	}
	if record {
		res.Events = s.Log()
	}
	return res
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
