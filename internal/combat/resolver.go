package combat

import "strings"

// selectAbility picks the highest-priority eligible ability, first-declared on
// ties, falling back to the basic attack.
func (s *Session) selectAbility(id UnitID) Ability {
	list := s.abilities[id]
	best := -1
	for i := range list {
		if !s.eligible(id, &list[i]) {
			continue
		}
		if best < 0 || list[i].Priority > list[best].Priority {
			best = i
		}
	}
	if best < 0 {
		return BasicAttack()
	}
	return list[best]
}

func (s *Session) eligible(id UnitID, a *Ability) bool {
	u := &s.units[id]
	if u.Rank < a.MinRank {
		return false
	}
	if st, ok := s.states[id]; ok && st.Cooldown(a.ID) > 0 {
		return false
	}
	for _, p := range a.Preconditions {
		if !s.conditionHolds(id, p) {
			return false
		}
	}
	return true
}

// conditionHolds is true when any unit of the subject group satisfies p.
// "ally" means a living teammate other than the actor.
func (s *Session) conditionHolds(actor UnitID, p Precondition) bool {
	self := &s.units[actor]
	var subjects []UnitID
	switch p.Subject {
	case GroupSelf:
		subjects = []UnitID{actor}
	case GroupAlly:
		for _, id := range activeOf(s.units, self.Side) {
			if id != actor {
				subjects = append(subjects, id)
			}
		}
	default:
		subjects = activeOf(s.units, self.Side.Opponent())
	}
	for _, id := range subjects {
		v, ok := s.statValue(id, p.Stat, p.Percent)
		if ok && p.Op.Holds(v, float64(p.Threshold)) {
			return true
		}
	}
	return false
}

// statValue reads a stat, as a percentage of its maximum when percent is set.
// Stats without a separate maximum use their base value as the maximum.
func (s *Session) statValue(id UnitID, stat string, percent bool) (float64, bool) {
	u := &s.units[id]
	var cur, maxV int
	switch stat {
	case StatHealth:
		cur, maxV = u.Health, u.MaxHealth
	case StatMorale:
		cur, maxV = u.Morale, u.MaxMorale
	case StatAttack:
		cur, maxV = s.effective(id, stat), u.Attack
	case StatDefense:
		cur, maxV = s.effective(id, stat), u.Defense
	case StatEvasion:
		cur, maxV = s.effective(id, stat), u.Evasion
	case StatSpeed:
		cur, maxV = s.effective(id, stat), u.Speed
	default:
		return 0, false
	}
	if !percent {
		return float64(cur), true
	}
	if maxV <= 0 {
		return 0, false
	}
	return float64(cur) * 100 / float64(maxV), true
}

// execute resolves targets once, then runs every effect instruction in order
// against them, sharing one effect context.
func (s *Session) execute(id UnitID, a Ability, out *ActionOutcome) {
	u := &s.units[id]
	out.Ability = a.ID
	out.Animation = a.Animation
	out.logLine(CategoryAttack, u.ID, "%s", renderMessage(a, u))

	targets := s.targeter.Resolve(a.Target, id, s.units)
	out.Targets = targets
	if len(targets) == 0 {
		out.logLine(CategorySystem, u.ID, "%s finds no target for %s", u.DisplayName(), a.Name)
		return
	}
	ctx := &effectContext{ability: &a}
	for _, ins := range a.Effects {
		s.applyEffect(id, targets, ins, ctx, out)
		if ctx.fizzled {
			break
		}
	}
}

func renderMessage(a Ability, u *Unit) string {
	if a.Message == "" {
		return u.DisplayName() + " uses " + a.Name
	}
	return strings.ReplaceAll(a.Message, "{actor}", u.DisplayName())
}
