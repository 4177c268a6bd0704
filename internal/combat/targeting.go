package combat

import (
	"sort"

	"partybattle/internal/util"
)

// Targeter turns a targeting rule into concrete targets. It never mutates units.
type Targeter struct {
	MeleeRange int
	Rng        util.Rand
}

// Resolve returns the targets of rule for actor, addressed into units.
// An empty result means the ability has no effect this action.
func (t Targeter) Resolve(rule TargetingRule, actor UnitID, units []Unit) []UnitID {
	if int(actor) < 0 || int(actor) >= len(units) {
		return nil
	}
	self := &units[actor]

	var pool []UnitID
	switch rule.Group {
	case GroupSelf:
		if self.Active() {
			pool = []UnitID{actor}
		}
	case GroupAlly:
		pool = activeOf(units, self.Side)
	default:
		pool = activeOf(units, self.Side.Opponent())
	}

	filtered := make([]UnitID, 0, len(pool))
	for _, id := range pool {
		u := &units[id]
		if rule.MeleeOnly && rule.Group != GroupSelf && u.Position >= t.MeleeRange {
			continue
		}
		if rule.MustBeInfected && !u.Infected {
			continue
		}
		if rule.MustNotBeInfected && u.Infected {
			continue
		}
		filtered = append(filtered, id)
	}
	if len(filtered) == 0 {
		return nil
	}

	bySlot(units, filtered)
	if rule.Selection == SelectAll || rule.Criteria == CriteriaAllAllies {
		return filtered
	}

	switch rule.Criteria {
	case CriteriaRandom:
		if t.Rng == nil {
			return filtered[:1]
		}
		return []UnitID{filtered[t.Rng.Intn(len(filtered))]}
	case CriteriaLowestHealth:
		return pickBy(units, filtered, func(u *Unit) int { return u.Health }, false)
	case CriteriaHighestHealth:
		return pickBy(units, filtered, func(u *Unit) int { return u.Health }, true)
	case CriteriaLowestMorale:
		return pickBy(units, filtered, func(u *Unit) int { return u.Morale }, false)
	case CriteriaHighestMorale:
		return pickBy(units, filtered, func(u *Unit) int { return u.Morale }, true)
	case CriteriaLowestAttack:
		return pickBy(units, filtered, func(u *Unit) int { return u.Attack }, false)
	case CriteriaHighestAttack:
		return pickBy(units, filtered, func(u *Unit) int { return u.Attack }, true)
	}
	return filtered[:1]
}

func activeOf(units []Unit, side Side) []UnitID {
	var out []UnitID
	for i := range units {
		if units[i].Side == side && units[i].Active() {
			out = append(out, UnitID(i))
		}
	}
	return out
}

func bySlot(units []Unit, ids []UnitID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return units[ids[i]].Slot < units[ids[j]].Slot
	})
}

// pickBy expects ids already in slot order, so the first extreme wins ties.
func pickBy(units []Unit, ids []UnitID, stat func(*Unit) int, highest bool) []UnitID {
	best := ids[0]
	for _, id := range ids[1:] {
		v, b := stat(&units[id]), stat(&units[best])
		if (highest && v > b) || (!highest && v < b) {
			best = id
		}
	}
	return []UnitID{best}
}
