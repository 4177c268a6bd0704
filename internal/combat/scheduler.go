package combat

import (
	"sort"

	"partybattle/internal/config"
)

type SpeedTier int

const (
	TierTwoAttacks SpeedTier = iota
	TierThreePerTwo
	TierOneAttack
	TierOnePerTwo
)

func (t SpeedTier) String() string {
	switch t {
	case TierTwoAttacks:
		return "two_attacks"
	case TierThreePerTwo:
		return "three_per_two"
	case TierOneAttack:
		return "one_attack"
	}
	return "one_per_two"
}

// TierFor maps a speed value onto a tier. Lower speed is faster; anything
// slower than the one_attack bound lands in the one_per_two band.
func TierFor(speed int, tiers config.SpeedTiers) SpeedTier {
	switch {
	case speed <= tiers.TwoAttacks:
		return TierTwoAttacks
	case speed <= tiers.ThreePerTwo:
		return TierThreePerTwo
	case speed <= tiers.OneAttack:
		return TierOneAttack
	}
	return TierOnePerTwo
}

// ActionsInRound returns how many actions a tier gets in a 1-based round.
// Three-per-two alternates 2 on odd rounds and 1 on even rounds; one-per-two
// acts on even rounds only.
func ActionsInRound(tier SpeedTier, round int) int {
	switch tier {
	case TierTwoAttacks:
		return 2
	case TierThreePerTwo:
		if round%2 == 1 {
			return 2
		}
		return 1
	case TierOneAttack:
		return 1
	}
	if round%2 == 0 {
		return 1
	}
	return 0
}

type turnSlot struct {
	Unit  UnitID
	Index int // 0-based action index within the round for this unit
}

// buildOrder lists the round's actions: speed ascending, then slot, heroes
// before monsters on a full tie. A unit's actions are consecutive.
func buildOrder(units []Unit, speed func(UnitID) int, tiers config.SpeedTiers, round int) []turnSlot {
	ids := make([]UnitID, 0, len(units))
	for i := range units {
		if units[i].Active() {
			ids = append(ids, UnitID(i))
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := &units[ids[i]], &units[ids[j]]
		sa, sb := speed(ids[i]), speed(ids[j])
		if sa != sb {
			return sa < sb
		}
		if a.Slot != b.Slot {
			return a.Slot < b.Slot
		}
		return a.Side < b.Side
	})
	var order []turnSlot
	for _, id := range ids {
		n := ActionsInRound(TierFor(speed(id), tiers), round)
		for k := 0; k < n; k++ {
			order = append(order, turnSlot{Unit: id, Index: k})
		}
	}
	return order
}
