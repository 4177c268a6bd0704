package combat

import (
	"partybattle/internal/config"
	"partybattle/internal/util"
)

// InfectionResolver rolls bog-rot on successful melee hits. Chance is keyed
// by the attacker's side.
type InfectionResolver struct {
	Chance      map[Side]float64
	MoraleDrain int
	Rng         util.Rand
}

func NewInfectionResolver(cfg config.InfectionConfig, rng util.Rand) *InfectionResolver {
	ir := &InfectionResolver{
		Chance:      map[Side]float64{},
		MoraleDrain: cfg.MoraleDrain,
		Rng:         rng,
	}
	for name, p := range cfg.Chance {
		switch name {
		case "hero":
			ir.Chance[SideHero] = p
		case "monster":
			ir.Chance[SideMonster] = p
		}
	}
	return ir
}

// InfectionResult describes one roll.
type InfectionResult struct {
	Hit     bool // roll succeeded
	Newly   bool // target transitioned into the infected state
	Drained int  // morale actually removed
}

// TryInfect rolls for a melee hit landed by attackerSide on target. A repeat
// infection drains morale again; only the first reports Newly.
func (ir *InfectionResolver) TryInfect(attackerSide Side, target *Unit) InfectionResult {
	var res InfectionResult
	p := ir.Chance[attackerSide]
	if p <= 0 || !target.Alive() || ir.Rng == nil {
		return res
	}
	if ir.Rng.Float64() >= p {
		return res
	}
	res.Hit = true
	res.Newly = !target.Infected
	target.Infected = true
	res.Drained = -target.AddMorale(-ir.MoraleDrain)
	return res
}
