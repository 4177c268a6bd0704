package combat

import "math"

// effectContext is shared by the instructions of one ability execution so a
// later instruction can read what an earlier one did.
type effectContext struct {
	ability    *Ability
	sacrificed int // signed health delta of the latest self-sacrifice
	fizzled    bool
}

func (s *Session) applyEffect(actor UnitID, targets []UnitID, ins EffectInstruction, ctx *effectContext, out *ActionOutcome) {
	switch ins.Kind {
	case EffectStrike:
		s.strike(actor, targets, ins, ctx, out)
	case EffectHeal:
		s.heal(actor, targets, ins, out)
	case EffectInterrupt:
		s.interrupt(actor, targets, ins, out)
	case EffectInstantKill:
		s.instantKill(actor, targets, ins, ctx, out)
	case EffectSelfSacrifice:
		s.selfSacrifice(actor, ins, ctx, out)
	case EffectStat, EffectApplyStatus:
		s.applyModifier(actor, targets, ins, out)
	default:
		s.logger.Warn("unhandled effect kind", "ability", ctx.ability.ID, "kind", int(ins.Kind))
	}
}

// dodged rolls the target's evasion, capped by MaxDodgePercent. No roll is
// consumed when the attack is undodgeable or evasion is zero.
func (s *Session) dodged(target UnitID, ins EffectInstruction) bool {
	if ins.Undodgeable {
		return false
	}
	ev := clamp(s.effective(target, StatEvasion), 0, s.cfg.MaxDodgePercent)
	if ev <= 0 {
		return false
	}
	return s.rng.Float64()*100 < float64(ev)
}

func (s *Session) strike(actor UnitID, targets []UnitID, ins EffectInstruction, ctx *effectContext, out *ActionOutcome) {
	a := &s.units[actor]
	atk := s.effective(actor, StatAttack)
	// An actor already dead from its own sacrifice still lands this action;
	// only a death during this strike stops it.
	wasAlive := a.Alive()
	for _, tid := range targets {
		if wasAlive && !a.Alive() {
			return
		}
		t := &s.units[tid]
		if !t.Active() {
			continue
		}
		if s.dodged(tid, ins) {
			out.logLine(CategoryMiss, t.ID, "%s dodges %s", t.DisplayName(), a.DisplayName())
			out.changed(tid, "dodged")
			continue
		}
		raw := int(math.Round(float64(atk) * ins.Params.Multiplier))
		if ins.Params.CostScaling > 0 && ctx.sacrificed != 0 {
			raw += int(math.Round(ins.Params.CostScaling * math.Abs(float64(ctx.sacrificed))))
		}
		dmg := ins.Check.Mitigate(raw, s.effective(tid, StatDefense))
		if shield := s.modifierValue(tid, StatusShield); shield > 0 {
			dmg = max(dmg-shield, 0)
		}
		dealt := -t.AddHealth(-dmg)
		s.damageByUnit[a.ID] += dealt
		s.damageByAbility[ctx.ability.ID] += dealt
		out.logLine(CategoryDamage, t.ID, "%s hits %s for %d (HP %d/%d)", a.DisplayName(), t.DisplayName(), dealt, t.Health, t.MaxHealth)
		out.changed(tid, "-%d health", dealt)
		if ins.Params.MoraleDamage > 0 && t.Alive() {
			drained := -t.AddMorale(-ins.Params.MoraleDamage)
			out.logLine(CategoryMorale, t.ID, "%s loses %d morale (%d/%d)", t.DisplayName(), drained, t.Morale, t.MaxMorale)
		}
		if !t.Alive() {
			out.logLine(CategoryDeath, t.ID, "%s falls", t.DisplayName())
			continue
		}
		if ctx.ability.Target.MeleeOnly {
			s.afterMeleeHit(actor, tid, out)
		}
	}
}

// afterMeleeHit handles thorns on the target and the bog-rot roll.
func (s *Session) afterMeleeHit(actor, target UnitID, out *ActionOutcome) {
	a, t := &s.units[actor], &s.units[target]
	if thorns := s.modifierValue(target, StatusThorns); thorns > 0 && a.Alive() {
		taken := -a.AddHealth(-thorns)
		out.logLine(CategoryDamage, a.ID, "%s is pricked by thorns for %d (HP %d/%d)", a.DisplayName(), taken, a.Health, a.MaxHealth)
		out.changed(actor, "-%d health", taken)
		if !a.Alive() {
			out.logLine(CategoryDeath, a.ID, "%s falls", a.DisplayName())
		}
	}
	res := s.infection.TryInfect(a.Side, t)
	if !res.Hit {
		return
	}
	if res.Newly {
		out.Infected = append(out.Infected, target)
		out.logLine(CategoryStatus, t.ID, "%s is infected with bog-rot and loses %d morale", t.DisplayName(), res.Drained)
	} else {
		out.logLine(CategoryStatus, t.ID, "the rot festers in %s, -%d morale", t.DisplayName(), res.Drained)
	}
	out.changed(target, "infected")
}

func (s *Session) heal(actor UnitID, targets []UnitID, ins EffectInstruction, out *ActionOutcome) {
	a := &s.units[actor]
	for _, tid := range targets {
		t := &s.units[tid]
		if !t.Alive() {
			continue
		}
		amount := int(math.Round(float64(s.effective(actor, StatAttack)) * ins.Params.Multiplier))
		if ins.Params.AmountPercent > 0 {
			amount = t.MaxHealth * ins.Params.AmountPercent / 100
		}
		got := t.AddHealth(max(amount, 0))
		out.logLine(CategoryHeal, t.ID, "%s heals %s for %d (HP %d/%d)", a.DisplayName(), t.DisplayName(), got, t.Health, t.MaxHealth)
		out.changed(tid, "+%d health", got)
	}
}

func (s *Session) interrupt(actor UnitID, targets []UnitID, ins EffectInstruction, out *ActionOutcome) {
	a := &s.units[actor]
	for _, tid := range targets {
		t := &s.units[tid]
		if !t.Active() {
			continue
		}
		if s.dodged(tid, ins) {
			out.logLine(CategoryMiss, t.ID, "%s avoids %s's interrupt", t.DisplayName(), a.DisplayName())
			out.changed(tid, "dodged")
			continue
		}
		st := s.stateFor(tid)
		if st == nil {
			continue
		}
		st.SkipNext = true
		out.logLine(CategoryStatus, t.ID, "%s is interrupted", t.DisplayName())
		out.changed(tid, "interrupted")
	}
}

// instantKill ignores defense and evasion. A zero threshold always applies.
func (s *Session) instantKill(actor UnitID, targets []UnitID, ins EffectInstruction, ctx *effectContext, out *ActionOutcome) {
	a := &s.units[actor]
	th := ins.Params.ThresholdPercent
	for _, tid := range targets {
		t := &s.units[tid]
		if !t.Active() {
			continue
		}
		if th > 0 && t.Health*100 >= th*t.MaxHealth {
			out.logLine(CategorySystem, t.ID, "%s is too healthy to be executed", t.DisplayName())
			continue
		}
		dealt := -t.AddHealth(-t.Health)
		s.damageByUnit[a.ID] += dealt
		s.damageByAbility[ctx.ability.ID] += dealt
		out.logLine(CategoryDeath, t.ID, "%s executes %s", a.DisplayName(), t.DisplayName())
		out.changed(tid, "executed")
	}
}

// selfSacrifice pays a share of max health. It fizzles, and stops the rest of
// the ability, when the actor is at or below the threshold.
func (s *Session) selfSacrifice(actor UnitID, ins EffectInstruction, ctx *effectContext, out *ActionOutcome) {
	a := &s.units[actor]
	if a.HealthPercent() <= float64(ins.Params.ThresholdPercent) {
		ctx.fizzled = true
		out.logLine(CategorySystem, a.ID, "%s is too weak to pay the price", a.DisplayName())
		return
	}
	cost := max(a.MaxHealth*ins.Params.AmountPercent/100, 1)
	floor := 1
	if ins.Params.AllowSelfKill {
		floor = 0
	}
	next := max(a.Health-cost, floor)
	delta := a.AddHealth(next - a.Health)
	ctx.sacrificed = delta
	out.logLine(CategoryDamage, a.ID, "%s sacrifices %d health (HP %d/%d)", a.DisplayName(), -delta, a.Health, a.MaxHealth)
	out.changed(actor, "%d health", delta)
	if !a.Alive() {
		out.logLine(CategoryDeath, a.ID, "%s falls", a.DisplayName())
	}
}

func (s *Session) applyModifier(actor UnitID, targets []UnitID, ins EffectInstruction, out *ActionOutcome) {
	tag := ins.Params.Tag
	if tag == "" {
		s.logger.Warn("stat effect without tag skipped", "actor", s.units[actor].ID)
		return
	}
	for _, tid := range targets {
		t := &s.units[tid]
		if !t.Active() {
			continue
		}
		st := s.stateFor(tid)
		if st == nil {
			continue
		}
		st.ApplyModifier(tag, ins.Params.Value, ins.Params.Duration)
		out.logLine(CategoryStatus, t.ID, "%s gains %s %+d for %d turns", t.DisplayName(), tag, ins.Params.Value, ins.Params.Duration)
		out.changed(tid, "%s %+d", tag, ins.Params.Value)
	}
}
