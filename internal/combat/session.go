package combat

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"partybattle/internal/config"
	"partybattle/internal/util"
)

// Options carries the collaborators a session talks to.
type Options struct {
	Rng    util.Rand
	Logger *slog.Logger
	// OnInfected is called once per unit that becomes infected, after the
	// action that infected it has completed.
	OnInfected func(u Unit)
}

// Session owns one battle: the unit arena, attack-state, the round counter
// and the combat log. It is single-threaded; callers drive it with Step or Run.
type Session struct {
	ID uuid.UUID

	cfg       config.BattleConfig
	units     []Unit
	abilities map[UnitID][]Ability
	states    map[UnitID]*AttackState

	round   int
	order   []turnSlot
	cursor  int
	actions int
	outcome Outcome
	log     []Event

	rng        util.Rand
	targeter   Targeter
	infection  *InfectionResolver
	logger     *slog.Logger
	onInfected func(u Unit)

	damageByUnit    map[string]int
	damageByAbility map[string]int
	infections      int
}

var ErrEmptySide = errors.New("combat: roster side is empty")

// NewSession copies both rosters into a fresh arena. Heroes occupy the first
// handles, monsters follow.
func NewSession(cfg config.BattleConfig, book *AbilityBook, heroes, monsters []Unit, opts Options) (*Session, error) {
	if len(heroes) == 0 || len(monsters) == 0 {
		return nil, ErrEmptySide
	}
	if book == nil {
		book = NewAbilityBook(nil, opts.Logger)
	}
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id.String())
	rng := opts.Rng
	if rng == nil {
		rng = util.New(1)
	}
	if cfg.Infection.Chance != nil {
		chance := make(map[string]float64, len(cfg.Infection.Chance))
		for k, v := range cfg.Infection.Chance {
			chance[k] = v
		}
		cfg.Infection.Chance = chance
	}
	for _, w := range cfg.Validate() {
		logger.Warn("battle config corrected", "fix", w)
	}

	s := &Session{
		ID:              id,
		cfg:             cfg,
		abilities:       map[UnitID][]Ability{},
		states:          map[UnitID]*AttackState{},
		rng:             rng,
		targeter:        Targeter{MeleeRange: cfg.MeleeRange, Rng: rng},
		infection:       NewInfectionResolver(cfg.Infection, rng),
		logger:          logger,
		onInfected:      opts.OnInfected,
		damageByUnit:    map[string]int{},
		damageByAbility: map[string]int{},
	}
	add := func(side Side, roster []Unit) error {
		for _, u := range roster {
			u.Side = side
			u.Abilities = append([]string(nil), u.Abilities...)
			if err := u.Validate(); err != nil {
				return err
			}
			h := UnitID(len(s.units))
			s.units = append(s.units, u)
			s.abilities[h] = book.Instantiate(u.ID, u.Abilities)
			s.states[h] = NewAttackState()
		}
		return nil
	}
	if err := add(SideHero, heroes); err != nil {
		return nil, err
	}
	if err := add(SideMonster, monsters); err != nil {
		return nil, err
	}
	s.system("battle begins: %d heroes vs %d monsters", len(heroes), len(monsters))
	return s, nil
}

func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) Round() int       { return s.round }
func (s *Session) Done() bool       { return s.outcome != OutcomeOngoing }

// Log returns a copy of the combat log so far.
func (s *Session) Log() []Event {
	return append([]Event(nil), s.log...)
}

// Lookup finds a unit handle by its external ID.
func (s *Session) Lookup(unitID string) (UnitID, bool) {
	for i := range s.units {
		if s.units[i].ID == unitID {
			return UnitID(i), true
		}
	}
	return -1, false
}

// Snapshot projects a unit for presentation.
func (s *Session) Snapshot(id UnitID) DisplayStats {
	u := &s.units[id]
	ds := u.Display()
	ds.Attack = s.effective(id, StatAttack)
	ds.Defense = s.effective(id, StatDefense)
	ds.Evasion = s.effective(id, StatEvasion)
	ds.Speed = s.effective(id, StatSpeed)
	if st, ok := s.states[id]; ok {
		ds.Modifiers = st.ModifierTags()
	}
	return ds
}

// Units returns the current state of one side, in roster order, for write-back.
func (s *Session) Units(side Side) []Unit {
	var out []Unit
	for i := range s.units {
		if s.units[i].Side == side {
			out = append(out, s.units[i])
		}
	}
	return out
}

// Step resolves the next scheduled action. It returns false once the battle
// has reached a terminal outcome.
func (s *Session) Step() (ActionOutcome, bool) {
	for s.outcome == OutcomeOngoing {
		if s.cursor >= len(s.order) {
			s.advanceRound()
			continue
		}
		slot := s.order[s.cursor]
		s.cursor++
		if !s.units[slot.Unit].Active() {
			continue
		}
		out := s.act(slot)
		s.sweepRetreats(&out)
		s.checkEnd(&out)
		s.commit(&out)
		return out, true
	}
	return ActionOutcome{}, false
}

// Run drives the battle to completion.
func (s *Session) Run() Outcome {
	for {
		if _, ok := s.Step(); !ok {
			return s.outcome
		}
	}
}

func (s *Session) advanceRound() {
	if s.round > 0 {
		for _, st := range s.states {
			st.TickCooldowns(CooldownRound)
		}
		if s.round >= s.cfg.MaxRounds {
			s.outcome = OutcomeDraw
			s.system("round limit %d reached, the battle is a draw", s.cfg.MaxRounds)
			return
		}
	}
	s.round++
	s.order = buildOrder(s.units, func(id UnitID) int { return s.effective(id, StatSpeed) }, s.cfg.SpeedTiers, s.round)
	s.cursor = 0
	for _, st := range s.states {
		st.BeginRound(s.round)
	}
	s.system("round %d", s.round)

	pre := ActionOutcome{Round: s.round, Actor: -1}
	s.sweepRetreats(&pre)
	s.checkEnd(&pre)
	s.log = append(s.log, pre.Events...)
}

// sweepRetreats withdraws every active hero at or below the retreat
// threshold, so none of them stays targetable until its own turn.
func (s *Session) sweepRetreats(out *ActionOutcome) {
	for i := range s.units {
		u := &s.units[i]
		if u.Side != SideHero || !u.Active() || u.Morale > s.cfg.RetreatMoraleThreshold {
			continue
		}
		s.retreat(UnitID(i), out)
	}
}

func (s *Session) retreat(id UnitID, out *ActionOutcome) {
	u := &s.units[id]
	u.Retreated = true
	out.logLine(CategoryMorale, u.ID, "%s loses heart and retreats", u.DisplayName())
	out.changed(id, "retreated")
}

func (s *Session) act(slot turnSlot) ActionOutcome {
	id := slot.Unit
	u := &s.units[id]
	out := ActionOutcome{Round: s.round, Actor: id}

	if u.Side == SideHero && u.Morale <= s.cfg.RetreatMoraleThreshold {
		out.Retreated = true
		s.retreat(id, &out)
		return out
	}

	st := s.stateFor(id)
	if st == nil {
		ab := s.selectAbility(id)
		s.execute(id, ab, &out)
		return out
	}
	for _, tag := range st.TickModifiers() {
		out.logLine(CategoryStatus, u.ID, "%s's %s wears off", u.DisplayName(), tag)
		out.changed(id, "%s expired", tag)
	}
	st.AttacksThisRound++
	if st.ConsumeSkip() {
		out.Skipped = true
		out.logLine(CategoryStatus, u.ID, "%s is staggered and skips the action", u.DisplayName())
		out.changed(id, "skipped")
		s.tickActionCooldowns()
		return out
	}

	ab := s.selectAbility(id)
	s.execute(id, ab, &out)
	s.tickActionCooldowns()
	st.SetCooldown(ab.ID, ab.Cooldown, ab.CooldownType)
	return out
}

func (s *Session) tickActionCooldowns() {
	for _, st := range s.states {
		st.TickCooldowns(CooldownAction)
	}
}

func (s *Session) checkEnd(out *ActionOutcome) {
	heroes, monsters := s.countActive(SideHero), s.countActive(SideMonster)
	switch {
	case heroes > 0 && monsters > 0:
		return
	case heroes == 0 && monsters == 0:
		s.outcome = OutcomeDraw
		out.logLine(CategorySystem, "", "both sides have fallen")
	case heroes == 0:
		s.outcome = OutcomeMonstersWin
		for i := range s.units {
			if u := &s.units[i]; u.Side == SideHero && u.Alive() && u.Retreated {
				s.outcome = OutcomeRetreat
				break
			}
		}
		if s.outcome == OutcomeRetreat {
			out.logLine(CategorySystem, "", "the party flees the field")
		} else {
			out.logLine(CategorySystem, "", "the party has been wiped out")
		}
	default:
		s.outcome = OutcomeHeroesWin
		out.logLine(CategorySystem, "", "the monsters are defeated")
	}
}

func (s *Session) countActive(side Side) int {
	n := 0
	for i := range s.units {
		if s.units[i].Side == side && s.units[i].Active() {
			n++
		}
	}
	return n
}

func (s *Session) commit(out *ActionOutcome) {
	s.actions++
	s.log = append(s.log, out.Events...)
	for _, id := range out.Infected {
		s.infections++
		if s.onInfected != nil {
			s.onInfected(s.units[id])
		}
	}
	s.logger.Debug("action resolved",
		"round", out.Round,
		"actor", s.units[out.Actor].ID,
		"ability", out.Ability,
		"targets", len(out.Targets),
		"skipped", out.Skipped,
		"retreated", out.Retreated,
	)
}

func (s *Session) system(format string, args ...any) {
	s.log = append(s.log, Event{Round: s.round, Type: "LogLine", Payload: map[string]any{
		"text":     fmt.Sprintf(format, args...),
		"category": CategorySystem,
	}})
}

func (s *Session) stateFor(id UnitID) *AttackState {
	st, ok := s.states[id]
	if !ok {
		s.logger.Warn("no attack state registered for unit", "unit", s.units[id].ID)
		return nil
	}
	return st
}

// Stat names understood by preconditions and timed modifiers.
const (
	StatHealth  = "health"
	StatMorale  = "morale"
	StatAttack  = "attack"
	StatDefense = "defense"
	StatEvasion = "evasion"
	StatSpeed   = "speed"
)

// Status tags with combat meaning beyond a stat offset.
const (
	StatusShield = "shield"
	StatusThorns = "thorns"
)

func (s *Session) modifierValue(id UnitID, tag string) int {
	if st, ok := s.states[id]; ok {
		return st.ModifierValue(tag)
	}
	return 0
}

func (s *Session) effective(id UnitID, stat string) int {
	u := &s.units[id]
	var base int
	switch stat {
	case StatAttack:
		base = u.Attack
	case StatDefense:
		base = u.Defense
	case StatEvasion:
		base = u.Evasion
	case StatSpeed:
		base = u.Speed
	case StatHealth:
		return u.Health
	case StatMorale:
		return u.Morale
	}
	return base + s.modifierValue(id, stat)
}
