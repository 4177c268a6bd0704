package combat

import "sort"

type CooldownType int

const (
	CooldownNone CooldownType = iota
	CooldownAction
	CooldownRound
)

// Modifier is a timed stat or status entry. Remaining counts the owner's turns.
type Modifier struct {
	Value     int `json:"value"`
	Remaining int `json:"remaining"`
}

type cooldown struct {
	remaining int
	kind      CooldownType
}

// AttackState is the per-unit, per-battle scratch state.
type AttackState struct {
	AttacksThisRound int
	Round            int
	SkipNext         bool

	cooldowns map[string]cooldown
	modifiers map[string]Modifier
}

func NewAttackState() *AttackState {
	return &AttackState{
		cooldowns: map[string]cooldown{},
		modifiers: map[string]Modifier{},
	}
}

func (st *AttackState) BeginRound(round int) {
	st.Round = round
	st.AttacksThisRound = 0
}

func (st *AttackState) Cooldown(abilityID string) int {
	return st.cooldowns[abilityID].remaining
}

func (st *AttackState) SetCooldown(abilityID string, n int, kind CooldownType) {
	if kind == CooldownNone || n <= 0 {
		delete(st.cooldowns, abilityID)
		return
	}
	st.cooldowns[abilityID] = cooldown{remaining: n, kind: kind}
}

// TickCooldowns decrements every cooldown of the given kind and drops the ones reaching zero.
func (st *AttackState) TickCooldowns(kind CooldownType) {
	for id, cd := range st.cooldowns {
		if cd.kind != kind {
			continue
		}
		cd.remaining--
		if cd.remaining <= 0 {
			delete(st.cooldowns, id)
			continue
		}
		st.cooldowns[id] = cd
	}
}

// ConsumeSkip clears the skip flag and reports whether it was set.
func (st *AttackState) ConsumeSkip() bool {
	if !st.SkipNext {
		return false
	}
	st.SkipNext = false
	return true
}

// ApplyModifier overwrites the entry for tag. A non-positive duration removes it.
func (st *AttackState) ApplyModifier(tag string, value, duration int) {
	if duration <= 0 {
		delete(st.modifiers, tag)
		return
	}
	st.modifiers[tag] = Modifier{Value: value, Remaining: duration}
}

func (st *AttackState) Modifier(tag string) (Modifier, bool) {
	m, ok := st.modifiers[tag]
	return m, ok
}

func (st *AttackState) ModifierValue(tag string) int {
	return st.modifiers[tag].Value
}

// TickModifiers runs at the start of the owner's turn: every entry loses one
// turn and entries reaching zero are removed. Returns the expired tags, sorted.
func (st *AttackState) TickModifiers() []string {
	var expired []string
	for tag, m := range st.modifiers {
		m.Remaining--
		if m.Remaining <= 0 {
			delete(st.modifiers, tag)
			expired = append(expired, tag)
			continue
		}
		st.modifiers[tag] = m
	}
	sort.Strings(expired)
	return expired
}

// ModifierTags lists active modifier tags in sorted order.
func (st *AttackState) ModifierTags() []string {
	tags := make([]string, 0, len(st.modifiers))
	for tag := range st.modifiers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
