package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttackState_CooldownsNeverNegative(t *testing.T) {
	st := NewAttackState()
	st.SetCooldown("a", 2, CooldownAction)
	st.SetCooldown("r", 1, CooldownRound)

	st.TickCooldowns(CooldownAction)
	assert.Equal(t, 1, st.Cooldown("a"))
	assert.Equal(t, 1, st.Cooldown("r"), "round cooldown untouched by action tick")

	for i := 0; i < 5; i++ {
		st.TickCooldowns(CooldownAction)
		st.TickCooldowns(CooldownRound)
	}
	assert.Equal(t, 0, st.Cooldown("a"))
	assert.Equal(t, 0, st.Cooldown("r"))
	assert.Empty(t, st.cooldowns, "expired cooldowns are removed")
}

func TestAttackState_SetCooldownNoneClears(t *testing.T) {
	st := NewAttackState()
	st.SetCooldown("a", 3, CooldownAction)
	st.SetCooldown("a", 3, CooldownNone)
	assert.Equal(t, 0, st.Cooldown("a"))

	st.SetCooldown("b", 0, CooldownRound)
	assert.Equal(t, 0, st.Cooldown("b"))
}

func TestAttackState_ConsumeSkip(t *testing.T) {
	st := NewAttackState()
	assert.False(t, st.ConsumeSkip())
	st.SkipNext = true
	assert.True(t, st.ConsumeSkip())
	assert.False(t, st.SkipNext)
	assert.False(t, st.ConsumeSkip())
}

func TestAttackState_ModifiersExpireAtZero(t *testing.T) {
	st := NewAttackState()
	st.ApplyModifier("attack", 5, 2)
	st.ApplyModifier("thorns", 3, 1)

	expired := st.TickModifiers()
	assert.Equal(t, []string{"thorns"}, expired)
	m, ok := st.Modifier("attack")
	assert.True(t, ok)
	assert.Equal(t, Modifier{Value: 5, Remaining: 1}, m)
	_, ok = st.Modifier("thorns")
	assert.False(t, ok, "expired entries are removed, not zeroed")

	assert.Equal(t, []string{"attack"}, st.TickModifiers())
	assert.Empty(t, st.ModifierTags())
	assert.Equal(t, 0, st.ModifierValue("attack"))
}

func TestAttackState_ModifierOverwrite(t *testing.T) {
	st := NewAttackState()
	st.ApplyModifier("defense", 2, 3)
	st.ApplyModifier("defense", -4, 1)
	assert.Equal(t, -4, st.ModifierValue("defense"))

	st.ApplyModifier("defense", 9, 0)
	_, ok := st.Modifier("defense")
	assert.False(t, ok)
}

func TestAttackState_BeginRound(t *testing.T) {
	st := NewAttackState()
	st.AttacksThisRound = 2
	st.BeginRound(4)
	assert.Equal(t, 0, st.AttacksThisRound)
	assert.Equal(t, 4, st.Round)
}
