package combat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partybattle/internal/config"
)

func TestNewAbilityBook_FromAssets(t *testing.T) {
	_, ac, _, _, err := config.LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)
	book := NewAbilityBook(ac, quietLogger())

	pact, ok := book.Get("blood_pact")
	require.True(t, ok)
	assert.Equal(t, CooldownAction, pact.CooldownType)
	assert.Equal(t, 4, pact.Cooldown)
	require.Len(t, pact.Effects, 2)
	assert.Equal(t, EffectSelfSacrifice, pact.Effects[0].Kind)
	assert.Equal(t, EffectStrike, pact.Effects[1].Kind)
	assert.Equal(t, CheckPartial, pact.Effects[1].Check)
	require.Len(t, pact.Preconditions, 1)
	assert.Equal(t, Precondition{Subject: GroupSelf, Stat: StatHealth, Op: CompareGT, Threshold: 50, Percent: true}, pact.Preconditions[0])

	rally, ok := book.Get("rally")
	require.True(t, ok)
	assert.Equal(t, TargetingRule{Selection: SelectAll, Group: GroupAlly, Criteria: CriteriaAllAllies}, rally.Target)

	cleave, _ := book.Get("cleave")
	assert.Equal(t, 0.7, cleave.Effects[0].Params.Multiplier)
	assert.True(t, cleave.Target.MeleeOnly)

	_, ok = book.Get(BasicAttackID)
	assert.True(t, ok, "basic attack is always present")
}

func TestNewAbilityBook_CorrectsDefects(t *testing.T) {
	cfg := &config.AbilitiesConfig{Abilities: []config.Ability{
		{
			ID:     "bad_rally",
			Target: config.Targeting{Type: "single", Group: "enemy", Criteria: "all_allies"},
			Effects: []config.Effect{
				{Kind: "stat_effect", Tag: "Attack", Value: 2, Duration: 1},
			},
		},
		{
			ID:     "both_filters",
			Target: config.Targeting{MustBeInfected: true, MustNotBeInfected: true},
			Effects: []config.Effect{
				{Kind: "strike", Check: "sideways"},
				{Kind: "explode"},
			},
		},
		{Name: "no id"},
	}}
	book := NewAbilityBook(cfg, quietLogger())

	rally, ok := book.Get("bad_rally")
	require.True(t, ok)
	assert.Equal(t, GroupAlly, rally.Target.Group)
	assert.Equal(t, SelectAll, rally.Target.Selection)
	assert.Equal(t, "attack", rally.Effects[0].Params.Tag)

	both, ok := book.Get("both_filters")
	require.True(t, ok)
	assert.False(t, both.Target.MustBeInfected)
	assert.False(t, both.Target.MustNotBeInfected)
	require.Len(t, both.Effects, 1, "unknown effect kind dropped")
	assert.Equal(t, CheckStandard, both.Effects[0].Check)
	assert.Equal(t, 1.0, both.Effects[0].Params.Multiplier, "strike multiplier defaults to 1")
	assert.Equal(t, "both_filters", both.Name)
}

func TestAbilityBook_Instantiate(t *testing.T) {
	book := newTestBook(Ability{ID: "a"}, Ability{ID: "b"})
	got := book.Instantiate("u", []string{"b", "missing", "a"})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}
