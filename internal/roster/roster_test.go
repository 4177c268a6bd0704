package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partybattle/internal/combat"
	"partybattle/internal/config"
)

func testTemplates() *Templates {
	return NewTemplates(&config.TemplatesConfig{
		RankMultipliers: map[int]float64{1: 1.0, 2: 1.15},
		Templates: []config.StatTemplate{
			{ID: "warden", Name: "Warden", MaxHealth: 60, MaxMorale: 50, Attack: 14, Defense: 6, Evasion: 5, Speed: 5,
				Abilities: []string{"cleave"},
				Specials:  []config.SpecialRule{{Ability: "rally", WithTemplate: "herbalist"}}},
			{ID: "herbalist", Name: "Herbalist", MaxHealth: 40, MaxMorale: 45, Attack: 8, Speed: 3,
				Abilities: []string{"mend"},
				Specials:  []config.SpecialRule{{Ability: "mend"}, {Ability: "purge_rot"}}},
		},
	})
}

func intPtr(v int) *int { return &v }

func TestApplyBaseStats_RankScaling(t *testing.T) {
	tpl := testTemplates()
	u := combat.Unit{ID: "h1", Template: "warden", Rank: 2}
	require.NoError(t, tpl.ApplyBaseStats(&u))

	assert.Equal(t, "Warden", u.Name)
	assert.Equal(t, 69, u.MaxHealth)
	assert.Equal(t, 69, u.Health)
	assert.Equal(t, 16, u.Attack)
	assert.Equal(t, 7, u.Defense)
	assert.Equal(t, 50, u.Morale, "morale is not rank-scaled")
	assert.Equal(t, 5, u.Speed)
	assert.Equal(t, []string{"cleave"}, u.Abilities)

	unranked := combat.Unit{ID: "h2", Template: "warden", Rank: 7}
	require.NoError(t, tpl.ApplyBaseStats(&unranked))
	assert.Equal(t, 60, unranked.MaxHealth, "unknown rank uses multiplier 1")

	named := combat.Unit{ID: "h3", Name: "Bran", Template: "warden", Rank: 1}
	require.NoError(t, tpl.ApplyBaseStats(&named))
	assert.Equal(t, "Bran", named.Name)
}

func TestApplyBaseStats_UnknownTemplate(t *testing.T) {
	u := combat.Unit{ID: "x", Template: "dragon"}
	err := testTemplates().ApplyBaseStats(&u)
	assert.ErrorContains(t, err, `unknown template "dragon"`)
}

func TestBuild_SlotsAndPositions(t *testing.T) {
	units, err := Build([]config.RosterEntry{
		{ID: "a", Template: "warden"},
		{Template: "herbalist", Position: intPtr(3)},
	}, combat.SideHero, testTemplates(), nil)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, 0, units[0].Slot)
	assert.Equal(t, 0, units[0].Position)
	assert.Equal(t, 1, units[0].Rank, "rank defaults to 1")
	assert.Equal(t, 1, units[1].Slot)
	assert.Equal(t, 3, units[1].Position)
	assert.Equal(t, "hero2", units[1].ID)
	assert.Equal(t, combat.SideHero, units[1].Side)
}

func TestBuild_SpecialsNeedPartner(t *testing.T) {
	tpl := testTemplates()

	alone, err := Build([]config.RosterEntry{{ID: "w", Template: "warden"}}, combat.SideHero, tpl, tpl)
	require.NoError(t, err)
	assert.Equal(t, []string{"cleave"}, alone[0].Abilities)

	paired, err := Build([]config.RosterEntry{
		{ID: "w", Template: "warden"},
		{ID: "h", Template: "herbalist"},
	}, combat.SideHero, tpl, tpl)
	require.NoError(t, err)
	assert.Equal(t, []string{"cleave", "rally"}, paired[0].Abilities)
	assert.Equal(t, []string{"mend", "purge_rot"}, paired[1].Abilities, "unconditional specials are granted once")
}

func TestBuild_PropagatesTemplateError(t *testing.T) {
	_, err := Build([]config.RosterEntry{{ID: "z", Template: "nope"}}, combat.SideMonster, testTemplates(), nil)
	assert.Error(t, err)
}

func TestBuildBoth_FromAssets(t *testing.T) {
	_, _, tc, rc, err := config.LoadAll("../../assets")
	require.NoError(t, err)

	heroes, monsters, err := BuildBoth(rc, NewTemplates(tc))
	require.NoError(t, err)
	require.Len(t, heroes, 3)
	require.Len(t, monsters, 3)

	assert.Contains(t, heroes[0].Abilities, "rally", "warden fights beside a herbalist")
	assert.Equal(t, "Old Hag", monsters[2].Name)
	assert.Equal(t, 3, monsters[2].Position)
	for _, u := range append(heroes, monsters...) {
		assert.NoError(t, u.Validate())
	}
}

func TestBuildBoth_WrapsSide(t *testing.T) {
	rc := &config.RosterConfig{
		Heroes:   []config.RosterEntry{{ID: "w", Template: "warden"}},
		Monsters: []config.RosterEntry{{ID: "m", Template: "ghost"}},
	}
	_, _, err := BuildBoth(rc, testTemplates())
	assert.ErrorContains(t, err, "building monsters")
}
