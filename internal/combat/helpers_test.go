package combat

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"partybattle/internal/config"
	"partybattle/internal/util"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig is the default battle config with infection switched off.
func testConfig() config.BattleConfig {
	cfg := config.DefaultBattle()
	cfg.Infection.Chance = map[string]float64{}
	return cfg
}

// newTestUnit returns a one-attack-per-round unit with round numbers.
func newTestUnit(id string, slot int) Unit {
	return Unit{
		ID:        id,
		Slot:      slot,
		Position:  slot,
		Rank:      1,
		Health:    100,
		MaxHealth: 100,
		Morale:    50,
		MaxMorale: 50,
		Attack:    10,
		Speed:     5,
	}
}

func newTestBook(abilities ...Ability) *AbilityBook {
	book := NewAbilityBook(nil, quietLogger())
	for _, a := range abilities {
		book.Add(a)
	}
	return book
}

func newTestSession(t *testing.T, cfg config.BattleConfig, book *AbilityBook, heroes, monsters []Unit, rng util.Rand) *Session {
	t.Helper()
	if book == nil {
		book = newTestBook()
	}
	s, err := NewSession(cfg, book, heroes, monsters, Options{Rng: rng, Logger: quietLogger()})
	require.NoError(t, err)
	return s
}

// applyOne runs a single effect instruction outside of ability selection.
func applyOne(s *Session, actor UnitID, targets []UnitID, ins EffectInstruction) (*ActionOutcome, *effectContext) {
	ab := Ability{ID: "test", Name: "Test", Effects: []EffectInstruction{ins}}
	out := &ActionOutcome{Round: s.round, Actor: actor}
	ctx := &effectContext{ability: &ab}
	s.applyEffect(actor, targets, ins, ctx, out)
	return out, ctx
}

func strikeIns(mult float64, check DefenseCheck) EffectInstruction {
	return EffectInstruction{Kind: EffectStrike, Params: EffectParams{Multiplier: mult}, Check: check}
}

func logTexts(events []Event) []string {
	var out []string
	for _, ev := range events {
		if text, ok := ev.Payload["text"].(string); ok {
			out = append(out, text)
		}
	}
	return out
}
