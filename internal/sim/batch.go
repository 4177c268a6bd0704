// Package sim runs many seeded battles and aggregates their results.
package sim

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"partybattle/internal/combat"
)

// Factory builds a fresh session for one run from its derived seed.
type Factory func(seed int64) (*combat.Session, error)

type Summary struct {
	Runs            int                     `json:"runs"`
	Outcomes        map[string]int          `json:"outcomes"`
	Rates           map[string]float64      `json:"rates"`
	AvgRounds       float64                 `json:"avg_rounds"`
	AvgActions      float64                 `json:"avg_actions"`
	AvgInfections   float64                 `json:"avg_infections"`
	TotalDamage     int                     `json:"total_damage"`
	DamageByAbility map[string]ShareOfTotal `json:"damage_by_ability"`
	DamageByUnit    map[string]ShareOfTotal `json:"damage_by_unit"`
}

type ShareOfTotal struct {
	Total int     `json:"total"`
	Ratio float64 `json:"ratio"`
}

// RunSeed derives the seed of run i. It does not depend on worker scheduling.
func RunSeed(base int64, i int) int64 {
	return base + int64(i)*7919
}

// RunBatch executes n battles on up to workers goroutines. The first factory
// error cancels the remaining runs; a cancelled ctx fails the whole batch.
func RunBatch(ctx context.Context, n, workers int, seed int64, build Factory) (Summary, error) {
	if workers <= 0 {
		workers = 1
	}
	var (
		mu         sync.Mutex
		outcomes   = map[string]int{}
		byAbility  = map[string]int{}
		byUnit     = map[string]int{}
		rounds     int
		actions    int
		infections int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := build(RunSeed(seed, i))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			s.Run()
			res := s.Result(false)

			mu.Lock()
			defer mu.Unlock()
			outcomes[res.Outcome.String()]++
			rounds += res.Rounds
			actions += res.Actions
			infections += res.Infections
			for k, v := range res.DamageByAbility {
				byAbility[k] += v
			}
			for k, v := range res.DamageByUnit {
				byUnit[k] += v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	// gctx is done after Wait either way; ask the caller's ctx.
	if err := ctx.Err(); err != nil {
		return Summary{}, fmt.Errorf("batch interrupted: %w", err)
	}

	sum := Summary{
		Runs:            n,
		Outcomes:        outcomes,
		Rates:           map[string]float64{},
		DamageByAbility: map[string]ShareOfTotal{},
		DamageByUnit:    map[string]ShareOfTotal{},
	}
	if n == 0 {
		return sum, nil
	}
	for k, v := range outcomes {
		sum.Rates[k] = float64(v) / float64(n)
	}
	sum.AvgRounds = float64(rounds) / float64(n)
	sum.AvgActions = float64(actions) / float64(n)
	sum.AvgInfections = float64(infections) / float64(n)
	for _, v := range byAbility {
		sum.TotalDamage += v
	}
	share := func(m map[string]int, out map[string]ShareOfTotal) {
		for k, v := range m {
			ratio := 0.0
			if sum.TotalDamage > 0 {
				ratio = float64(v) / float64(sum.TotalDamage)
			}
			out[k] = ShareOfTotal{Total: v, Ratio: ratio}
		}
	}
	share(byAbility, sum.DamageByAbility)
	share(byUnit, sum.DamageByUnit)
	return sum, nil
}
