package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"partybattle/internal/combat"
	"partybattle/internal/config"
	"partybattle/internal/roster"
	"partybattle/internal/sim"
	"partybattle/internal/util"
)

func main() {
	var cfgDir, out string
	var seed int64
	var n, workers int
	var saveLog, verbose bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 12345, "seed")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "batch workers")
	flag.BoolVar(&saveLog, "log", true, "save full combat log when n==1")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfgDir, out, seed, n, workers, saveLog); err != nil {
		slog.Error("simsvc failed", "error", err)
		os.Exit(1)
	}
}

func run(cfgDir, out string, seed int64, n, workers int, saveLog bool) error {
	battleCfg, abilitiesCfg, templatesCfg, rosterCfg, err := config.LoadAll(cfgDir)
	if err != nil {
		return err
	}
	book := combat.NewAbilityBook(abilitiesCfg, slog.Default())
	templates := roster.NewTemplates(templatesCfg)

	newSession := func(runSeed int64) (*combat.Session, error) {
		heroes, monsters, err := roster.BuildBoth(rosterCfg, templates)
		if err != nil {
			return nil, err
		}
		return combat.NewSession(*battleCfg, book, heroes, monsters, combat.Options{
			Rng:    util.New(runSeed),
			Logger: slog.Default(),
			OnInfected: func(u combat.Unit) {
				slog.Info("unit infected", "unit", u.ID, "morale", u.Morale)
			},
		})
	}

	if n <= 1 {
		s, err := newSession(seed)
		if err != nil {
			return err
		}
		s.Run()
		res := s.Result(saveLog)
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("Single simsvc finished. Outcome=%s, rounds=%d, actions=%d -> %s\n", res.Outcome, res.Rounds, res.Actions, out)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	summary, err := sim.RunBatch(ctx, n, workers, seed, newSession)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
	return nil
}
