package main

import (
	"os"
	"time"

	"github.com/lox/blackjack-tournament/internal/simulator"
)

// BenchCmd runs many computer-only tournaments and compares strategies
type BenchCmd struct {
	Tournaments int    `short:"n" default:"100" help:"Number of tournaments to run"`
	Difficulty  string `short:"d" default:"mixed" help:"Opponent difficulty for every tournament"`
	Opponents   int    `short:"o" default:"5" help:"Number of computer opponents (2-8)"`
	Seed        int64  `help:"Seed of the first tournament; 0 picks one"`
	Workers     int    `short:"w" help:"Parallel workers (default: GOMAXPROCS)"`
}

func (c *BenchCmd) Run(g *Globals) error {
	logger := setupLogger(os.Stderr, g.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting benchmark", "tournaments", c.Tournaments, "difficulty", c.Difficulty,
		"opponents", c.Opponents, "seed", seed)

	ctx, stop := setupSignalHandler(logger)
	defer stop()

	report, err := simulator.New(simulator.Config{
		Tournaments: c.Tournaments,
		Difficulty:  c.Difficulty,
		Opponents:   c.Opponents,
		Seed:        seed,
		Workers:     c.Workers,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, report)
	return nil
}
