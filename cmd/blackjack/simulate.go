package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"golang.org/x/sync/errgroup"
)

// SimulateCmd runs a tournament between computer opponents only
type SimulateCmd struct {
	TournamentFlags
	StoreFlags

	JSON bool `help:"Print the summary as JSON"`
	Save bool `help:"Record the winner on the leaderboard"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := setupLogger(os.Stderr, g.Debug)

	// Computer-only runs are unpaced unless asked
	if c.PaceMs == nil {
		zero := 0
		c.PaceMs = &zero
	}
	file, err := loadConfig(g, c.TournamentFlags)
	if err != nil {
		return err
	}
	file.Tournament.Human = ""
	cfg := file.TournamentConfig()

	t, err := newTournament(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting simulation", "tournament", t.ID(), "seed", cfg.Seed,
		"participants", t.Roster().Size(), "matches", len(t.Matches()),
		"estimate", tournament.EstimateDuration(len(t.Matches())))

	runner := tournament.NewRunner(t,
		tournament.WithPacer(tournament.NewPacer(quartz.NewReal(), cfg.PaceDelay)),
		tournament.WithRunnerLogger(logger),
		tournament.WithSummaryInfo(cfg.Difficulty, cfg.Seed),
	)

	sigCtx, stop := setupSignalHandler(logger)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	var summary tournament.Summary
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		var err error
		summary, err = runner.Run(gctx)
		return err
	})
	if srv := newSpectator(file, t, runner, logger); srv != nil {
		group.Go(func() error { return srv.Run(gctx) })
	}

	if err := group.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Simulation interrupted", "played", summary.MatchesPlayed, "total", summary.TotalMatches)
		} else {
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		printSummary(os.Stdout, summary)
	}

	if !c.Save {
		return nil
	}
	return saveResult(context.Background(), g, c.StoreFlags, summary, logger)
}
