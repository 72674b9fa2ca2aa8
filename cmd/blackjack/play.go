package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"github.com/lox/blackjack-tournament/internal/config"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"github.com/lox/blackjack-tournament/internal/tui"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs an interactive tournament
type PlayCmd struct {
	Name string `help:"Your name at the table"`

	TournamentFlags
	StoreFlags

	LogFile string `type:"path" default:"blackjack.log" help:"Where to write logs while the UI owns the terminal"`
	NoSave  bool   `help:"Do not record the result on the leaderboard"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logFile, err := openLogFile(c.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()
	logger := setupLogger(logFile, g.Debug)

	file, err := loadConfig(g, c.TournamentFlags)
	if err != nil {
		return err
	}
	if c.Name != "" {
		file.Tournament.Human = c.Name
	}
	if file.Tournament.Human == "" {
		file.Tournament.Human = config.DefaultHuman
	}
	cfg := file.TournamentConfig()

	t, err := newTournament(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting interactive tournament", "tournament", t.ID(), "seed", cfg.Seed,
		"participants", t.Roster().Size(), "matches", len(t.Matches()))

	model := tui.NewTUIModel(logger, "Blackjack Tournament")
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge := tui.NewBridge(program, model, t, logger)

	opts := append(bridge.RunnerOptions(),
		tournament.WithPacer(tournament.NewPacer(quartz.NewReal(), cfg.PaceDelay)),
		tournament.WithRunnerLogger(logger),
		tournament.WithSummaryInfo(cfg.Difficulty, cfg.Seed),
	)
	runner := tournament.NewRunner(t, opts...)
	bridge.SetRanking(runner)

	sigCtx, stop := setupSignalHandler(logger)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	var (
		summary tournament.Summary
		runErr  error
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	group.Go(func() error {
		summary, runErr = runner.Run(gctx)
		bridge.Finish(summary, runErr)
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		program.Quit()
		return nil
	})
	if srv := newSpectator(file, t, runner, logger); srv != nil {
		group.Go(func() error { return srv.Run(gctx) })
	}

	if err := group.Wait(); err != nil {
		return err
	}

	switch {
	case errors.Is(runErr, tournament.ErrQuit), errors.Is(runErr, context.Canceled):
		fmt.Println("Tournament abandoned.")
		return nil
	case runErr != nil:
		return runErr
	}

	printSummary(os.Stdout, summary)
	if c.NoSave {
		return nil
	}
	return saveResult(context.Background(), g, c.StoreFlags, summary, logger)
}
