package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/config"
	"github.com/lox/blackjack-tournament/internal/leaderboard"
	"github.com/lox/blackjack-tournament/internal/randutil"
	"github.com/lox/blackjack-tournament/internal/spectate"
	"github.com/lox/blackjack-tournament/internal/tournament"
)

// TournamentFlags override the config file's tournament block
type TournamentFlags struct {
	Difficulty string `short:"d" help:"Opponent difficulty: easy, medium, hard, random, adaptive or mixed"`
	Opponents  int    `short:"o" help:"Number of computer opponents (1-8)"`
	Seed       *int64 `help:"Deterministic RNG seed (optional)"`
	PaceMs     *int   `name:"pace-ms" help:"Delay before each computer move in milliseconds; 0 disables pacing"`
	Spectate   string `help:"Serve the spectator API on this address, e.g. :8080"`
}

// StoreFlags select the leaderboard store
type StoreFlags struct {
	DSN             string `name:"dsn" env:"BLACKJACK_DSN" help:"Postgres connection string for the leaderboard"`
	LeaderboardPath string `name:"leaderboard" env:"BLACKJACK_LEADERBOARD" type:"path" help:"Leaderboard JSON file"`
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(g *Globals, f TournamentFlags) (*config.File, error) {
	file, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	t := &file.Tournament
	if f.Difficulty != "" || f.Opponents != 0 {
		// Explicit flags replace any named opponents from the file
		file.Opponents = nil
		if f.Opponents == 0 {
			t.Opponents = config.DefaultOpponents
		}
	}
	if f.Difficulty != "" {
		t.Difficulty = f.Difficulty
	}
	if f.Opponents != 0 {
		t.Opponents = f.Opponents
	}
	if f.Seed != nil {
		t.Seed = *f.Seed
	}
	if f.PaceMs != nil {
		t.PaceMillis = f.PaceMs
	}
	if f.Spectate != "" {
		file.Spectate = &config.SpectateSettings{Address: f.Spectate}
	}
	if t.Seed == 0 {
		t.Seed = time.Now().UnixNano()
	}
	return file, nil
}

// newTournament builds the roster and schedule for cfg
func newTournament(cfg tournament.Config, logger *log.Logger) (*tournament.Tournament, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := randutil.New(cfg.Seed)
	roster, err := tournament.NewRoster(cfg, rng, logger)
	if err != nil {
		return nil, err
	}
	return tournament.New(roster, rng, tournament.WithLogger(logger)), nil
}

// newSpectator returns the spectator server for t, or nil when disabled
func newSpectator(file *config.File, t *tournament.Tournament, ranking spectate.RankingSource, logger *log.Logger) *spectate.Server {
	if file.Spectate == nil || file.Spectate.Address == "" {
		return nil
	}
	hub := spectate.NewHub(t.MatchByID, logger)
	t.EventBus().Subscribe(hub)
	return spectate.NewServer(file.Spectate.Address, hub, ranking, logger)
}

// openStore opens the leaderboard. Flags win over the config file.
func openStore(ctx context.Context, g *Globals, f StoreFlags) (leaderboard.Store, error) {
	dsn, path := f.DSN, f.LeaderboardPath
	if dsn == "" && path == "" {
		file, err := config.Load(g.Config)
		if err != nil {
			return nil, err
		}
		dsn, path = file.Leaderboard.DSN, file.Leaderboard.Path
	}
	if dsn == "" && path == "" {
		path = config.DefaultBoardPath
	}
	return leaderboard.Open(ctx, dsn, path)
}

// saveResult records a finished tournament on the leaderboard
func saveResult(ctx context.Context, g *Globals, f StoreFlags, s tournament.Summary, logger *log.Logger) error {
	if s.Abandoned {
		logger.Info("Not recording abandoned tournament", "tournament", s.ID)
		return nil
	}

	store, err := openStore(ctx, g, f)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close leaderboard", "error", err)
		}
	}()

	entry := leaderboard.FromSummary(s)
	if err := store.Add(ctx, entry); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	logger.Info("Recorded result", "player", entry.PlayerName, "score", entry.Score, "place", entry.Place)
	return nil
}
