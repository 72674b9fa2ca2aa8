package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/blackjack-tournament/internal/leaderboard"
)

// LeaderboardCmd groups the leaderboard subcommands
type LeaderboardCmd struct {
	List   LeaderboardListCmd   `cmd:"" default:"withargs" help:"List recorded tournaments, best first"`
	Stats  LeaderboardStatsCmd  `cmd:"" help:"Show totals across recorded tournaments"`
	Clear  LeaderboardClearCmd  `cmd:"" help:"Delete every recorded tournament"`
	Export LeaderboardExportCmd `cmd:"" help:"Export recorded tournaments as JSON"`
}

// FilterFlags narrow which entries are shown
type FilterFlags struct {
	Difficulty string `short:"d" default:"all" help:"Only this difficulty"`
	Players    string `short:"p" default:"all" help:"Only this player count: 2, 3, 4 or 5+"`
}

func (f FilterFlags) filter() leaderboard.Filter {
	return leaderboard.Filter{Difficulty: f.Difficulty, PlayerCount: f.Players}
}

type LeaderboardListCmd struct {
	StoreFlags
	FilterFlags

	Limit int  `short:"n" default:"10" help:"Maximum entries to show (0 for all)"`
	JSON  bool `help:"Print entries as JSON"`
}

func (c *LeaderboardListCmd) Run(g *Globals) error {
	entries, err := listEntries(g, c.StoreFlags, c.filter())
	if err != nil {
		return err
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	printEntries(os.Stdout, entries)
	return nil
}

type LeaderboardStatsCmd struct {
	StoreFlags
	FilterFlags
}

func (c *LeaderboardStatsCmd) Run(g *Globals) error {
	entries, err := listEntries(g, c.StoreFlags, c.filter())
	if err != nil {
		return err
	}
	printStats(os.Stdout, leaderboard.ComputeStats(entries))
	return nil
}

type LeaderboardClearCmd struct {
	StoreFlags

	Yes bool `short:"y" help:"Confirm deleting every entry"`
}

func (c *LeaderboardClearCmd) Run(g *Globals) error {
	if !c.Yes {
		return errors.New("refusing to clear the leaderboard without --yes")
	}

	ctx := context.Background()
	store, err := openStore(ctx, g, c.StoreFlags)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Leaderboard cleared.")
	return nil
}

type LeaderboardExportCmd struct {
	StoreFlags
	FilterFlags

	Output string `short:"o" default:"-" help:"File to write, - for stdout"`
}

func (c *LeaderboardExportCmd) Run(g *Globals) error {
	entries, err := listEntries(g, c.StoreFlags, c.filter())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		w = f
	}
	return leaderboard.WriteExport(w, entries, time.Now())
}

func listEntries(g *Globals, f StoreFlags, filter leaderboard.Filter) ([]leaderboard.Entry, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	store, err := openStore(ctx, g, f)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = store.Close()
	}()
	return store.List(ctx, filter)
}
