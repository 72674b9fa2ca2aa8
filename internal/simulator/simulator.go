// Package simulator runs batches of computer-only tournaments and reports
// how each strategy fares.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/randutil"
	"github.com/lox/blackjack-tournament/internal/statistics"
	"github.com/lox/blackjack-tournament/internal/tournament"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Tournaments int
	Difficulty  string
	Opponents   int
	Seed        int64
	Workers     int
	Logger      *log.Logger
}

// Simulator runs seeded tournaments in parallel
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

type result struct {
	summary    tournament.Summary
	strategies map[string]string
}

// Run plays every tournament and folds the results into a report.
// Tournament i uses seed Seed+i, so a batch is reproducible regardless
// of how many workers run it.
func (s *Simulator) Run(ctx context.Context) (*statistics.Report, error) {
	if s.config.Tournaments < 1 {
		return nil, fmt.Errorf("tournaments must be at least 1, got %d", s.config.Tournaments)
	}
	base := tournament.Config{
		Difficulty: s.config.Difficulty,
		Opponents:  s.config.Opponents,
		PaceDelay:  -1,
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	results := make([]result, s.config.Tournaments)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	start := time.Now()
	for i := range results {
		g.Go(func() error {
			cfg := base
			cfg.Seed = s.config.Seed + int64(i)
			res, err := s.play(ctx, cfg)
			if err != nil {
				return fmt.Errorf("tournament %d (seed %d): %w", i+1, cfg.Seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := statistics.NewReport()
	for _, res := range results {
		if err := report.AddTournament(res.summary, res.strategies); err != nil {
			return nil, err
		}
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete", "tournaments", report.Tournaments,
		"matches", report.Matches, "elapsed", time.Since(start).Round(time.Millisecond))
	return report, nil
}

func (s *Simulator) play(ctx context.Context, cfg tournament.Config) (result, error) {
	rng := randutil.New(cfg.Seed)
	logger := s.config.Logger.With("seed", cfg.Seed)
	if logger.GetLevel() > log.DebugLevel {
		// Per-tournament progress is noise across a batch
		logger.SetLevel(log.WarnLevel)
	}
	roster, err := tournament.NewRoster(cfg, rng, logger)
	if err != nil {
		return result{}, err
	}

	strategies := make(map[string]string, roster.Size())
	for _, p := range roster.Participants() {
		strategies[p.Name] = p.Strategy.Name()
	}

	t := tournament.New(roster, rng, tournament.WithLogger(logger))
	runner := tournament.NewRunner(t,
		tournament.WithRunnerLogger(logger),
		tournament.WithSummaryInfo(cfg.Difficulty, cfg.Seed),
	)
	summary, err := runner.Run(ctx)
	if err != nil {
		return result{}, err
	}
	return result{summary: summary, strategies: strategies}, nil
}

// PrintSummary writes a per-strategy table of the report
func PrintSummary(w io.Writer, report *statistics.Report) {
	fmt.Fprintf(w, "\n=== RESULTS over %d tournaments (%d matches) ===\n", report.Tournaments, report.Matches)
	fmt.Fprintf(w, "%-14s %6s %8s %8s %8s %18s %7s %7s\n",
		"Strategy", "Seats", "Mean", "Median", "StdDev", "95% CI", "Win%", "First%")

	for _, ss := range report.Strategies() {
		low, high := ss.Points.ConfidenceInterval95()
		fmt.Fprintf(w, "%-14s %6d %8.3f %8.3f %8.3f %18s %6.1f%% %6.1f%%\n",
			ss.Strategy, ss.Seats, ss.Points.Mean(), ss.Points.Median(), ss.Points.StdDev(),
			fmt.Sprintf("[%.3f, %.3f]", low, high), ss.WinRate()*100, ss.FirstRate()*100)
	}

	fmt.Fprintf(w, "\n=== POINT PERCENTILES ===\n")
	for _, ss := range report.Strategies() {
		p := &ss.Points
		fmt.Fprintf(w, "%-14s P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n", ss.Strategy,
			p.Percentile(0.05), p.Percentile(0.25), p.Percentile(0.75), p.Percentile(0.95))
	}
}
