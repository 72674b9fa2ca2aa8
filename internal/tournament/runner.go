package tournament

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/scoring"
)

// HumanInput supplies moves for human participants. Returning ErrQuit
// abandons the tournament.
type HumanInput interface {
	Decide(ctx context.Context, m *game.Match, p *game.Participant) (game.Move, error)
}

// HumanInputFunc adapts a function to HumanInput
type HumanInputFunc func(ctx context.Context, m *game.Match, p *game.Participant) (game.Move, error)

// Decide calls f
func (f HumanInputFunc) Decide(ctx context.Context, m *game.Match, p *game.Participant) (game.Move, error) {
	return f(ctx, m, p)
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithPacer delays computer moves
func WithPacer(p *Pacer) RunnerOption {
	return func(r *Runner) {
		r.pacer = p
	}
}

// WithHumanInput sets where human moves come from
func WithHumanInput(in HumanInput) RunnerOption {
	return func(r *Runner) {
		r.input = in
	}
}

// WithRunnerClock sets the clock used to time the tournament
func WithRunnerClock(clock quartz.Clock) RunnerOption {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithRunnerLogger sets the runner logger
func WithRunnerLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSummaryInfo records the difficulty label and seed in the summary
func WithSummaryInfo(difficulty string, seed int64) RunnerOption {
	return func(r *Runner) {
		r.difficulty = difficulty
		r.seed = seed
	}
}

// WithAfterMatch calls fn after each scored match. An error from fn stops
// the tournament the same way a human quitting does.
func WithAfterMatch(fn func(ctx context.Context, res game.MatchResult) error) RunnerOption {
	return func(r *Runner) {
		r.afterMatch = fn
	}
}

// Runner plays a tournament's matches strictly one after another and
// scores each result.
type Runner struct {
	t      *Tournament
	pacer  *Pacer
	input  HumanInput
	clock  quartz.Clock
	logger *log.Logger

	afterMatch func(ctx context.Context, res game.MatchResult) error

	difficulty string
	seed       int64

	mu     sync.RWMutex
	ledger *scoring.Ledger
}

// NewRunner creates a runner for t
func NewRunner(t *Tournament, opts ...RunnerOption) *Runner {
	r := &Runner{
		t:      t,
		clock:  quartz.NewReal(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		ledger: scoring.NewLedger(t.Roster().Names()...),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("runner").With("tournament", t.ID())
	return r
}

// Tournament returns the tournament being run
func (r *Runner) Tournament() *Tournament { return r.t }

// Ranking returns the current standings. Safe to call from any goroutine.
func (r *Runner) Ranking() []scoring.Standing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.Ranking()
}

// Run plays every remaining match. On cancellation or ErrQuit the rest of
// the schedule is discarded and the partial summary is returned with the
// error.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := r.clock.Now()
	r.logger.Info("Tournament started", "participants", r.t.Roster().Size(),
		"matches", len(r.t.Matches()))

	for {
		if err := ctx.Err(); err != nil {
			return r.summary(start, true), err
		}

		m, err := r.t.NextMatch()
		if errors.Is(err, ErrScheduleExhausted) {
			break
		}
		if err == nil {
			err = r.playMatch(ctx, m)
		}
		switch {
		case errors.Is(err, deck.ErrExhausted):
			r.logger.Error("Match aborted", "match", m.ID(), "error", err)
			continue
		case err != nil:
			r.logger.Warn("Tournament stopped", "error", err)
			return r.summary(start, true), err
		}

		r.record(m.Result())
		if r.afterMatch != nil {
			if err := r.afterMatch(ctx, m.Result()); err != nil {
				r.logger.Warn("Tournament stopped", "error", err)
				return r.summary(start, true), err
			}
		}
	}

	s := r.summary(start, false)
	r.logger.Info("Tournament complete", "winner", s.Winner(),
		"matches", s.MatchesPlayed, "elapsed", s.Elapsed)
	return s, nil
}

func (r *Runner) playMatch(ctx context.Context, m *game.Match) error {
	for !m.IsResolved() {
		p := m.Turn()
		if p.IsHuman() {
			if err := r.humanTurn(ctx, m, p); err != nil {
				return err
			}
			continue
		}

		d, err := m.Decide()
		if err != nil {
			return err
		}
		if err := r.pacer.Pace(ctx); err != nil {
			return err
		}
		if err := m.Apply(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) humanTurn(ctx context.Context, m *game.Match, p *game.Participant) error {
	if r.input == nil {
		return fmt.Errorf("no input configured for human participant %s", p.Name)
	}
	move, err := r.input.Decide(ctx, m, p)
	if err != nil {
		return err
	}

	if move == game.MoveHit {
		err = m.Hit()
	} else {
		err = m.Stand()
	}
	if errors.Is(err, game.ErrInvalidTransition) {
		r.logger.Warn("Ignoring invalid move", "participant", p.Name, "move", move, "error", err)
		return nil
	}
	return err
}

func (r *Runner) record(res game.MatchResult) {
	if res.Aborted {
		return
	}

	o := scoring.Outcome{P1: res.P1.Name, P2: res.P2.Name}
	if w := res.Winner; w != nil {
		o.Winner = w.Name
		o.Loser = res.Loser().Name
		o.WinnerValue = res.WinnerValue()
		o.LoserValue = res.LoserValue()
		o.Natural = res.Natural
	} else {
		o.WinnerValue, o.LoserValue = res.P1Value, res.P2Value
	}

	r.mu.Lock()
	award, err := r.ledger.Record(o)
	r.mu.Unlock()
	if err != nil {
		r.logger.Error("Failed to score match", "match", res.MatchID, "error", err)
		return
	}

	for _, p := range []*game.Participant{res.P1, res.P2} {
		if rec, ok := p.Strategy.(game.OutcomeRecorder); ok {
			rec.RecordOutcome(res.OutcomeFor(p))
		}
	}

	if o.IsTie() {
		r.logger.Info("Match tied", "match", res.MatchID, "p1", o.P1, "p2", o.P2,
			"p1Value", res.P1Value, "p2Value", res.P2Value)
		return
	}
	r.logger.Info("Match won", "match", res.MatchID, "winner", o.Winner, "loser", o.Loser,
		"score", fmt.Sprintf("%d-%d", o.WinnerValue, o.LoserValue),
		"natural", o.Natural, "points", fmt.Sprintf("%.2f", award))
}

func (r *Runner) summary(start time.Time, abandoned bool) Summary {
	played, total := r.t.Progress()
	aborted := r.t.Aborted()
	s := Summary{
		ID:            r.t.ID(),
		RosterSize:    r.t.Roster().Size(),
		Ranking:       r.Ranking(),
		MatchesPlayed: played - aborted,
		Aborted:       aborted,
		TotalMatches:  total,
		Difficulty:    r.difficulty,
		Seed:          r.seed,
		Elapsed:       r.clock.Since(start),
		FinishedAt:    r.clock.Now(),
		Abandoned:     abandoned,
	}
	if h := r.t.Roster().Human(); h != nil {
		s.Human = h.Name
		r.mu.RLock()
		s.HumanWins = r.ledger.Wins(h.Name)
		s.HumanPoints = r.ledger.Points(h.Name)
		r.mu.RUnlock()
	}
	return s
}
