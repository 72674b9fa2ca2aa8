// Package statistics aggregates results across many simulated tournaments.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/lox/blackjack-tournament/internal/tournament"
)

// Statistics accumulates a series of observations
type Statistics struct {
	N      int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add incorporates one observation
func (s *Statistics) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Statistics) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return math.Max(0, (s.SumSq-float64(s.N)*mean*mean)/float64(s.N-1))
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at p (0.0 to 1.0), interpolating between
// neighbouring observations.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// StrategyStats is the record of one strategy across tournaments. A
// strategy seated twice in a tournament contributes two observations.
type StrategyStats struct {
	Strategy string
	Points   Statistics
	Seats    int
	Firsts   int
	Matches  int
	Wins     int
}

// WinRate returns match wins over matches played
func (s *StrategyStats) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches)
}

// FirstRate returns how often a seat with this strategy topped the ranking
func (s *StrategyStats) FirstRate() float64 {
	if s.Seats == 0 {
		return 0
	}
	return float64(s.Firsts) / float64(s.Seats)
}

// Report aggregates tournaments by strategy
type Report struct {
	Tournaments int
	Matches     int
	strategies  map[string]*StrategyStats
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{strategies: make(map[string]*StrategyStats)}
}

// AddTournament folds a finished tournament into the report. strategyOf
// maps participant names to strategy names.
func (r *Report) AddTournament(s tournament.Summary, strategyOf map[string]string) error {
	games := s.RosterSize - 1
	for i, st := range s.Ranking {
		name, ok := strategyOf[st.Name]
		if !ok {
			return fmt.Errorf("no strategy recorded for %q", st.Name)
		}
		ss := r.strategies[name]
		if ss == nil {
			ss = &StrategyStats{Strategy: name}
			r.strategies[name] = ss
		}
		ss.Points.Add(st.Points)
		ss.Seats++
		ss.Matches += games
		ss.Wins += st.Wins
		if i == 0 {
			ss.Firsts++
		}
	}
	r.Tournaments++
	r.Matches += s.MatchesPlayed
	return nil
}

// Strategies returns every strategy, best mean points first
func (r *Report) Strategies() []*StrategyStats {
	out := make([]*StrategyStats, 0, len(r.strategies))
	for _, ss := range r.strategies {
		out = append(out, ss)
	}
	slices.SortFunc(out, func(a, b *StrategyStats) int {
		switch {
		case a.Points.Mean() > b.Points.Mean():
			return -1
		case a.Points.Mean() < b.Points.Mean():
			return 1
		}
		if a.Strategy < b.Strategy {
			return -1
		}
		if a.Strategy > b.Strategy {
			return 1
		}
		return 0
	})
	return out
}

// Validate checks the report's accounting
func (r *Report) Validate() error {
	for _, ss := range r.strategies {
		if ss.Points.N != ss.Seats {
			return fmt.Errorf("%s: %d point observations for %d seats", ss.Strategy, ss.Points.N, ss.Seats)
		}
		if ss.Wins > ss.Matches {
			return fmt.Errorf("%s: wins (%d) exceed matches (%d)", ss.Strategy, ss.Wins, ss.Matches)
		}
		if ss.Firsts > r.Tournaments {
			return fmt.Errorf("%s: firsts (%d) exceed tournaments (%d)", ss.Strategy, ss.Firsts, r.Tournaments)
		}
	}
	return nil
}
