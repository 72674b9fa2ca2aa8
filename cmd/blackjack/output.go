package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack-tournament/internal/leaderboard"
	"github.com/lox/blackjack-tournament/internal/tournament"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// printSummary writes the final standings of a tournament
func printSummary(w io.Writer, s tournament.Summary) {
	fmt.Fprintln(w, titleStyle.Render(" ♠ ♥ Tournament Results ♦ ♣ "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-4s %-20s %8s %5s", "#", "Player", "Points", "Wins")))

	for i, st := range s.Ranking {
		line := fmt.Sprintf("%-4d %-20s %8.2f %5d", i+1, st.Name, st.Points, st.Wins)
		if i == 0 {
			line = winnerStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	if place := s.HumanPlace(); place > 0 {
		fmt.Fprintf(w, "%s finished #%d of %d with %.2f points.\n", s.Human, place, s.RosterSize, s.HumanPoints)
	}
	played := fmt.Sprintf("%d of %d matches", s.MatchesPlayed, s.TotalMatches)
	if s.Aborted > 0 {
		played += fmt.Sprintf(" (%d aborted)", s.Aborted)
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s in %s · seed %d · tournament %s",
		played, s.Elapsed.Round(time.Millisecond), s.Seed, s.ID)))
}

// printEntries writes leaderboard entries as a table
func printEntries(w io.Writer, entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tournaments recorded yet."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-4s %-18s %8s %-10s %7s %6s %6s  %-16s",
		"#", "Player", "Score", "Difficulty", "Players", "Wins", "Place", "Date")))
	for i, e := range entries {
		fmt.Fprintf(w, "%-4d %-18s %8.2f %-10s %7d %6s %6d  %-16s\n",
			i+1, truncate(e.PlayerName, 18), e.Score, e.Difficulty, e.PlayerCount,
			fmt.Sprintf("%d/%d", e.Wins, e.TotalGames), e.Place, e.Date.Local().Format("2006-01-02 15:04"))
	}
}

// printStats writes leaderboard totals
func printStats(w io.Writer, s leaderboard.Stats) {
	fmt.Fprintln(w, titleStyle.Render(" Leaderboard Stats "))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tournaments played: %d\n", s.TotalTournaments)
	fmt.Fprintf(w, "Best score:         %.2f\n", s.BestScore)
	fmt.Fprintf(w, "Average win rate:   %d%%\n", s.WinRate)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
