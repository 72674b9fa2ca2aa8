// Package tui is the interactive terminal front end for a tournament with
// a human participant.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-tournament/internal/scoring"
)

// Actions a human can send to the game loop
const (
	ActionHit      = "hit"
	ActionStand    = "stand"
	ActionContinue = "continue"
	ActionQuit     = "quit"
)

const sidebarWidth = 30

// ActionResult represents the result of a user action
type ActionResult struct {
	Action string
	Error  error
}

// TUIModel represents the Bubble Tea model for a tournament
type TUIModel struct {
	logger *log.Logger
	title  string

	// UI components
	logViewport viewport.Model
	keys        keyMap
	help        help.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool

	table         *tableView
	ranking       []scoring.Standing
	played, total int
	round         int
	prompt        promptKind
	finished      *FinishedMsg

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, title string) *TUIModel {
	return NewTUIModelWithOptions(logger, title, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, title string, testMode bool) *TUIModel {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &TUIModel{
		logger:       logger.WithPrefix("tui"),
		title:        title,
		logViewport:  vp,
		keys:         defaultKeyMap(),
		help:         help.New(),
		gameLog:      []string{},
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		testMode:     testMode,
		capturedLog:  []string{},
	}
	m.setPrompt(promptNone)
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return m.listenForQuit()
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tableMsg:
		table := msg.table
		m.table = &table

	case logMsg:
		for _, line := range msg.lines {
			m.AddLogEntry(line)
		}

	case rankingMsg:
		m.ranking = msg.ranking
		m.played, m.total, m.round = msg.played, msg.total, msg.round

	case promptMsg:
		m.setPrompt(msg.kind)

	case FinishedMsg:
		m.finished = &msg
		m.ranking = msg.Summary.Ranking
		m.played, m.total = msg.Summary.MatchesPlayed, msg.Summary.TotalMatches
		m.setPrompt(promptNone)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *TUIModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sendAction(ActionQuit)
		return tea.Quit

	case m.finished != nil && key.Matches(msg, m.keys.Continue):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Hit) && m.prompt == promptMove:
		m.setPrompt(promptNone)
		m.sendAction(ActionHit)

	case key.Matches(msg, m.keys.Stand) && m.prompt == promptMove:
		m.setPrompt(promptNone)
		m.sendAction(ActionStand)

	case key.Matches(msg, m.keys.Continue) && m.prompt == promptContinue:
		m.setPrompt(promptNone)
		m.sendAction(ActionContinue)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
	}
	return nil
}

func (m *TUIModel) setPrompt(kind promptKind) {
	m.prompt = kind
	m.keys.Hit.SetEnabled(kind == promptMove)
	m.keys.Stand.SetEnabled(kind == promptMove)
	m.keys.Continue.SetEnabled(kind == promptContinue || m.finished != nil)
}

// sendAction never blocks the UI. An action nobody is waiting for is
// dropped.
func (m *TUIModel) sendAction(action string) {
	select {
	case m.actionResult <- ActionResult{Action: action}:
	default:
		m.logger.Debug("Dropping action", "action", action)
	}
}

// WaitForAction waits for user input (for use by the game loop)
func (m *TUIModel) WaitForAction(ctx context.Context) (ActionResult, error) {
	select {
	case result := <-m.actionResult:
		return result, result.Error
	case <-ctx.Done():
		return ActionResult{}, ctx.Err()
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	actionContent := m.renderActionPane()
	actionPane := activePaneStyle.
		Width(max(m.width-2, 1)).
		Render(actionContent)

	tableContent := m.renderTablePane()
	leftWidth := max(m.width-sidebarWidth-4, 1)
	tablePane := paneStyle.Width(leftWidth).Render(tableContent)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(actionPane)
	logHeight := max(bodyHeight-lipgloss.Height(tablePane)-2, 1)

	m.logViewport.Width = leftWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := paneStyle.Width(leftWidth).Height(logHeight).Render(m.logViewport.View())

	sidebarPane := paneStyle.
		Width(sidebarWidth).
		Height(max(bodyHeight-2, 1)).
		Render(m.renderSidebarPane())

	left := lipgloss.JoinVertical(lipgloss.Left, tablePane, logPane)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, actionPane)
}

func (m *TUIModel) renderHeader() string {
	progress := "Lobby"
	switch {
	case m.finished != nil:
		progress = fmt.Sprintf("Finished %d of %d matches", m.played, m.total)
	case m.total > 0:
		progress = fmt.Sprintf("Match %d of %d · Round %d", min(m.played+1, m.total), m.total, m.round)
	}
	return HeaderStyle.Render("♠ "+m.title) + " " + InfoStyle.Render(progress)
}

// renderTablePane renders both hands and the match status
func (m *TUIModel) renderTablePane() string {
	if m.table == nil {
		return InfoStyle.Render("Waiting for the first deal...")
	}

	var content strings.Builder
	for _, seat := range []seatView{m.table.P1, m.table.P2} {
		name := fmt.Sprintf("%-16s", seat.Name)
		if seat.Human {
			name = HumanStyle.Render(name)
		}
		content.WriteString(name)
		content.WriteString(" ")
		content.WriteString(formatCards(seat.Cards, seat.Hidden))
		content.WriteString("  ")
		content.WriteString(HandInfoStyle.Render(seat.Display))
		switch {
		case seat.Bust:
			content.WriteString(" " + ErrorStyle.Render("BUST"))
		case seat.Standing:
			content.WriteString(" " + InfoStyle.Render("(stands)"))
		}
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(WarningStyle.Render(m.table.Status))
	return content.String()
}

// renderSidebarPane renders the current standings
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder
	content.WriteString(TitleStyle.Render("Standings"))
	content.WriteString("\n\n")

	if len(m.ranking) == 0 {
		content.WriteString(InfoStyle.Render("No results yet"))
		return content.String()
	}
	for i, st := range m.ranking {
		line := fmt.Sprintf("%d. %-14s %6.2f", i+1, truncate(st.Name, 14), st.Points)
		if m.isHuman(st.Name) {
			line = HumanStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(fmt.Sprintf("   %d wins, streak %d", st.Wins, st.Streak)))
		content.WriteString("\n")
	}
	return content.String()
}

// renderActionPane renders what the human can do right now
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.finished != nil:
		content.WriteString(m.renderFinished())
	case m.prompt == promptMove:
		content.WriteString(ActionsStyle.Render("Your turn! [h] Hit  [s] Stand"))
	case m.prompt == promptContinue:
		content.WriteString(ActionsStyle.Render("Press enter for the next match"))
	default:
		content.WriteString(HandInfoStyle.Render("Waiting..."))
	}
	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))
	return content.String()
}

func (m *TUIModel) renderFinished() string {
	s := m.finished.Summary
	var lines []string

	if s.Abandoned {
		lines = append(lines, WarningStyle.Render("Tournament abandoned"))
	} else {
		lines = append(lines, SuccessStyle.Render(fmt.Sprintf("Tournament complete! %s wins.", s.Winner())))
	}
	if place := s.HumanPlace(); place > 0 {
		lines = append(lines, fmt.Sprintf("%s finished %s of %d with %.2f points and %d wins.",
			s.Human, ordinal(place), s.RosterSize, s.HumanPoints, s.HumanWins))
	}
	if err := m.finished.Err; err != nil && !s.Abandoned {
		lines = append(lines, ErrorStyle.Render("Error: "+err.Error()))
	}
	lines = append(lines, InfoStyle.Render("Press enter or q to exit"))
	return strings.Join(lines, "\n")
}

func (m *TUIModel) isHuman(name string) bool {
	if m.finished != nil {
		return m.finished.Summary.Human == name
	}
	if m.table == nil {
		return false
	}
	return (m.table.P1.Human && m.table.P1.Name == name) || (m.table.P2.Human && m.table.P2.Name == name)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	// In test mode, also capture the log entry
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return // Skip UI updates in test mode
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	// Return a copy to prevent modification
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *TUIModel) InjectAction(action string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Action: action}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
