package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack-tournament/internal/bot"
	"github.com/lox/blackjack-tournament/internal/deck"
	"github.com/lox/blackjack-tournament/internal/game"
	"github.com/lox/blackjack-tournament/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// newMatch seats a human against a Beginner. Both open on 17 and the
// Beginner's hole card is the 8.
func newMatch(bus game.EventBus) *game.Match {
	return game.NewMatch("m1",
		game.NewHuman("You"),
		game.NewComputer("Bot", bot.NewBeginner()),
		deck.NewStacked(deck.MustParseCards("Ts 9h 7c 8d")...),
		game.WithEventBus(bus),
		game.WithLogger(quietLogger()),
	)
}

func newHub(bus game.EventBus, m **game.Match) *Hub {
	hub := NewHub(func(id string) *game.Match {
		if *m != nil && (*m).ID() == id {
			return *m
		}
		return nil
	}, quietLogger())
	bus.Subscribe(hub)
	return hub
}

func TestSnapshotHidesHoleCard(t *testing.T) {
	bus := game.NewEventBus()
	var m *game.Match
	hub := newHub(bus, &m)
	m = newMatch(bus)

	assert.Nil(t, hub.Latest())
	require.NoError(t, m.Start())

	snap := hub.Latest()
	require.NotNil(t, snap)
	assert.Equal(t, "m1", snap.ID)
	assert.Equal(t, "You", snap.Turn)
	assert.Equal(t, "Your turn! Choose to Hit or Stand.", snap.Status)

	assert.Len(t, snap.P1.Cards, 2)
	assert.Equal(t, 17, snap.P1.Value)
	assert.False(t, snap.P1.Partial)

	assert.Equal(t, []string{deck.MustParseCards("9h")[0].String()}, snap.P2.Cards)
	assert.Equal(t, 1, snap.P2.Hidden)
	assert.Equal(t, 9, snap.P2.Value)
	assert.True(t, snap.P2.Partial)
	assert.Equal(t, "9 + ?", snap.P2.Display)
	assert.Equal(t, "Beginner", snap.P2.Strategy)

	require.NoError(t, m.Stand())
	snap = hub.Latest()
	assert.Len(t, snap.P2.Cards, 2)
	assert.Equal(t, 17, snap.P2.Value)
	assert.Equal(t, "Bot", snap.Turn)
}

func TestSnapshotComputersOnlyShowsEverything(t *testing.T) {
	m := game.NewMatch("m2",
		game.NewComputer("A", bot.NewBeginner()),
		game.NewComputer("B", bot.NewBeginner()),
		deck.NewStacked(deck.MustParseCards("Ts 9h 7c 8d")...),
		game.WithLogger(quietLogger()),
	)
	require.NoError(t, m.Start())

	snap := Snapshot(m)
	assert.Len(t, snap.P2.Cards, 2)
	assert.Zero(t, snap.P2.Hidden)
	assert.Equal(t, "17", snap.P2.Display)
}

func TestHTTPRoutes(t *testing.T) {
	bus := game.NewEventBus()
	var m *game.Match
	hub := newHub(bus, &m)

	ledger := scoring.NewLedger("You", "Bot")
	_, err := ledger.Record(scoring.Outcome{P1: "You", P2: "Bot", Winner: "Bot", Loser: "You", WinnerValue: 20, LoserValue: 18})
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(":0", hub, ledger, quietLogger()).Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(ts.URL + "/api/match")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/ranking")
	require.NoError(t, err)
	var ranking []scoring.Standing
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ranking))
	resp.Body.Close()
	require.Len(t, ranking, 2)
	assert.Equal(t, "Bot", ranking[0].Name)
	assert.Equal(t, 1, ranking[0].Wins)

	m = newMatch(bus)
	require.NoError(t, m.Start())

	resp, err = http.Get(ts.URL + "/api/match")
	require.NoError(t, err)
	var snap MatchSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "m1", snap.ID)
	assert.Equal(t, 1, snap.P2.Hidden)
}

func TestWebSocketStreamsMatch(t *testing.T) {
	bus := game.NewEventBus()
	var m *game.Match
	hub := newHub(bus, &m)

	ts := httptest.NewServer(NewServer(":0", hub, nil, quietLogger()).Routes())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() Frame {
		t.Helper()
		var f Frame
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&f))
		return f
	}

	greeting := read()
	assert.Equal(t, FrameSnapshot, greeting.Type)
	assert.Nil(t, greeting.Match)
	assert.Equal(t, 1, hub.Clients())

	m = newMatch(bus)
	require.NoError(t, m.Start())
	require.NoError(t, m.Stand())
	require.NoError(t, m.PlayComputerTurn())

	var frames []Frame
	for range 6 {
		frames = append(frames, read())
	}
	types := make([]string, len(frames))
	for i, f := range frames {
		types[i] = f.Type
		assert.Equal(t, "m1", f.MatchID)
	}
	assert.Equal(t, []string{
		FrameMatchStarted, FrameStateChanged,
		FrameStateChanged,
		FrameDecision, FrameStateChanged, FrameMatchEnded,
	}, types)

	assert.Equal(t, 1, frames[0].Match.P2.Hidden, "hole card hidden at the deal")
	require.NotNil(t, frames[3].Decision)
	assert.Equal(t, "Bot", frames[3].Decision.Participant)
	assert.Equal(t, "stand", frames[3].Decision.Move)
	assert.Nil(t, frames[3].Match)

	end := frames[5]
	require.NotNil(t, end.Result)
	assert.True(t, end.Result.Tie)
	assert.Equal(t, 17, end.Result.P1Value)
	assert.Equal(t, "It's a tie!", end.Match.Status)
}

func TestWebSocketDisconnectUnregisters(t *testing.T) {
	bus := game.NewEventBus()
	var m *game.Match
	hub := newHub(bus, &m)

	ts := httptest.NewServer(NewServer(":0", hub, nil, quietLogger()).Routes())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)

	var greeting Frame
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, 1, hub.Clients())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHubCloseSendsNormalClosure(t *testing.T) {
	bus := game.NewEventBus()
	var m *game.Match
	hub := newHub(bus, &m)

	ts := httptest.NewServer(NewServer(":0", hub, nil, quietLogger()).Routes())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var greeting Frame
	require.NoError(t, conn.ReadJSON(&greeting))

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
