package game

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/card"
)

func cardFixture() card.Card { return card.New("fixture", nil) }

// recordingRules captures hook invocations for assertions.
type recordingRules struct {
	started     int
	ended       int
	turnChanges []uuid.UUID
	startErr    error
}

func (r *recordingRules) OnStart(g *Game) error { r.started++; return r.startErr }
func (r *recordingRules) OnEnd(g *Game)         { r.ended++ }
func (r *recordingRules) OnTurnChanged(g *Game, current *Player) {
	r.turnChanges = append(r.turnChanges, current.ID())
}

func newTestGame(t *testing.T, min, max int) (*Game, *recordingRules) {
	t.Helper()
	rules := &recordingRules{}
	return New(Config{MinPlayers: min, MaxPlayers: max}, rules), rules
}

func seatPlayers(t *testing.T, g *Game, n int) []*Player {
	t.Helper()
	out := make([]*Player, n)
	for i := range out {
		out[i] = NewPlayer("p" + string(rune('0'+i)))
		require.NoError(t, g.AddPlayer(out[i]))
	}
	return out
}

func TestSetupToReadyAtMinPlayers(t *testing.T) {
	g, _ := newTestGame(t, 2, 4)
	require.Equal(t, StateSetup, g.State())

	require.NoError(t, g.AddPlayer(NewPlayer("a")))
	assert.Equal(t, StateSetup, g.State(), "below min stays in setup")

	require.NoError(t, g.AddPlayer(NewPlayer("b")))
	assert.Equal(t, StateReady, g.State())
}

func TestReadyBackToSetupOnRemoval(t *testing.T) {
	g, _ := newTestGame(t, 2, 4)
	players := seatPlayers(t, g, 2)
	require.Equal(t, StateReady, g.State())

	require.NoError(t, g.RemovePlayer(players[0].ID()))
	assert.Equal(t, StateSetup, g.State())
}

func TestStartRequiresReady(t *testing.T) {
	g, rules := newTestGame(t, 2, 4)
	seatPlayers(t, g, 1)

	err := g.Start()
	require.ErrorIs(t, err, ErrStateConflict)
	assert.Zero(t, rules.started)
}

func TestStartFiresEventAndHook(t *testing.T) {
	g, rules := newTestGame(t, 2, 4)
	seatPlayers(t, g, 2)

	var events []EventType
	g.On(EventGameStarted, func(ev Event) { events = append(events, ev.Type) })
	g.On(EventStateChanged, func(ev Event) { events = append(events, ev.Type) })

	require.NoError(t, g.Start())
	assert.Equal(t, StatePlaying, g.State())
	assert.Equal(t, 1, rules.started)
	assert.Equal(t, 0, g.CurrentTurn())
	assert.False(t, g.StartedAt().IsZero())
	assert.Contains(t, events, EventGameStarted)
	assert.Contains(t, events, EventStateChanged)
}

func TestStartHookFailureLeavesNoTrace(t *testing.T) {
	g, rules := newTestGame(t, 1, 4)
	seatPlayers(t, g, 1)
	rules.startErr = errors.New("table not ready")

	var events []EventType
	g.On(EventGameStarted, func(ev Event) { events = append(events, ev.Type) })
	g.On(EventStateChanged, func(ev Event) { events = append(events, ev.Type) })

	require.Error(t, g.Start())
	assert.Equal(t, StateReady, g.State())
	assert.True(t, g.StartedAt().IsZero())
	assert.Empty(t, events, "listeners must not observe a start that never happened")

	rules.startErr = nil
	require.NoError(t, g.Start())
	assert.Equal(t, StatePlaying, g.State())
}

func TestAddRemoveIllegalAfterStart(t *testing.T) {
	g, _ := newTestGame(t, 2, 4)
	players := seatPlayers(t, g, 2)
	require.NoError(t, g.Start())

	assert.ErrorIs(t, g.AddPlayer(NewPlayer("late")), ErrStateConflict)
	assert.ErrorIs(t, g.RemovePlayer(players[0].ID()), ErrStateConflict)
}

func TestDuplicateAndOverflowSeating(t *testing.T) {
	g, _ := newTestGame(t, 1, 2)
	players := seatPlayers(t, g, 2)

	assert.ErrorIs(t, g.AddPlayer(players[0]), ErrStateConflict, "table is full first")

	g2, _ := newTestGame(t, 1, 4)
	require.NoError(t, g2.AddPlayer(players[0]))
	assert.ErrorIs(t, g2.AddPlayer(players[0]), ErrInvalidArgument)
}

func TestPauseResumeCycle(t *testing.T) {
	g, _ := newTestGame(t, 1, 4)
	seatPlayers(t, g, 1)
	require.NoError(t, g.Start())

	assert.ErrorIs(t, g.Resume(), ErrStateConflict, "resume only from paused")
	require.NoError(t, g.Pause())
	assert.ErrorIs(t, g.Pause(), ErrStateConflict)
	require.NoError(t, g.Resume())
	assert.Equal(t, StatePlaying, g.State())
}

func TestEndOnlyOnceAndOnlyAfterStart(t *testing.T) {
	g, rules := newTestGame(t, 1, 4)
	seatPlayers(t, g, 1)

	assert.ErrorIs(t, g.End(), ErrStateConflict, "never started")

	require.NoError(t, g.Start())
	require.NoError(t, g.End())
	assert.Equal(t, 1, rules.ended)
	assert.ErrorIs(t, g.End(), ErrStateConflict, "already ended")
}

func TestNextTurnWraps(t *testing.T) {
	g, rules := newTestGame(t, 3, 4)
	players := seatPlayers(t, g, 3)
	require.NoError(t, g.Start())

	require.NoError(t, g.NextTurn())
	require.NoError(t, g.NextTurn())
	assert.Equal(t, 2, g.CurrentTurn())
	require.NoError(t, g.NextTurn())
	assert.Equal(t, 0, g.CurrentTurn(), "wraps to seat 0")
	assert.Equal(t, []uuid.UUID{players[1].ID(), players[2].ID(), players[0].ID()}, rules.turnChanges)
}

func TestSetCurrentPlayerBounds(t *testing.T) {
	g, _ := newTestGame(t, 2, 4)
	seatPlayers(t, g, 2)
	require.NoError(t, g.Start())

	require.NoError(t, g.SetCurrentPlayer(1))
	assert.Equal(t, 1, g.CurrentTurn())
	assert.ErrorIs(t, g.SetCurrentPlayer(2), ErrInvalidArgument)
	assert.ErrorIs(t, g.SetCurrentPlayer(-1), ErrInvalidArgument)
}

func TestResultOnlyWhenEnded(t *testing.T) {
	g, _ := newTestGame(t, 1, 4)
	players := seatPlayers(t, g, 2)
	players[0].AddScore(100)

	_, err := g.Result()
	require.ErrorIs(t, err, ErrStateConflict)

	require.NoError(t, g.Start())
	require.NoError(t, g.End())

	res, err := g.Result()
	require.NoError(t, err)
	assert.Equal(t, g.ID(), res.GameID)
	require.Len(t, res.Players, 2)
	assert.Equal(t, 100, res.Players[0].Score)
	assert.False(t, res.EndedAt.Before(res.StartedAt))
}

func TestListenersFireInOrderAndOffRemoves(t *testing.T) {
	g, _ := newTestGame(t, 1, 4)

	var order []int
	g.On(EventPlayerJoined, func(Event) { order = append(order, 1) })
	second := g.On(EventPlayerJoined, func(Event) { order = append(order, 2) })
	g.On(EventPlayerJoined, func(Event) { order = append(order, 3) })

	require.NoError(t, g.AddPlayer(NewPlayer("a")))
	assert.Equal(t, []int{1, 2, 3}, order)

	g.Off(EventPlayerJoined, second)
	order = nil
	require.NoError(t, g.AddPlayer(NewPlayer("b")))
	assert.Equal(t, []int{1, 3}, order)
}

func TestPlayerResetSemantics(t *testing.T) {
	p := NewPlayer("a")
	p.Hand.TryAdd(cardFixture())
	p.Status = StatusFolded
	p.AddScore(5)

	p.Reset()
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, 0, p.Hand.Size())
	assert.Equal(t, 5, p.Score, "reset keeps score between rounds")

	p.AddScore(1)
	p.FullReset()
	assert.Equal(t, 0, p.Score)
}
