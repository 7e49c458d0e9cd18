// Package game holds the shared skeleton of every table game: players, the
// lifecycle state machine, turn rotation and the event bus. Rule engines
// specialize it through the Rules hooks.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State is a lifecycle phase. The only cycle is Playing ↔ Paused; every
// other legal transition moves forward.
type State string

const (
	StateSetup   State = "setup"
	StateReady   State = "ready"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// Rules is the fixed hook surface a rule engine implements. The lifecycle
// driver calls the hooks synchronously at the named points.
type Rules interface {
	// OnStart runs after the game enters Playing, with the turn index at
	// 0. Engines deal initial cards and seat state here. A returned error
	// aborts Start and the game stays Ready.
	OnStart(g *Game) error

	// OnEnd runs after the game enters Ended.
	OnEnd(g *Game)

	// OnTurnChanged runs after the turn index advances, with the player
	// whose turn begins.
	OnTurnChanged(g *Game, current *Player)
}

// Config bounds the seat count and carries the shared logger.
type Config struct {
	MinPlayers int
	MaxPlayers int
	Logger     logrus.FieldLogger
}

// Game is the lifecycle holder shared by every rule engine.
type Game struct {
	id      uuid.UUID
	state   State
	players []*Player
	turn    int

	minPlayers int
	maxPlayers int

	startedAt time.Time
	endedAt   time.Time

	rules Rules
	log   logrus.FieldLogger

	listeners    map[EventType][]listenerEntry
	nextListener ListenerID
}

// New builds a game in Setup with no players attached.
func New(cfg Config, rules Rules) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New()
	return &Game{
		id:         id,
		state:      StateSetup,
		minPlayers: cfg.MinPlayers,
		maxPlayers: cfg.MaxPlayers,
		rules:      rules,
		log:        logger.WithField("game_id", id),
		listeners:  make(map[EventType][]listenerEntry),
	}
}

func (g *Game) ID() uuid.UUID        { return g.id }
func (g *Game) State() State         { return g.state }
func (g *Game) StartedAt() time.Time { return g.startedAt }
func (g *Game) EndedAt() time.Time   { return g.endedAt }

// HasStarted reports whether the game ever left the pre-start states.
func (g *Game) HasStarted() bool {
	return g.state == StatePlaying || g.state == StatePaused || g.state == StateEnded
}

// Players returns the attached players in seat order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// PlayerCount returns the number of attached players.
func (g *Game) PlayerCount() int { return len(g.players) }

// Player looks a player up by id.
func (g *Game) Player(id uuid.UUID) (*Player, bool) {
	for _, p := range g.players {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// RequirePlayer looks a player up by id, hard-erroring on a miss.
func (g *Game) RequirePlayer(id uuid.UUID) (*Player, error) {
	p, ok := g.Player(id)
	if !ok {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, id)
	}
	return p, nil
}

// setState records a transition and notifies listeners.
func (g *Game) setState(to State) {
	from := g.state
	g.state = to
	g.log.WithFields(logrus.Fields{"from": from, "to": to}).Info("state changed")
	g.emit(EventStateChanged, map[string]any{"from": from, "to": to})
}

// AddPlayer attaches a player. Legal only before the game starts, below the
// seat limit, and with a fresh id. Reaching minPlayers flips Setup → Ready.
func (g *Game) AddPlayer(p *Player) error {
	if g.HasStarted() {
		return fmt.Errorf("%w: add player: game is %s", ErrStateConflict, g.state)
	}
	if g.maxPlayers > 0 && len(g.players) >= g.maxPlayers {
		return fmt.Errorf("%w: add player: table seats %d", ErrStateConflict, g.maxPlayers)
	}
	if _, ok := g.Player(p.ID()); ok {
		return fmt.Errorf("%w: player %s already seated", ErrInvalidArgument, p.ID())
	}
	g.players = append(g.players, p)
	g.emit(EventPlayerJoined, map[string]any{"player": p.ID(), "name": p.Name})
	if g.state == StateSetup && len(g.players) >= g.minPlayers {
		g.setState(StateReady)
	}
	return nil
}

// RemovePlayer detaches a player. Legal only before the game starts.
// Dropping below minPlayers flips Ready → Setup.
func (g *Game) RemovePlayer(id uuid.UUID) error {
	if g.HasStarted() {
		return fmt.Errorf("%w: remove player: game is %s", ErrStateConflict, g.state)
	}
	for i, p := range g.players {
		if p.ID() == id {
			g.players = append(g.players[:i], g.players[i+1:]...)
			g.emit(EventPlayerLeft, map[string]any{"player": id})
			if g.state == StateReady && len(g.players) < g.minPlayers {
				g.setState(StateSetup)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: player %s", ErrNotFound, id)
}

// Start moves Ready → Playing: records the start time, resets the turn
// index and runs the engine's OnStart hook. Listeners are notified only
// once the hook succeeds, so a failed start is invisible to them and can
// be retried.
func (g *Game) Start() error {
	if g.state != StateReady {
		return fmt.Errorf("%w: start: game is %s (need %d players and state %s)",
			ErrStateConflict, g.state, g.minPlayers, StateReady)
	}
	g.startedAt = time.Now()
	g.turn = 0
	if g.rules != nil {
		if err := g.rules.OnStart(g); err != nil {
			g.startedAt = time.Time{}
			return err
		}
	}
	g.setState(StatePlaying)
	g.emit(EventGameStarted, map[string]any{"players": len(g.players)})
	return nil
}

// Pause moves Playing → Paused.
func (g *Game) Pause() error {
	if g.state != StatePlaying {
		return fmt.Errorf("%w: pause: game is %s", ErrStateConflict, g.state)
	}
	g.setState(StatePaused)
	g.emit(EventGamePaused, nil)
	return nil
}

// Resume moves Paused → Playing.
func (g *Game) Resume() error {
	if g.state != StatePaused {
		return fmt.Errorf("%w: resume: game is %s", ErrStateConflict, g.state)
	}
	g.setState(StatePlaying)
	g.emit(EventGameResumed, nil)
	return nil
}

// End moves Playing or Paused → Ended: records the end time, notifies
// listeners and runs the engine's OnEnd hook.
func (g *Game) End() error {
	if g.state != StatePlaying && g.state != StatePaused {
		return fmt.Errorf("%w: end: game is %s", ErrStateConflict, g.state)
	}
	g.endedAt = time.Now()
	g.setState(StateEnded)
	g.emit(EventGameEnded, map[string]any{"started_at": g.startedAt, "ended_at": g.endedAt})
	if g.rules != nil {
		g.rules.OnEnd(g)
	}
	return nil
}

// CurrentTurn returns the current turn index.
func (g *Game) CurrentTurn() int { return g.turn }

// CurrentPlayer returns the player whose turn it is, or nil when no players
// are attached.
func (g *Game) CurrentPlayer() *Player {
	if len(g.players) == 0 || g.turn >= len(g.players) {
		return nil
	}
	return g.players[g.turn]
}

// NextTurn advances the turn index modulo the player count, wrapping back
// to seat 0, then notifies listeners and the engine.
func (g *Game) NextTurn() error {
	if g.state != StatePlaying {
		return fmt.Errorf("%w: next turn: game is %s", ErrStateConflict, g.state)
	}
	g.turn = (g.turn + 1) % len(g.players)
	current := g.players[g.turn]
	g.emit(EventTurnChanged, map[string]any{"turn": g.turn, "player": current.ID()})
	if g.rules != nil {
		g.rules.OnTurnChanged(g, current)
	}
	return nil
}

// SetCurrentPlayer jumps the turn directly to seat idx.
func (g *Game) SetCurrentPlayer(idx int) error {
	if idx < 0 || idx >= len(g.players) {
		return fmt.Errorf("%w: turn index %d with %d players", ErrInvalidArgument, idx, len(g.players))
	}
	g.turn = idx
	current := g.players[idx]
	g.emit(EventTurnChanged, map[string]any{"turn": idx, "player": current.ID()})
	if g.rules != nil {
		g.rules.OnTurnChanged(g, current)
	}
	return nil
}

// Log returns the game's logger, tagged with its id.
func (g *Game) Log() logrus.FieldLogger { return g.log }

// PlayerResult is one line of a final result.
type PlayerResult struct {
	ID    uuid.UUID
	Name  string
	Score int
}

// Result is the final outcome, available once the game has ended.
type Result struct {
	GameID    uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Players   []PlayerResult
}

// Result reports the final scores. Legal only once Ended.
func (g *Game) Result() (Result, error) {
	if g.state != StateEnded {
		return Result{}, fmt.Errorf("%w: result: game is %s", ErrStateConflict, g.state)
	}
	res := Result{GameID: g.id, StartedAt: g.startedAt, EndedAt: g.endedAt}
	for _, p := range g.players {
		res.Players = append(res.Players, PlayerResult{ID: p.ID(), Name: p.Name, Score: p.Score})
	}
	return res, nil
}
