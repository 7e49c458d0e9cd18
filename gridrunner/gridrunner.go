// Package gridrunner implements a race over a square or hex board: players
// spend movement cards to advance, score checkpoints once each, and win by
// reaching a goal cell first.
package gridrunner

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tabletop/card"
	"tabletop/game"
	"tabletop/grid"
	"tabletop/random"
)

// GridType selects the board topology.
type GridType string

const (
	GridSquare GridType = "square"
	GridHex    GridType = "hex"
)

// Goal is a winning cell and the points it pays.
type Goal struct {
	Position grid.Position
	Points   int
}

// Checkpoint is a scoring cell paid once per player.
type Checkpoint struct {
	Position grid.Position
	Points   int
}

// Config holds the match setup.
type Config struct {
	MinPlayers int
	MaxPlayers int

	GridType GridType
	Width    int
	Height   int
	Diagonal bool // square boards only

	StartPositions []grid.Position
	Goals          []Goal
	Blocked        []grid.Position
	Checkpoints    []Checkpoint

	DeckSize    int
	HandSize    int
	Directional bool // pin every card to a compass heading

	Seed   int64 // 0 picks a random seed
	Logger logrus.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.MinPlayers == 0 {
		c.MinPlayers = 2
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = 4
	}
	if c.GridType == "" {
		c.GridType = GridSquare
	}
	if c.Width == 0 {
		c.Width = 8
	}
	if c.Height == 0 {
		c.Height = 8
	}
	if c.DeckSize == 0 {
		c.DeckSize = 40
	}
	if c.HandSize == 0 {
		c.HandSize = 5
	}
	if c.Seed == 0 {
		c.Seed = random.NewSeed()
	}
	return c
}

// MoveResult is the structured outcome of PlayCard. Rejected moves are
// ordinary gameplay, reported with a reason rather than an error, and leave
// all state untouched.
type MoveResult struct {
	Success       bool
	Message       string
	Path          []grid.Position
	PointsAwarded int
	ReachedGoal   bool
}

func reject(format string, args ...any) MoveResult {
	return MoveResult{Message: fmt.Sprintf(format, args...)}
}

// runner is the engine's per-player state, keyed by player id.
type runner struct {
	pos    grid.Position
	scored map[int]bool // checkpoint indices already paid
}

// Game is a gridrunner match.
type Game struct {
	core  *game.Game
	cfg   Config
	rng   *rand.Rand
	board grid.Grid

	deck    *card.Deck
	discard *card.DiscardPile

	runners map[uuid.UUID]*runner
	log     logrus.FieldLogger
}

// New builds a match from cfg: board cells are laid out and the movement
// deck generated and shuffled. Players join and the race starts through
// Core.
func New(cfg Config) (*Game, error) {
	cfg = cfg.withDefaults()

	g := &Game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		discard: card.NewDiscardPile(),
		runners: make(map[uuid.UUID]*runner),
	}

	var err error
	switch cfg.GridType {
	case GridSquare:
		g.board, err = grid.NewSquare(cfg.Width, cfg.Height, cfg.Diagonal)
	case GridHex:
		g.board, err = grid.NewHex(cfg.Width, cfg.Height)
	default:
		err = fmt.Errorf("unknown grid type %q", cfg.GridType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidArgument, err)
	}

	if len(cfg.StartPositions) == 0 {
		return nil, fmt.Errorf("%w: no start positions", game.ErrInvalidArgument)
	}
	if len(cfg.Goals) == 0 {
		return nil, fmt.Errorf("%w: no goals", game.ErrInvalidArgument)
	}
	if err := g.layoutBoard(); err != nil {
		return nil, err
	}

	if cfg.Directional {
		dirs := SquareDirections
		if cfg.GridType == GridHex {
			dirs = HexDirections
		}
		g.deck = NewDirectionalMovementDeck(g.rng, cfg.DeckSize, dirs)
	} else {
		g.deck = NewMovementDeck(g.rng, cfg.DeckSize)
	}

	g.core = game.New(game.Config{
		MinPlayers: cfg.MinPlayers,
		MaxPlayers: cfg.MaxPlayers,
		Logger:     cfg.Logger,
	}, rules{g})
	g.log = g.core.Log().WithField("engine", "gridrunner")
	return g, nil
}

// layoutBoard types the configured cells, validating bounds.
func (g *Game) layoutBoard() error {
	mark := func(p grid.Position, t grid.CellType) (*grid.Cell, error) {
		if err := g.board.SetCellType(p, t); err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrInvalidArgument, err)
		}
		c, _ := g.board.CellAt(p)
		return c, nil
	}

	for _, p := range g.cfg.Blocked {
		if _, err := mark(p, grid.CellBlocked); err != nil {
			return err
		}
	}
	for _, p := range g.cfg.StartPositions {
		if _, err := mark(p, grid.CellStart); err != nil {
			return err
		}
	}
	for _, goal := range g.cfg.Goals {
		c, err := mark(goal.Position, grid.CellGoal)
		if err != nil {
			return err
		}
		c.Points = goal.Points
	}
	for i, cp := range g.cfg.Checkpoints {
		c, err := mark(cp.Position, grid.CellCheckpoint)
		if err != nil {
			return err
		}
		c.Points = cp.Points
		c.Index = i
	}
	return nil
}

// Core exposes the lifecycle: seating, start/pause/end, events, results.
func (g *Game) Core() *game.Game { return g.core }

// Board exposes the live board for rendering and reachability queries.
func (g *Game) Board() grid.Grid { return g.board }

// rules adapts the engine onto the lifecycle hooks.
type rules struct{ g *Game }

// OnStart seats every player on a start position (cycled when there are
// fewer starts than players; overflow players spill onto the nearest free
// cell) and deals the opening hands round-robin. A seating failure unwinds
// every cell taken so far, so a failed start leaves the board untouched.
func (r rules) OnStart(_ *game.Game) error {
	g := r.g
	players := g.core.Players()
	hands := make([]*card.Hand, len(players))
	for i, p := range players {
		start := g.cfg.StartPositions[i%len(g.cfg.StartPositions)]
		pos, ok := g.seatNear(start)
		if ok && g.board.Occupy(pos, p.ID()) != nil {
			ok = false
		}
		if !ok {
			g.unseatAll()
			return fmt.Errorf("%w: no free cell to seat %s near %s", game.ErrStateConflict, p.Name, start)
		}
		g.runners[p.ID()] = &runner{pos: pos, scored: make(map[int]bool)}
		p.Hand.SetMaxSize(g.cfg.HandSize)
		hands[i] = p.Hand
	}
	g.deck.Deal(hands, g.cfg.HandSize)
	g.log.WithFields(logrus.Fields{"players": len(players), "deck": g.deck.Size()}).Info("race started")
	return nil
}

// seatNear resolves a start position to an actual seat: the start itself
// when free, otherwise the closest walkable cell in search order.
func (g *Game) seatNear(start grid.Position) (grid.Position, bool) {
	if g.board.IsWalkable(start) {
		return start, true
	}
	sweep := g.cfg.Width + g.cfg.Height
	for _, pos := range grid.ReachablePositions(g.board, start, sweep, true) {
		if g.board.IsWalkable(pos) {
			return pos, true
		}
	}
	return grid.Position{}, false
}

// unseatAll vacates every seated runner, reverting a partial start.
func (g *Game) unseatAll() {
	for id, rn := range g.runners {
		g.board.Free(rn.pos)
		delete(g.runners, id)
	}
}

func (r rules) OnEnd(_ *game.Game) {
	for _, p := range r.g.core.Players() {
		r.g.log.WithFields(logrus.Fields{"player": p.Name, "score": p.Score}).Info("final score")
	}
}

// OnTurnChanged tops the incoming player's hand up by one while the deck
// lasts.
func (r rules) OnTurnChanged(_ *game.Game, current *game.Player) {
	if c, ok := r.g.deck.Draw(); ok {
		if !current.Hand.TryAdd(c) {
			r.g.discard.Add(c)
		}
	}
}

// PositionOf reports a player's current cell.
func (g *Game) PositionOf(id uuid.UUID) (grid.Position, bool) {
	rn, ok := g.runners[id]
	if !ok {
		return grid.Position{}, false
	}
	return rn.pos, true
}

// DeckSize reports the cards left to draw.
func (g *Game) DeckSize() int { return g.deck.Size() }

// PlayCard spends one of the current player's movement cards to move to
// target. Every rejection is a structured result with a reason; only an
// accepted move mutates state.
func (g *Game) PlayCard(playerID, cardID uuid.UUID, target grid.Position) MoveResult {
	if g.core.State() != game.StatePlaying {
		return reject("game is not in progress")
	}
	current := g.core.CurrentPlayer()
	if current == nil || current.ID() != playerID {
		return reject("not your turn")
	}
	c, ok := current.Hand.Find(func(x card.Card) bool { return x.ID() == cardID })
	if !ok {
		return reject("card is not in your hand")
	}
	rn := g.runners[playerID]

	if dir := CardDirection(c); dir != "" && !directionAllows(dir, rn.pos, target) {
		return reject("%s only moves %s", c.Name(), dir)
	}
	spec := MoveSpecOf(c)
	if !grid.IsValidMove(g.board, rn.pos, target, spec) {
		return reject("cannot move from %s to %s with %s", rn.pos, target, c.Name())
	}

	var path []grid.Position
	if spec.Teleport {
		path = []grid.Position{rn.pos, target}
	} else {
		path = grid.FindPath(g.board, rn.pos, target, spec.Distance, spec.Jump)
	}

	g.board.Free(rn.pos)
	if err := g.board.Occupy(target, playerID); err != nil {
		// IsValidMove vetted the cell; restore and bail.
		_ = g.board.Occupy(rn.pos, playerID)
		return reject("cell %s is taken", target)
	}
	rn.pos = target

	points, reachedGoal := g.scoreCell(current, rn, target)

	played, _ := current.Hand.RemoveByIdentity(c)
	g.discard.Add(played)

	g.log.WithFields(logrus.Fields{
		"player": current.Name, "card": c.Name(), "to": target.String(), "points": points,
	}).Info("card played")

	if reachedGoal {
		// First player on any goal wins outright.
		_ = g.core.End()
	} else if CardAbility(c) == AbilityMultiTurn {
		// The runner keeps the turn and tops up immediately.
		if extra, ok := g.deck.Draw(); ok {
			if !current.Hand.TryAdd(extra) {
				g.discard.Add(extra)
			}
		}
	} else {
		_ = g.core.NextTurn()
	}

	return MoveResult{
		Success:       true,
		Path:          path,
		PointsAwarded: points,
		ReachedGoal:   reachedGoal,
	}
}

// scoreCell pays out the target cell: goals always, checkpoints once per
// distinct checkpoint index per player.
func (g *Game) scoreCell(p *game.Player, rn *runner, target grid.Position) (int, bool) {
	cell, ok := g.board.CellAt(target)
	if !ok {
		return 0, false
	}
	switch cell.Type {
	case grid.CellGoal:
		p.AddScore(cell.Points)
		return cell.Points, true
	case grid.CellCheckpoint:
		if rn.scored[cell.Index] {
			return 0, false
		}
		rn.scored[cell.Index] = true
		p.AddScore(cell.Points)
		return cell.Points, false
	}
	return 0, false
}

// AvailableCards lists the cards in a player's hand that have at least one
// legal target from their current position.
func (g *Game) AvailableCards(playerID uuid.UUID) []card.Card {
	p, ok := g.core.Player(playerID)
	if !ok {
		return nil
	}
	var out []card.Card
	for _, c := range p.Hand.Cards() {
		if len(g.ReachableFor(playerID, c.ID())) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// ReachableFor lists the walkable cells a player could legally target with
// one of their cards right now.
func (g *Game) ReachableFor(playerID, cardID uuid.UUID) []grid.Position {
	p, ok := g.core.Player(playerID)
	if !ok {
		return nil
	}
	c, ok := p.Hand.Find(func(x card.Card) bool { return x.ID() == cardID })
	if !ok {
		return nil
	}
	rn := g.runners[playerID]
	spec := MoveSpecOf(c)
	dir := CardDirection(c)

	// Teleports ignore paths, so sweep the metric ball; jump BFS gives
	// exactly that on an unobstructed frontier.
	sweep := spec.Jump || spec.Teleport
	var out []grid.Position
	for _, pos := range grid.ReachablePositions(g.board, rn.pos, spec.Distance, sweep) {
		if dir != "" && !directionAllows(dir, rn.pos, pos) {
			continue
		}
		if grid.IsValidMove(g.board, rn.pos, pos, spec) {
			out = append(out, pos)
		}
	}
	return out
}
