// Package blackjack implements a multi-player blackjack table on top of the
// shared game lifecycle: a multi-deck shoe, a dealer driven by a rule-based
// hit/stand policy, and round resolution with blackjack payouts.
package blackjack

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tabletop/card"
	"tabletop/game"
	"tabletop/random"
)

// Action is a move a player may make on their hand.
type Action string

const (
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionDouble Action = "double"
	// ActionSplit is named so UIs can label it, but the engine neither
	// offers nor executes it: there is no second-hand bookkeeping.
	ActionSplit Action = "split"
)

// Config holds the table rules.
type Config struct {
	MinPlayers           int
	MaxPlayers           int
	NumDecks             int     // standard decks merged into the shoe
	DealerStandsOnSoft17 bool
	Payout               float64 // blackjack payout ratio, default 3:2
	Seed                 int64   // 0 picks a random seed
	Logger               logrus.FieldLogger
}

func (c Config) withDefaults() Config {
	if c.MinPlayers == 0 {
		c.MinPlayers = 1
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = 7
	}
	if c.NumDecks == 0 {
		c.NumDecks = 6
	}
	if c.Payout == 0 {
		c.Payout = 1.5
	}
	if c.Seed == 0 {
		c.Seed = random.NewSeed()
	}
	return c
}

// seat is the engine's per-player round state, keyed by player id.
type seat struct {
	result    Outcome // "" until the first resolved round
	handValue int
}

// Game is a blackjack table.
type Game struct {
	core *game.Game
	cfg  Config
	rng  *rand.Rand

	shoe     *card.Deck
	discard  *card.DiscardPile
	shoeSize int // full shoe size, for the reshuffle threshold

	dealer         *card.Hand
	dealerRevealed bool
	round          int

	seats map[uuid.UUID]*seat
	log   logrus.FieldLogger
}

// New builds a table from cfg. The shoe is assembled and pre-shuffled.
func New(cfg Config) (*Game, error) {
	cfg = cfg.withDefaults()
	if cfg.MinPlayers < 1 || cfg.MaxPlayers < cfg.MinPlayers {
		return nil, fmt.Errorf("%w: player bounds %d..%d", game.ErrInvalidArgument, cfg.MinPlayers, cfg.MaxPlayers)
	}
	if cfg.NumDecks < 1 {
		return nil, fmt.Errorf("%w: shoe needs at least one deck", game.ErrInvalidArgument)
	}
	if cfg.Payout < 1 {
		return nil, fmt.Errorf("%w: payout ratio %f", game.ErrInvalidArgument, cfg.Payout)
	}

	g := &Game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		shoe:    card.NewDeck(),
		discard: card.NewDiscardPile(),
		dealer:  card.NewHand(0),
		seats:   make(map[uuid.UUID]*seat),
	}
	for i := 0; i < cfg.NumDecks; i++ {
		g.shoe.AddMany(card.StandardDeck().Cards())
	}
	g.shoeSize = g.shoe.Size()
	g.shoe.Shuffle(g.rng)

	g.core = game.New(game.Config{
		MinPlayers: cfg.MinPlayers,
		MaxPlayers: cfg.MaxPlayers,
		Logger:     cfg.Logger,
	}, rules{g})
	g.log = g.core.Log().WithField("engine", "blackjack")
	return g, nil
}

// Core exposes the lifecycle: seating, start/pause/end, events, results.
func (g *Game) Core() *game.Game { return g.core }

// rules adapts the engine onto the lifecycle hooks.
type rules struct{ g *Game }

func (r rules) OnStart(_ *game.Game) error {
	for _, p := range r.g.core.Players() {
		r.g.seats[p.ID()] = &seat{}
	}
	r.g.log.WithField("players", r.g.core.PlayerCount()).Info("table opened")
	return nil
}

func (r rules) OnEnd(_ *game.Game) {
	for _, p := range r.g.core.Players() {
		r.g.log.WithFields(logrus.Fields{"player": p.Name, "score": p.Score}).Info("final score")
	}
}

// Blackjack has no strict turn order; players act independently each round.
func (r rules) OnTurnChanged(_ *game.Game, _ *game.Player) {}

// Round returns the number of rounds dealt so far.
func (g *Game) Round() int { return g.round }

// ShoeSize returns the cards remaining in the shoe.
func (g *Game) ShoeSize() int { return g.shoe.Size() }

// DealRound opens a new round: the shoe is rebuilt from the discard pile
// when it has run below a quarter of its full size, every hand is cleared,
// and each player then the dealer receives one card per pass, twice. A
// dealer natural is revealed immediately and the round resolves with no
// player action.
func (g *Game) DealRound() error {
	if g.core.State() != game.StatePlaying {
		return fmt.Errorf("%w: deal round: game is %s", game.ErrStateConflict, g.core.State())
	}

	if g.shoe.Size()*4 < g.shoeSize {
		g.reshuffleShoe()
	}

	for _, p := range g.core.Players() {
		g.discard.AddMany(p.Reset())
		g.seats[p.ID()] = &seat{}
	}
	g.discard.AddMany(g.dealer.Clear())
	g.dealerRevealed = false
	g.round++

	players := g.core.Players()
	for pass := 0; pass < 2; pass++ {
		for _, p := range players {
			g.drawTo(p.Hand)
		}
		g.drawTo(g.dealer)
	}
	g.log.WithFields(logrus.Fields{"round": g.round, "shoe": g.shoe.Size()}).Info("round dealt")

	if ScoreHand(g.dealer).Blackjack {
		g.dealerRevealed = true
		g.log.WithField("round", g.round).Info("dealer natural")
		g.resolveRound()
	}
	return nil
}

// drawTo moves the top shoe card into h, rebuilding the shoe from the
// discard pile if it runs dry mid-round.
func (g *Game) drawTo(h *card.Hand) {
	if g.shoe.IsEmpty() {
		g.reshuffleShoe()
	}
	if c, ok := g.shoe.Draw(); ok {
		h.TryAdd(c)
	}
}

func (g *Game) reshuffleShoe() {
	g.shoe.AddMany(g.discard.TakeAllAndShuffle(g.rng, false))
	g.shoe.Shuffle(g.rng)
	g.log.WithField("shoe", g.shoe.Size()).Info("shoe reshuffled")
}

// requireActing checks the game is live and the player may still act.
func (g *Game) requireActing(id uuid.UUID) (*game.Player, error) {
	if g.core.State() != game.StatePlaying {
		return nil, fmt.Errorf("%w: act: game is %s", game.ErrStateConflict, g.core.State())
	}
	p, err := g.core.RequirePlayer(id)
	if err != nil {
		return nil, err
	}
	if p.Status != game.StatusActive {
		return nil, fmt.Errorf("%w: player %s is %s", game.ErrStateConflict, p.Name, p.Status)
	}
	return p, nil
}

// Hit draws one card. A bust folds the player for the round.
func (g *Game) Hit(id uuid.UUID) error {
	p, err := g.requireActing(id)
	if err != nil {
		return err
	}
	g.drawTo(p.Hand)
	s := ScoreHand(p.Hand)
	g.log.WithFields(logrus.Fields{"player": p.Name, "value": s.Value, "bust": s.Bust}).Info("hit")
	if s.Bust {
		p.Status = game.StatusFolded
		g.maybeFinishRound()
	}
	return nil
}

// Stand ends the player's round. When every player is done the dealer plays
// out and the round resolves.
func (g *Game) Stand(id uuid.UUID) error {
	p, err := g.requireActing(id)
	if err != nil {
		return err
	}
	p.Status = game.StatusWaiting
	g.log.WithFields(logrus.Fields{"player": p.Name, "value": ScoreHand(p.Hand).Value}).Info("stand")
	g.maybeFinishRound()
	return nil
}

// Double is one hit followed by an automatic stand; legal only on a
// two-card hand. A bust folds instead of standing.
func (g *Game) Double(id uuid.UUID) error {
	p, err := g.requireActing(id)
	if err != nil {
		return err
	}
	if p.Hand.Size() != 2 {
		return fmt.Errorf("%w: double needs exactly 2 cards, hand has %d", game.ErrInvalidArgument, p.Hand.Size())
	}
	g.drawTo(p.Hand)
	if ScoreHand(p.Hand).Bust {
		p.Status = game.StatusFolded
	} else {
		p.Status = game.StatusWaiting
	}
	g.log.WithFields(logrus.Fields{"player": p.Name, "value": ScoreHand(p.Hand).Value}).Info("double")
	g.maybeFinishRound()
	return nil
}

// maybeFinishRound plays the dealer and resolves once no player is active.
func (g *Game) maybeFinishRound() {
	for _, p := range g.core.Players() {
		if p.Status == game.StatusActive {
			return
		}
	}
	g.playDealer()
	g.resolveRound()
}

// playDealer reveals the hole card and hits per policy.
func (g *Game) playDealer() {
	g.dealerRevealed = true
	for DealerShouldHit(ScoreHand(g.dealer), g.cfg.DealerStandsOnSoft17) {
		g.drawTo(g.dealer)
	}
	s := ScoreHand(g.dealer)
	g.log.WithFields(logrus.Fields{"value": s.Value, "bust": s.Bust}).Info("dealer done")
}

// resolveRound settles every hand against the dealer. A blackjack pays
// floor(100×payout) points, a win pays 100, pushes and losses pay nothing.
func (g *Game) resolveRound() {
	dealerScore := ScoreHand(g.dealer)
	for _, p := range g.core.Players() {
		ps := ScoreHand(p.Hand)
		outcome := CompareHands(ps, dealerScore)
		switch outcome {
		case OutcomeBlackjack:
			p.AddScore(int(math.Floor(100 * g.cfg.Payout)))
		case OutcomeWin:
			p.AddScore(100)
		}
		st := g.seats[p.ID()]
		st.result = outcome
		st.handValue = ps.Value
		if p.Status == game.StatusActive {
			p.Status = game.StatusWaiting
		}
		g.log.WithFields(logrus.Fields{
			"player": p.Name, "value": ps.Value, "outcome": outcome, "score": p.Score,
		}).Info("round resolved")
	}
}

// AvailableActions lists the legal actions for a player right now. Hit and
// stand are open to any active player holding a dealt hand, double only on
// a two-card hand. Between Start and the first DealRound a seat holds no
// cards and has no actions.
func (g *Game) AvailableActions(id uuid.UUID) []Action {
	if g.core.State() != game.StatePlaying {
		return nil
	}
	p, ok := g.core.Player(id)
	if !ok || p.Status != game.StatusActive || p.Hand.Size() < 2 {
		return nil
	}
	actions := []Action{ActionHit, ActionStand}
	if p.Hand.Size() == 2 {
		actions = append(actions, ActionDouble)
	}
	return actions
}

// Result returns a player's outcome from the last resolved round.
func (g *Game) Result(id uuid.UUID) (Outcome, bool) {
	st, ok := g.seats[id]
	if !ok || st.result == "" {
		return "", false
	}
	return st.result, true
}

// LastHandValue returns the player's hand value from the last resolved round.
func (g *Game) LastHandValue(id uuid.UUID) (int, bool) {
	st, ok := g.seats[id]
	if !ok || st.result == "" {
		return 0, false
	}
	return st.handValue, true
}

// DealerRevealed reports whether the dealer's hand is face up.
func (g *Game) DealerRevealed() bool { return g.dealerRevealed }

// DealerCards returns the dealer's visible cards: only the upcard until the
// dealer's hand is revealed.
func (g *Game) DealerCards() []card.Card {
	cards := g.dealer.Cards()
	if g.dealerRevealed || len(cards) == 0 {
		return cards
	}
	return cards[:1]
}

// DealerScore returns the dealer's value once revealed.
func (g *Game) DealerScore() (Score, bool) {
	if !g.dealerRevealed {
		return Score{}, false
	}
	return ScoreHand(g.dealer), true
}
