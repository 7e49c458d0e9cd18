package game

import (
	"github.com/google/uuid"

	"tabletop/card"
)

// Status is a player's standing within the current game.
type Status string

const (
	StatusActive       Status = "active"
	StatusWaiting      Status = "waiting"
	StatusFolded       Status = "folded"
	StatusDisconnected Status = "disconnected"
)

// Player is per-seat mutable state: one hand, a status, a score. Players are
// created independently of any game and attached via AddPlayer. Game-specific
// per-player state (grid position, round results) is owned by the rule
// engines, keyed by player ID, so the base type stays game-agnostic.
type Player struct {
	id     uuid.UUID
	Name   string
	Hand   *card.Hand
	Status Status
	Score  int
}

// NewPlayer creates a detached player with an unbounded hand.
func NewPlayer(name string) *Player {
	return &Player{
		id:     uuid.New(),
		Name:   name,
		Hand:   card.NewHand(0),
		Status: StatusActive,
	}
}

// ID returns the player's immutable identity.
func (p *Player) ID() uuid.UUID { return p.id }

// AddScore adds n points.
func (p *Player) AddScore(n int) { p.Score += n }

// ResetScore zeroes the score.
func (p *Player) ResetScore() { p.Score = 0 }

// Reset prepares the player for the next round of the same game: the hand
// is emptied and status forced back to active. Score survives.
func (p *Player) Reset() []card.Card {
	p.Status = StatusActive
	return p.Hand.Clear()
}

// FullReset additionally zeroes the score, for reuse across games.
func (p *Player) FullReset() []card.Card {
	out := p.Reset()
	p.ResetScore()
	return out
}
