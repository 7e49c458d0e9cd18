// Package card provides the playing-card and ordered-collection primitives
// shared by every rule engine: immutable cards plus the Deck, Hand and
// DiscardPile specializations of an insertion-ordered collection.
package card

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Property keys set by the standard-deck factory. Game-specific decks are
// free to use their own keys.
const (
	PropRank  = "rank"
	PropSuit  = "suit"
	PropValue = "value"
)

// Suits of the standard 52-card deck.
const (
	SuitHearts   = "hearts"
	SuitDiamonds = "diamonds"
	SuitClubs    = "clubs"
	SuitSpades   = "spades"
)

// Ranks of the standard 52-card deck, in positional value order 1..13.
var StandardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// StandardSuits lists the four suits in factory order.
var StandardSuits = []string{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Card is an immutable identity plus a property bag frozen at construction.
// The shape of the properties depends on the game that built the card.
type Card struct {
	id    uuid.UUID
	name  string
	props map[string]any
}

// New builds a card with a fresh identity. The property map is copied so the
// caller cannot mutate the card afterwards.
func New(name string, props map[string]any) Card {
	frozen := make(map[string]any, len(props))
	for k, v := range props {
		frozen[k] = v
	}
	return Card{id: uuid.New(), name: name, props: frozen}
}

// ID returns the card's unique identity token.
func (c Card) ID() uuid.UUID { return c.id }

// Name returns the card's display name.
func (c Card) Name() string { return c.name }

// Prop looks up a property by key.
func (c Card) Prop(key string) (any, bool) {
	v, ok := c.props[key]
	return v, ok
}

// IntProp returns an integer property, or 0 when absent or not an int.
func (c Card) IntProp(key string) int {
	if v, ok := c.props[key].(int); ok {
		return v
	}
	return 0
}

// StringProp returns a string property, or "" when absent or not a string.
func (c Card) StringProp(key string) string {
	if v, ok := c.props[key].(string); ok {
		return v
	}
	return ""
}

// Props returns a copy of the property map.
func (c Card) Props() map[string]any {
	out := make(map[string]any, len(c.props))
	for k, v := range c.props {
		out[k] = v
	}
	return out
}

// IsIdentical reports equality by identity: same card, not merely same face.
func (c Card) IsIdentical(o Card) bool { return c.id == o.id }

// Equals reports equality by properties: two distinct cards with the same
// name and property bag are equal without being identical.
func (c Card) Equals(o Card) bool {
	return c.name == o.name && reflect.DeepEqual(c.props, o.props)
}

func (c Card) String() string {
	if c.name != "" {
		return c.name
	}
	return c.id.String()
}

// StandardDeck builds the 52 cards of a standard deck: 4 suits × 13 ranks,
// with the deck-generic positional value 1..13. Rule engines that need their
// own card values (Blackjack) recompute them from the rank.
func StandardDeck() *Deck {
	d := NewDeck()
	for _, suit := range StandardSuits {
		for i, rank := range StandardRanks {
			d.Add(New(fmt.Sprintf("%s of %s", rank, suit), map[string]any{
				PropRank:  rank,
				PropSuit:  suit,
				PropValue: i + 1,
			}))
		}
	}
	return d
}
