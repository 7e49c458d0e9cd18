package gridrunner

import (
	"fmt"
	"math/rand"

	"tabletop/card"
	"tabletop/grid"
)

// Ability names the special effect of a movement card.
type Ability string

const (
	AbilityNone      Ability = ""
	AbilityJump      Ability = "jump"
	AbilityTeleport  Ability = "teleport"
	AbilityMultiTurn Ability = "multi_turn"
)

// Property keys carried by movement cards.
const (
	PropDistance  = "distance"
	PropAbility   = "ability"
	PropDirection = "direction"
)

// Direction constrains a card to one compass heading. Plain cards carry no
// direction and move freely.
type Direction string

const (
	DirNorth Direction = "north"
	DirEast  Direction = "east"
	DirSouth Direction = "south"
	DirWest  Direction = "west"

	DirHexEast      Direction = "hex_east"
	DirHexNortheast Direction = "hex_northeast"
	DirHexNorthwest Direction = "hex_northwest"
	DirHexWest      Direction = "hex_west"
	DirHexSouthwest Direction = "hex_southwest"
	DirHexSoutheast Direction = "hex_southeast"
)

// SquareDirections are the four headings used on square boards.
var SquareDirections = []Direction{DirNorth, DirEast, DirSouth, DirWest}

// HexDirections are the six headings used on hex boards.
var HexDirections = []Direction{
	DirHexEast, DirHexNortheast, DirHexNorthwest,
	DirHexWest, DirHexSouthwest, DirHexSoutheast,
}

// directionOffsets maps each heading onto its unit step. North is -y.
var directionOffsets = map[Direction]grid.Position{
	DirNorth: {X: 0, Y: -1},
	DirEast:  {X: 1, Y: 0},
	DirSouth: {X: 0, Y: 1},
	DirWest:  {X: -1, Y: 0},

	DirHexEast:      {X: 1, Y: 0},
	DirHexNortheast: {X: 1, Y: -1},
	DirHexNorthwest: {X: 0, Y: -1},
	DirHexWest:      {X: -1, Y: 0},
	DirHexSouthwest: {X: -1, Y: 1},
	DirHexSoutheast: {X: 0, Y: 1},
}

// directionAllows reports whether to lies on the ray from from along d:
// some positive whole number of direction steps.
func directionAllows(d Direction, from, to grid.Position) bool {
	off, ok := directionOffsets[d]
	if !ok {
		return true
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	var k int
	switch {
	case off.X != 0:
		if dx%off.X != 0 {
			return false
		}
		k = dx / off.X
	case off.Y != 0:
		if dy%off.Y != 0 {
			return false
		}
		k = dy / off.Y
	default:
		return false
	}
	return k > 0 && dx == k*off.X && dy == k*off.Y
}

// NewMoveCard builds a plain movement card.
func NewMoveCard(distance int) card.Card {
	return card.New(fmt.Sprintf("Move %d", distance), map[string]any{
		PropDistance: distance,
	})
}

// NewAbilityCard builds a special movement card.
func NewAbilityCard(ability Ability, distance int) card.Card {
	names := map[Ability]string{
		AbilityJump:      "Jump %d",
		AbilityTeleport:  "Teleport %d",
		AbilityMultiTurn: "Sprint %d",
	}
	return card.New(fmt.Sprintf(names[ability], distance), map[string]any{
		PropDistance: distance,
		PropAbility:  string(ability),
	})
}

// CardAbility reads a card's special effect.
func CardAbility(c card.Card) Ability {
	return Ability(c.StringProp(PropAbility))
}

// CardDirection reads a card's heading constraint, "" when unconstrained.
func CardDirection(c card.Card) Direction {
	return Direction(c.StringProp(PropDirection))
}

// MoveSpecOf translates a card into the movement allowance the board
// validates against.
func MoveSpecOf(c card.Card) grid.MoveSpec {
	a := CardAbility(c)
	return grid.MoveSpec{
		Distance: c.IntProp(PropDistance),
		Jump:     a == AbilityJump,
		Teleport: a == AbilityTeleport,
	}
}

// deckEntry is one weighted slot of the movement-deck composition.
type deckEntry struct {
	weight   int
	distance int
	ability  Ability
}

// Plain move cards make up seven tenths of the deck; the three specials
// split the remainder evenly.
var deckComposition = []deckEntry{
	{weight: 25, distance: 1},
	{weight: 25, distance: 2},
	{weight: 20, distance: 3},
	{weight: 10, distance: 2, ability: AbilityJump},
	{weight: 10, distance: 3, ability: AbilityTeleport},
	{weight: 10, distance: 1, ability: AbilityMultiTurn},
}

// NewMovementDeck generates a shuffled deck of size cards in the fixed
// composition proportions. Rounding leftovers become distance-1 moves.
func NewMovementDeck(r *rand.Rand, size int) *card.Deck {
	d := card.NewDeck()
	total := 0
	for _, e := range deckComposition {
		total += e.weight
	}
	built := 0
	for _, e := range deckComposition {
		n := size * e.weight / total
		for i := 0; i < n; i++ {
			d.Add(buildEntry(e))
		}
		built += n
	}
	for ; built < size; built++ {
		d.Add(NewMoveCard(1))
	}
	d.Shuffle(r)
	return d
}

// NewDirectionalMovementDeck is the stricter variant: every card is pinned
// to one of the given headings, chosen uniformly.
func NewDirectionalMovementDeck(r *rand.Rand, size int, dirs []Direction) *card.Deck {
	d := NewMovementDeck(r, size)
	out := card.NewDeck()
	d.Each(func(c card.Card) {
		dir := dirs[r.Intn(len(dirs))]
		props := c.Props()
		props[PropDirection] = string(dir)
		out.Add(card.New(fmt.Sprintf("%s %s", c.Name(), dir), props))
	})
	return out
}

func buildEntry(e deckEntry) card.Card {
	if e.ability == AbilityNone {
		return NewMoveCard(e.distance)
	}
	return NewAbilityCard(e.ability, e.distance)
}
