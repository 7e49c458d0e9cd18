package card

import (
	"math/rand"
	"sort"
)

// Collection is an insertion-ordered sequence of cards. Deck, Hand and
// DiscardPile specialize it. Cards move between collections by reference
// transfer; a removal hands the card to the caller.
//
// Index arguments accept negative values counted from the end (-1 is the
// last card). Out-of-range lookups and removals are ordinary no-ops that
// report absence, never errors.
type Collection struct {
	cards []Card
}

// NewCollection builds a collection holding the given cards.
func NewCollection(cards ...Card) *Collection {
	c := &Collection{}
	c.cards = append(c.cards, cards...)
	return c
}

// Size returns the number of cards held.
func (c *Collection) Size() int { return len(c.cards) }

// IsEmpty reports whether the collection holds no cards.
func (c *Collection) IsEmpty() bool { return len(c.cards) == 0 }

// Add appends a card.
func (c *Collection) Add(card Card) { c.cards = append(c.cards, card) }

// AddMany appends cards in order.
func (c *Collection) AddMany(cards []Card) { c.cards = append(c.cards, cards...) }

// normalize maps idx (negative = from the end) onto the backing slice.
// The same rules apply to every index-taking operation.
func (c *Collection) normalize(idx int) (int, bool) {
	if idx < 0 {
		idx += len(c.cards)
	}
	if idx < 0 || idx >= len(c.cards) {
		return 0, false
	}
	return idx, true
}

// Peek reads the card at idx without removing it.
func (c *Collection) Peek(idx int) (Card, bool) {
	i, ok := c.normalize(idx)
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// PeekLast reads the most recently added card.
func (c *Collection) PeekLast() (Card, bool) { return c.Peek(-1) }

// RemoveAt removes and returns the card at idx.
func (c *Collection) RemoveAt(idx int) (Card, bool) {
	i, ok := c.normalize(idx)
	if !ok {
		return Card{}, false
	}
	card := c.cards[i]
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
	return card, true
}

// RemoveLast removes and returns the most recently added card.
func (c *Collection) RemoveLast() (Card, bool) { return c.RemoveAt(-1) }

// Remove removes and returns the first card matching pred.
func (c *Collection) Remove(pred func(Card) bool) (Card, bool) {
	for i, card := range c.cards {
		if pred(card) {
			c.cards = append(c.cards[:i], c.cards[i+1:]...)
			return card, true
		}
	}
	return Card{}, false
}

// RemoveByIdentity removes the card with the same identity as card.
func (c *Collection) RemoveByIdentity(card Card) (Card, bool) {
	return c.Remove(func(o Card) bool { return o.IsIdentical(card) })
}

// Find returns the first card matching pred.
func (c *Collection) Find(pred func(Card) bool) (Card, bool) {
	for _, card := range c.cards {
		if pred(card) {
			return card, true
		}
	}
	return Card{}, false
}

// FindAll returns every card matching pred, in order.
func (c *Collection) FindAll(pred func(Card) bool) []Card {
	var out []Card
	for _, card := range c.cards {
		if pred(card) {
			out = append(out, card)
		}
	}
	return out
}

// Contains reports whether a card with the same identity is held.
func (c *Collection) Contains(card Card) bool {
	_, ok := c.Find(func(o Card) bool { return o.IsIdentical(card) })
	return ok
}

// Any reports whether any card matches pred.
func (c *Collection) Any(pred func(Card) bool) bool {
	_, ok := c.Find(pred)
	return ok
}

// Clear removes and returns every card.
func (c *Collection) Clear() []Card {
	out := c.cards
	c.cards = nil
	return out
}

// Cards returns a copy of the held cards in order.
func (c *Collection) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Each calls fn for every card in order.
func (c *Collection) Each(fn func(Card)) {
	for _, card := range c.cards {
		fn(card)
	}
}

// sortStable orders the cards in place per less, preserving the relative
// order of equal cards.
func (c *Collection) sortStable(less func(a, b Card) bool) {
	sort.SliceStable(c.cards, func(i, j int) bool { return less(c.cards[i], c.cards[j]) })
}

// shuffle is an in-place Fisher-Yates permutation. A slice of 0 or 1 cards
// is left untouched.
func shuffle(cards []Card, r *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
