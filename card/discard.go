package card

import "math/rand"

// DiscardPile is a collection whose top is the most recently discarded
// card. Its Take operations feed cards back into play, typically to rebuild
// an exhausted deck.
type DiscardPile struct {
	Collection
}

// NewDiscardPile builds an empty discard pile.
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{}
}

// TakeAll removes and returns every card. With keepTop the single most
// recently discarded card stays in place.
func (p *DiscardPile) TakeAll(keepTop bool) []Card {
	if keepTop && len(p.cards) > 0 {
		top := p.cards[len(p.cards)-1]
		out := p.cards[:len(p.cards)-1]
		p.cards = []Card{top}
		return out
	}
	return p.Clear()
}

// TakeTop removes up to n cards from the top, most recent first.
func (p *DiscardPile) TakeTop(n int) []Card {
	var out []Card
	for i := 0; i < n; i++ {
		card, ok := p.RemoveLast()
		if !ok {
			break
		}
		out = append(out, card)
	}
	return out
}

// TakeBottom removes up to n cards from the bottom, oldest first.
func (p *DiscardPile) TakeBottom(n int) []Card {
	if n > len(p.cards) {
		n = len(p.cards)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Card, n)
	copy(out, p.cards[:n])
	p.cards = append([]Card(nil), p.cards[n:]...)
	return out
}

// TakeAllAndShuffle removes every card (optionally keeping the top discard
// in place) and Fisher-Yates shuffles the extracted batch. Whatever remains
// in the pile is not shuffled. This is the standard way to rebuild a deck
// that ran dry.
func (p *DiscardPile) TakeAllAndShuffle(r *rand.Rand, keepTop bool) []Card {
	out := p.TakeAll(keepTop)
	shuffle(out, r)
	return out
}
