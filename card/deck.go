package card

import "math/rand"

// Deck is a collection drawn from its top, which is the end of the
// sequence: the last-added card is drawn first.
type Deck struct {
	Collection
}

// NewDeck builds a deck holding the given cards, bottom first.
func NewDeck(cards ...Card) *Deck {
	d := &Deck{}
	d.AddMany(cards)
	return d
}

// Shuffle permutes the deck in place with Fisher-Yates using the supplied
// random source. Decks of 0 or 1 cards are left as-is.
func (d *Deck) Shuffle(r *rand.Rand) { shuffle(d.cards, r) }

// Draw removes and returns the top card. An empty deck reports absence.
func (d *Deck) Draw() (Card, bool) { return d.RemoveLast() }

// DrawMany draws up to n cards, fewer if the deck runs out.
func (d *Deck) DrawMany(n int) []Card {
	var out []Card
	for i := 0; i < n; i++ {
		card, ok := d.Draw()
		if !ok {
			break
		}
		out = append(out, card)
	}
	return out
}

// Deal distributes per cards to each recipient round-robin: every pass
// gives one card to each recipient in order. Dealing stops early per
// recipient when the deck empties, so later recipients may end up with
// fewer cards. Recipients without headroom are skipped.
func (d *Deck) Deal(recipients []*Hand, per int) {
	for pass := 0; pass < per; pass++ {
		for _, h := range recipients {
			if d.IsEmpty() {
				return
			}
			if !h.CanAccept(1) {
				continue
			}
			card, _ := d.Draw()
			h.TryAdd(card)
		}
	}
}

// Cut moves the first pos cards to the end. A pos of 0 or less, or of
// deck size or more, is a no-op.
func (d *Deck) Cut(pos int) {
	if pos <= 0 || pos >= len(d.cards) {
		return
	}
	d.cards = append(d.cards[pos:], d.cards[:pos]...)
}

// CutMiddle cuts at the midpoint.
func (d *Deck) CutMiddle() { d.Cut(len(d.cards) / 2) }

// PeekTop reads the next card to be drawn without removing it.
func (d *Deck) PeekTop() (Card, bool) { return d.Peek(-1) }

// PeekBottom reads the last card to be drawn without removing it.
func (d *Deck) PeekBottom() (Card, bool) { return d.Peek(0) }
