package card

import (
	"errors"
	"fmt"
)

// ErrCapacity is the kind wrapped by every capacity-violation error.
var ErrCapacity = errors.New("capacity exceeded")

// Hand is a collection with an optional capacity bound. Lowering the bound
// below the current size never evicts cards; it only blocks further adds.
type Hand struct {
	Collection
	maxSize int // 0 = unbounded
}

// NewHand builds an empty hand. maxSize of 0 means unbounded.
func NewHand(maxSize int) *Hand {
	return &Hand{maxSize: maxSize}
}

// MaxSize returns the capacity bound, 0 when unbounded.
func (h *Hand) MaxSize() int { return h.maxSize }

// SetMaxSize changes the capacity bound. Existing overflow is tolerated.
func (h *Hand) SetMaxSize(n int) { h.maxSize = n }

// CanAccept reports whether n more cards fit without breaching capacity.
func (h *Hand) CanAccept(n int) bool {
	return h.maxSize == 0 || h.Size()+n <= h.maxSize
}

// Add appends a card, failing without mutation when the hand is full.
func (h *Hand) Add(card Card) error {
	if !h.CanAccept(1) {
		return fmt.Errorf("%w: hand holds %d of %d", ErrCapacity, h.Size(), h.maxSize)
	}
	h.Collection.Add(card)
	return nil
}

// AddMany appends cards, failing without mutation when they would not all fit.
func (h *Hand) AddMany(cards []Card) error {
	if !h.CanAccept(len(cards)) {
		return fmt.Errorf("%w: hand holds %d of %d, cannot take %d more", ErrCapacity, h.Size(), h.maxSize, len(cards))
	}
	h.Collection.AddMany(cards)
	return nil
}

// TryAdd is the non-erroring Add variant.
func (h *Hand) TryAdd(card Card) bool {
	return h.Add(card) == nil
}

// TryAddMany adds cards one at a time until the hand fills, returning how
// many were taken.
func (h *Hand) TryAddMany(cards []Card) int {
	n := 0
	for _, card := range cards {
		if !h.TryAdd(card) {
			break
		}
		n++
	}
	return n
}

// Play removes and returns the card at idx, the same index rules as RemoveAt.
func (h *Hand) Play(idx int) (Card, bool) { return h.RemoveAt(idx) }

// PlayCard removes and returns the first card matching pred.
func (h *Hand) PlayCard(pred func(Card) bool) (Card, bool) { return h.Remove(pred) }

// Sort orders the hand in place, stably, per less.
func (h *Hand) Sort(less func(a, b Card) bool) { h.sortStable(less) }
