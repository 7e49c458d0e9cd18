package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandCapacity(t *testing.T) {
	h := NewHand(2)
	require.NoError(t, h.Add(New("a", nil)))
	require.NoError(t, h.Add(New("b", nil)))

	err := h.Add(New("c", nil))
	require.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, 2, h.Size(), "failed add must not mutate")

	assert.False(t, h.TryAdd(New("c", nil)))
	assert.False(t, h.CanAccept(1))
}

func TestHandAddManyAllOrNothing(t *testing.T) {
	h := NewHand(3)
	require.NoError(t, h.AddMany(namedCards(2)))

	err := h.AddMany(namedCards(2))
	require.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, 2, h.Size())

	assert.Equal(t, 1, h.TryAddMany(namedCards(2)), "TryAddMany takes what fits")
	assert.Equal(t, 3, h.Size())
}

func TestHandShrinkingCapacityKeepsOverflow(t *testing.T) {
	h := NewHand(0)
	require.NoError(t, h.AddMany(namedCards(4)))

	h.SetMaxSize(2)
	assert.Equal(t, 4, h.Size(), "shrinking never evicts")
	assert.ErrorIs(t, h.Add(New("x", nil)), ErrCapacity)
}

func TestHandPlay(t *testing.T) {
	cards := namedCards(3)
	h := NewHand(0)
	require.NoError(t, h.AddMany(cards))

	played, ok := h.Play(1)
	require.True(t, ok)
	assert.True(t, played.IsIdentical(cards[1]))

	played, ok = h.PlayCard(func(c Card) bool { return c.Name() == "c3" })
	require.True(t, ok)
	assert.True(t, played.IsIdentical(cards[2]))
	assert.Equal(t, 1, h.Size())
}

func TestHandSortStable(t *testing.T) {
	h := NewHand(0)
	h.Collection = *NewCollection(
		New("b", map[string]any{PropValue: 2}),
		New("a1", map[string]any{PropValue: 1}),
		New("a2", map[string]any{PropValue: 1}),
	)

	h.Sort(func(a, b Card) bool { return a.IntProp(PropValue) < b.IntProp(PropValue) })

	names := []string{}
	h.Each(func(c Card) { names = append(names, c.Name()) })
	assert.Equal(t, []string{"a1", "a2", "b"}, names)
}
