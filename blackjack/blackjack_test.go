package blackjack

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabletop/card"
	"tabletop/game"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTable(t *testing.T, players int) (*Game, []*game.Player) {
	t.Helper()
	g, err := New(Config{
		MinPlayers:           1,
		MaxPlayers:           4,
		NumDecks:             1,
		DealerStandsOnSoft17: true,
		Seed:                 42,
		Logger:               quietLogger(),
	})
	require.NoError(t, err)

	out := make([]*game.Player, players)
	for i := range out {
		out[i] = game.NewPlayer("p" + string(rune('0'+i)))
		require.NoError(t, g.Core().AddPlayer(out[i]))
	}
	require.NoError(t, g.Core().Start())
	return g, out
}

// stackShoe replaces the shoe with the given cards, bottom first, and pins
// the reshuffle threshold so the stack survives DealRound.
func stackShoe(g *Game, cards []card.Card) {
	g.shoe.Clear()
	g.shoe.AddMany(cards)
	g.shoeSize = len(cards)
}

func TestDealRoundRequiresPlaying(t *testing.T) {
	g, err := New(Config{MinPlayers: 2, Logger: quietLogger()})
	require.NoError(t, err)
	assert.ErrorIs(t, g.DealRound(), game.ErrStateConflict)
}

func TestDealRoundShapes(t *testing.T) {
	g, players := newTable(t, 2)

	// Draw order with two seats: p0, p1, dealer, p0, p1, dealer.
	stackShoe(g, mkCards("K", "Q", "6", "5", "4", "3", "2", "A"))
	require.NoError(t, g.DealRound())

	assert.Equal(t, 1, g.Round())
	for _, p := range players {
		assert.Equal(t, 2, p.Hand.Size())
		assert.Equal(t, game.StatusActive, p.Status)
	}
	assert.Len(t, g.DealerCards(), 1, "hole card stays hidden")
	assert.False(t, g.DealerRevealed())
	assert.Equal(t, 2, g.ShoeSize())
}

func TestPlayerWinWhenDealerBusts(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Draw order: player K, dealer 5, player 9, dealer 10, dealer 10 (bust).
	stackShoe(g, mkCards("10", "10", "9", "5", "K"))
	require.NoError(t, g.DealRound())

	require.NoError(t, g.Stand(p.ID()))

	res, ok := g.Result(p.ID())
	require.True(t, ok)
	assert.Equal(t, OutcomeWin, res)
	assert.Equal(t, 100, p.Score)

	value, ok := g.LastHandValue(p.ID())
	require.True(t, ok)
	assert.Equal(t, 19, value)

	ds, ok := g.DealerScore()
	require.True(t, ok)
	assert.True(t, ds.Bust)
}

func TestHitUntilBustFoldsAndResolves(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Player: 10+8, then draws 5 and busts. Dealer: 9+8 = 17, stands.
	stackShoe(g, mkCards("5", "8", "8", "9", "10"))
	require.NoError(t, g.DealRound())

	require.NoError(t, g.Hit(p.ID()))

	assert.Equal(t, game.StatusFolded, p.Status)
	res, ok := g.Result(p.ID())
	require.True(t, ok)
	assert.Equal(t, OutcomeLose, res)
	assert.Equal(t, 0, p.Score, "losses deduct nothing")

	assert.ErrorIs(t, g.Hit(p.ID()), game.ErrStateConflict, "folded players cannot act")
}

func TestDealerNaturalResolvesWithoutPlayerAction(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Player: 5+9. Dealer: A+K natural.
	stackShoe(g, mkCards("K", "9", "A", "5"))
	require.NoError(t, g.DealRound())

	assert.True(t, g.DealerRevealed())
	res, ok := g.Result(p.ID())
	require.True(t, ok)
	assert.Equal(t, OutcomeLose, res)
	assert.ErrorIs(t, g.Stand(p.ID()), game.ErrStateConflict, "round is already settled")
}

func TestPlayerBlackjackPayout(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Player: A+K natural. Dealer: 5+9, then draws 4 → 18, stands.
	stackShoe(g, mkCards("4", "9", "K", "5", "A"))
	require.NoError(t, g.DealRound())
	require.NoError(t, g.Stand(p.ID()))

	res, _ := g.Result(p.ID())
	assert.Equal(t, OutcomeBlackjack, res)
	assert.Equal(t, 150, p.Score, "floor(100 × 1.5)")
}

func TestDoubleRules(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Player: 5+6, doubles into a 10 → 21. Dealer: 10+9, stands.
	stackShoe(g, mkCards("10", "9", "6", "10", "5"))
	require.NoError(t, g.DealRound())

	require.NoError(t, g.Double(p.ID()))
	assert.Equal(t, 3, p.Hand.Size())
	res, ok := g.Result(p.ID())
	require.True(t, ok)
	assert.Equal(t, OutcomeWin, res)
}

func TestDoubleNeedsTwoCards(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	// Player: 2+3 then hits a 2; dealer 10+9.
	stackShoe(g, mkCards("2", "9", "3", "10", "2"))
	require.NoError(t, g.DealRound())
	require.NoError(t, g.Hit(p.ID()))

	assert.ErrorIs(t, g.Double(p.ID()), game.ErrInvalidArgument)
}

func TestAvailableActions(t *testing.T) {
	g, players := newTable(t, 1)
	p := players[0]

	assert.Nil(t, g.AvailableActions(p.ID()), "nothing before the deal")

	stackShoe(g, mkCards("2", "2", "9", "3", "10", "2"))
	require.NoError(t, g.DealRound())
	assert.Equal(t, []Action{ActionHit, ActionStand, ActionDouble}, g.AvailableActions(p.ID()))

	require.NoError(t, g.Hit(p.ID()))
	assert.Equal(t, []Action{ActionHit, ActionStand}, g.AvailableActions(p.ID()), "no double on three cards")
}

func TestShoeReshufflesWhenLow(t *testing.T) {
	g, _ := newTable(t, 1)

	// Leave 4 cards in a 52-card shoe and park the rest in the discard.
	g.discard.AddMany(g.shoe.DrawMany(48))
	require.Equal(t, 4, g.ShoeSize())

	require.NoError(t, g.DealRound())
	assert.Equal(t, 52-4, g.ShoeSize(), "discard folded back in before dealing")
}

func TestRoundsResetSeats(t *testing.T) {
	g, players := newTable(t, 2)
	stackShoe(g, mkCards("K", "Q", "J", "10", "9", "8", "7", "6"))
	require.NoError(t, g.DealRound())
	for _, p := range players {
		require.NoError(t, g.Stand(p.ID()))
	}
	for _, p := range players {
		_, ok := g.Result(p.ID())
		assert.True(t, ok)
	}

	// Stack the next round so the dealer cannot turn up a natural.
	stackShoe(g, mkCards("9", "8", "7", "6", "5", "4"))
	require.NoError(t, g.DealRound())
	for _, p := range players {
		assert.Equal(t, game.StatusActive, p.Status)
		assert.Equal(t, 2, p.Hand.Size())
		_, ok := g.Result(p.ID())
		assert.False(t, ok, "results clear at the next deal")
	}
}
