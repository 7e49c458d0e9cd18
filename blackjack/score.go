package blackjack

import "tabletop/card"

// Score is the derived value of a blackjack hand. It is recomputed from the
// cards on every query; the hand itself is the source of truth.
type Score struct {
	Value     int
	Soft      bool // an ace is currently counted as 11
	Bust      bool // value over 21
	Blackjack bool // exactly two cards totalling 21
}

// CardValue returns the blackjack value of a card: ace 1, pips at face,
// J/Q/K 10. Aces are promoted to 11 at the hand level, never here.
func CardValue(c card.Card) int {
	v := c.IntProp(card.PropValue)
	if v > 10 {
		return 10
	}
	return v
}

// ScoreCards scores a set of cards. Every ace counts 1; if any ace is
// present and promoting exactly one of them to 11 keeps the total at or
// under 21, the hand is soft. Only one ace is ever promoted: A+A+9 is
// 11+1+9 = 21, soft.
func ScoreCards(cards []card.Card) Score {
	total, aces := 0, 0
	for _, c := range cards {
		v := CardValue(c)
		total += v
		if v == 1 {
			aces++
		}
	}
	s := Score{Value: total}
	if aces > 0 && total+10 <= 21 {
		s.Value += 10
		s.Soft = true
	}
	s.Bust = s.Value > 21
	s.Blackjack = len(cards) == 2 && s.Value == 21
	return s
}

// ScoreHand scores the cards currently held.
func ScoreHand(h *card.Hand) Score { return ScoreCards(h.Cards()) }

// Outcome is a player's round result against the dealer.
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLose      Outcome = "LOSE"
	OutcomePush      Outcome = "PUSH"
	OutcomeBlackjack Outcome = "BLACKJACK"
)

// CompareHands resolves a player hand against the dealer's. A busted player
// loses no matter what the dealer holds; a natural beats everything but
// another natural; a dealer bust pays any surviving hand; otherwise the
// higher total wins and ties push.
func CompareHands(player, dealer Score) Outcome {
	switch {
	case player.Bust:
		return OutcomeLose
	case player.Blackjack && dealer.Blackjack:
		return OutcomePush
	case player.Blackjack:
		return OutcomeBlackjack
	case dealer.Bust:
		return OutcomeWin
	case player.Value > dealer.Value:
		return OutcomeWin
	case player.Value < dealer.Value:
		return OutcomeLose
	default:
		return OutcomePush
	}
}

// DealerShouldHit is the dealer policy: always hit under 17, always stand
// over 17, and at exactly 17 stand on a hard 17 or when the
// stand-on-soft-17 rule is in force.
func DealerShouldHit(s Score, standsOnSoft17 bool) bool {
	if s.Value < 17 {
		return true
	}
	if s.Value > 17 {
		return false
	}
	if standsOnSoft17 {
		return false
	}
	return s.Soft
}
