package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// Suit identifies one of the four suits. The declaration order is the
// tie-break order: diamonds is lowest, spades highest.
type Suit int32

const (
	SuitDiamonds Suit = iota
	SuitClubs
	SuitHearts
	SuitSpades
)

// Rank identifies a card rank in Big Two order: 3 is lowest, 2 is highest.
type Rank int32

const (
	Rank3 Rank = iota
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
	Rank2
)

func (s Suit) String() string {
	switch s {
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case Rank10:
		return "10"
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	case Rank2:
		return "2"
	default:
		if r >= Rank3 && r <= Rank9 {
			return fmt.Sprintf("%d", int(r)+3)
		}
		return "?"
	}
}

// Card is a single playing card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// rankValue maps ranks to 3..15 so that 2 sorts above the ace.
func rankValue(r Rank) int32 {
	return int32(r) + 3
}

// suitValue maps suits to 1..4, diamonds lowest.
func suitValue(s Suit) int32 {
	return int32(s) + 1
}

// CardOrder is the total ordering key for a single card: rank first,
// suit as the tie-break.
func CardOrder(c Card) int32 {
	return rankValue(c.Rank)*10 + suitValue(c.Suit)
}

// Compare orders two cards by rank, then suit. Negative means a < b.
func Compare(a, b Card) int {
	return int(CardOrder(a)) - int(CardOrder(b))
}

// NewDeck returns the full 52-card deck in canonical order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := SuitDiamonds; s <= SuitSpades; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using the supplied
// randomness source.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortCards orders cards in place by ascending rank, then suit.
func SortCards(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return Compare(cards[i], cards[j]) < 0
	})
}

// HoldsAll reports whether hand contains every card in cards.
func HoldsAll(hand []Card, cards []Card) bool {
	held := make(map[Card]int, len(hand))
	for _, c := range hand {
		held[c]++
	}
	for _, c := range cards {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

// RemoveCards removes the specified cards from a hand and returns the
// updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}
