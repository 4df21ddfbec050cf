package domain

import "testing"

func card(r Rank, s Suit) Card {
	return Card{Suit: s, Rank: r}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		category Category
		strength int32
	}{
		{
			name:     "single",
			cards:    []Card{card(Rank7, SuitHearts)},
			category: Single,
			strength: 7*10 + 3,
		},
		{
			name:     "pair takes highest suit",
			cards:    []Card{card(Rank7, SuitSpades), card(Rank7, SuitDiamonds)},
			category: Pair,
			strength: 7*10 + 4,
		},
		{
			name:     "triple",
			cards:    []Card{card(RankQ, SuitDiamonds), card(RankQ, SuitClubs), card(RankQ, SuitHearts)},
			category: Triple,
			strength: 12*10 + 3,
		},
		{
			name:     "pure quad",
			cards:    []Card{card(Rank9, SuitDiamonds), card(Rank9, SuitClubs), card(Rank9, SuitHearts), card(Rank9, SuitSpades)},
			category: FourOfAKind,
			strength: 9 * 100,
		},
		{
			name: "quad with kicker",
			cards: []Card{
				card(Rank9, SuitDiamonds), card(Rank9, SuitClubs), card(Rank9, SuitHearts),
				card(Rank9, SuitSpades), card(Rank4, SuitClubs),
			},
			category: FourOfAKind,
			strength: 9*100 + 4,
		},
		{
			name: "full house keyed by triple rank",
			cards: []Card{
				card(Rank6, SuitDiamonds), card(Rank6, SuitClubs), card(Rank6, SuitHearts),
				card(Rank9, SuitDiamonds), card(Rank9, SuitSpades),
			},
			category: FullHouse,
			strength: 6*100 + 9,
		},
		{
			name: "straight mixed suits",
			cards: []Card{
				card(Rank4, SuitClubs), card(Rank5, SuitDiamonds), card(Rank6, SuitHearts),
				card(Rank7, SuitSpades), card(Rank8, SuitDiamonds),
			},
			category: Straight,
			strength: 8*100 + 1,
		},
		{
			name: "straight flush",
			cards: []Card{
				card(Rank4, SuitDiamonds), card(Rank5, SuitDiamonds), card(Rank6, SuitDiamonds),
				card(Rank7, SuitDiamonds), card(Rank8, SuitDiamonds),
			},
			category: StraightFlush,
			strength: 8*100 + 1,
		},
		{
			name: "flush non consecutive",
			cards: []Card{
				card(Rank3, SuitHearts), card(Rank6, SuitHearts), card(Rank9, SuitHearts),
				card(RankJ, SuitHearts), card(RankK, SuitHearts),
			},
			category: Flush,
			strength: 13*100 + 3,
		},
		{
			name: "two tops off a straight",
			cards: []Card{
				card(RankJ, SuitClubs), card(RankQ, SuitDiamonds), card(RankK, SuitHearts),
				card(RankA, SuitSpades), card(Rank2, SuitDiamonds),
			},
			category: Straight,
			strength: 15*100 + 1,
		},
		{
			name: "six card straight",
			cards: []Card{
				card(Rank5, SuitClubs), card(Rank6, SuitDiamonds), card(Rank7, SuitHearts),
				card(Rank8, SuitSpades), card(Rank9, SuitDiamonds), card(Rank10, SuitClubs),
			},
			category: Straight,
			strength: 10*100 + 2,
		},
		{
			name:     "mismatched pair is degenerate",
			cards:    []Card{card(Rank4, SuitClubs), card(Rank5, SuitClubs)},
			category: CategoryInvalid,
		},
		{
			name: "three plus one is degenerate",
			cards: []Card{
				card(Rank8, SuitDiamonds), card(Rank8, SuitClubs),
				card(Rank8, SuitHearts), card(RankK, SuitSpades),
			},
			category: CategoryInvalid,
		},
		{
			name: "no wraparound from two to three",
			cards: []Card{
				card(RankK, SuitClubs), card(RankA, SuitDiamonds), card(Rank2, SuitHearts),
				card(Rank3, SuitSpades), card(Rank4, SuitDiamonds),
			},
			category: CategoryInvalid,
		},
		{
			name: "ragged five cards",
			cards: []Card{
				card(Rank3, SuitClubs), card(Rank5, SuitDiamonds), card(Rank8, SuitHearts),
				card(RankJ, SuitSpades), card(RankK, SuitDiamonds),
			},
			category: CategoryInvalid,
		},
		{
			name:     "empty set",
			cards:    nil,
			category: CategoryInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo := Classify(tt.cards)
			if combo.Category != tt.category {
				t.Fatalf("category = %v, want %v", combo.Category, tt.category)
			}
			if tt.category != CategoryInvalid && combo.Strength != tt.strength {
				t.Errorf("strength = %d, want %d", combo.Strength, tt.strength)
			}
			if tt.category != CategoryInvalid && combo.Count != len(tt.cards) {
				t.Errorf("count = %d, want %d", combo.Count, len(tt.cards))
			}
		})
	}
}

// Every five-card hand maps to exactly one category or is degenerate.
func TestClassifyFiveCardExclusive(t *testing.T) {
	deck := NewDeck()

	// Walk a spread of five-card hands rather than all C(52,5).
	for a := 0; a < 52; a += 3 {
		for step := 1; step <= 11; step += 2 {
			hand := make([]Card, 0, 5)
			for k := 0; k < 5; k++ {
				hand = append(hand, deck[(a+k*step)%52])
			}
			if dup(hand) {
				continue
			}

			combo := Classify(hand)
			switch combo.Category {
			case Straight, Flush, FullHouse, FourOfAKind, StraightFlush, CategoryInvalid:
			default:
				t.Fatalf("five cards classified as %v: %v", combo.Category, hand)
			}
		}
	}
}

func dup(cards []Card) bool {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}
