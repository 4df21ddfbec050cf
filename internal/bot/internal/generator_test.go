package internal

import (
	"testing"

	"bigtwo/internal/domain"
)

func card(r domain.Rank, s domain.Suit) domain.Card {
	return domain.Card{Suit: s, Rank: r}
}

func playOf(cards ...domain.Card) *domain.Play {
	return &domain.Play{
		UserID:      "opponent",
		Cards:       cards,
		Combination: domain.Classify(cards),
	}
}

func TestValidMovesLeadEnumeratesShapes(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank3, domain.SuitDiamonds),
		card(domain.Rank3, domain.SuitClubs),
		card(domain.Rank3, domain.SuitHearts),
		card(domain.Rank4, domain.SuitDiamonds),
		card(domain.Rank4, domain.SuitSpades),
		card(domain.Rank5, domain.SuitClubs),
		card(domain.Rank6, domain.SuitClubs),
		card(domain.Rank7, domain.SuitClubs),
	}

	moves := ValidMoves(hand, nil)

	counts := map[domain.Category]int{}
	for _, mv := range moves {
		counts[mv.Combination.Category]++
	}
	if counts[domain.Single] != len(hand) {
		t.Fatalf("singles = %d, want %d", counts[domain.Single], len(hand))
	}
	if counts[domain.Pair] == 0 {
		t.Fatalf("expected pair moves in %v", counts)
	}
	if counts[domain.Triple] != 1 {
		t.Fatalf("triples = %d, want 1", counts[domain.Triple])
	}
	if counts[domain.Straight] != 1 {
		t.Fatalf("straights = %d, want 1 (3-4-5-6-7)", counts[domain.Straight])
	}
	if counts[domain.FullHouse] != 1 {
		t.Fatalf("full houses = %d, want 1 (333 over 44)", counts[domain.FullHouse])
	}
}

func TestValidMovesRespondFiltersByShape(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank5, domain.SuitDiamonds),
		card(domain.Rank5, domain.SuitSpades),
		card(domain.Rank9, domain.SuitHearts),
		card(domain.RankK, domain.SuitClubs),
	}
	last := playOf(card(domain.Rank8, domain.SuitSpades))

	moves := ValidMoves(hand, last)

	if len(moves) != 2 {
		t.Fatalf("moves = %d, want 2 singles over the 8", len(moves))
	}
	for _, mv := range moves {
		if mv.Combination.Category != domain.Single {
			t.Fatalf("unexpected category %v", mv.Combination.Category)
		}
		if !domain.CanBeat(mv.Combination, last) {
			t.Fatalf("move %v does not beat the table", mv.Cards)
		}
	}
}

func TestValidMovesBombOverSingleTwo(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank7, domain.SuitDiamonds),
		card(domain.Rank7, domain.SuitClubs),
		card(domain.Rank7, domain.SuitHearts),
		card(domain.Rank7, domain.SuitSpades),
		card(domain.Rank4, domain.SuitClubs),
	}
	last := playOf(card(domain.Rank2, domain.SuitSpades))

	moves := ValidMoves(hand, last)

	found := false
	for _, mv := range moves {
		if mv.Combination.Category == domain.FourOfAKind {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a four-of-a-kind bomb over the 2, got %v", moves)
	}
}

func TestValidMovesPassWhenNothingBeats(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank4, domain.SuitDiamonds),
		card(domain.Rank6, domain.SuitClubs),
	}
	last := playOf(card(domain.RankA, domain.SuitSpades))

	if moves := ValidMoves(hand, last); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", moves)
	}
}

func TestValidMovesStraightLengthMatchesTable(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank8, domain.SuitDiamonds),
		card(domain.Rank9, domain.SuitClubs),
		card(domain.Rank10, domain.SuitHearts),
		card(domain.RankJ, domain.SuitSpades),
		card(domain.RankQ, domain.SuitDiamonds),
		card(domain.RankK, domain.SuitClubs),
	}
	last := playOf(
		card(domain.Rank3, domain.SuitDiamonds),
		card(domain.Rank4, domain.SuitClubs),
		card(domain.Rank5, domain.SuitHearts),
		card(domain.Rank6, domain.SuitSpades),
		card(domain.Rank7, domain.SuitDiamonds),
		card(domain.Rank8, domain.SuitClubs),
	)

	moves := ValidMoves(hand, last)
	if len(moves) == 0 {
		t.Fatal("expected a six-card straight response")
	}
	for _, mv := range moves {
		if mv.Combination.Count != 6 {
			t.Fatalf("count = %d, want 6", mv.Combination.Count)
		}
	}
}
