package internal

import (
	"bigtwo/internal/domain"
)

// ValidMove represents a possible legal play.
type ValidMove struct {
	Cards       []domain.Card
	Combination domain.Combination
}

// ValidMoves returns legal moves for a hand against the table's last
// play. On a lead turn any combination may open; when responding only
// same-shape beats and bombs over a single 2 qualify. CanBeat is the
// single source of truth, the generators just enumerate candidates.
func ValidMoves(hand []domain.Card, last *domain.Play) []ValidMove {
	sorted := append([]domain.Card{}, hand...)
	domain.SortCards(sorted)

	var candidates [][]domain.Card
	if last == nil {
		candidates = append(candidates, singles(sorted)...)
		candidates = append(candidates, sameRankSets(sorted, 2)...)
		candidates = append(candidates, sameRankSets(sorted, 3)...)
		candidates = append(candidates, sameRankSets(sorted, 4)...)
		candidates = append(candidates, straights(sorted, 5)...)
		candidates = append(candidates, flushes(sorted)...)
		candidates = append(candidates, fullHouses(sorted)...)
	} else {
		switch last.Combination.Category {
		case domain.Single:
			candidates = append(candidates, singles(sorted)...)
		case domain.Pair:
			candidates = append(candidates, sameRankSets(sorted, 2)...)
		case domain.Triple:
			candidates = append(candidates, sameRankSets(sorted, 3)...)
		case domain.FourOfAKind:
			candidates = append(candidates, sameRankSets(sorted, 4)...)
		case domain.Straight:
			candidates = append(candidates, straights(sorted, last.Combination.Count)...)
		case domain.Flush, domain.StraightFlush:
			candidates = append(candidates, flushes(sorted)...)
			candidates = append(candidates, straights(sorted, last.Combination.Count)...)
		case domain.FullHouse:
			candidates = append(candidates, fullHouses(sorted)...)
		}
		// Bombs may chop a leading single 2 regardless of shape.
		if last.Combination.Category != domain.FourOfAKind {
			candidates = append(candidates, sameRankSets(sorted, 4)...)
		}
	}

	var moves []ValidMove
	for _, cards := range candidates {
		combo := domain.Classify(cards)
		if combo.Category == domain.CategoryInvalid {
			continue
		}
		if !domain.CanBeat(combo, last) {
			continue
		}
		moves = append(moves, ValidMove{Cards: cards, Combination: combo})
	}
	return moves
}

func singles(hand []domain.Card) [][]domain.Card {
	out := make([][]domain.Card, 0, len(hand))
	for _, c := range hand {
		out = append(out, []domain.Card{c})
	}
	return out
}

// sameRankSets enumerates every size-n subset of each rank group.
func sameRankSets(hand []domain.Card, n int) [][]domain.Card {
	var out [][]domain.Card
	byRank := groupByRank(hand)
	for _, group := range byRank {
		if len(group) < n {
			continue
		}
		out = append(out, combinations(group, n)...)
	}
	return out
}

func straights(hand []domain.Card, length int) [][]domain.Card {
	if length < 5 {
		length = 5
	}

	// One representative card per rank keeps the enumeration small; the
	// lowest card of each rank is as good as any for beating purposes.
	byRank := groupByRank(hand)
	var out [][]domain.Card
	for startRank := domain.Rank3; int(startRank)+length-1 <= int(domain.Rank2); startRank++ {
		run := make([]domain.Card, 0, length)
		for i := 0; i < length; i++ {
			group, ok := byRank[startRank+domain.Rank(i)]
			if !ok {
				break
			}
			run = append(run, group[0])
		}
		if len(run) == length {
			out = append(out, run)
		}
	}
	return out
}

func flushes(hand []domain.Card) [][]domain.Card {
	bySuit := make(map[domain.Suit][]domain.Card)
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var out [][]domain.Card
	for _, group := range bySuit {
		if len(group) < 5 {
			continue
		}
		// Lowest five first, then slide the window up for stronger tops.
		for i := 0; i+5 <= len(group); i++ {
			out = append(out, append([]domain.Card{}, group[i:i+5]...))
		}
	}
	return out
}

func fullHouses(hand []domain.Card) [][]domain.Card {
	byRank := groupByRank(hand)
	var out [][]domain.Card
	for tripleRank, tripleGroup := range byRank {
		if len(tripleGroup) < 3 {
			continue
		}
		for pairRank, pairGroup := range byRank {
			if pairRank == tripleRank || len(pairGroup) < 2 {
				continue
			}
			cards := append([]domain.Card{}, tripleGroup[:3]...)
			cards = append(cards, pairGroup[:2]...)
			out = append(out, cards)
		}
	}
	return out
}

func groupByRank(hand []domain.Card) map[domain.Rank][]domain.Card {
	byRank := make(map[domain.Rank][]domain.Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	return byRank
}

// combinations enumerates size-n subsets of a small group (at most four
// cards per rank).
func combinations(group []domain.Card, n int) [][]domain.Card {
	if n > len(group) {
		return nil
	}
	if n == len(group) {
		return [][]domain.Card{append([]domain.Card{}, group...)}
	}

	var out [][]domain.Card
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for {
		pick := make([]domain.Card, n)
		for i, j := range idx {
			pick[i] = group[j]
		}
		out = append(out, pick)

		i := n - 1
		for i >= 0 && idx[i] == len(group)-n+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < n; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
