package bot

import (
	"sort"

	"bigtwo/internal/bot/internal"
	"bigtwo/internal/domain"
)

// GreedyBot plays the weakest legal move on every turn and passes when
// nothing fits. It never holds cards back, which makes match flow in
// simulations and seat-filling predictable.
type GreedyBot struct{}

func (b *GreedyBot) CalculateMove(m *domain.Match, seat *domain.Seat) (Move, error) {
	if m.Phase == domain.PhaseSeeding {
		return seedingMove(seat), nil
	}

	moves := internal.ValidMoves(seat.Hand, m.LastPlay)
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}

	sort.Slice(moves, func(i, j int) bool {
		ci, cj := moves[i].Combination, moves[j].Combination
		if ci.Count != cj.Count {
			return ci.Count < cj.Count
		}
		return ci.Strength < cj.Strength
	})
	return Move{Cards: moves[0].Cards}, nil
}

// seedingMove surrenders every seed-rank card in hand. The match skips
// seats with nothing to seed, so the hand always has at least one here.
func seedingMove(seat *domain.Seat) Move {
	var cards []domain.Card
	for _, c := range seat.Hand {
		if c.Rank == domain.SeedRank {
			cards = append(cards, c)
		}
	}
	return Move{Cards: cards}
}
