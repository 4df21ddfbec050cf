package bot

import (
	"bigtwo/internal/domain"
)

// Move represents the decision made by a bot.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(m *domain.Match, seat *domain.Seat) (Move, error)
}
