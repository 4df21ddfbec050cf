package bot

import (
	"bigtwo/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent constructs an agent with the default strategy.
func NewAgent(id, name string) *Agent {
	return &Agent{ID: id, Name: name, Strategy: &GreedyBot{}}
}

// Play asks the agent to calculate its move based on the current match state.
func (a *Agent) Play(m *domain.Match) (Move, error) {
	seat := m.SeatOf(a.ID)
	if seat == nil {
		// Agent is not part of this match.
		return Move{Pass: true}, nil
	}

	move, err := a.Strategy.CalculateMove(m, seat)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}
