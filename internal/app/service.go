package app

import (
	"math/rand"
	"time"

	"bigtwo/internal/domain"
)

// Service contains the Big Two use-cases operating on domain match state.
// It owns the injected randomness source; the domain stays deterministic.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// NewMatch creates an empty match with the given rule variants.
func (s *Service) NewMatch(rules domain.Rules) *domain.Match {
	return domain.NewMatch(rules)
}

// Join seats a player and emits the join event.
func (s *Service) Join(m *domain.Match, userID string) (*domain.Seat, []Event, error) {
	seat, err := m.AddSeat(userID)
	if err != nil {
		return nil, nil, err
	}
	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			UserID: userID,
			Seat:   seat.Position,
			Owner:  seat.Position == 0,
		},
	}}
	return seat, events, nil
}

// Leave removes or retires a player and emits the resulting events.
func (s *Service) Leave(m *domain.Match, userID string) ([]Event, error) {
	if err := m.Leave(userID); err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{UserID: userID},
	}}
	if m.Phase == domain.PhaseFinished {
		events = append(events, matchEndedEvent(m))
	}
	return events, nil
}

// StartMatch shuffles, deals and opens the match, emitting a private
// hand-dealt event per seat followed by the broadcast start event.
func (s *Service) StartMatch(m *domain.Match) ([]Event, error) {
	if err := m.Start(s.rng); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(m.Seats)+1)
	for _, seat := range m.Seats {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: seat.UserID,
				Hand:   seat.Hand,
			},
			Recipients: []string{seat.UserID},
		})
	}
	events = append(events, Event{
		Kind: EventMatchStarted,
		Payload: MatchStartedPayload{
			Phase:         m.Phase,
			FirstTurnSeat: m.CurrentTurn,
		},
	})
	return events, nil
}

// PlayCards submits a play and emits the played event plus any follow-up
// events the transition causes: seeding resolution or match end.
func (s *Service) PlayCards(m *domain.Match, userID string, cards []domain.Card) ([]Event, error) {
	seat := m.SeatOf(userID)
	phaseBefore := m.Phase
	combo := domain.Classify(cards)

	if err := m.SubmitPlay(userID, cards); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			UserID:       userID,
			Seat:         seat.Position,
			Cards:        combo.Cards,
			Category:     combo.Category,
			NextTurnSeat: m.CurrentTurn,
		},
	}}

	if phaseBefore == domain.PhaseSeeding && m.Phase == domain.PhaseActive {
		events = append(events, Event{
			Kind:    EventSeedingResolved,
			Payload: SeedingResolvedPayload{OpenerSeat: m.CurrentTurn},
		})
	}
	if m.Phase == domain.PhaseFinished {
		events = append(events, matchEndedEvent(m))
	}
	return events, nil
}

// PassTurn submits a pass and emits the pass event, flagging a cleared
// trick so clients know the next seat leads freely.
func (s *Service) PassTurn(m *domain.Match, userID string) ([]Event, error) {
	seat := m.SeatOf(userID)

	if err := m.SubmitPass(userID); err != nil {
		return nil, err
	}

	return []Event{{
		Kind: EventTurnPassed,
		Payload: TurnPassedPayload{
			UserID:       userID,
			Seat:         seat.Position,
			NextTurnSeat: m.CurrentTurn,
			TrickCleared: m.LastPlay == nil,
		},
	}}, nil
}

func matchEndedEvent(m *domain.Match) Event {
	return Event{
		Kind: EventMatchEnded,
		Payload: MatchEndedPayload{
			Winner:      m.Winner,
			FinishOrder: m.FinishOrder(),
		},
	}
}
