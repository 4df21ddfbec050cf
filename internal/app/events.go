package app

import "bigtwo/internal/domain"

// EventKind identifies emitted domain events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined    EventKind = "player_joined"
	EventPlayerLeft      EventKind = "player_left"
	EventMatchStarted    EventKind = "match_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventCardPlayed      EventKind = "card_played"
	EventTurnPassed      EventKind = "turn_passed"
	EventSeedingResolved EventKind = "seeding_resolved"
	EventMatchEnded      EventKind = "match_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID string
	Seat   int
	Owner  bool
}

type PlayerLeftPayload struct {
	UserID string
}

type MatchStartedPayload struct {
	Phase         domain.Phase
	FirstTurnSeat int
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

type CardPlayedPayload struct {
	UserID       string
	Seat         int
	Cards        []domain.Card
	Category     domain.Category
	NextTurnSeat int
}

type TurnPassedPayload struct {
	UserID       string
	Seat         int
	NextTurnSeat int
	TrickCleared bool
}

type SeedingResolvedPayload struct {
	OpenerSeat int
}

type MatchEndedPayload struct {
	Winner      string
	FinishOrder []string
}
