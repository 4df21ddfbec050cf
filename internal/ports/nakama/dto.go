package nakama

import (
	"bigtwo/internal/app"
	"bigtwo/internal/bot"
	"bigtwo/internal/domain"
)

// Wire payloads are JSON. Domain cards marshal to {"suit":n,"rank":n}
// so requests and events share the domain representation directly.

type playCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

type playerJoinedMsg struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	Owner       bool   `json:"owner"`
	DisplayName string `json:"display_name"`
}

type playerLeftMsg struct {
	UserID string `json:"user_id"`
}

type matchStartedMsg struct {
	Phase         domain.Phase `json:"phase"`
	FirstTurnSeat int          `json:"first_turn_seat"`
}

type handDealtMsg struct {
	Hand []domain.Card `json:"hand"`
}

type cardPlayedMsg struct {
	UserID       string        `json:"user_id"`
	Seat         int           `json:"seat"`
	Cards        []domain.Card `json:"cards"`
	Category     string        `json:"category"`
	NextTurnSeat int           `json:"next_turn_seat"`
}

type turnPassedMsg struct {
	UserID       string `json:"user_id"`
	Seat         int    `json:"seat"`
	NextTurnSeat int    `json:"next_turn_seat"`
	TrickCleared bool   `json:"trick_cleared"`
}

type seedingResolvedMsg struct {
	OpenerSeat int `json:"opener_seat"`
}

type matchEndedMsg struct {
	Winner      string   `json:"winner"`
	FinishOrder []string `json:"finish_order"`
}

type errorMsg struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// matchLabel is the queryable label Nakama indexes for this match.
type matchLabel struct {
	Open  int    `json:"open"`
	Phase string `json:"phase"`
	Game  string `json:"game"`
}

// eventWire maps an app event to its opcode and wire payload. The second
// return is false for kinds the transport does not publish.
func eventWire(ev app.Event) (int64, any, bool) {
	switch ev.Kind {
	case app.EventPlayerJoined:
		p := ev.Payload.(app.PlayerJoinedPayload)
		return OpPlayerJoined, playerJoinedMsg{
			UserID: p.UserID,
			Seat:   p.Seat,
			Owner:  p.Owner,
			// Humans resolve display names from presences; bots have none there.
			DisplayName: bot.GetDisplayName(p.UserID),
		}, true
	case app.EventPlayerLeft:
		p := ev.Payload.(app.PlayerLeftPayload)
		return OpPlayerLeft, playerLeftMsg{UserID: p.UserID}, true
	case app.EventMatchStarted:
		p := ev.Payload.(app.MatchStartedPayload)
		return OpMatchStarted, matchStartedMsg{
			Phase:         p.Phase,
			FirstTurnSeat: p.FirstTurnSeat,
		}, true
	case app.EventHandDealt:
		p := ev.Payload.(app.HandDealtPayload)
		return OpHandDealt, handDealtMsg{Hand: p.Hand}, true
	case app.EventCardPlayed:
		p := ev.Payload.(app.CardPlayedPayload)
		return OpCardPlayed, cardPlayedMsg{
			UserID:       p.UserID,
			Seat:         p.Seat,
			Cards:        p.Cards,
			Category:     p.Category.String(),
			NextTurnSeat: p.NextTurnSeat,
		}, true
	case app.EventTurnPassed:
		p := ev.Payload.(app.TurnPassedPayload)
		return OpTurnPassed, turnPassedMsg{
			UserID:       p.UserID,
			Seat:         p.Seat,
			NextTurnSeat: p.NextTurnSeat,
			TrickCleared: p.TrickCleared,
		}, true
	case app.EventSeedingResolved:
		p := ev.Payload.(app.SeedingResolvedPayload)
		return OpSeedingResolved, seedingResolvedMsg{OpenerSeat: p.OpenerSeat}, true
	case app.EventMatchEnded:
		p := ev.Payload.(app.MatchEndedPayload)
		return OpMatchEnded, matchEndedMsg{
			Winner:      p.Winner,
			FinishOrder: p.FinishOrder,
		}, true
	}
	return 0, nil, false
}
