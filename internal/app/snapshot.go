package app

import "bigtwo/internal/domain"

// SeatView is the public projection of a seat: hands stay hidden, only
// the count is visible to other players.
type SeatView struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	CardsRemaining int    `json:"cards_remaining"`
	Seeded         bool   `json:"seeded"`
	Finished       bool   `json:"finished"`
	FinishRank     int    `json:"finish_rank,omitempty"`
}

// Snapshot is the read-only view of a match for one requesting player:
// the public table state plus that player's own hand.
type Snapshot struct {
	Phase             domain.Phase  `json:"phase"`
	Seats             []SeatView    `json:"seats"`
	CurrentTurnSeat   int           `json:"current_turn_seat"`
	LastPlay          *domain.Play  `json:"last_play,omitempty"`
	ConsecutivePasses int           `json:"consecutive_passes"`
	Winner            string        `json:"winner,omitempty"`
	FinishOrder       []string      `json:"finish_order,omitempty"`
	MyHand            []domain.Card `json:"my_hand"`
	MySeat            int           `json:"my_seat"`
	IsMyTurn          bool          `json:"is_my_turn"`
}

// SnapshotFor projects the match for the given viewer. Viewers outside the
// match see the public state with no hand and a seat of -1.
func SnapshotFor(m *domain.Match, viewerID string) Snapshot {
	snap := Snapshot{
		Phase:             m.Phase,
		CurrentTurnSeat:   m.CurrentTurn,
		LastPlay:          m.LastPlay,
		ConsecutivePasses: m.ConsecutivePasses,
		Winner:            m.Winner,
		MySeat:            -1,
	}
	if m.Phase == domain.PhaseFinished {
		snap.FinishOrder = m.FinishOrder()
	}

	for _, seat := range m.Seats {
		snap.Seats = append(snap.Seats, SeatView{
			UserID:         seat.UserID,
			Seat:           seat.Position,
			CardsRemaining: len(seat.Hand),
			Seeded:         seat.Seeded,
			Finished:       seat.Finished,
			FinishRank:     seat.FinishRank,
		})
		if seat.UserID == viewerID {
			snap.MyHand = seat.Hand
			snap.MySeat = seat.Position
			snap.IsMyTurn = m.Phase != domain.PhaseFinished && seat.Position == m.CurrentTurn
		}
	}
	return snap
}
