package app

import (
	"math/rand"
	"testing"

	"bigtwo/internal/domain"
)

func newTestMatch(t *testing.T, svc *Service, players int, rules domain.Rules) *domain.Match {
	t.Helper()
	m := svc.NewMatch(rules)
	for i := 0; i < players; i++ {
		uid := "u" + string(rune('0'+i))
		if _, _, err := svc.Join(m, uid); err != nil {
			t.Fatalf("join %s: %v", uid, err)
		}
	}
	return m
}

func TestStartMatchDealsHands(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(42)))
	m := newTestMatch(t, svc, 2, domain.DefaultRules())

	events, err := svc.StartMatch(m)
	if err != nil {
		t.Fatalf("start match error: %v", err)
	}

	handEvents := 0
	for _, ev := range events {
		switch ev.Kind {
		case EventHandDealt:
			handEvents++
			payload := ev.Payload.(HandDealtPayload)
			if len(payload.Hand) != 26 {
				t.Fatalf("hand size = %d, want 26", len(payload.Hand))
			}
			if len(ev.Recipients) != 1 || ev.Recipients[0] != payload.UserID {
				t.Fatalf("hand dealt event must be private to its owner")
			}
		case EventMatchStarted:
			payload := ev.Payload.(MatchStartedPayload)
			if payload.Phase != domain.PhaseSeeding {
				t.Fatalf("phase = %s, want seeding", payload.Phase)
			}
		}
	}
	if handEvents != 2 {
		t.Fatalf("hand events = %d, want 2", handEvents)
	}
}

func TestPlayCardsEmitsFollowUps(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(7)))
	m := newTestMatch(t, svc, 2, domain.DefaultRules())
	if _, err := svc.StartMatch(m); err != nil {
		t.Fatalf("start match: %v", err)
	}

	// Drive the seeding pre-round to resolution.
	for m.Phase == domain.PhaseSeeding {
		seat := m.SeatAt(m.CurrentTurn)
		var threes []domain.Card
		for _, c := range seat.Hand {
			if c.Rank == domain.SeedRank {
				threes = append(threes, c)
			}
		}
		events, err := svc.PlayCards(m, seat.UserID, threes)
		if err != nil {
			t.Fatalf("seeding play by %s: %v", seat.UserID, err)
		}
		if m.Phase == domain.PhaseActive {
			found := false
			for _, ev := range events {
				if ev.Kind == EventSeedingResolved {
					found = true
					payload := ev.Payload.(SeedingResolvedPayload)
					if payload.OpenerSeat != m.CurrentTurn {
						t.Fatalf("opener seat = %d, want %d", payload.OpenerSeat, m.CurrentTurn)
					}
				}
			}
			if !found {
				t.Fatalf("expected seeding resolved event")
			}
		}
	}
}

func TestPlayCardsEndsMatch(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(99)))
	m := newTestMatch(t, svc, 2, domain.DefaultRules())
	if _, err := svc.StartMatch(m); err != nil {
		t.Fatalf("start match: %v", err)
	}

	// Force small hands for a predictable end.
	m.Phase = domain.PhaseActive
	m.LastPlay = nil
	m.CurrentTurn = 0
	m.Seats[0].Hand = []domain.Card{{Suit: domain.SuitSpades, Rank: domain.Rank3}}
	m.Seats[1].Hand = []domain.Card{{Suit: domain.SuitHearts, Rank: domain.Rank4}}

	events, err := svc.PlayCards(m, "u0", m.Seats[0].Hand)
	if err != nil {
		t.Fatalf("play cards error: %v", err)
	}
	if m.Phase != domain.PhaseFinished {
		t.Fatalf("match should have ended when one seat remains")
	}

	foundEnd := false
	for _, ev := range events {
		if ev.Kind == EventMatchEnded {
			foundEnd = true
			payload := ev.Payload.(MatchEndedPayload)
			if payload.Winner != "u0" {
				t.Fatalf("winner = %s, want u0", payload.Winner)
			}
		}
	}
	if !foundEnd {
		t.Fatalf("expected match ended event")
	}
}

func TestPassTurnFlagsTrickCleared(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(5)))
	m := newTestMatch(t, svc, 2, domain.DefaultRules())
	if _, err := svc.StartMatch(m); err != nil {
		t.Fatalf("start match: %v", err)
	}

	m.Phase = domain.PhaseActive
	m.CurrentTurn = 0
	m.Seats[0].Hand = []domain.Card{
		{Suit: domain.SuitClubs, Rank: domain.Rank6},
		{Suit: domain.SuitClubs, Rank: domain.Rank8},
	}
	m.Seats[1].Hand = []domain.Card{{Suit: domain.SuitHearts, Rank: domain.Rank9}}
	m.LastPlay = nil

	if _, err := svc.PlayCards(m, "u0", m.Seats[0].Hand[:1]); err != nil {
		t.Fatalf("open: %v", err)
	}
	events, err := svc.PassTurn(m, "u1")
	if err != nil {
		t.Fatalf("pass: %v", err)
	}

	payload := events[0].Payload.(TurnPassedPayload)
	if !payload.TrickCleared {
		t.Fatalf("single pass with two seats should clear the trick")
	}
	if payload.NextTurnSeat != 0 {
		t.Fatalf("next turn = %d, want 0", payload.NextTurnSeat)
	}
}

func TestSnapshotHidesOtherHands(t *testing.T) {
	svc := NewService(rand.New(rand.NewSource(13)))
	m := newTestMatch(t, svc, 3, domain.DefaultRules())
	if _, err := svc.StartMatch(m); err != nil {
		t.Fatalf("start match: %v", err)
	}

	snap := SnapshotFor(m, "u1")
	if snap.MySeat != 1 {
		t.Fatalf("my seat = %d, want 1", snap.MySeat)
	}
	if len(snap.MyHand) != 17 {
		t.Fatalf("my hand = %d cards, want 17", len(snap.MyHand))
	}
	for _, seat := range snap.Seats {
		if seat.CardsRemaining != 17 {
			t.Fatalf("seat %d cards remaining = %d, want 17", seat.Seat, seat.CardsRemaining)
		}
	}

	outsider := SnapshotFor(m, "stranger")
	if outsider.MySeat != -1 || outsider.MyHand != nil {
		t.Fatalf("outsider should see no hand")
	}
}
