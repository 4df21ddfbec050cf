package bot

import (
	"testing"

	"bigtwo/internal/domain"
)

func card(r domain.Rank, s domain.Suit) domain.Card {
	return domain.Card{Suit: s, Rank: r}
}

func fixtureMatch(phase domain.Phase, hand []domain.Card, last *domain.Play) (*domain.Match, *domain.Seat) {
	seat := &domain.Seat{UserID: "bot-1", Position: 0, Hand: hand}
	m := domain.NewMatch(domain.DefaultRules())
	m.Phase = phase
	m.Seats = []*domain.Seat{seat, {UserID: "human", Position: 1}}
	m.CurrentTurn = 0
	m.LastPlay = last
	return m, seat
}

func TestGreedyBotPlaysWeakestBeat(t *testing.T) {
	hand := []domain.Card{
		card(domain.RankA, domain.SuitSpades),
		card(domain.Rank9, domain.SuitHearts),
		card(domain.RankJ, domain.SuitClubs),
	}
	last := &domain.Play{
		UserID:      "human",
		Cards:       []domain.Card{card(domain.Rank8, domain.SuitSpades)},
		Combination: domain.Classify([]domain.Card{card(domain.Rank8, domain.SuitSpades)}),
	}
	m, seat := fixtureMatch(domain.PhaseActive, hand, last)

	move, err := (&GreedyBot{}).CalculateMove(m, seat)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if move.Pass {
		t.Fatal("expected a play, got a pass")
	}
	want := card(domain.Rank9, domain.SuitHearts)
	if len(move.Cards) != 1 || move.Cards[0] != want {
		t.Fatalf("move = %v, want [%v]", move.Cards, want)
	}
}

func TestGreedyBotPassesWhenBeaten(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank4, domain.SuitDiamonds),
		card(domain.Rank6, domain.SuitClubs),
	}
	twoOfSpades := []domain.Card{card(domain.Rank2, domain.SuitSpades)}
	last := &domain.Play{UserID: "human", Cards: twoOfSpades, Combination: domain.Classify(twoOfSpades)}
	m, seat := fixtureMatch(domain.PhaseActive, hand, last)

	move, err := (&GreedyBot{}).CalculateMove(m, seat)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if !move.Pass {
		t.Fatalf("expected a pass, got %v", move.Cards)
	}
}

func TestGreedyBotLeadsLowestSingle(t *testing.T) {
	hand := []domain.Card{
		card(domain.RankK, domain.SuitSpades),
		card(domain.Rank4, domain.SuitDiamonds),
		card(domain.Rank8, domain.SuitHearts),
	}
	m, seat := fixtureMatch(domain.PhaseActive, hand, nil)

	move, err := (&GreedyBot{}).CalculateMove(m, seat)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	want := card(domain.Rank4, domain.SuitDiamonds)
	if len(move.Cards) != 1 || move.Cards[0] != want {
		t.Fatalf("move = %v, want [%v]", move.Cards, want)
	}
}

func TestGreedyBotSeedsAllThrees(t *testing.T) {
	hand := []domain.Card{
		card(domain.Rank3, domain.SuitDiamonds),
		card(domain.RankQ, domain.SuitClubs),
		card(domain.Rank3, domain.SuitSpades),
	}
	m, seat := fixtureMatch(domain.PhaseSeeding, hand, nil)

	move, err := (&GreedyBot{}).CalculateMove(m, seat)
	if err != nil {
		t.Fatalf("CalculateMove: %v", err)
	}
	if move.Pass || len(move.Cards) != 2 {
		t.Fatalf("move = %+v, want both threes", move)
	}
	for _, c := range move.Cards {
		if c.Rank != domain.SeedRank {
			t.Fatalf("seeded non-three %v", c)
		}
	}
}

func TestAgentPassesWhenUnseated(t *testing.T) {
	m, _ := fixtureMatch(domain.PhaseActive, nil, nil)
	agent := NewAgent("ghost", "Ghost")

	move, err := agent.Play(m)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !move.Pass {
		t.Fatal("unseated agent should pass")
	}
}
