package domain

import (
	"fmt"
	"math/rand"
)

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseWaiting indicates the match is waiting for players.
	PhaseWaiting Phase = "waiting"
	// PhaseSeeding indicates the pre-round that decides who leads.
	PhaseSeeding Phase = "seeding"
	// PhaseActive indicates the match is actively in progress.
	PhaseActive Phase = "playing"
	// PhaseFinished indicates the match has concluded.
	PhaseFinished Phase = "finished"
)

// OpeningRule selects how the first leader of a match is decided.
type OpeningRule string

const (
	// OpeningSeeding runs a pre-round where seats play their seed-rank
	// cards and the seat that sheds the most of them leads.
	OpeningSeeding OpeningRule = "seeding"
	// OpeningLowestCard skips the pre-round; the holder of the opening
	// card leads directly.
	OpeningLowestCard OpeningRule = "lowest_card"
)

// Rules carries the configurable rule variants for a match.
type Rules struct {
	Opening OpeningRule `json:"opening"`
}

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{Opening: OpeningSeeding}
}

const (
	// MinSeats and MaxSeats bound the table size.
	MinSeats = 2
	MaxSeats = 4

	// SeedRank is the rank played during the seeding pre-round.
	SeedRank = Rank3

	// LeaveFinishRank is the sentinel rank assigned to a seat whose
	// player abandons a started match.
	LeaveFinishRank = 999
)

// SeedTieBreakCard breaks seeding ties: among the seats that shed the most
// seed cards, the one that shed this card leads.
var SeedTieBreakCard = Card{Suit: SuitSpades, Rank: Rank3}

// OpeningCard designates the opening leader under OpeningLowestCard.
var OpeningCard = Card{Suit: SuitDiamonds, Rank: Rank3}

// Seat holds the per-player state at a fixed table position.
type Seat struct {
	UserID          string `json:"user_id"`
	Position        int    `json:"position"`
	Hand            []Card `json:"hand"`
	Seeded          bool   `json:"seeded"`
	SeededCount     int    `json:"seeded_count"`
	HadSeedTieBreak bool   `json:"had_seed_tie_break"`
	Finished        bool   `json:"finished"`
	FinishRank      int    `json:"finish_rank"` // 0 until finished
}

func (s *Seat) holdsRank(r Rank) bool {
	for _, c := range s.Hand {
		if c.Rank == r {
			return true
		}
	}
	return false
}

func (s *Seat) holdsCard(card Card) bool {
	for _, c := range s.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// Match is the authoritative state for a single match instance. It is an
// owned value: every accepted transition mutates it in place and rejected
// transitions leave it untouched. Callers serialize transitions per match.
type Match struct {
	Phase             Phase   `json:"phase"`
	Seats             []*Seat `json:"seats"`
	CurrentTurn       int     `json:"current_turn"`
	LastPlay          *Play   `json:"last_play"`
	ConsecutivePasses int     `json:"consecutive_passes"`
	Winner            string  `json:"winner"`
	Rules             Rules   `json:"rules"`
}

// NewMatch creates an empty match in the waiting phase.
func NewMatch(rules Rules) *Match {
	if rules.Opening == "" {
		rules = DefaultRules()
	}
	return &Match{Phase: PhaseWaiting, CurrentTurn: -1, Rules: rules}
}

// AddSeat seats a new player at the lowest free position. Only allowed
// while the match is waiting.
func (m *Match) AddSeat(userID string) (*Seat, error) {
	if m.Phase != PhaseWaiting {
		return nil, ErrMatchAlreadyStarted
	}
	if len(m.Seats) >= MaxSeats {
		return nil, ErrMatchFull
	}
	if m.SeatOf(userID) != nil {
		return nil, ErrAlreadySeated
	}
	seat := &Seat{UserID: userID, Position: len(m.Seats)}
	m.Seats = append(m.Seats, seat)
	return seat, nil
}

// SeatOf returns the seat held by userID, or nil.
func (m *Match) SeatOf(userID string) *Seat {
	for _, s := range m.Seats {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

// SeatAt returns the seat at the given table position, or nil.
func (m *Match) SeatAt(position int) *Seat {
	if position < 0 || position >= len(m.Seats) {
		return nil
	}
	return m.Seats[position]
}

// ActiveSeats counts seats that have not finished.
func (m *Match) ActiveSeats() int {
	n := 0
	for _, s := range m.Seats {
		if !s.Finished {
			n++
		}
	}
	return n
}

// FinishOrder returns user IDs ordered by finish rank. Seats that left
// carry the sentinel rank and sort last.
func (m *Match) FinishOrder() []string {
	order := make([]*Seat, 0, len(m.Seats))
	for _, s := range m.Seats {
		if s.Finished {
			order = append(order, s)
		}
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && less(order[j], order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	ids := make([]string, len(order))
	for i, s := range order {
		ids[i] = s.UserID
	}
	return ids
}

func less(a, b *Seat) bool {
	if a.FinishRank != b.FinishRank {
		return a.FinishRank < b.FinishRank
	}
	return a.Position < b.Position
}

// Start shuffles, deals and opens the match. Each seat receives
// floor(52/N) cards; with three seats one card stays undealt. Depending on
// the opening rule the match enters the seeding pre-round or goes straight
// to play with the opening-card holder on turn.
func (m *Match) Start(rng *rand.Rand) error {
	switch m.Phase {
	case PhaseWaiting:
	case PhaseFinished:
		return ErrMatchAlreadyFinished
	default:
		return ErrMatchAlreadyStarted
	}
	if len(m.Seats) < MinSeats || len(m.Seats) > MaxSeats {
		return ErrInsufficientSeats
	}

	deck := ShuffleDeck(NewDeck(), rng)
	perSeat := len(deck) / len(m.Seats)
	for i, seat := range m.Seats {
		hand := make([]Card, perSeat)
		copy(hand, deck[i*perSeat:(i+1)*perSeat])
		SortCards(hand)
		seat.Hand = hand
		seat.Seeded = false
		seat.SeededCount = 0
		seat.HadSeedTieBreak = false
		seat.Finished = false
		seat.FinishRank = 0
	}

	m.LastPlay = nil
	m.ConsecutivePasses = 0
	m.Winner = ""

	if m.Rules.Opening == OpeningLowestCard {
		m.Phase = PhaseActive
		m.CurrentTurn = m.openingCardHolder()
		return nil
	}

	m.Phase = PhaseSeeding
	m.CurrentTurn = 0
	// Seats without a seed card contribute zero and are skipped outright.
	m.advanceSeeding(len(m.Seats) - 1)
	return nil
}

// openingCardHolder finds the seat holding the opening card. With three
// seats the card may sit in the undealt remainder; the holder of the
// lowest dealt card leads instead.
func (m *Match) openingCardHolder() int {
	for _, seat := range m.Seats {
		if seat.holdsCard(OpeningCard) {
			return seat.Position
		}
	}
	lowest := m.Seats[0]
	for _, seat := range m.Seats[1:] {
		if Compare(seat.Hand[0], lowest.Hand[0]) < 0 {
			lowest = seat
		}
	}
	return lowest.Position
}

// SubmitPlay validates and applies a play by userID. Validation is
// all-or-nothing: a rejected play leaves the match untouched.
func (m *Match) SubmitPlay(userID string, cards []Card) error {
	switch m.Phase {
	case PhaseSeeding:
		return m.submitSeedingPlay(userID, cards)
	case PhaseActive:
	case PhaseFinished:
		return ErrMatchAlreadyFinished
	default:
		return fmt.Errorf("%w: expected %s", ErrNotInPhase, PhaseActive)
	}

	seat := m.SeatOf(userID)
	if seat == nil {
		return ErrUnknownPlayer
	}
	if seat.Position != m.CurrentTurn || seat.Finished {
		return ErrNotYourTurn
	}
	if len(cards) == 0 {
		return ErrInvalidCombination
	}
	if !HoldsAll(seat.Hand, cards) {
		return ErrCardsNotHeld
	}

	combo := Classify(cards)
	if combo.Category == CategoryInvalid {
		return ErrInvalidCombination
	}
	if !CanBeat(combo, m.LastPlay) {
		return ErrPlayTooWeak
	}

	bomb := IsBombOver(combo, m.LastPlay)
	bombedUserID := ""
	if bomb {
		bombedUserID = m.LastPlay.UserID
	}

	seat.Hand = RemoveCards(seat.Hand, cards)
	m.LastPlay = &Play{UserID: userID, Cards: combo.Cards, Combination: combo}
	m.ConsecutivePasses = 0

	if bomb {
		m.finishByBomb(seat, bombedUserID)
		return nil
	}

	// Advance before marking the actor finished so the walk never skips a
	// seat that has not been ranked yet.
	next := NextActive(m.Seats, seat.Position)

	if len(seat.Hand) == 0 {
		seat.Finished = true
		seat.FinishRank = m.nextFinishRank()
		if m.ActiveSeats() <= 1 {
			m.finishNormally(userID)
			return nil
		}
	}

	if next < 0 {
		panic("bigtwo: no active seat while match in progress")
	}
	m.CurrentTurn = next
	return nil
}

// SubmitPass validates and applies a pass. Enough consecutive passes clear
// the trick so the next seat may lead any combination.
func (m *Match) SubmitPass(userID string) error {
	switch m.Phase {
	case PhaseActive:
	case PhaseSeeding:
		return ErrSeedingRuleViolation
	case PhaseFinished:
		return ErrMatchAlreadyFinished
	default:
		return fmt.Errorf("%w: expected %s", ErrNotInPhase, PhaseActive)
	}

	seat := m.SeatOf(userID)
	if seat == nil {
		return ErrUnknownPlayer
	}
	if seat.Position != m.CurrentTurn || seat.Finished {
		return ErrNotYourTurn
	}
	if m.LastPlay == nil {
		return ErrCannotPassOpeningTurn
	}

	next := NextActive(m.Seats, seat.Position)
	if next < 0 {
		panic("bigtwo: no active seat while match in progress")
	}

	m.ConsecutivePasses++
	if m.ConsecutivePasses >= m.ActiveSeats()-1 {
		m.LastPlay = nil
		m.ConsecutivePasses = 0
	}
	m.CurrentTurn = next
	return nil
}

// Leave removes a waiting player, or marks a started seat finished with
// the sentinel last-place rank so play continues around it.
func (m *Match) Leave(userID string) error {
	seat := m.SeatOf(userID)
	if seat == nil {
		return ErrUnknownPlayer
	}

	switch m.Phase {
	case PhaseWaiting:
		seats := make([]*Seat, 0, len(m.Seats)-1)
		for _, s := range m.Seats {
			if s.UserID == userID {
				continue
			}
			s.Position = len(seats)
			seats = append(seats, s)
		}
		m.Seats = seats
		return nil
	case PhaseFinished:
		return ErrMatchAlreadyFinished
	}

	seat.Finished = true
	seat.FinishRank = LeaveFinishRank
	seat.Seeded = true

	if m.ActiveSeats() <= 1 {
		for _, s := range m.Seats {
			if !s.Finished {
				m.finishNormally(s.UserID)
				return nil
			}
		}
		m.Phase = PhaseFinished
		return nil
	}

	if m.CurrentTurn == seat.Position {
		if m.Phase == PhaseSeeding {
			m.advanceSeeding(seat.Position)
		} else {
			m.CurrentTurn = NextActive(m.Seats, seat.Position)
		}
	}
	return nil
}

// submitSeedingPlay handles plays during the seeding pre-round. Only
// seed-rank cards are playable and passing is disallowed.
func (m *Match) submitSeedingPlay(userID string, cards []Card) error {
	seat := m.SeatOf(userID)
	if seat == nil {
		return ErrUnknownPlayer
	}
	if seat.Position != m.CurrentTurn || seat.Finished {
		return ErrNotYourTurn
	}
	if len(cards) == 0 {
		return ErrSeedingRuleViolation
	}
	if !HoldsAll(seat.Hand, cards) {
		return ErrCardsNotHeld
	}
	for _, c := range cards {
		if c.Rank != SeedRank {
			return ErrSeedingRuleViolation
		}
	}

	seat.Hand = RemoveCards(seat.Hand, cards)
	seat.Seeded = true
	seat.SeededCount += len(cards)
	for _, c := range cards {
		if c == SeedTieBreakCard {
			seat.HadSeedTieBreak = true
		}
	}

	m.advanceSeeding(seat.Position)
	return nil
}

// advanceSeeding moves the seeding turn to the next seat that still has a
// contribution to make. Seats holding no seed cards are marked seeded with
// a zero contribution and skipped. When every seat has been accounted for
// the pre-round resolves.
func (m *Match) advanceSeeding(from int) {
	n := len(m.Seats)
	for step := 1; step <= n; step++ {
		seat := m.Seats[(from+step)%n]
		if seat.Finished || seat.Seeded {
			continue
		}
		if !seat.holdsRank(SeedRank) {
			seat.Seeded = true
			continue
		}
		m.CurrentTurn = seat.Position
		return
	}
	m.resolveSeeding()
}

// resolveSeeding picks the opener: most seed cards shed, ties broken by
// possession of the tie-break card, then lowest table position.
func (m *Match) resolveSeeding() {
	var opener *Seat
	for _, seat := range m.Seats {
		if seat.Finished {
			continue
		}
		if opener == nil {
			opener = seat
			continue
		}
		switch {
		case seat.SeededCount > opener.SeededCount:
			opener = seat
		case seat.SeededCount == opener.SeededCount && seat.HadSeedTieBreak && !opener.HadSeedTieBreak:
			opener = seat
		}
	}

	m.Phase = PhaseActive
	m.LastPlay = nil
	m.ConsecutivePasses = 0
	m.CurrentTurn = opener.Position
}

// nextFinishRank returns the next available finish rank, ignoring seats
// that left with the sentinel rank.
func (m *Match) nextFinishRank() int {
	rank := 1
	for _, s := range m.Seats {
		if s.FinishRank > 0 && s.FinishRank < LeaveFinishRank {
			rank++
		}
	}
	return rank
}

// finishNormally ends the match with winner as the player who just went
// out, ranking the single remaining seat so the finish order is total.
func (m *Match) finishNormally(winner string) {
	for _, s := range m.Seats {
		if !s.Finished {
			s.Finished = true
			s.FinishRank = m.nextFinishRank()
		}
	}
	m.Phase = PhaseFinished
	m.Winner = winner
	m.CurrentTurn = -1
}

// finishByBomb ends the match immediately after a bomb over a single 2:
// the bomber ranks first, the bombed player last, and every other seat
// takes the middle ranks in ascending table position.
func (m *Match) finishByBomb(bomber *Seat, bombedUserID string) {
	nextRank := 2
	for _, seat := range m.Seats {
		seat.Finished = true
		switch seat.UserID {
		case bomber.UserID:
			seat.FinishRank = 1
		case bombedUserID:
			seat.FinishRank = len(m.Seats)
		default:
			seat.FinishRank = nextRank
			nextRank++
		}
	}
	m.Phase = PhaseFinished
	m.Winner = bomber.UserID
	m.CurrentTurn = -1
}
