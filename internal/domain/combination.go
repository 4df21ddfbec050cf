package domain

// Category represents the type of card combination.
type Category int

const (
	CategoryInvalid Category = iota
	Single
	Pair
	Triple
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Triple:
		return "triple"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return "invalid"
	}
}

// Combination is a classified set of played cards. Strength orders
// combinations of the same category and count only; cross-category
// comparison is never meaningful.
type Combination struct {
	Category Category `json:"category"`
	Cards    []Card   `json:"cards"` // sorted by CardOrder
	Strength int32    `json:"strength"`
	Count    int      `json:"count"`
}

// Classify analyzes a set of cards and returns its combination. Sets that
// match no category come back as CategoryInvalid and must be rejected by
// the caller, never treated as a weak single.
func Classify(cards []Card) Combination {
	if len(cards) == 0 {
		return Combination{Category: CategoryInvalid}
	}

	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	SortCards(sorted)
	n := len(sorted)

	if n == 1 {
		return Combination{
			Category: Single,
			Cards:    sorted,
			Strength: CardOrder(sorted[0]),
			Count:    1,
		}
	}

	if n <= 3 && allSameRank(sorted) {
		category := Pair
		if n == 3 {
			category = Triple
		}
		// Highest suit breaks rank ties; sorted order puts it last.
		return Combination{
			Category: category,
			Cards:    sorted,
			Strength: rankValue(sorted[0].Rank)*10 + suitValue(sorted[n-1].Suit),
			Count:    n,
		}
	}

	if n == 4 && allSameRank(sorted) {
		return Combination{
			Category: FourOfAKind,
			Cards:    sorted,
			Strength: rankValue(sorted[0].Rank) * 100,
			Count:    4,
		}
	}

	if n >= 5 {
		return classifyWide(sorted)
	}

	return Combination{Category: CategoryInvalid}
}

// classifyWide handles the five-and-more card shapes: quad with kicker and
// full house at exactly five cards, straights and flushes at any length.
func classifyWide(sorted []Card) Combination {
	n := len(sorted)

	if n == 5 {
		counts := make(map[Rank]int, 2)
		for _, c := range sorted {
			counts[c.Rank]++
		}
		if len(counts) == 2 {
			var quadRank, kickerRank, tripleRank, pairRank Rank
			quad, fullHouse := false, false
			for rank, count := range counts {
				switch count {
				case 4:
					quad, quadRank = true, rank
				case 1:
					kickerRank = rank
				case 3:
					fullHouse, tripleRank = true, rank
				case 2:
					pairRank = rank
				}
			}
			if quad {
				return Combination{
					Category: FourOfAKind,
					Cards:    sorted,
					Strength: rankValue(quadRank)*100 + rankValue(kickerRank),
					Count:    5,
				}
			}
			if fullHouse {
				return Combination{
					Category: FullHouse,
					Cards:    sorted,
					Strength: rankValue(tripleRank)*100 + rankValue(pairRank),
					Count:    5,
				}
			}
		}
	}

	consecutive := isConsecutive(sorted)
	flush := isFlush(sorted)
	top := sorted[n-1]
	strength := rankValue(top.Rank)*100 + suitValue(top.Suit)

	switch {
	case consecutive && flush:
		return Combination{Category: StraightFlush, Cards: sorted, Strength: strength, Count: n}
	case flush:
		return Combination{Category: Flush, Cards: sorted, Strength: strength, Count: n}
	case consecutive:
		return Combination{Category: Straight, Cards: sorted, Strength: strength, Count: n}
	}

	return Combination{Category: CategoryInvalid}
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

// isConsecutive expects sorted input. Ranks never wrap: 2 sits on top of
// the order and does not connect back to 3.
func isConsecutive(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if rankValue(cards[i].Rank) != rankValue(cards[i-1].Rank)+1 {
			return false
		}
	}
	return true
}

func isFlush(cards []Card) bool {
	for _, c := range cards {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}
