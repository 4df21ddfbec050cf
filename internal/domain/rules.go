package domain

// Play represents the most recent accepted play on the table.
type Play struct {
	UserID      string      `json:"user_id"`
	Cards       []Card      `json:"cards"`
	Combination Combination `json:"combination"`
}

// isSingleTwo reports whether cards is exactly one card of rank 2, the
// only play a bomb may cut across categories to beat.
func isSingleTwo(cards []Card) bool {
	return len(cards) == 1 && cards[0].Rank == Rank2
}

// IsBombOver reports whether candidate chops last under the bomb rule: a
// four of a kind (pure quad or quad with kicker) over a leading single 2.
func IsBombOver(candidate Combination, last *Play) bool {
	return last != nil && isSingleTwo(last.Cards) && candidate.Category == FourOfAKind
}

// CanBeat determines whether candidate beats the table's last play. With
// no last play any valid combination opens the trick. Outside the bomb
// exception the candidate must match the last play's category and card
// count and carry strictly greater strength.
func CanBeat(candidate Combination, last *Play) bool {
	if candidate.Category == CategoryInvalid {
		return false
	}
	if last == nil {
		return true
	}
	if IsBombOver(candidate, last) {
		return true
	}
	if candidate.Category != last.Combination.Category || candidate.Count != last.Combination.Count {
		return false
	}
	return candidate.Strength > last.Combination.Strength
}
