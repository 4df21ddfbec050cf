package domain

// NextActive walks table positions starting after from, skipping finished
// seats, and returns the next eligible position or -1 when every seat has
// finished. The walk is bounded by the seat count. Callers advance the
// turn before marking the acting seat finished, so the acting seat still
// counts as occupied during the walk.
func NextActive(seats []*Seat, from int) int {
	n := len(seats)
	for step := 1; step <= n; step++ {
		pos := (from + step) % n
		if !seats[pos].Finished {
			return pos
		}
	}
	return -1
}
