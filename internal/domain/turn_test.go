package domain

import "testing"

func seatsFixture(finished ...bool) []*Seat {
	seats := make([]*Seat, len(finished))
	for i, f := range finished {
		seats[i] = &Seat{Position: i, Finished: f}
	}
	return seats
}

func TestNextActive(t *testing.T) {
	tests := []struct {
		name     string
		finished []bool
		from     int
		want     int
	}{
		{name: "simple advance", finished: []bool{false, false, false, false}, from: 0, want: 1},
		{name: "wraparound", finished: []bool{false, false, false, false}, from: 3, want: 0},
		{name: "skips finished seat", finished: []bool{false, true, false, false}, from: 0, want: 2},
		{name: "skips run of finished seats", finished: []bool{false, true, true, false}, from: 0, want: 3},
		{name: "wraps past finished seats", finished: []bool{false, true, true, true}, from: 0, want: 0},
		{name: "two players alternate", finished: []bool{false, false}, from: 1, want: 0},
		{name: "all finished", finished: []bool{true, true, true}, from: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextActive(seatsFixture(tt.finished...), tt.from); got != tt.want {
				t.Errorf("NextActive() = %d, want %d", got, tt.want)
			}
		})
	}
}
