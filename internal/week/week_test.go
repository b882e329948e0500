package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestID(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday new year", date(2024, time.January, 1), "2024-W01"},
		{"sunday before new year", date(2023, time.December, 31), "2023-W52"},
		{"midweek", date(2024, time.June, 12), "2024-W24"},
		{"iso week 53 year", date(2021, time.January, 1), "2020-W53"},
		{"first days belong to prior year", date(2023, time.January, 1), "2022-W52"},
		{"clock component ignored", time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC), "2024-W01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ID(tt.in))
		})
	}
}

func TestStart(t *testing.T) {
	// Wednesday 2024-06-12 -> Monday 2024-06-10.
	assert.Equal(t, date(2024, time.June, 10), Start(date(2024, time.June, 12)))

	// A Monday is its own week start.
	assert.Equal(t, date(2024, time.June, 10), Start(date(2024, time.June, 10)))

	// Sunday counts as day 7, so the start is six days back.
	assert.Equal(t, date(2024, time.June, 10), Start(date(2024, time.June, 16)))
}

func TestShift(t *testing.T) {
	d := date(2024, time.January, 1)
	assert.Equal(t, "2024-W02", ID(Shift(d, 1)))
	assert.Equal(t, "2023-W52", ID(Shift(d, -1)))
	assert.Equal(t, ID(d), ID(Shift(Shift(d, 5), -5)))
}
