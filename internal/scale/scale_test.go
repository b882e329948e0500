package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name              string
		line              string
		original, target  int
		want              string
	}{
		{"halved", "2 dl mjöl", 4, 2, "1 dl mjöl"},
		{"scaled up", "2 dl mjöl", 4, 6, "3 dl mjöl"},
		{"unchanged at original", "2 dl mjöl", 4, 4, "2 dl mjöl"},
		{"no leading number", "Salt efter smak", 4, 2, "Salt efter smak"},
		{"no leading number scaled up", "Salt efter smak", 4, 12, "Salt efter smak"},
		{"comma decimal in", "0,5 tsk salt", 4, 8, "1 tsk salt"},
		{"dot decimal in", "1.5 dl grädde", 4, 2, "0,75 dl grädde"},
		{"comma decimal out", "1 msk smör", 4, 6, "1,5 msk smör"},
		{"rounded to two decimals", "1 dl socker", 3, 1, "0,33 dl socker"},
		{"bare quantity", "3 ägg", 4, 8, "6 ägg"},
		{"zero target leaves line", "2 dl mjöl", 4, 0, "2 dl mjöl"},
		{"negative target leaves line", "2 dl mjöl", 4, -1, "2 dl mjöl"},
		{"zero original treated as one", "2 dl mjöl", 0, 3, "6 dl mjöl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.line, tt.original, tt.target))
		})
	}
}

func TestIngredients(t *testing.T) {
	blob := "2 dl mjöl\n\nSalt efter smak\n4 ägg\n"

	got := Ingredients(blob, 4, 2)
	assert.Equal(t, []string{"1 dl mjöl", "Salt efter smak", "2 ägg"}, got)

	// Blank blob yields no lines.
	assert.Empty(t, Ingredients("", 4, 2))
}
