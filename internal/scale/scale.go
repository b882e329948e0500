// Package scale recomputes ingredient quantities when a viewer asks for a
// different portion count than the recipe was written for.
package scale

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingQuantity matches an integer or decimal number at the start of an
// ingredient line. Both comma and dot are accepted as decimal separators.
var leadingQuantity = regexp.MustCompile(`^(\d*[.,]?\d+)`)

// Ingredients splits the ingredient blob into lines, scales each line from
// originalPortions to portions, and drops blank lines. Lines without a
// recognizable leading quantity pass through unchanged.
func Ingredients(ingredients string, originalPortions, portions int) []string {
	var out []string
	for _, line := range strings.Split(ingredients, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Line(line, originalPortions, portions))
	}
	return out
}

// Line scales the leading quantity of a single ingredient line. A
// non-positive target portion count leaves the line unscaled, and a
// non-positive original portion count is treated as 1.
func Line(line string, originalPortions, portions int) string {
	if portions <= 0 {
		return line
	}
	match := leadingQuantity.FindString(line)
	if match == "" {
		return line
	}
	quantity, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return line
	}
	if originalPortions <= 0 {
		originalPortions = 1
	}
	scaled := quantity / float64(originalPortions) * float64(portions)
	return formatQuantity(scaled) + line[len(match):]
}

// formatQuantity rounds to 2 decimal places, trims trailing zeros, and
// renders with a comma as the decimal separator.
func formatQuantity(q float64) string {
	rounded := math.Round(q*100) / 100
	return strings.ReplaceAll(strconv.FormatFloat(rounded, 'f', -1, 64), ".", ",")
}
