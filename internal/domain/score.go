package domain

import "math"

// RoundScore rounds a score to 3 decimal places for stable reporting.
func RoundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// MaxZipf is the top of the language-frequency scale; rarity = MaxZipf − frequency.
const MaxZipf = 7.0
