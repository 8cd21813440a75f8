package game

import (
	"math"
	"unicode/utf8"
)

// LengthTier applies to every word of at least MinLength letters, up to the next tier.
type LengthTier struct {
	MinLength  int
	Multiplier float64
	Bonus      float64
}

type ScoreTable struct {
	LetterPoints map[rune]int
	// Tiers sorted by MinLength descending.
	Tiers []LengthTier
}

func DefaultScoreTable() ScoreTable {
	points := make(map[rune]int, 26)
	for _, group := range []struct {
		letters string
		value   int
	}{
		{"AEILNORSTU", 1},
		{"DGMBCP", 2},
		{"FHVWY", 3},
		{"JQKXZ", 5},
	} {
		for _, l := range group.letters {
			points[l] = group.value
		}
	}

	return ScoreTable{
		LetterPoints: points,
		Tiers: []LengthTier{
			{MinLength: 10, Multiplier: 2, Bonus: 70},
			{MinLength: 8, Multiplier: 1.5, Bonus: 50},
			{MinLength: 7, Multiplier: 1.4, Bonus: 30},
			{MinLength: 6, Multiplier: 1.3, Bonus: 20},
			{MinLength: 5, Multiplier: 1.2, Bonus: 10},
			{MinLength: 4, Multiplier: 1.1, Bonus: 5},
			{MinLength: 3, Multiplier: 1, Bonus: 0},
			{MinLength: 2, Multiplier: 0.5, Bonus: 0},
		},
	}
}

func (t ScoreTable) LetterSum(word string) int {
	sum := 0
	for _, l := range word {
		sum += t.LetterPoints[l]
	}
	return sum
}

func (t ScoreTable) Modifier(length int) LengthTier {
	for _, tier := range t.Tiers {
		if length >= tier.MinLength {
			return tier
		}
	}
	return LengthTier{MinLength: 0, Multiplier: 1, Bonus: 0}
}

// Score values a normalized word. Unmapped characters, the wildcard included, are worth 0.
func (t ScoreTable) Score(word string) int {
	if word == "" {
		return 0
	}
	tier := t.Modifier(utf8.RuneCountInString(word))
	score := int(math.Floor(float64(t.LetterSum(word))*tier.Multiplier + tier.Bonus))
	return max(score, 0)
}
