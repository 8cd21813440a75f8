package utils

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

const (
	// Wildcard stands for any single letter in a dictionary pattern.
	Wildcard = '?'

	// RoomCodeAlphabet leaves out I, O, 0 and 1.
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NormalizeWord uppercases, strips accents and keeps only A-Z.
func NormalizeWord(value string) string {
	return normalize(value, false)
}

// NormalizePattern is NormalizeWord that also keeps the wildcard marker.
func NormalizePattern(value string) string {
	return normalize(value, true)
}

func normalize(value string, keepWildcard bool) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, strings.ToUpper(value))
	if err != nil {
		decomposed = strings.ToUpper(value)
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case keepWildcard && r == Wildcard:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GenerateRoomCode draws a code of the given length from RoomCodeAlphabet.
func GenerateRoomCode(rng *rand.Rand, length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = RoomCodeAlphabet[rng.IntN(len(RoomCodeAlphabet))]
	}
	return string(code)
}

// GenerateToken returns a durable player token.
func GenerateToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func GenerateID() string {
	return uuid.NewString()
}
