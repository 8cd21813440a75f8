package game

import (
	"time"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

// Rules holds the timing and sizing knobs of a game.
type Rules struct {
	RoundDuration  time.Duration
	LetterInterval time.Duration
	Intermission   time.Duration
	StartGrace     time.Duration
	AbandonAfter   time.Duration
	InitialLetters int
	MinPlayers     int
}

func DefaultRules() Rules {
	return Rules{
		RoundDuration:  90 * time.Second,
		LetterInterval: 2500 * time.Millisecond,
		Intermission:   10 * time.Second,
		StartGrace:     time.Second,
		AbandonAfter:   2 * time.Minute,
		InitialLetters: 5,
		MinPlayers:     internal.MinPlayersToStart,
	}
}

// RoundTargets returns how many players survive each round for a game that starts with
// playerCount participants.
func RoundTargets(playerCount int) []int {
	switch {
	case playerCount <= 3:
		return []int{1}
	case playerCount <= 8:
		return []int{3, 3}
	case playerCount <= 14:
		return []int{6, 3, 3}
	default:
		return []int{10, 6, 3, 3}
	}
}
