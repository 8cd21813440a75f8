package game

import (
	"math/rand/v2"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

// =============================================================================
// GAME FLOW - ROUND MANAGEMENT
// =============================================================================

// startRound resets the board, deals the opening letters and arms the letter ticker
// and the round deadline.
func (h *Hub) startRound(t *table) {
	room := t.room
	t.stopRoundTimers()

	room.Status = internal.StatusInRound
	room.NextRoundStartAt = nil
	room.DurationMs = h.rules.RoundDuration.Milliseconds()
	room.LetterIntervalMs = h.rules.LetterInterval.Milliseconds()
	room.LetterHistory = make([]internal.LetterEvent, 0)
	room.InitialLetters = make([]string, 0, h.rules.InitialLetters)
	room.WordHistory = make([]internal.WordHistoryEntry, 0)
	for _, p := range room.Players {
		if !p.Eliminated {
			p.ResetRoundState()
		}
	}

	t.letters = NewLetterGenerator(rand.New(rand.NewPCG(h.rng.Uint64(), h.rng.Uint64())))
	t.recent = t.recent[:0]
	for range h.rules.InitialLetters {
		letter := t.letters.Draw(t.recent)
		t.recent = append(t.recent, letter)
		room.InitialLetters = append(room.InitialLetters, letter)
		room.LetterHistory = append(room.LetterHistory, internal.LetterEvent{
			TickIndex: len(room.LetterHistory),
			Letter:    letter,
		})
	}

	startAt := h.clock.Now().Add(h.rules.StartGrace).UnixMilli()
	room.RoundStartAt = &startAt

	h.log.Info().
		Str("room", room.Code).
		Int("round", room.RoundIndex).
		Int("target", room.TargetQualified()).
		Strs("letters", room.InitialLetters).
		Msg("round started")

	h.publisher.Publish(room.Code, internal.EvtRoundStart, internal.RoundStartData{
		RoundIndex:       room.RoundIndex,
		TotalRounds:      len(room.Rounds),
		TargetQualified:  room.TargetQualified(),
		RoundStartAt:     startAt,
		DurationMs:       room.DurationMs,
		LetterIntervalMs: room.LetterIntervalMs,
		InitialLetters:   room.InitialLetters,
	})
	h.broadcastState(room)
	h.broadcastScoreboard(room)

	h.armTicker(&t.letterTimer, h.rules.StartGrace+h.rules.LetterInterval, h.rules.LetterInterval, func() {
		h.spawnLetter(t)
	})
	h.armTimer(&t.roundTimer, h.rules.StartGrace+h.rules.RoundDuration, func() {
		h.finishRound(t)
	})
}

func (h *Hub) spawnLetter(t *table) {
	room := t.room
	if room.Status != internal.StatusInRound {
		t.letterTimer.stop()
		return
	}

	letter := t.letters.Draw(t.recent)
	t.recent = append(t.recent, letter)
	event := internal.LetterEvent{TickIndex: len(room.LetterHistory), Letter: letter}
	room.LetterHistory = append(room.LetterHistory, event)

	h.publisher.Publish(room.Code, internal.EvtLetter, event)
}

// finishRound ranks the round, eliminates everyone below the cut and either schedules
// the next round or ends the game.
func (h *Hub) finishRound(t *table) {
	room := t.room
	if room.Status != internal.StatusInRound {
		return
	}
	t.stopRoundTimers()
	room.Status = internal.StatusRoundEnd

	active := make([]*internal.Player, 0, len(room.Players))
	connectedActive := 0
	for _, p := range room.SortedPlayers() {
		if p.Eliminated {
			continue
		}
		active = append(active, p)
		if p.Connected {
			connectedActive++
		}
	}
	if connectedActive <= 1 {
		h.finishGame(t)
		return
	}

	target := min(room.TargetQualified(), len(active))
	qualified := make([]string, 0, target)
	eliminated := make([]string, 0, len(active)-target)
	connectedQualified := 0
	for idx, p := range active {
		if idx < target {
			qualified = append(qualified, p.Id)
			if p.Connected {
				connectedQualified++
			}
			continue
		}
		p.Eliminated = true
		eliminated = append(eliminated, p.Id)
	}

	finished := room.RoundIndex
	room.RoundIndex++
	// a cut that leaves at most one connected survivor ends the game
	last := room.RoundIndex >= len(room.Rounds) || connectedQualified <= 1

	var nextStart *int64
	if !last {
		at := h.clock.Now().Add(h.rules.Intermission).UnixMilli()
		nextStart = &at
	}
	room.NextRoundStartAt = nextStart

	h.log.Info().
		Str("room", room.Code).
		Int("round", finished).
		Strs("qualified", qualified).
		Strs("eliminated", eliminated).
		Msg("round finished")

	h.publisher.Publish(room.Code, internal.EvtRoundEnd, internal.RoundEndData{
		RoundIndex:       finished,
		TotalRounds:      len(room.Rounds),
		Scoreboard:       room.Scoreboard(),
		EliminatedIDs:    eliminated,
		QualifiedIDs:     qualified,
		NextRoundStartAt: nextStart,
	})
	h.broadcastState(room)

	if last {
		h.finishGame(t)
		return
	}
	h.armTimer(&t.roundTimer, h.rules.Intermission, func() {
		h.startRound(t)
	})
}

// finishGame crowns the best remaining connected player and publishes the result.
func (h *Hub) finishGame(t *table) {
	room := t.room
	t.stopRoundTimers()
	room.Status = internal.StatusFinished
	room.NextRoundStartAt = nil
	room.WinnerID = pickWinner(room)

	var winner *string
	if room.WinnerID != "" {
		id := room.WinnerID
		winner = &id
	}

	h.log.Info().Str("room", room.Code).Str("winner", room.WinnerID).Msg("game finished")

	h.publisher.Publish(room.Code, internal.EvtGameEnd, internal.GameEndData{
		Scoreboard: room.Scoreboard(),
		WinnerID:   winner,
	})
	h.broadcastState(room)
	h.recordResult(room)
}

// checkEarlyEnd finishes a running game once at most one connected player is still in it.
func (h *Hub) checkEarlyEnd(t *table) bool {
	room := t.room
	if room.Status != internal.StatusInRound && room.Status != internal.StatusRoundEnd {
		return false
	}
	if len(room.ConnectedActive()) > 1 {
		return false
	}
	h.finishGame(t)
	return true
}

func pickWinner(room *internal.Room) string {
	if remaining := room.ConnectedActive(); len(remaining) > 0 {
		return remaining[0].Id
	}
	if board := room.Scoreboard(); len(board) > 0 {
		return board[0].ID
	}
	return ""
}
