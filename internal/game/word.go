package game

import (
	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

// =============================================================================
// WORD SUBMISSION & OVERFLOW
// =============================================================================

// submitWord validates and scores a word typed during a round. A pattern may carry
// wildcards, each standing for one letter and worth no points.
func (h *Hub) submitWord(connID, raw string) error {
	t := h.registry.tableOf(connID)
	if t == nil {
		return ErrNotInRoom
	}
	room := t.room
	player := room.Players[connID]

	if room.Status != internal.StatusInRound || player.Eliminated || player.KO {
		return ErrActionUnavailable
	}

	pattern := utils.NormalizePattern(raw)
	if pattern == "" {
		return ErrEmptyWord
	}
	if player.HasUsed(pattern) {
		return ErrWordUsed
	}
	word, ok := h.words.Resolve(pattern)
	if !ok {
		return ErrInvalidWord
	}
	if word != pattern && player.HasUsed(word) {
		return ErrWordUsed
	}

	points := h.scores.Score(pattern)
	player.Score += points
	player.MarkUsed(pattern)
	player.MarkUsed(word)

	entry := internal.WordHistoryEntry{
		ID:         utils.GenerateID(),
		PlayerID:   player.Id,
		PlayerName: player.Name,
		Points:     points,
		CreatedAt:  h.nowMs(),
	}
	room.WordHistory = append(room.WordHistory, entry)

	h.log.Debug().
		Str("room", room.Code).
		Str("player", player.Id).
		Str("word", word).
		Int("points", points).
		Msg("word accepted")

	h.publisher.Send(connID, internal.EvtWordResult, internal.WordResultData{
		OK:     true,
		Word:   word,
		Points: points,
		Score:  player.Score,
	})
	h.publisher.Publish(room.Code, internal.EvtWordHistory, entry)
	h.broadcastScoreboard(room)
	return nil
}

// reportOverflow knocks out a player whose board filled up. Reporting twice is a no-op.
func (h *Hub) reportOverflow(connID string) error {
	t := h.registry.tableOf(connID)
	if t == nil {
		return ErrNotInRoom
	}
	room := t.room
	player := room.Players[connID]

	if player.KO || player.Eliminated {
		return nil
	}
	if room.Status != internal.StatusInRound {
		return ErrActionUnavailable
	}

	player.KO = true
	player.Eliminated = true
	h.log.Info().Str("room", room.Code).Str("player", player.Id).Msg("player overflowed")

	if !h.checkEarlyEnd(t) {
		h.broadcastScoreboard(room)
		h.broadcastState(room)
	}
	return nil
}
