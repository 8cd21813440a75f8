package game

import (
	"context"
	"time"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

const saveResultTimeout = 5 * time.Second

// ResultStore persists finished games.
type ResultStore interface {
	SaveGameResult(ctx context.Context, result internal.GameResult) error
}

type noopResultStore struct{}

func (noopResultStore) SaveGameResult(context.Context, internal.GameResult) error {
	return nil
}

func buildResult(room *internal.Room, finishedAt time.Time) internal.GameResult {
	board := room.Scoreboard()
	players := make([]internal.ResultPlayer, 0, len(board))
	for _, entry := range board {
		players = append(players, internal.ResultPlayer{
			Name:       entry.Name,
			Score:      entry.Score,
			Eliminated: entry.Eliminated,
			Position:   entry.Position,
		})
	}

	result := internal.GameResult{
		ID:         utils.GenerateID(),
		RoomCode:   room.Code,
		WinnerID:   room.WinnerID,
		Rounds:     min(room.RoundIndex, len(room.Rounds)),
		Players:    players,
		FinishedAt: finishedAt.UTC(),
	}
	if winner, ok := room.Players[room.WinnerID]; ok {
		result.WinnerName = winner.Name
	}
	return result
}

// recordResult saves the result off the hub loop.
func (h *Hub) recordResult(room *internal.Room) {
	result := buildResult(room, h.clock.Now())
	h.background.Add(1)
	go func() {
		defer h.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveResultTimeout)
		defer cancel()

		if err := h.results.SaveGameResult(ctx, result); err != nil {
			h.log.Error().Err(err).Str("room", result.RoomCode).Msg("failed to save game result")
			return
		}
		h.log.Debug().Str("room", result.RoomCode).Str("result", result.ID).Msg("game result saved")
	}()
}
