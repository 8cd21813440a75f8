package game

import (
	"strings"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

// =============================================================================
// GAME FLOW - LOBBY & INITIALIZATION
// =============================================================================

func displayName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return internal.DefaultPlayerName
}

func (h *Hub) createRoom(connID, name string) error {
	if h.registry.ResolveByConnection(connID) != nil {
		return ErrAlreadyInRoom
	}

	room := h.registry.Create(h.clock.Now())
	player := internal.NewPlayer(connID, utils.GenerateToken(), displayName(name))
	room.AddPlayer(player)
	room.HostID = player.Id

	h.publisher.Subscribe(connID, room.Code)
	h.publisher.Send(connID, internal.EvtRoomCreated, internal.RoomJoinedData{
		Code:     room.Code,
		Token:    player.Token,
		PlayerID: player.Id,
		HostID:   room.HostID,
	})
	h.broadcastState(room)

	h.log.Info().Str("room", room.Code).Str("player", player.Id).Str("name", player.Name).Msg("room created")
	return nil
}

func (h *Hub) leaveRoom(connID string) error {
	t := h.registry.tableOf(connID)
	if t == nil {
		return ErrNotInRoom
	}
	room := t.room

	delete(room.Players, connID)
	h.publisher.Unsubscribe(connID, room.Code)
	room.EnsureHost()
	h.log.Info().Str("room", room.Code).Str("player", connID).Msg("player left room")

	if h.registry.DestroyIfEmpty(room) {
		h.log.Info().Str("room", room.Code).Msg("room destroyed, no players left")
		return nil
	}

	h.afterDeparture(t)
	return nil
}

// afterDeparture settles a room once a player has left or dropped.
func (h *Hub) afterDeparture(t *table) {
	room := t.room
	h.checkEarlyEnd(t)
	h.broadcastState(room)
	h.broadcastScoreboard(room)
	h.armAbandonIfIdle(t)
}

func (h *Hub) startGame(connID string) error {
	t := h.registry.tableOf(connID)
	if t == nil {
		return ErrNotInRoom
	}
	room := t.room

	if room.HostID != connID {
		return ErrNotHost
	}
	if room.Status != internal.StatusLobby && room.Status != internal.StatusFinished {
		return ErrGameInProgress
	}
	connected := room.ConnectedPlayers()
	if len(connected) < h.rules.MinPlayers {
		return ErrNotEnoughPlayers
	}

	room.RoundIndex = 0
	room.Rounds = RoundTargets(len(connected))
	room.WinnerID = ""
	for _, p := range room.Players {
		p.ResetGameState()
		// players that dropped before the start sit the whole game out
		if !p.Connected {
			p.Eliminated = true
		}
	}

	h.log.Info().
		Str("room", room.Code).
		Int("players", len(connected)).
		Ints("rounds", room.Rounds).
		Msg("game started")

	h.startRound(t)
	return nil
}
