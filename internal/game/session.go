package game

import (
	"strings"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

// =============================================================================
// SESSIONS - JOIN, RECONNECT & DISCONNECT
// =============================================================================

func (h *Hub) joinRoom(connID, code, name, token string) error {
	t := h.registry.table(code)
	if t == nil {
		return ErrRoomNotFound
	}
	room := t.room

	if current := h.registry.tableOf(connID); current != nil && current != t {
		return ErrAlreadyInRoom
	}

	player, ok := room.Players[connID]
	switch {
	case ok:
		// same connection joining twice, just replay the state
	case room.PlayerByToken(token) != nil:
		player = room.PlayerByToken(token)
		previousID := player.Id
		room.MovePlayer(player, connID)
		player.Connected = true
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			player.Name = trimmed
		}
		if room.HostID == previousID {
			room.HostID = connID
		}
		if room.WinnerID == previousID {
			room.WinnerID = connID
		}
		h.publisher.Unsubscribe(previousID, room.Code)
		h.log.Info().Str("room", room.Code).Str("player", connID).Str("previous", previousID).Msg("player reconnected")
	case room.Status != internal.StatusLobby:
		return ErrGameInProgress
	default:
		player = internal.NewPlayer(connID, utils.GenerateToken(), displayName(name))
		room.AddPlayer(player)
		h.log.Info().Str("room", room.Code).Str("player", connID).Str("name", player.Name).Msg("player joined room")
	}

	t.abandonTimer.stop()
	room.EnsureHost()
	h.publisher.Subscribe(connID, room.Code)

	h.publisher.Send(connID, internal.EvtRoomJoined, internal.RoomJoinedData{
		Code:     room.Code,
		Token:    player.Token,
		PlayerID: player.Id,
		HostID:   room.HostID,
	})
	h.broadcastState(room)
	if room.Status != internal.StatusLobby {
		h.publisher.Send(connID, internal.EvtSnapshot, room.Snapshot())
	}
	return nil
}

// disconnect marks the player of a dropped connection as gone. The seat is kept so the
// player can come back with their token.
func (h *Hub) disconnect(connID string) {
	t := h.registry.tableOf(connID)
	if t == nil {
		return
	}
	room := t.room
	player := room.Players[connID]
	player.Connected = false
	h.publisher.Unsubscribe(connID, room.Code)
	room.EnsureHost()

	h.log.Info().Str("room", room.Code).Str("player", connID).Msg("player disconnected")
	h.afterDeparture(t)
}

// armAbandonIfIdle schedules removal of a room nobody is connected to.
func (h *Hub) armAbandonIfIdle(t *table) {
	if len(t.room.ConnectedPlayers()) > 0 || t.abandonTimer.active() || h.rules.AbandonAfter <= 0 {
		return
	}
	code := t.room.Code
	h.armTimer(&t.abandonTimer, h.rules.AbandonAfter, func() {
		if len(t.room.ConnectedPlayers()) > 0 {
			return
		}
		h.registry.destroy(code)
		h.log.Info().Str("room", code).Msg("room abandoned and destroyed")
	})
}
