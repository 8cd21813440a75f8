package game

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

// =============================================================================
// ROOM MANAGEMENT
// =============================================================================

// table is a room plus the runtime state that never leaves the server.
type table struct {
	room    *internal.Room
	letters *LetterGenerator
	recent  []string

	letterTimer  phaseTimer
	roundTimer   phaseTimer
	abandonTimer phaseTimer
}

func (t *table) stopRoundTimers() {
	t.letterTimer.stop()
	t.roundTimer.stop()
}

func (t *table) stopAllTimers() {
	t.stopRoundTimers()
	t.abandonTimer.stop()
}

// Registry maps room codes to live rooms. It belongs to the hub loop and is not
// safe for concurrent use.
type Registry struct {
	tables map[string]*table
	rng    *rand.Rand
}

func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{
		tables: make(map[string]*table),
		rng:    rng,
	}
}

// Create registers a lobby room under a code no live room uses.
func (reg *Registry) Create(now time.Time) *internal.Room {
	code := utils.GenerateRoomCode(reg.rng, internal.RoomCodeLength)
	for reg.tables[code] != nil {
		code = utils.GenerateRoomCode(reg.rng, internal.RoomCodeLength)
	}
	room := internal.NewRoom(code, now)
	reg.tables[code] = &table{room: room}
	return room
}

// Find looks a room up by code, ignoring case and surrounding spaces.
func (reg *Registry) Find(code string) *internal.Room {
	if t := reg.table(code); t != nil {
		return t.room
	}
	return nil
}

func (reg *Registry) table(code string) *table {
	return reg.tables[strings.ToUpper(strings.TrimSpace(code))]
}

// ResolveByConnection returns the room connID plays in, if any.
func (reg *Registry) ResolveByConnection(connID string) *internal.Room {
	if t := reg.tableOf(connID); t != nil {
		return t.room
	}
	return nil
}

func (reg *Registry) tableOf(connID string) *table {
	for _, t := range reg.tables {
		if _, ok := t.room.Players[connID]; ok {
			return t
		}
	}
	return nil
}

// DestroyIfEmpty drops a room that has no players left and stops its timers.
func (reg *Registry) DestroyIfEmpty(room *internal.Room) bool {
	if room == nil || !room.IsEmpty() {
		return false
	}
	reg.destroy(room.Code)
	return true
}

func (reg *Registry) destroy(code string) {
	t, ok := reg.tables[code]
	if !ok {
		return
	}
	t.stopAllTimers()
	delete(reg.tables, code)
}

func (reg *Registry) Len() int {
	return len(reg.tables)
}
