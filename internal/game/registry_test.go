package game

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/lexiflood-backend/internal"
	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

func TestRegistryCodesAreUnique(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewPCG(5, 5)))
	seen := map[string]bool{}
	for range 2000 {
		room := reg.Create(time.Now())
		require.False(t, seen[room.Code], "duplicate code %s", room.Code)
		seen[room.Code] = true

		assert.Len(t, room.Code, internal.RoomCodeLength)
		for _, c := range room.Code {
			assert.True(t, strings.ContainsRune(utils.RoomCodeAlphabet, c))
		}
	}
	assert.Equal(t, 2000, reg.Len())
}

func TestRegistryFindAndResolve(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewPCG(1, 1)))
	room := reg.Create(time.Now())
	room.AddPlayer(internal.NewPlayer("conn", "tok", "Alice"))

	assert.Same(t, room, reg.Find(strings.ToLower(room.Code)))
	assert.Nil(t, reg.Find("0000"))
	assert.Same(t, room, reg.ResolveByConnection("conn"))
	assert.Nil(t, reg.ResolveByConnection("other"))

	assert.False(t, reg.DestroyIfEmpty(room))
	delete(room.Players, "conn")
	assert.True(t, reg.DestroyIfEmpty(room))
	assert.Nil(t, reg.Find(room.Code))
	assert.False(t, reg.DestroyIfEmpty(nil))
}
