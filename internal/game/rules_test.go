package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTargets(t *testing.T) {
	tests := []struct {
		players int
		want    []int
	}{
		{2, []int{1}},
		{3, []int{1}},
		{4, []int{3, 3}},
		{8, []int{3, 3}},
		{9, []int{6, 3, 3}},
		{10, []int{6, 3, 3}},
		{14, []int{6, 3, 3}},
		{15, []int{10, 6, 3, 3}},
		{40, []int{10, 6, 3, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundTargets(tt.players), "%d players", tt.players)
	}
}

func TestTenPlayerGame(t *testing.T) {
	env := newTestEnv(t)
	room := env.started("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")

	assert.Equal(t, []int{6, 3, 3}, room.Rounds)
	assert.Equal(t, 6, room.TargetQualified())
}
