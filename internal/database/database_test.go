package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lexiflood"),
		postgres.WithUsername("lexiflood"),
		postgres.WithPassword("lexiflood"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func result(code string, finishedAt time.Time) internal.GameResult {
	return internal.GameResult{
		ID:         uuid.NewString(),
		RoomCode:   code,
		WinnerID:   "conn-1",
		WinnerName: "Alice",
		Rounds:     2,
		Players: []internal.ResultPlayer{
			{Name: "Alice", Score: 42, Position: 1},
			{Name: "Bob", Score: 12, Eliminated: true, Position: 2},
		},
		FinishedAt: finishedAt.UTC().Truncate(time.Microsecond),
	}
}

func TestService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("Health", func(t *testing.T) {
		stats := svc.Health(ctx)
		assert.Equal(t, "up", stats["status"])
	})

	t.Run("EnsureSchemaIsIdempotent", func(t *testing.T) {
		require.NoError(t, svc.EnsureSchema(ctx))
	})

	older := result("ABCD", now.Add(-time.Hour))
	newer := result("WXYZ", now)

	t.Run("SaveGameResult", func(t *testing.T) {
		require.NoError(t, svc.SaveGameResult(ctx, older))
		require.NoError(t, svc.SaveGameResult(ctx, newer))
	})

	t.Run("SaveDuplicateFails", func(t *testing.T) {
		err := svc.SaveGameResult(ctx, older)
		assert.ErrorIs(t, err, ErrUnexpected)
	})

	t.Run("RecentResults", func(t *testing.T) {
		results, err := svc.RecentResults(ctx, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, newer.ID, results[0].ID)
		assert.Equal(t, newer.Players, results[0].Players)
		assert.Equal(t, newer.WinnerName, results[0].WinnerName)
		assert.True(t, newer.FinishedAt.Equal(results[0].FinishedAt))
		assert.Equal(t, older.RoomCode, results[1].RoomCode)

		limited, err := svc.RecentResults(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := svc.SaveGameResult(cancelled, result("QQQQ", now))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
