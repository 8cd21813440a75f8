package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

var ErrUnexpected = errors.New("unexpected database error")

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	id          UUID PRIMARY KEY,
	room_code   TEXT        NOT NULL,
	winner_id   TEXT        NOT NULL DEFAULT '',
	winner_name TEXT        NOT NULL DEFAULT '',
	rounds      INTEGER     NOT NULL,
	players     JSONB       NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS game_results_finished_at_idx ON game_results (finished_at DESC);
`

// Service stores finished games in Postgres.
type Service struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Service, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	s := &Service{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%w: create schema: %w", ErrUnexpected, err)
	}
	return nil
}

func (s *Service) SaveGameResult(ctx context.Context, result internal.GameResult) error {
	players, err := json.Marshal(result.Players)
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO game_results (id, room_code, winner_id, winner_name, rounds, players, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.ID, result.RoomCode, result.WinnerID, result.WinnerName, result.Rounds, players, result.FinishedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return fmt.Errorf("%w: %w", ErrUnexpected, err)
		}
	}
	return nil
}

// RecentResults returns up to limit games, newest first.
func (s *Service) RecentResults(ctx context.Context, limit int) ([]internal.GameResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, room_code, winner_id, winner_name, rounds, players, finished_at
		 FROM game_results ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (internal.GameResult, error) {
		var (
			r       internal.GameResult
			players []byte
		)
		if err := row.Scan(&r.ID, &r.RoomCode, &r.WinnerID, &r.WinnerName, &r.Rounds, &players, &r.FinishedAt); err != nil {
			return r, err
		}
		if err := json.Unmarshal(players, &r.Players); err != nil {
			return r, err
		}
		r.FinishedAt = r.FinishedAt.UTC()
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	return results, nil
}

// Health pings the database and reports pool statistics.
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)
	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		log.Warn().Err(err).Msg("database ping failed")
		return stats
	}

	pool := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = fmt.Sprint(pool.TotalConns())
	stats["idle_conns"] = fmt.Sprint(pool.IdleConns())
	stats["acquired_conns"] = fmt.Sprint(pool.AcquiredConns())
	return stats
}

func (s *Service) Close() {
	s.pool.Close()
}
