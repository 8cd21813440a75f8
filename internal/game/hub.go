package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

const inboxSize = 1024

// Publisher delivers events to connections and room groups.
type Publisher interface {
	Publish(roomCode, event string, payload any)
	Send(connID, event string, payload any)
	Subscribe(connID, roomCode string)
	Unsubscribe(connID, roomCode string)
}

// WordChecker resolves a normalized pattern to a dictionary word.
type WordChecker interface {
	Resolve(pattern string) (string, bool)
}

// Hub owns every room. All room state is touched from the Run loop only; the exported
// command methods enqueue work and return immediately.
type Hub struct {
	registry  *Registry
	publisher Publisher
	words     WordChecker
	results   ResultStore
	rules     Rules
	scores    ScoreTable
	clock     Clock
	rng       *rand.Rand
	log       zerolog.Logger

	inbox      chan func()
	done       chan struct{}
	background sync.WaitGroup
}

type Option func(*Hub)

func WithClock(clock Clock) Option {
	return func(h *Hub) { h.clock = clock }
}

// WithRand seeds room codes and letter generators.
func WithRand(rng *rand.Rand) Option {
	return func(h *Hub) { h.rng = rng }
}

func WithRules(rules Rules) Option {
	return func(h *Hub) { h.rules = rules }
}

func WithScoreTable(scores ScoreTable) Option {
	return func(h *Hub) { h.scores = scores }
}

func WithResultStore(store ResultStore) Option {
	return func(h *Hub) {
		if store != nil {
			h.results = store
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(h *Hub) { h.log = logger }
}

func NewHub(publisher Publisher, words WordChecker, opts ...Option) *Hub {
	h := &Hub{
		publisher: publisher,
		words:     words,
		results:   noopResultStore{},
		rules:     DefaultRules(),
		scores:    DefaultScoreTable(),
		clock:     SystemClock(),
		log:       log.With().Str("component", "hub").Logger(),
		inbox:     make(chan func(), inboxSize),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	h.registry = NewRegistry(h.rng)
	return h
}

// Run processes commands and timer fires until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.log.Info().Msg("game hub started")
	defer func() {
		close(h.done)
		for _, t := range h.registry.tables {
			t.stopAllTimers()
		}
		h.background.Wait()
		h.log.Info().Msg("game hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-h.inbox:
			fn()
		}
	}
}

func (h *Hub) enqueue(fn func()) bool {
	select {
	case h.inbox <- fn:
		return true
	case <-h.done:
		return false
	}
}

// call runs fn on the hub loop and waits for it.
func (h *Hub) call(fn func()) error {
	finished := make(chan struct{})
	if !h.enqueue(func() {
		defer close(finished)
		fn()
	}) {
		return ErrHubStopped
	}
	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func (h *Hub) CreateRoom(connID, name string) {
	h.enqueue(func() { h.reject(connID, h.createRoom(connID, name)) })
}

func (h *Hub) JoinRoom(connID, code, name, token string) {
	h.enqueue(func() { h.reject(connID, h.joinRoom(connID, code, name, token)) })
}

func (h *Hub) LeaveRoom(connID string) {
	h.enqueue(func() { h.reject(connID, h.leaveRoom(connID)) })
}

func (h *Hub) StartGame(connID string) {
	h.enqueue(func() { h.reject(connID, h.startGame(connID)) })
}

func (h *Hub) SubmitWord(connID, word string) {
	h.enqueue(func() {
		if err := h.submitWord(connID, word); err != nil && !errors.Is(err, ErrNotInRoom) {
			h.publisher.Send(connID, internal.EvtWordResult, internal.WordResultData{
				OK:      false,
				Message: err.Error(),
			})
		}
	})
}

func (h *Hub) ReportOverflow(connID string) {
	h.enqueue(func() { h.reject(connID, h.reportOverflow(connID)) })
}

func (h *Hub) Disconnect(connID string) {
	h.enqueue(func() { h.disconnect(connID) })
}

// RoomCount reports how many rooms are live.
func (h *Hub) RoomCount() (int, error) {
	var n int
	err := h.call(func() { n = h.registry.Len() })
	return n, err
}

// reject answers a failed command with an error event to the sender.
func (h *Hub) reject(connID string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrNotInRoom) {
		h.log.Debug().Str("conn", connID).Msg("command from connection outside any room")
		return
	}
	h.log.Debug().Err(err).Str("conn", connID).Msg("command rejected")
	h.publisher.Send(connID, internal.EvtError, internal.ErrorData{Message: err.Error()})
}

// =============================================================================
// BROADCAST HELPERS
// =============================================================================

func (h *Hub) broadcastState(room *internal.Room) {
	h.publisher.Publish(room.Code, internal.EvtRoomState, room.State())
}

func (h *Hub) broadcastScoreboard(room *internal.Room) {
	h.publisher.Publish(room.Code, internal.EvtScoreboard, internal.ScoreboardData{
		Scoreboard: room.Scoreboard(),
	})
}

func (h *Hub) nowMs() int64 {
	return h.clock.Now().UnixMilli()
}
