package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64

	messagesPerSecond = 10
	messageBurst      = 20
)

var errInvalidPayload = errors.New("invalid payload")

// Commander receives the commands read off client connections.
type Commander interface {
	CreateRoom(connID, name string)
	JoinRoom(connID, code, name, token string)
	LeaveRoom(connID string)
	StartGame(connID string)
	SubmitWord(connID, word string)
	ReportOverflow(connID string)
	Disconnect(connID string)
}

// =============================================================================
// CLIENT
// =============================================================================

type client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	closed  chan struct{}
	once    sync.Once
	limiter *rate.Limiter
}

func (c *client) close() {
	c.once.Do(func() { close(c.closed) })
}

// deliver queues data without blocking. A client that cannot keep up loses the message.
func (c *client) deliver(data []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// =============================================================================
// GATEWAY
// =============================================================================

// Gateway owns the websocket connections and the room groups used for broadcasts.
type Gateway struct {
	mu       sync.RWMutex
	clients  map[string]*client
	rooms    map[string]map[string]*client
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewGateway accepts upgrades from the given origins. An empty list or "*" allows any.
func NewGateway(allowedOrigins []string) *Gateway {
	g := &Gateway{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
		log:     log.With().Str("component", "gateway").Logger(),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
	return g
}

func encode(event string, payload any) ([]byte, error) {
	return json.Marshal(internal.Message[any]{Type: event, Data: payload})
}

// Publish sends an event to every connection subscribed to roomCode.
func (g *Gateway) Publish(roomCode, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		g.log.Error().Err(err).Str("event", event).Msg("failed to encode event")
		return
	}

	g.mu.RLock()
	members := make([]*client, 0, len(g.rooms[roomCode]))
	for _, c := range g.rooms[roomCode] {
		members = append(members, c)
	}
	g.mu.RUnlock()

	for _, c := range members {
		if !c.deliver(data) {
			g.log.Warn().Str("conn", c.id).Str("room", roomCode).Str("event", event).Msg("dropped broadcast")
		}
	}
}

// Send delivers an event to a single connection.
func (g *Gateway) Send(connID, event string, payload any) {
	g.mu.RLock()
	c := g.clients[connID]
	g.mu.RUnlock()
	if c == nil {
		return
	}

	data, err := encode(event, payload)
	if err != nil {
		g.log.Error().Err(err).Str("event", event).Msg("failed to encode event")
		return
	}
	if !c.deliver(data) {
		g.log.Warn().Str("conn", connID).Str("event", event).Msg("dropped message")
	}
}

func (g *Gateway) Subscribe(connID, roomCode string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.clients[connID]
	if c == nil {
		return
	}
	if g.rooms[roomCode] == nil {
		g.rooms[roomCode] = make(map[string]*client)
	}
	g.rooms[roomCode][connID] = c
}

func (g *Gateway) Unsubscribe(connID, roomCode string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.rooms[roomCode], connID)
	if len(g.rooms[roomCode]) == 0 {
		delete(g.rooms, roomCode)
	}
}

// Connections reports how many clients are attached.
func (g *Gateway) Connections() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

func (g *Gateway) register(c *client) {
	g.mu.Lock()
	g.clients[c.id] = c
	g.mu.Unlock()
}

func (g *Gateway) unregister(c *client) {
	g.mu.Lock()
	delete(g.clients, c.id)
	for code, members := range g.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(g.rooms, code)
		}
	}
	g.mu.Unlock()
	c.close()
}

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// Handler upgrades the request and pumps the connection until it drops.
func (g *Gateway) Handler(cmd Commander) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := g.upgrader.Upgrade(w, r, nil)
		if err != nil {
			g.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
			return
		}

		c := &client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan []byte, sendBufferSize),
			closed:  make(chan struct{}),
			limiter: rate.NewLimiter(messagesPerSecond, messageBurst),
		}
		g.register(c)
		g.log.Info().Str("conn", c.id).Str("remote", r.RemoteAddr).Msg("client connected")

		go g.writePump(c)
		g.readPump(cmd, c)
	}
}

func (g *Gateway) readPump(cmd Commander, c *client) {
	defer func() {
		g.unregister(c)
		cmd.Disconnect(c.id)
		c.conn.Close()
		g.log.Info().Str("conn", c.id).Msg("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug().Err(err).Str("conn", c.id).Msg("read error")
			}
			return
		}
		if !c.limiter.Allow() {
			g.log.Warn().Str("conn", c.id).Msg("rate limit exceeded, message dropped")
			continue
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			g.Send(c.id, internal.EvtError, internal.ErrorData{Message: errInvalidPayload.Error()})
			continue
		}
		if err := dispatch(cmd, c.id, msg); err != nil {
			g.log.Debug().Err(err).Str("conn", c.id).Str("type", msg.Type).Msg("bad command")
			g.Send(c.id, internal.EvtError, internal.ErrorData{Message: err.Error()})
		}
	}
}

func (g *Gateway) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.closed:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var data T
	if len(raw) == 0 || string(raw) == "null" {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, errInvalidPayload
	}
	return data, nil
}

// dispatch routes one client message to the commander.
func dispatch(cmd Commander, connID string, msg internal.Message[json.RawMessage]) error {
	switch msg.Type {
	case internal.CmdRoomCreate:
		data, err := decode[internal.CreateRoomData](msg.Data)
		if err != nil {
			return err
		}
		cmd.CreateRoom(connID, data.Name)
	case internal.CmdRoomJoin:
		data, err := decode[internal.JoinRoomData](msg.Data)
		if err != nil {
			return err
		}
		cmd.JoinRoom(connID, data.Code, data.Name, data.Token)
	case internal.CmdRoomLeave:
		cmd.LeaveRoom(connID)
	case internal.CmdGameStart:
		cmd.StartGame(connID)
	case internal.CmdWordSubmit:
		data, err := decode[internal.SubmitWordData](msg.Data)
		if err != nil {
			return err
		}
		cmd.SubmitWord(connID, data.Word)
	case internal.CmdPlayerKO:
		cmd.ReportOverflow(connID)
	default:
		return fmt.Errorf("unknown command %q", msg.Type)
	}
	return nil
}
