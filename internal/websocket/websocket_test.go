package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

type mockCommander struct {
	mock.Mock
}

func (m *mockCommander) CreateRoom(connID, name string) { m.Called(connID, name) }
func (m *mockCommander) JoinRoom(connID, code, name, token string) {
	m.Called(connID, code, name, token)
}
func (m *mockCommander) LeaveRoom(connID string)        { m.Called(connID) }
func (m *mockCommander) StartGame(connID string)        { m.Called(connID) }
func (m *mockCommander) SubmitWord(connID, word string) { m.Called(connID, word) }
func (m *mockCommander) ReportOverflow(connID string)   { m.Called(connID) }
func (m *mockCommander) Disconnect(connID string)       { m.Called(connID) }

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func sendCommand(t *testing.T, conn *websocket.Conn, kind string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(internal.Message[json.RawMessage]{Type: kind, Data: raw}))
}

func readEvent(t *testing.T, conn *websocket.Conn) internal.Message[json.RawMessage] {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg internal.Message[json.RawMessage]
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestGatewayRoutesCommandsAndBroadcasts(t *testing.T) {
	gw := NewGateway(nil)
	cmd := &mockCommander{}
	server := httptest.NewServer(gw.Handler(cmd))
	defer server.Close()

	ids := make(chan string, 1)
	cmd.On("CreateRoom", mock.Anything, "Alice").Run(func(args mock.Arguments) {
		ids <- args.String(0)
	}).Once()
	cmd.On("SubmitWord", mock.Anything, "ze?u").Once()
	cmd.On("JoinRoom", mock.Anything, "ABCD", "Bob", "TOKEN").Once()
	cmd.On("StartGame", mock.Anything).Once()
	cmd.On("ReportOverflow", mock.Anything).Once()
	cmd.On("LeaveRoom", mock.Anything).Once()

	disconnected := make(chan string, 1)
	cmd.On("Disconnect", mock.Anything).Run(func(args mock.Arguments) {
		disconnected <- args.String(0)
	}).Once()

	conn := dial(t, server)
	sendCommand(t, conn, internal.CmdRoomCreate, internal.CreateRoomData{Name: "Alice"})

	var id string
	select {
	case id = <-ids:
	case <-time.After(3 * time.Second):
		t.Fatal("create command never reached the commander")
	}

	gw.Subscribe(id, "ABCD")
	gw.Publish("ABCD", internal.EvtRoomState, internal.RoomStateData{Code: "ABCD", HostID: id})
	msg := readEvent(t, conn)
	assert.Equal(t, internal.EvtRoomState, msg.Type)
	var state internal.RoomStateData
	require.NoError(t, json.Unmarshal(msg.Data, &state))
	assert.Equal(t, id, state.HostID)

	gw.Send(id, internal.EvtWordResult, internal.WordResultData{OK: true, Word: "ZEBU"})
	msg = readEvent(t, conn)
	assert.Equal(t, internal.EvtWordResult, msg.Type)

	sendCommand(t, conn, internal.CmdWordSubmit, internal.SubmitWordData{Word: "ze?u"})
	sendCommand(t, conn, internal.CmdRoomJoin, internal.JoinRoomData{Code: "ABCD", Name: "Bob", Token: "TOKEN"})
	require.NoError(t, conn.WriteJSON(map[string]string{"type": internal.CmdGameStart}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": internal.CmdPlayerKO}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": internal.CmdRoomLeave}))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	msg = readEvent(t, conn)
	assert.Equal(t, internal.EvtError, msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = readEvent(t, conn)
	assert.Equal(t, internal.EvtError, msg.Type)

	conn.Close()
	select {
	case got := <-disconnected:
		assert.Equal(t, id, got)
	case <-time.After(3 * time.Second):
		t.Fatal("disconnect never reported")
	}

	assert.Eventually(t, func() bool { return gw.Connections() == 0 }, 3*time.Second, 10*time.Millisecond)
	cmd.AssertExpectations(t)
}

func TestGatewayRejectsForeignOrigin(t *testing.T) {
	gw := NewGateway([]string{"https://lexiflood.example"})
	server := httptest.NewServer(gw.Handler(&mockCommander{}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://lexiflood.example")
	cmd := &mockCommander{}
	cmd.On("Disconnect", mock.Anything).Maybe()
	allowed := httptest.NewServer(gw.Handler(cmd))
	defer allowed.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(allowed.URL, "http"), header)
	require.NoError(t, err)
	conn.Close()
}

func TestPublishSkipsOtherRooms(t *testing.T) {
	gw := NewGateway(nil)
	a := &client{id: "a", send: make(chan []byte, 1), closed: make(chan struct{})}
	b := &client{id: "b", send: make(chan []byte, 1), closed: make(chan struct{})}
	gw.register(a)
	gw.register(b)
	gw.Subscribe("a", "ROOM")
	gw.Subscribe("b", "OTHR")

	gw.Publish("ROOM", internal.EvtLetter, internal.LetterEvent{TickIndex: 5, Letter: "E"})
	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 0)

	// full buffers drop instead of blocking
	gw.Publish("ROOM", internal.EvtLetter, internal.LetterEvent{TickIndex: 6, Letter: "S"})
	assert.Len(t, a.send, 1)

	gw.Unsubscribe("a", "ROOM")
	<-a.send
	gw.Publish("ROOM", internal.EvtLetter, internal.LetterEvent{TickIndex: 7, Letter: "T"})
	assert.Len(t, a.send, 0)

	gw.unregister(b)
	gw.Send("b", internal.EvtError, internal.ErrorData{Message: "gone"})
	assert.Len(t, b.send, 0)
	assert.Equal(t, 1, gw.Connections())
}
