package internal

import (
	"time"
)

const (
	RoomCodeLength    = 4
	MinPlayersToStart = 2
	DefaultPlayerName = "LexiHero"
)

type RoomStatus string

const (
	StatusLobby    RoomStatus = "lobby"
	StatusInRound  RoomStatus = "inRound"
	StatusRoundEnd RoomStatus = "roundEnd"
	StatusFinished RoomStatus = "finished"
)

type LetterEvent struct {
	TickIndex int    `json:"tickIndex"`
	Letter    string `json:"letter"`
}

type WordHistoryEntry struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Points     int    `json:"points"`
	CreatedAt  int64  `json:"createdAt"`
}

type Room struct {
	Code    string             `json:"code"`
	HostID  string             `json:"hostId"`
	Status  RoomStatus         `json:"status"`
	Players map[string]*Player `json:"-"`

	// Round Management
	RoundIndex       int    `json:"roundIndex"`
	Rounds           []int  `json:"rounds"`
	RoundStartAt     *int64 `json:"roundStartAt"`
	NextRoundStartAt *int64 `json:"nextRoundStartAt"`
	DurationMs       int64  `json:"durationMs"`
	LetterIntervalMs int64  `json:"letterIntervalMs"`

	// Board
	LetterHistory  []LetterEvent      `json:"letterHistory"`
	InitialLetters []string           `json:"initialLetters"`
	WordHistory    []WordHistoryEntry `json:"wordHistory"`

	WinnerID  string    `json:"winnerId,omitempty"`
	CreatedAt time.Time `json:"-"`

	// join counter, handed to players as JoinSeq
	nextSeq int
}

type Player struct {
	Id         string `json:"id"`
	Token      string `json:"-"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	KO         bool   `json:"ko"`
	Eliminated bool   `json:"eliminated"`
	Connected  bool   `json:"connected"`

	UsedWords map[string]struct{} `json:"-"`
	JoinSeq   int                 `json:"-"`
}

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// GameResult is the record persisted when a room reaches finished.
type GameResult struct {
	ID         string         `json:"id"`
	RoomCode   string         `json:"roomCode"`
	WinnerID   string         `json:"winnerId"`
	WinnerName string         `json:"winnerName"`
	Rounds     int            `json:"rounds"`
	Players    []ResultPlayer `json:"players"`
	FinishedAt time.Time      `json:"finishedAt"`
}

type ResultPlayer struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Eliminated bool   `json:"eliminated"`
	Position   int    `json:"position"`
}

// Response wraps JSON answers of the HTTP side channel with timing info.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
