package internal

// Client commands.
const (
	CmdRoomCreate = "room:create"
	CmdRoomJoin   = "room:join"
	CmdRoomLeave  = "room:leave"
	CmdGameStart  = "game:start"
	CmdWordSubmit = "word:submit"
	CmdPlayerKO   = "player:ko"
)

// Server events.
const (
	EvtRoomCreated = "room:created"
	EvtRoomJoined  = "room:joined"
	EvtRoomState   = "room:state"
	EvtScoreboard  = "game:scoreboard"
	EvtRoundStart  = "game:round:start"
	EvtLetter      = "game:letter"
	EvtWordHistory = "game:word:history"
	EvtWordResult  = "word:result"
	EvtRoundEnd    = "game:round:end"
	EvtGameEnd     = "game:end"
	EvtSnapshot    = "game:snapshot"
	EvtError       = "error"
)

type CreateRoomData struct {
	Name string `json:"name"`
}

type JoinRoomData struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

type SubmitWordData struct {
	Word string `json:"word"`
}

type RoomJoinedData struct {
	Code     string `json:"code"`
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	HostID   string `json:"hostId"`
}

type PlayerState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	KO         bool   `json:"ko"`
	Eliminated bool   `json:"eliminated"`
	Connected  bool   `json:"connected"`
}

type RoomStateData struct {
	Code    string        `json:"code"`
	HostID  string        `json:"hostId"`
	Status  RoomStatus    `json:"status"`
	Players []PlayerState `json:"players"`
}

type ScoreboardEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	KO         bool   `json:"ko"`
	Eliminated bool   `json:"eliminated"`
	Connected  bool   `json:"connected"`
	Position   int    `json:"position"`
}

type ScoreboardData struct {
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
}

type RoundStartData struct {
	RoundIndex       int      `json:"roundIndex"`
	TotalRounds      int      `json:"totalRounds"`
	TargetQualified  int      `json:"targetQualified"`
	RoundStartAt     int64    `json:"roundStartAt"`
	DurationMs       int64    `json:"durationMs"`
	LetterIntervalMs int64    `json:"letterIntervalMs"`
	InitialLetters   []string `json:"initialLetters"`
}

type WordResultData struct {
	OK      bool   `json:"ok"`
	Word    string `json:"word,omitempty"`
	Points  int    `json:"points,omitempty"`
	Score   int    `json:"score,omitempty"`
	Message string `json:"message,omitempty"`
}

type RoundEndData struct {
	RoundIndex       int               `json:"roundIndex"`
	TotalRounds      int               `json:"totalRounds"`
	Scoreboard       []ScoreboardEntry `json:"scoreboard"`
	EliminatedIDs    []string          `json:"eliminatedIds"`
	QualifiedIDs     []string          `json:"qualifiedIds"`
	NextRoundStartAt *int64            `json:"nextRoundStartAt"`
}

type GameEndData struct {
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
	WinnerID   *string           `json:"winnerId"`
}

type SnapshotData struct {
	Status           RoomStatus         `json:"status"`
	RoundIndex       int                `json:"roundIndex"`
	TotalRounds      int                `json:"totalRounds"`
	TargetQualified  int                `json:"targetQualified"`
	RoundStartAt     *int64             `json:"roundStartAt"`
	NextRoundStartAt *int64             `json:"nextRoundStartAt"`
	DurationMs       int64              `json:"durationMs"`
	LetterIntervalMs int64              `json:"letterIntervalMs"`
	LetterHistory    []LetterEvent      `json:"letterHistory"`
	InitialLetters   []string           `json:"initialLetters"`
	WordHistory      []WordHistoryEntry `json:"wordHistory"`
	Scoreboard       []ScoreboardEntry  `json:"scoreboard"`
	WinnerID         *string            `json:"winnerId"`
}

type ErrorData struct {
	Message string `json:"message"`
}
