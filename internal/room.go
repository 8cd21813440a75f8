package internal

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func NewRoom(code string, now time.Time) *Room {
	return &Room{
		Code:           code,
		Status:         StatusLobby,
		Players:        make(map[string]*Player),
		Rounds:         make([]int, 0),
		LetterHistory:  make([]LetterEvent, 0),
		InitialLetters: make([]string, 0),
		WordHistory:    make([]WordHistoryEntry, 0),
		CreatedAt:      now,
	}
}

// Methods (Room Struct)

// AddPlayer registers p under its connection id and stamps its join order.
func (r *Room) AddPlayer(p *Player) {
	r.nextSeq++
	p.JoinSeq = r.nextSeq
	r.Players[p.Id] = p
}

// MovePlayer re-keys a player after a reconnect. The old id is dropped from the map.
func (r *Room) MovePlayer(p *Player, newID string) {
	delete(r.Players, p.Id)
	p.Id = newID
	r.Players[newID] = p
}

func (r *Room) PlayerByToken(token string) *Player {
	if token == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.Token == token {
			return p
		}
	}
	return nil
}

func (r *Room) ConnectedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Connected {
			players = append(players, p)
		}
	}
	slices.SortFunc(players, byJoinOrder)
	return players
}

// ConnectedActive returns connected players that have not been eliminated, ranked.
func (r *Room) ConnectedActive() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.SortedPlayers() {
		if p.Connected && !p.Eliminated {
			players = append(players, p)
		}
	}
	return players
}

// EnsureHost keeps HostID on a connected player when there is one: the current host if
// still connected, otherwise the earliest joined connected player. With nobody connected
// the current host keeps the seat so a room with players always has a host.
func (r *Room) EnsureHost() {
	if host, ok := r.Players[r.HostID]; ok && host.Connected {
		return
	}
	if connected := r.ConnectedPlayers(); len(connected) > 0 {
		r.HostID = connected[0].Id
		return
	}
	if _, ok := r.Players[r.HostID]; ok {
		return
	}
	r.HostID = ""
	for _, p := range r.Players {
		if r.HostID == "" || p.JoinSeq < r.Players[r.HostID].JoinSeq {
			r.HostID = p.Id
		}
	}
}

func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

func (r *Room) TargetQualified() int {
	if r.RoundIndex < 0 || r.RoundIndex >= len(r.Rounds) {
		return 1
	}
	return r.Rounds[r.RoundIndex]
}

// SortedPlayers ranks every player: not eliminated first, then not KO, then score
// descending, then name in French collation order.
func (r *Room) SortedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	coll := collate.New(language.French)
	slices.SortStableFunc(players, func(a, b *Player) int {
		if a.Eliminated != b.Eliminated {
			if a.Eliminated {
				return 1
			}
			return -1
		}
		if a.KO != b.KO {
			if a.KO {
				return 1
			}
			return -1
		}
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return byJoinOrder(a, b)
	})
	return players
}

func (r *Room) Scoreboard() []ScoreboardEntry {
	sorted := r.SortedPlayers()
	board := make([]ScoreboardEntry, 0, len(sorted))
	for idx, p := range sorted {
		board = append(board, ScoreboardEntry{
			ID:         p.Id,
			Name:       p.Name,
			Score:      p.Score,
			KO:         p.KO,
			Eliminated: p.Eliminated,
			Connected:  p.Connected,
			Position:   idx + 1,
		})
	}
	return board
}

func (r *Room) State() RoomStateData {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	slices.SortFunc(players, byJoinOrder)

	states := make([]PlayerState, 0, len(players))
	for _, p := range players {
		states = append(states, p.ToPlayerState())
	}
	return RoomStateData{
		Code:    r.Code,
		HostID:  r.HostID,
		Status:  r.Status,
		Players: states,
	}
}

// Snapshot rebuilds the full room view for a (re)joining connection.
func (r *Room) Snapshot() SnapshotData {
	history := slices.Clone(r.LetterHistory)
	slices.SortStableFunc(history, func(a, b LetterEvent) int {
		return a.TickIndex - b.TickIndex
	})

	var winner *string
	if r.Status == StatusFinished && r.WinnerID != "" {
		id := r.WinnerID
		winner = &id
	}

	return SnapshotData{
		Status:           r.Status,
		RoundIndex:       r.RoundIndex,
		TotalRounds:      len(r.Rounds),
		TargetQualified:  r.TargetQualified(),
		RoundStartAt:     r.RoundStartAt,
		NextRoundStartAt: r.NextRoundStartAt,
		DurationMs:       r.DurationMs,
		LetterIntervalMs: r.LetterIntervalMs,
		LetterHistory:    history,
		InitialLetters:   slices.Clone(r.InitialLetters),
		WordHistory:      slices.Clone(r.WordHistory),
		Scoreboard:       r.Scoreboard(),
		WinnerID:         winner,
	}
}

func byJoinOrder(a, b *Player) int {
	return a.JoinSeq - b.JoinSeq
}
