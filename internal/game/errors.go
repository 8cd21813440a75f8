package game

import "errors"

// Errors returned by hub commands. Their text is what the client sees.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrNotInRoom         = errors.New("you are not in a room")
	ErrAlreadyInRoom     = errors.New("you are already in a room")
	ErrNotHost           = errors.New("only the host can start the game")
	ErrNotEnoughPlayers  = errors.New("not enough connected players to start")
	ErrGameInProgress    = errors.New("a game is already in progress")
	ErrActionUnavailable = errors.New("action unavailable")
	ErrEmptyWord         = errors.New("empty word")
	ErrWordUsed          = errors.New("word already used this round")
	ErrInvalidWord       = errors.New("word not in dictionary")
	ErrHubStopped        = errors.New("game hub stopped")
)
