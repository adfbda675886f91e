package models

// Game statuses as stored in postgres. A row exists for discovery; the
// live room itself is in-memory.
const (
	GameStatusLobby    = "lobby"
	GameStatusStarted  = "started"
	GameStatusFinished = "finished"
)

// Game is the lobby-discovery row. Id is the 8-character room code.
type Game struct {
	Id     string
	Name   string
	Status string
}

type GameCreateDto struct {
	Name     string `json:"name"`
	HostName string `json:"hostName"`
}

type VerifyGameDto struct {
	Code string `query:"code"`
}
