package models

// Player is the room-membership row: which user sits in which game.
type Player struct {
	UserId   string `pg:"user_id"`
	GameId   string `pg:"game_id"`
	Username string
}
