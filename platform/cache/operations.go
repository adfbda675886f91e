package cache

import (
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"
	"github.com/trade-tycoon/backend/pkg/game"
	"github.com/trade-tycoon/backend/pkg/rooms"
)

func Get(key string, conn *redis.Conn) (string, error) {
	return redis.String((*conn).Do("GET", key))
}

func Set(key string, value interface{}, conn *redis.Conn) error {
	_, err := (*conn).Do("SET", key, value)
	return err
}

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

func stateKey(roomID string) string {
	return fmt.Sprintf("room.%s.state", roomID)
}

func lobbyKey(roomID string) string {
	return fmt.Sprintf("room.%s.lobby", roomID)
}

// SaveState writes a room's serialized game state under its room code.
// Called after every accepted action; live authority stays with the
// in-memory room manager, the snapshot only survives process restarts.
func SaveState(roomID string, gs *game.GameState, conn *redis.Conn) error {
	data, err := json.Marshal(gs)
	if err != nil {
		return err
	}
	return Set(stateKey(roomID), data, conn)
}

// LoadState reads a room's last snapshot. Missing keys surface as an error
// from redigo; callers treat that as "no snapshot".
func LoadState(roomID string, conn *redis.Conn) (*game.GameState, error) {
	data, err := Get(stateKey(roomID), conn)
	if err != nil {
		return nil, err
	}
	gs := new(game.GameState)
	if err := json.Unmarshal([]byte(data), gs); err != nil {
		return nil, err
	}
	return gs, nil
}

// SaveLobby mirrors the lobby roster the same way.
func SaveLobby(roomID string, ls *rooms.LobbyState, conn *redis.Conn) error {
	data, err := json.Marshal(ls)
	if err != nil {
		return err
	}
	return Set(lobbyKey(roomID), data, conn)
}

// DeleteRoom discards both snapshots when a room closes.
func DeleteRoom(roomID string, conn *redis.Conn) error {
	if err := Del(stateKey(roomID), conn); err != nil {
		return err
	}
	return Del(lobbyKey(roomID), conn)
}
