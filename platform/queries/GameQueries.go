package queries

import (
	"github.com/go-pg/pg/v10"
	"github.com/trade-tycoon/backend/app/models"
)

// CreateGame inserts the discovery row for a new room.
func CreateGame(game *models.Game, db *pg.DB) error {
	_, err := db.Model(game).Insert()
	return err
}

// VerifyGame reports whether a room code has a row.
func VerifyGame(id string, db *pg.DB) bool {
	game := &models.Game{Id: id}
	err := db.Model(game).WherePK().Select()
	return err == nil
}

// GetAvailableGames lists rooms still in the lobby.
func GetAvailableGames(db *pg.DB) ([]models.Game, error) {
	var games []models.Game
	err := db.Model(&games).Where("status = ?", models.GameStatusLobby).Select()
	return games, err
}

// MarkGameStarted flips a room's row once the host starts it, so it stops
// showing up in discovery.
func MarkGameStarted(id string, db *pg.DB) error {
	_, err := db.Model(&models.Game{}).
		Set("status = ?", models.GameStatusStarted).
		Where("id = ?", id).
		Update()
	return err
}

// MarkGameFinished closes out the row when a winner is decided or the room
// empties.
func MarkGameFinished(id string, db *pg.DB) error {
	_, err := db.Model(&models.Game{}).
		Set("status = ?", models.GameStatusFinished).
		Where("id = ?", id).
		Update()
	return err
}

// CreatePlayer records a user sitting down in a room.
func CreatePlayer(player models.Player, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

// DeletePlayer removes the membership row. An emptied game row is cleaned
// up alongside.
func DeletePlayer(userID, gameID string, db *pg.DB) error {
	_, err := db.Model(&models.Player{}).
		Where("user_id = ? and game_id = ?", userID, gameID).
		Delete()
	if err != nil {
		return err
	}

	count, err := db.Model(&models.Player{}).Where("game_id = ?", gameID).Count()
	if err == nil && count == 0 {
		_, err = db.Model(&models.Game{}).Where("id = ?", gameID).Delete()
	}
	return err
}
