package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trade-tycoon/backend/app/models"
	"github.com/trade-tycoon/backend/pkg/rooms"
	"github.com/trade-tycoon/backend/platform/database"
	"github.com/trade-tycoon/backend/platform/logging"
	"github.com/trade-tycoon/backend/platform/queries"
)

// GameManager is the process-wide room authority, set once in main before
// the HTTP routes are mounted.
var GameManager *rooms.Manager

// CreateGame opens a room and records its discovery row. The caller gets
// the room code and their host player id.
func CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	hostName := gameCreateDto.HostName
	if hostName == "" {
		hostName = "Host"
	}

	roomID, hostID := GameManager.CreateRoom(hostName)
	err := queries.CreateGame(&models.Game{
		Id:     roomID,
		Name:   gameCreateDto.Name,
		Status: models.GameStatusLobby,
	}, db)
	if err != nil {
		logging.Errorf("game insert failed: %v", err)
		GameManager.CloseRoom(roomID)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"id": roomID, "hostId": hostID})
}

// GetAllAvailGames lists rooms still gathering players.
func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	games, err := queries.GetAvailableGames(db)
	if err != nil {
		logging.Errorf("game listing failed: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(games)
}

// VerifyGame reports whether a room code is live and joinable.
func VerifyGame(c *fiber.Ctx) error {
	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	state, ok := GameManager.Room(verifyGameDto.Code)
	if ok {
		return c.JSON(fiber.Map{"status": true, "joinable": state.Status == rooms.StatusLobby})
	}

	// Not live in this process; a surviving discovery row still verifies,
	// but the room is not joinable until recreated.
	db := database.PostgreSQLConnection()
	defer db.Close()
	if queries.VerifyGame(verifyGameDto.Code, db) {
		return c.JSON(fiber.Map{"status": true, "joinable": false})
	}
	return c.JSON(fiber.Map{"status": false})
}
