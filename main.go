package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/joho/godotenv/autoload"

	"github.com/trade-tycoon/backend/app/controllers"
	"github.com/trade-tycoon/backend/pkg/game"
	"github.com/trade-tycoon/backend/pkg/rooms"
	"github.com/trade-tycoon/backend/pkg/routes"
	"github.com/trade-tycoon/backend/platform/logging"
	socket "github.com/trade-tycoon/backend/platform/sockets"
)

func main() {
	logging.Init()

	manager := rooms.NewManager(game.NewReducer(nil), nil)
	controllers.GameManager = manager

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JWTSecret(),
	}))

	app.Get("/user/cur", controllers.Cur)

	go socket.CreateSocketIOServer(manager)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4101"
	}
	if err := app.Listen(":" + port); err != nil {
		logging.Fatalf("http server: %v", err)
	}
}
