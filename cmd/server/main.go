package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
)

type config struct {
	addr   string
	origin string
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.addr, "addr", envOr("CHESS_ADDR", ":3000"), "listen address")
	flag.StringVar(&cfg.origin, "origin", envOr("CHESS_ORIGIN", "http://localhost:5173"), "allowed browser origin")
	flag.Parse()
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newApp(cfg config, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.origin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.origin},
	}))

	api := app.Group("/api", middleware.EnsureClientID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/import", gameController.ImportGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)

	return app
}

func main() {
	cfg := loadConfig()

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)
	app := newApp(cfg, gameService)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		if err := gameService.Close(); err != nil {
			log.Printf("closing games: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.addr)
	if err := app.Listen(cfg.addr); err != nil {
		log.Fatal(err)
	}
}
