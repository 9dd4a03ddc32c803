package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/notation"
	"github.com/benbeisheim/chessrules/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type importRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	gameID, err := gc.gameService.ImportGame(req.FEN)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game imported",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square": c.Params("square"),
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	gameID := c.Params("gameId")
	if err := gc.gameService.HandleMove(gameID, req.From, req.To, req.Promotion); err != nil {
		return errorResponse(c, err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, notation.ErrBadSquare),
		errors.Is(err, notation.ErrBadFEN),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrNoPiece):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrPromotionRequired),
		errors.Is(err, model.ErrBadPromotion),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
