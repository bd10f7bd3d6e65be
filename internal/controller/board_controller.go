package controller

import (
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBoardController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Undo(ctx *fiber.Ctx) error
	Redo(ctx *fiber.Ctx) error
	HistoryStatus(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type boardController struct {
	boardService service.IBoardService
}

func NewBoardController(boardService service.IBoardService) IBoardController {
	return &boardController{
		boardService: boardService,
	}
}

func (c *boardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/board/v1")
	h.Get("", c.Show)
	h.Post("undo", c.Undo)
	h.Post("redo", c.Redo)
	h.Get("history", c.HistoryStatus)
	h.Get("export", c.Export)
	h.Post("import", c.Import)
	h.Delete("", c.Clear)
}

func (c *boardController) Show(ctx *fiber.Ctx) error {
	res := c.boardService.Board()
	return ctx.JSON(serverutils.SuccessResponse("Success show board", res))
}

func (c *boardController) Undo(ctx *fiber.Ctx) error {
	res, err := c.boardService.Undo()
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success undo", res))
}

func (c *boardController) Redo(ctx *fiber.Ctx) error {
	res, err := c.boardService.Redo()
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success redo", res))
}

func (c *boardController) HistoryStatus(ctx *fiber.Ctx) error {
	res := c.boardService.HistoryStatus()
	return ctx.JSON(serverutils.SuccessResponse("Success show history status", res))
}

func (c *boardController) Export(ctx *fiber.Ctx) error {
	res := c.boardService.Export()
	return ctx.JSON(serverutils.SuccessResponse("Success export board", res))
}

func (c *boardController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.boardService.Import(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import board", res))
}

func (c *boardController) Clear(ctx *fiber.Ctx) error {
	err := c.boardService.ClearAll()
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear board", nil))
}
