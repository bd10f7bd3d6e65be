package controller

import (
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICardController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type cardController struct {
	boardService service.IBoardService
}

func NewCardController(boardService service.IBoardService) ICardController {
	return &cardController{
		boardService: boardService,
	}
}

func (c *cardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/card/v1")
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *cardController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.boardService.CreateCard(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create card", res))
}

func (c *cardController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	res, err := c.boardService.UpdateCard(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update card", res))
}

func (c *cardController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	err := c.boardService.DeleteCard(id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete card", nil))
}
