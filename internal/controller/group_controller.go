package controller

import (
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGroupController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type groupController struct {
	boardService service.IBoardService
}

func NewGroupController(boardService service.IBoardService) IGroupController {
	return &groupController{
		boardService: boardService,
	}
}

func (c *groupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/group/v1")
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *groupController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.boardService.CreateGroup(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create group", res))
}

func (c *groupController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	res, err := c.boardService.UpdateGroup(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update group", res))
}

func (c *groupController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	err := c.boardService.DeleteGroup(id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete group", nil))
}
