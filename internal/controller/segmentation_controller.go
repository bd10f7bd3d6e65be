package controller

import (
	"kj-canvas-be/internal/dto"
	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISegmentationController interface {
	RegisterRoutes(r fiber.Router)
	Segment(ctx *fiber.Ctx) error
	GenerateMinutes(ctx *fiber.Ctx) error
	Organize(ctx *fiber.Ctx) error
}

type segmentationController struct {
	segmentationService service.ISegmentationService
	organizeService     service.IOrganizeService
}

func NewSegmentationController(
	segmentationService service.ISegmentationService,
	organizeService service.IOrganizeService,
) ISegmentationController {
	return &segmentationController{
		segmentationService: segmentationService,
		organizeService:     organizeService,
	}
}

func (c *segmentationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/segmentation/v1")
	h.Post("segment", c.Segment)
	h.Post("minutes", c.GenerateMinutes)
	h.Post("organize", c.Organize)
}

func (c *segmentationController) Segment(ctx *fiber.Ctx) error {
	var req dto.SegmentTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.segmentationService.SegmentText(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success segment text", res))
}

func (c *segmentationController) GenerateMinutes(ctx *fiber.Ctx) error {
	var req dto.GenerateMinutesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.segmentationService.GenerateMinutes(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate minutes", res))
}

func (c *segmentationController) Organize(ctx *fiber.Ctx) error {
	res, err := c.organizeService.Organize(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success organize board", res))
}
