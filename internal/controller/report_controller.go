package controller

import (
	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	ShowMarkdown(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Get("", c.Show)
	h.Get("markdown", c.ShowMarkdown)
}

func (c *reportController) Show(ctx *fiber.Ctx) error {
	res := c.reportService.Generate()
	return ctx.JSON(serverutils.SuccessResponse("Success generate report", res))
}

func (c *reportController) ShowMarkdown(ctx *fiber.Ctx) error {
	markdown := c.reportService.GenerateMarkdown()

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return ctx.SendString(markdown)
}
