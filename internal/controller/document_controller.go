package controller

import (
	"io"

	"kj-canvas-be/internal/pkg/serverutils"
	"kj-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type documentController struct {
	ingestionService service.IIngestionService
}

func NewDocumentController(ingestionService service.IIngestionService) IDocumentController {
	return &documentController{
		ingestionService: ingestionService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("process-document", c.Process)
	h.Get("health", c.Health)
}

func (c *documentController) Process(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	res, err := c.ingestionService.ProcessDocument(ctx.Context(), fileHeader.Filename, mimeType, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process document", res))
}

func (c *documentController) Health(ctx *fiber.Ctx) error {
	res, err := c.ingestionService.Health(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check document service health", res))
}
