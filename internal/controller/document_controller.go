package controller

import (
	"io"

	"weavai-be/internal/pkg/serverutils"
	"weavai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get(":id/status", c.Status)
}

// Upload accepts a multipart form with a "file" part and a "scope"
// field naming the owning session.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	scope, err := uuid.Parse(ctx.FormValue("scope"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scope")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), scope, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) Status(ctx *fiber.Ctx) error {
	scope, err := uuid.Parse(ctx.Query("scope"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid scope")
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.documentService.GetStatus(ctx.Context(), scope, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get document status", res))
}
