package controller

import (
	"io"
	"strconv"

	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	ListBySession(ctx *fiber.Ctx) error
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
	h.Use(serverutils.IdentityMiddleware)
	h.Post("upload", c.Upload)
	h.Get("session/:session_id", c.ListBySession)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	id, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
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

	var sessionId *int64
	if raw := ctx.FormValue("session_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid session_id")
		}
		sessionId = &parsed
	}

	res, err := c.documentService.Upload(ctx.Context(), id, sessionId, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) ListBySession(ctx *fiber.Ctx) error {
	id, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
	}

	sessionId, err := strconv.ParseInt(ctx.Params("session_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.documentService.ListBySession(ctx.Context(), id, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}
