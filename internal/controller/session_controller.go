package controller

import (
	"strconv"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	CleanupGuest(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("guest/cleanup", c.CleanupGuest)
	h.Post("", serverutils.RequireUser, c.Create)
	h.Get("", serverutils.RequireUser, c.List)
	h.Put(":id", serverutils.RequireUser, c.Rename)
	h.Delete(":id", serverutils.RequireUser, c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	id, _ := serverutils.IdentityFromCtx(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	id, _ := serverutils.IdentityFromCtx(ctx)

	res, err := c.sessionService.List(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Rename(ctx *fiber.Ctx) error {
	id, _ := serverutils.IdentityFromCtx(ctx)

	sessionId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessionService.Rename(ctx.Context(), id, sessionId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename session", nil))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, _ := serverutils.IdentityFromCtx(ctx)

	sessionId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.sessionService.Delete(ctx.Context(), id, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", res))
}

func (c *sessionController) CleanupGuest(ctx *fiber.Ctx) error {
	id, _ := serverutils.IdentityFromCtx(ctx)
	if !id.IsGuest() {
		return fiber.NewError(fiber.StatusBadRequest, "Guest credentials required")
	}

	res, err := c.sessionService.CleanupGuest(ctx.Context(), id.GuestToken())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cleanup guest data", res))
}
