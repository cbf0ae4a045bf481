package controller

import (
	"strconv"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Post("ask", c.Ask)
	h.Get("history/:session_id", c.History)
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	id, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
	}

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ask question", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	id, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing credentials")
	}

	sessionId, err := strconv.ParseInt(ctx.Params("session_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.chatService.History(ctx.Context(), id, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
