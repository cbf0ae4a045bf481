package serverutils

import (
	"errors"

	"doc-assistant-be/internal/rag"
	"doc-assistant-be/internal/service"
	"doc-assistant-be/pkg/embedding"
	"doc-assistant-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain sentinel errors escaping the handlers
// to HTTP status codes. Anything unrecognized becomes a 500 without leaking
// internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err)
	}
}

func writeError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, storage.ErrObjectNotFound), errors.Is(err, service.ErrSessionNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, rag.ErrNoDocumentsIndexed):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, embedding.ErrUnavailable):
		code = fiber.StatusServiceUnavailable
		message = "Embedding service unavailable, please retry later"
	case errors.Is(err, storage.ErrNotConfigured):
		code = fiber.StatusInternalServerError
		message = "Storage backend not configured"
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}
