package contract

import (
	"context"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/repository/specification"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *entity.ChatLog) error
	DeleteBySessionId(ctx context.Context, sessionId int64) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error)
}
