package unitofwork

import (
	"context"

	"doc-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatLogRepository() contract.ChatLogRepository
	VectorRepository() contract.VectorRepository
}
