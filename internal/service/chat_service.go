package service

import (
	"context"
	"errors"
	"time"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/identity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/rag"
	"doc-assistant-be/internal/repository/memory"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/llm"
)

// ErrSessionNotFound is returned when the session does not exist or belongs
// to another user.
var ErrSessionNotFound = errors.New("chat session not found")

type IChatService interface {
	Ask(ctx context.Context, id identity.Identity, req *dto.AskRequest) (*dto.AskResponse, error)
	History(ctx context.Context, id identity.Identity, sessionId int64) ([]*dto.ChatLogResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	pipelines     *rag.PipelineCache
	index         *rag.VectorIndex
	llmProvider   llm.LLMProvider
	retrieverK    int
	guestRegistry *memory.GuestRegistry
	logger        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	pipelines *rag.PipelineCache,
	index *rag.VectorIndex,
	llmProvider llm.LLMProvider,
	retrieverK int,
	guestRegistry *memory.GuestRegistry,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		pipelines:     pipelines,
		index:         index,
		llmProvider:   llmProvider,
		retrieverK:    retrieverK,
		guestRegistry: guestRegistry,
		logger:        logger,
	}
}

func (s *chatService) Ask(ctx context.Context, id identity.Identity, req *dto.AskRequest) (*dto.AskResponse, error) {
	var namespace string
	var sessionId *int64

	if id.IsGuest() {
		s.guestRegistry.Touch(id.GuestToken())
		namespace = id.Namespace(0)
	} else {
		if req.SessionId <= 0 {
			return nil, ErrSessionNotFound
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		session, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: req.SessionId},
			specification.ByUserID{UserID: id.UserID()},
		)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}
		namespace = id.Namespace(session.Id)
		sessionId = &session.Id
	}

	key := rag.PipelineKey(id, namespace)
	pipeline, err := s.pipelines.GetOrBuild(key, func() (*rag.QAPipeline, error) {
		return rag.NewQAPipeline(
			rag.NewNamespaceRetriever(s.index, namespace, s.retrieverK),
			rag.NewLLMAnswerer(s.llmProvider),
		), nil
	})
	if err != nil {
		return nil, err
	}

	answer, err := pipeline.Ask(ctx, req.Question)
	if err != nil {
		return nil, err
	}

	if sessionId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		chatLog := entity.ChatLog{
			SessionId:   *sessionId,
			UserMessage: req.Question,
			BotResponse: answer,
			Timestamp:   time.Now(),
		}
		if err := uow.ChatLogRepository().Create(ctx, &chatLog); err != nil {
			s.logger.Warn("chat", "failed to persist chat log", map[string]interface{}{
				"session_id": *sessionId,
				"error":      err.Error(),
			})
		}
	}

	return &dto.AskResponse{
		Answer:    answer,
		SessionId: sessionId,
	}, nil
}

func (s *chatService) History(ctx context.Context, id identity.Identity, sessionId int64) ([]*dto.ChatLogResponse, error) {
	// Guests have no persisted history.
	if id.IsGuest() {
		return []*dto.ChatLogResponse{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: id.UserID()},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	logs, err := uow.ChatLogRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatLogResponse, len(logs))
	for i, l := range logs {
		out[i] = &dto.ChatLogResponse{
			Id:          l.Id,
			UserMessage: l.UserMessage,
			BotResponse: l.BotResponse,
			Timestamp:   l.Timestamp,
		}
	}
	return out, nil
}
