package service

import (
	"context"
	"time"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/identity"
	"doc-assistant-be/internal/lifecycle"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/rag"
	"doc-assistant-be/internal/repository/memory"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/events"
	pkgNats "doc-assistant-be/pkg/nats"
)

type ISessionService interface {
	Create(ctx context.Context, id identity.Identity, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context, id identity.Identity) ([]*dto.SessionResponse, error)
	Rename(ctx context.Context, id identity.Identity, sessionId int64, req *dto.RenameSessionRequest) error
	Delete(ctx context.Context, id identity.Identity, sessionId int64) (*dto.DeleteSessionResponse, error)
	CleanupGuest(ctx context.Context, token string) (*dto.CleanupGuestResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	lifecycle      *lifecycle.Manager
	guestRegistry  *memory.GuestRegistry
	eventPublisher *pkgNats.Publisher
	logger         logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	lifecycleManager *lifecycle.Manager,
	guestRegistry *memory.GuestRegistry,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		lifecycle:      lifecycleManager,
		guestRegistry:  guestRegistry,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *sessionService) Create(ctx context.Context, id identity.Identity, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if id.IsGuest() {
		return nil, ErrSessionNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := entity.ChatSession{
		UserId:      id.UserID(),
		SessionName: req.SessionName,
		CreatedAt:   time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Id:          session.Id,
		SessionName: session.SessionName,
		CreatedAt:   session.CreatedAt,
	}, nil
}

func (s *sessionService) List(ctx context.Context, id identity.Identity) ([]*dto.SessionResponse, error) {
	if id.IsGuest() {
		return []*dto.SessionResponse{}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: id.UserID()},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SessionResponse, len(sessions))
	for i, sess := range sessions {
		out[i] = &dto.SessionResponse{
			Id:          sess.Id,
			SessionName: sess.SessionName,
			CreatedAt:   sess.CreatedAt,
		}
	}
	return out, nil
}

func (s *sessionService) Rename(ctx context.Context, id identity.Identity, sessionId int64, req *dto.RenameSessionRequest) error {
	if id.IsGuest() {
		return ErrSessionNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: id.UserID()},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.SessionName = req.SessionName
	return uow.ChatSessionRepository().Update(ctx, session)
}

// Delete removes the session's rows, then clears every store that may hold
// data for its namespace. The row deletes are transactional; the cross store
// cleanup is best effort.
func (s *sessionService) Delete(ctx context.Context, id identity.Identity, sessionId int64) (*dto.DeleteSessionResponse, error) {
	if id.IsGuest() {
		return nil, ErrSessionNotFound
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

	namespace := id.Namespace(sessionId)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatLogRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().DeleteByNamespaceUnscoped(ctx, namespace); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	report := s.lifecycle.DeleteNamespaceEverywhere(ctx, id.OwnerKey(), namespace, rag.PipelineKey(id, namespace))

	s.publishEvent(ctx, events.SessionDeleted(id.UserID(), sessionId, namespace))

	return &dto.DeleteSessionResponse{
		BlobsRemoved:      report.BlobsRemoved,
		CollectionDeleted: report.CollectionDeleted,
	}, nil
}

// CleanupGuest tears down everything a guest left behind. It runs both on
// explicit request and on TTL expiry, and is safe to run twice.
func (s *sessionService) CleanupGuest(ctx context.Context, token string) (*dto.CleanupGuestResponse, error) {
	guest := identity.Guest(token)
	namespace := identity.GuestSession(token)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().DeleteByNamespaceUnscoped(ctx, namespace); err != nil {
		s.logger.Error("session", "failed to delete guest document rows", map[string]interface{}{
			"namespace": namespace,
			"error":     err.Error(),
		})
	}

	report := s.lifecycle.DeleteNamespaceEverywhere(ctx, guest.OwnerKey(), namespace, rag.PipelineKey(guest, namespace))

	// Removing the token fires the registry's expiry hook, which runs this
	// cleanup once more. The second pass finds nothing.
	s.guestRegistry.Remove(token)

	s.publishEvent(ctx, events.GuestExpired(token, namespace))

	return &dto.CleanupGuestResponse{
		BlobsRemoved:      report.BlobsRemoved,
		CollectionDeleted: report.CollectionDeleted,
	}, nil
}

func (s *sessionService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("session", "failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
