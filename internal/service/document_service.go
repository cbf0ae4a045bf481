package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/identity"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/repository/memory"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/events"
	pkgNats "doc-assistant-be/pkg/nats"
)

// BlobUploader stores raw file bytes and returns the resulting path.
type BlobUploader interface {
	Put(ctx context.Context, ownerKey, namespace, filename string, data []byte) (string, error)
}

type IDocumentService interface {
	Upload(ctx context.Context, id identity.Identity, sessionId *int64, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	ListBySession(ctx context.Context, id identity.Identity, sessionId int64) ([]*dto.DocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobs            BlobUploader
	publisherService IPublisherService
	guestRegistry    *memory.GuestRegistry
	eventPublisher   *pkgNats.Publisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	blobs BlobUploader,
	publisherService IPublisherService,
	guestRegistry *memory.GuestRegistry,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		blobs:            blobs,
		publisherService: publisherService,
		guestRegistry:    guestRegistry,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

func (s *documentService) Upload(ctx context.Context, id identity.Identity, sessionId *int64, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var namespace string
	if id.IsGuest() {
		s.guestRegistry.Touch(id.GuestToken())
		namespace = id.Namespace(0)
	} else {
		if sessionId != nil {
			// The session must belong to the caller before anything lands
			// in its namespace.
			session, err := uow.ChatSessionRepository().FindOne(ctx,
				specification.ByID{ID: *sessionId},
				specification.ByUserID{UserID: id.UserID()},
			)
			if err != nil {
				return nil, err
			}
			if session == nil {
				return nil, ErrSessionNotFound
			}
		} else {
			// First upload without a session opens one named after the file.
			session := entity.ChatSession{
				UserId:      id.UserID(),
				SessionName: fmt.Sprintf("New Chat (%s)", filename),
				CreatedAt:   time.Now(),
			}
			if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
				return nil, err
			}
			sessionId = &session.Id
		}
		namespace = id.Namespace(*sessionId)
	}

	path, err := s.blobs.Put(ctx, id.OwnerKey(), namespace, filename, data)
	if err != nil {
		return nil, err
	}

	doc := entity.Document{
		OwnerKey:    id.OwnerKey(),
		Namespace:   namespace,
		SessionId:   sessionId,
		Title:       filename,
		StoragePath: path,
		CreatedAt:   time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if !id.IsGuest() && sessionId != nil {
		uploadLog := entity.ChatLog{
			SessionId:   *sessionId,
			UserMessage: fmt.Sprintf("Uploaded document: %s", filename),
			BotResponse: "Document received and queued for indexing.",
			Timestamp:   time.Now(),
		}
		if err := uow.ChatLogRepository().Create(ctx, &uploadLog); err != nil {
			s.logger.Warn("document", "failed to record upload marker", map[string]interface{}{
				"session_id": *sessionId,
				"error":      err.Error(),
			})
		}
	}

	msgPayload := dto.IndexDocumentMessage{
		BlobPath:  path,
		OwnerKey:  id.OwnerKey(),
		Namespace: namespace,
		Title:     filename,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	// Event bus is auxiliary, a publish failure never fails the upload.
	if s.eventPublisher != nil {
		evt := events.DocumentUploaded(id.String(), namespace, filename)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "failed to publish DOCUMENT_UPLOADED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.logger.Info("document", "document uploaded", map[string]interface{}{
		"owner":     id.String(),
		"namespace": namespace,
		"path":      path,
	})

	return &dto.UploadDocumentResponse{
		DocumentId:  doc.Id,
		SessionId:   sessionId,
		Title:       filename,
		StoragePath: path,
	}, nil
}

func (s *documentService) ListBySession(ctx context.Context, id identity.Identity, sessionId int64) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	namespace := id.Namespace(sessionId)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByOwnerKey{OwnerKey: id.OwnerKey()},
		specification.ByNamespace{Namespace: namespace},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		out[i] = &dto.DocumentResponse{
			Id:          d.Id,
			Title:       d.Title,
			StoragePath: d.StoragePath,
			CreatedAt:   d.CreatedAt,
		}
	}
	return out, nil
}
