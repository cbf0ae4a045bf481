package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/identity"
	"doc-assistant-be/internal/repository/contract"
	"doc-assistant-be/internal/repository/memory"
	"doc-assistant-be/internal/repository/specification"
	"doc-assistant-be/internal/repository/unitofwork"

	"doc-assistant-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadStore struct {
	puts []string
}

func (f *fakeUploadStore) Put(ctx context.Context, ownerKey, namespace, filename string, data []byte) (string, error) {
	path := ownerKey + "/" + namespace + "/" + filename
	f.puts = append(f.puts, path)
	return path, nil
}

type fakeIndexQueue struct {
	payloads [][]byte
}

func (f *fakeIndexQueue) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeSessionRepo struct {
	sessions []*entity.ChatSession
	nextId   int64
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	f.nextId++
	session.Id = f.nextId
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, s := range f.sessions {
		match := true
		for _, sp := range specs {
			switch v := sp.(type) {
			case specification.ByID:
				if s.Id != v.ID {
					match = false
				}
			case specification.ByUserID:
				if s.UserId != v.UserID {
					match = false
				}
			}
		}
		if match {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return f.sessions, nil
}

func (f *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.sessions)), nil
}

type fakeDocumentRepo struct {
	docs []*entity.Document
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	doc.Id = int64(len(f.docs) + 1)
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeDocumentRepo) DeleteByNamespaceUnscoped(ctx context.Context, namespace string) error {
	return nil
}

func (f *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	return nil, nil
}

func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return f.docs, nil
}

func (f *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.docs)), nil
}

type fakeChatLogRepo struct {
	logs []*entity.ChatLog
}

func (f *fakeChatLogRepo) Create(ctx context.Context, log *entity.ChatLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeChatLogRepo) DeleteBySessionId(ctx context.Context, sessionId int64) error { return nil }

func (f *fakeChatLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error) {
	return f.logs, nil
}

type fakeUow struct {
	sessions *fakeSessionRepo
	docs     *fakeDocumentRepo
	logs     *fakeChatLogRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) DocumentRepository() contract.DocumentRepository       { return f.docs }
func (f *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return f.sessions }
func (f *fakeUow) ChatLogRepository() contract.ChatLogRepository         { return f.logs }
func (f *fakeUow) VectorRepository() contract.VectorRepository           { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newUploadFixture() (*fakeUowFactory, *fakeUploadStore, *fakeIndexQueue, IDocumentService) {
	factory := &fakeUowFactory{uow: &fakeUow{
		sessions: &fakeSessionRepo{},
		docs:     &fakeDocumentRepo{},
		logs:     &fakeChatLogRepo{},
	}}
	blobs := &fakeUploadStore{}
	queue := &fakeIndexQueue{}
	svc := NewDocumentService(
		factory,
		blobs,
		queue,
		memory.NewGuestRegistry(time.Minute),
		nil,
		testLogger(),
	)
	return factory, blobs, queue, svc
}

func TestUploadRejectsForeignSession(t *testing.T) {
	factory, blobs, queue, svc := newUploadFixture()
	factory.uow.sessions.sessions = []*entity.ChatSession{
		{Id: 7, UserId: 1, SessionName: "owner's session"},
	}
	factory.uow.sessions.nextId = 7

	foreign := int64(7)
	_, err := svc.Upload(context.Background(), identity.Authenticated(2), &foreign, "doc.pdf", []byte("pdf"))
	require.ErrorIs(t, err, ErrSessionNotFound)

	assert.Empty(t, blobs.puts)
	assert.Empty(t, queue.payloads)
	assert.Empty(t, factory.uow.docs.docs)
}

func TestUploadOwnSession(t *testing.T) {
	factory, blobs, queue, svc := newUploadFixture()
	factory.uow.sessions.sessions = []*entity.ChatSession{
		{Id: 7, UserId: 1, SessionName: "mine"},
	}
	factory.uow.sessions.nextId = 7

	own := int64(7)
	res, err := svc.Upload(context.Background(), identity.Authenticated(1), &own, "doc.pdf", []byte("pdf"))
	require.NoError(t, err)
	require.NotNil(t, res.SessionId)
	assert.Equal(t, int64(7), *res.SessionId)

	require.Len(t, blobs.puts, 1)
	assert.Equal(t, "1/7/doc.pdf", blobs.puts[0])

	require.Len(t, queue.payloads, 1)
	var msg dto.IndexDocumentMessage
	require.NoError(t, json.Unmarshal(queue.payloads[0], &msg))
	assert.Equal(t, "7", msg.Namespace)
	assert.Equal(t, "1", msg.OwnerKey)

	require.Len(t, factory.uow.docs.docs, 1)
	assert.Equal(t, "7", factory.uow.docs.docs[0].Namespace)
}

func TestUploadWithoutSessionOpensOne(t *testing.T) {
	factory, blobs, _, svc := newUploadFixture()

	res, err := svc.Upload(context.Background(), identity.Authenticated(1), nil, "notes.pdf", []byte("pdf"))
	require.NoError(t, err)
	require.NotNil(t, res.SessionId)

	require.Len(t, factory.uow.sessions.sessions, 1)
	created := factory.uow.sessions.sessions[0]
	assert.Equal(t, int64(1), created.UserId)
	assert.Equal(t, *res.SessionId, created.Id)

	require.Len(t, blobs.puts, 1)
	assert.Equal(t, "1/1/notes.pdf", blobs.puts[0])
}
