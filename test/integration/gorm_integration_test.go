package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, 2)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.VectorRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Chat Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chat session count: %d", count)
	})

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Vector Catalog Roundtrip", func(t *testing.T) {
		ctx := context.Background()
		repo := uow.VectorRepository()

		name := "integration_test_collection"
		existing, err := repo.FindCollectionByName(ctx, name)
		assert.NoError(t, err)
		if existing != nil {
			assert.NoError(t, repo.DeleteEmbeddingsByCollection(ctx, existing.Id))
			assert.NoError(t, repo.DeleteCollection(ctx, existing.Id))
		}

		created, err := repo.CreateCollection(ctx, name)
		assert.NoError(t, err)
		assert.NotNil(t, created)

		found, err := repo.FindCollectionByName(ctx, name)
		assert.NoError(t, err)
		assert.Equal(t, created.Id, found.Id)

		assert.NoError(t, repo.DeleteCollection(ctx, created.Id))

		gone, err := repo.FindCollectionByName(ctx, name)
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})
}
