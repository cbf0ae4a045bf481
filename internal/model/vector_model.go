package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// VectorCollection is one named embedding namespace. The name encodes the
// base collection plus the namespace suffix.
type VectorCollection struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(255);uniqueIndex;not null"`
}

func (VectorCollection) TableName() string {
	return "vector_collections"
}

type VectorEmbedding struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CollectionId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document     string          `gorm:"type:text;not null"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	Metadata     datatypes.JSON  `gorm:"type:jsonb"`
}

func (VectorEmbedding) TableName() string {
	return "vector_embeddings"
}
