package entity

import "github.com/google/uuid"

type VectorCollection struct {
	Id   uuid.UUID
	Name string
}
