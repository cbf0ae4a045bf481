package mapper

import (
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:          d.Id,
		OwnerKey:    d.OwnerKey,
		Namespace:   d.Namespace,
		SessionId:   d.SessionId,
		Title:       d.Title,
		StoragePath: d.StoragePath,
		CreatedAt:   d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:          d.Id,
		OwnerKey:    d.OwnerKey,
		Namespace:   d.Namespace,
		SessionId:   d.SessionId,
		Title:       d.Title,
		StoragePath: d.StoragePath,
		CreatedAt:   d.CreatedAt,
	}
}
