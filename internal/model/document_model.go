package model

import (
	"time"

	"gorm.io/gorm"
)

// Document records one uploaded file. OwnerKey and Namespace mirror the
// storage path layout so cleanup can find every blob for a namespace.
type Document struct {
	Id          int64          `gorm:"primaryKey;autoIncrement"`
	OwnerKey    string         `gorm:"type:varchar(255);not null;index"`
	Namespace   string         `gorm:"type:varchar(255);not null;index"`
	SessionId   *int64         `gorm:"index"` // nil for guest uploads
	Title       string         `gorm:"type:varchar(255);not null"`
	StoragePath string         `gorm:"type:text;not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
