package dto

import "time"

type CreateSessionRequest struct {
	SessionName string `json:"session_name" validate:"required,max=255"`
}

type RenameSessionRequest struct {
	SessionName string `json:"session_name" validate:"required,max=255"`
}

type SessionResponse struct {
	Id          int64     `json:"id"`
	SessionName string    `json:"session_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeleteSessionResponse struct {
	BlobsRemoved      int  `json:"blobs_removed"`
	CollectionDeleted bool `json:"collection_deleted"`
}

type CleanupGuestResponse struct {
	BlobsRemoved      int  `json:"blobs_removed"`
	CollectionDeleted bool `json:"collection_deleted"`
}
