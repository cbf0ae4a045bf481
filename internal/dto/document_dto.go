package dto

import "time"

type UploadDocumentResponse struct {
	DocumentId  int64  `json:"document_id"`
	SessionId   *int64 `json:"session_id,omitempty"`
	Title       string `json:"title"`
	StoragePath string `json:"storage_path"`
}

type DocumentResponse struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// IndexDocumentMessage is the payload published for async ingestion.
type IndexDocumentMessage struct {
	BlobPath  string `json:"blob_path"`
	OwnerKey  string `json:"owner_key"`
	Namespace string `json:"namespace"`
	Title     string `json:"title"`
}
