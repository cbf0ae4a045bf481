package entity

import "time"

type Document struct {
	Id          int64
	OwnerKey    string
	Namespace   string
	SessionId   *int64
	Title       string
	StoragePath string
	CreatedAt   time.Time
}
