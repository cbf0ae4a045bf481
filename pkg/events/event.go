package events

import "time"

// Event type codes emitted on the bus.
const (
	TypeDocumentUploaded = "DOCUMENT_UPLOADED"
	TypeSessionDeleted   = "SESSION_DELETED"
	TypeGuestExpired     = "GUEST_EXPIRED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_UPLOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by all publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// DocumentUploaded is emitted after a PDF lands in blob storage and its
// indexing job has been enqueued.
func DocumentUploaded(owner, namespace, title string) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"owner":     owner,
			"namespace": namespace,
			"title":     title,
		},
		OccurredAt: time.Now(),
	}
}

// SessionDeleted is emitted after a session and its namespace have been
// cleaned up across all stores.
func SessionDeleted(userId int64, sessionId int64, namespace string) Event {
	return BaseEvent{
		Type: TypeSessionDeleted,
		Data: map[string]interface{}{
			"user_id":    userId,
			"session_id": sessionId,
			"namespace":  namespace,
		},
		OccurredAt: time.Now(),
	}
}

// GuestExpired is emitted when a guest's data has been torn down, whether
// by TTL expiry or explicit cleanup.
func GuestExpired(token, namespace string) Event {
	return BaseEvent{
		Type: TypeGuestExpired,
		Data: map[string]interface{}{
			"guest_token": token,
			"namespace":   namespace,
		},
		OccurredAt: time.Now(),
	}
}
