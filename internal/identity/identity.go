package identity

import (
	"fmt"
	"strconv"
)

// Identity distinguishes a logged in user from an anonymous guest. Exactly one
// of the two variants is set.
type Identity struct {
	userID     int64
	guestToken string
	guest      bool
}

func Authenticated(userID int64) Identity {
	return Identity{userID: userID}
}

func Guest(token string) Identity {
	return Identity{guestToken: token, guest: true}
}

func (id Identity) IsGuest() bool {
	return id.guest
}

func (id Identity) UserID() int64 {
	return id.userID
}

func (id Identity) GuestToken() string {
	return id.guestToken
}

// Key returns a stable string identifying the principal, used for cache keys
// and storage prefixes.
func (id Identity) Key() string {
	if id.guest {
		return id.guestToken
	}
	return strconv.FormatInt(id.userID, 10)
}

// OwnerKey is the first segment of every storage path owned by this identity.
func (id Identity) OwnerKey() string {
	return id.Key()
}

// GuestSession derives the synthetic session name used to namespace a guest's
// documents.
func GuestSession(token string) string {
	return token + "_session"
}

// Namespace resolves the vector namespace for this identity and session. An
// authenticated user's namespace is the session id; a guest's is their
// synthetic session name.
func (id Identity) Namespace(sessionID int64) string {
	if id.guest {
		return GuestSession(id.guestToken)
	}
	return strconv.FormatInt(sessionID, 10)
}

func (id Identity) String() string {
	if id.guest {
		return fmt.Sprintf("guest:%s", id.guestToken)
	}
	return fmt.Sprintf("user:%d", id.userID)
}
