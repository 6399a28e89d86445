package types

import "time"

// Session maps an opaque identifier, carried in a client cookie, to the
// authenticated user's ID and an absolute expiry. The serialized state in the
// store holds only the user ID; the full user record is re-fetched from the
// store on every request so the principal is never stale.
type Session struct {
	SID    string    `json:"sid" db:"sid"`
	UserID int       `json:"user_id" db:"user_id"`
	Expire time.Time `json:"expire" db:"expire"`
}
