package types

// User represents an account in the system.
// It contains identity, membership, and authorization metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"user_id"`

	// FirstName is the user's given name as shown next to messages.
	FirstName string `json:"first_name" db:"first_name"`

	// LastName is the user's family name as shown next to messages.
	LastName string `json:"last_name" db:"last_name"`

	// Username is the unique login identifier; it must be an email address.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed outside the store and services.
	PasswordHash string `json:"-" db:"password"`

	// Member reports whether the user has unlocked membership, either by
	// self-declaring admin at signup or by supplying the shared passphrase.
	Member bool `json:"membership_status" db:"membership_status"`

	// Admin grants message deletion. It is set only at account creation;
	// there is no promotion or demotion afterwards.
	Admin bool `json:"admin" db:"admin"`
}
