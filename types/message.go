package types

import "time"

// Message is a board post owned by exactly one user.
type Message struct {
	ID        int       `json:"id" db:"message_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// MessageWithAuthor joins a message with its author's display identity.
type MessageWithAuthor struct {
	Message
	AuthorFirstName string `json:"author_first_name" db:"first_name"`
	AuthorLastName  string `json:"author_last_name" db:"last_name"`
}
