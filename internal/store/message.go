package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/members-only/clubhouse/types"
)

// MessageRepository handles persistence for board messages.
type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message types.Message) (types.Message, error) {
	message.Timestamp = time.Now()

	const query = `
		INSERT INTO messages (user_id, title, message, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		message.UserID,
		message.Title,
		message.Body,
		message.Timestamp,
	).Scan(&message.ID); err != nil {
		return types.Message{}, err
	}
	return message, nil
}

// ListWithAuthors returns every message joined with its author's display
// name, oldest first. The message ID breaks timestamp ties so the order is
// deterministic.
func (r *MessageRepository) ListWithAuthors(ctx context.Context) ([]types.MessageWithAuthor, error) {
	const query = `
		SELECT m.message_id, m.user_id, m.title, m.message, m.timestamp, u.first_name, u.last_name
		FROM messages m
		JOIN userdetails u ON m.user_id = u.user_id
		ORDER BY m.timestamp ASC, m.message_id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []types.MessageWithAuthor
	for rows.Next() {
		var m types.MessageWithAuthor
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Title,
			&m.Body,
			&m.Timestamp,
			&m.AuthorFirstName,
			&m.AuthorLastName,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes a message by ID. Deleting an absent ID is a no-op.
func (r *MessageRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM messages WHERE message_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
