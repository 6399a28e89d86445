package services

import (
	"context"
	"fmt"

	"github.com/members-only/clubhouse/types"
)

// MessageRepository defines persistence operations for board messages.
type MessageRepository interface {
	Create(ctx context.Context, message types.Message) (types.Message, error)
	ListWithAuthors(ctx context.Context) ([]types.MessageWithAuthor, error)
	Delete(ctx context.Context, id int) error
}

// MessageService encapsulates the board use-cases.
type MessageService struct {
	repo MessageRepository
}

func NewMessageService(repo MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

// Create posts a message owned by the given user. The timestamp is assigned
// server-side by the store.
func (s *MessageService) Create(ctx context.Context, user types.User, title, body string) (types.Message, error) {
	message, err := s.repo.Create(ctx, types.Message{
		UserID: user.ID,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return types.Message{}, fmt.Errorf("create message: %w", err)
	}
	return message, nil
}

// List returns every message joined with its author, readable by anyone.
func (s *MessageService) List(ctx context.Context) ([]types.MessageWithAuthor, error) {
	return s.repo.ListWithAuthors(ctx)
}

// Delete removes a message by ID on behalf of an admin. Non-admin principals
// get ErrForbidden. Deleting an ID that does not exist succeeds silently; the
// underlying delete-by-key is a no-op on absence.
func (s *MessageService) Delete(ctx context.Context, principal types.User, id int) error {
	if !principal.Admin {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
