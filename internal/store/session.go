package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/members-only/clubhouse/types"
)

// sessionState is the serialized authentication state kept in the sess
// column. It deliberately holds only the user ID; the user record itself is
// re-fetched on every request.
type sessionState struct {
	UserID int `json:"user_id"`
}

// SessionRepository handles persistence for login sessions.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session types.Session) error {
	state, err := json.Marshal(sessionState{UserID: session.UserID})
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	const query = `
		INSERT INTO session (sid, sess, expire)
		VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, session.SID, state, session.Expire); err != nil {
		return err
	}
	return nil
}

// GetBySID resolves an unexpired session. Expired rows are filtered in SQL
// and reported as ErrNotFound, same as an absent one.
func (r *SessionRepository) GetBySID(ctx context.Context, sid string) (types.Session, error) {
	const query = `
		SELECT sid, sess, expire
		FROM session
		WHERE sid = $1 AND expire > now()`
	var (
		session types.Session
		raw     []byte
	)
	err := r.db.QueryRowContext(ctx, query, sid).Scan(&session.SID, &raw, &session.Expire)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Session{}, ErrNotFound
		}
		return types.Session{}, err
	}

	var state sessionState
	if err := json.Unmarshal(raw, &state); err != nil || state.UserID == 0 {
		// Undecodable state is treated as no session rather than a failure.
		return types.Session{}, ErrNotFound
	}
	session.UserID = state.UserID
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	const query = `DELETE FROM session WHERE sid = $1`
	_, err := r.db.ExecContext(ctx, query, sid)
	return err
}

// DeleteExpired prunes sessions past their expiry and reports how many rows
// were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM session WHERE expire <= now()`
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
