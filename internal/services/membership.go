package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/members-only/clubhouse/types"
)

// MembershipService elevates users to member status when they supply the
// shared passphrase. The transition is one-way; nothing ever clears the flag.
type MembershipService struct {
	users      UserRepository
	passphrase string
}

func NewMembershipService(users UserRepository, passphrase string) *MembershipService {
	return &MembershipService{
		users:      users,
		passphrase: passphrase,
	}
}

// Attempt compares the submitted passphrase against the shared secret. On a
// match the user's membership flag is persisted; resubmitting once already a
// member is a harmless no-op. A mismatch changes nothing and is not an error,
// the page simply re-prompts.
func (s *MembershipService) Attempt(ctx context.Context, user types.User, passphrase string) error {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.passphrase)) != 1 {
		return nil
	}

	if err := s.users.SetMembership(ctx, user.ID, true); err != nil {
		return fmt.Errorf("set membership: %w", err)
	}
	return nil
}
