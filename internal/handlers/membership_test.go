package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/members-only/clubhouse/types"
)

type stubMembership struct {
	attempts []string
	err      error
}

func (s *stubMembership) Attempt(ctx context.Context, user types.User, passphrase string) error {
	s.attempts = append(s.attempts, passphrase)
	return s.err
}

func TestMembershipShow_RendersPrompt(t *testing.T) {
	h := NewMembershipHandler(&stubMembership{}, nopLogger{})

	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/membership-status", nil), &types.User{ID: 7})
	w := httptest.NewRecorder()
	h.Show(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestMembershipAttempt_ForwardsPassphraseAndRedirectsBack(t *testing.T) {
	membership := &stubMembership{}
	h := NewMembershipHandler(membership, nopLogger{})

	form := url.Values{"membershipPasswordAttempt": {"member"}}
	req := withPrincipal(postForm(t, "/membership-status", form), &types.User{ID: 7})
	w := httptest.NewRecorder()
	h.Attempt(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/membership-status" {
		t.Fatalf("expected redirect back to prompt, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if len(membership.attempts) != 1 || membership.attempts[0] != "member" {
		t.Fatalf("unexpected attempts: %v", membership.attempts)
	}
}

func TestMembershipAttempt_WrongPassphraseStillRedirects(t *testing.T) {
	// A mismatch is not an error; the page re-prompts.
	membership := &stubMembership{}
	h := NewMembershipHandler(membership, nopLogger{})

	form := url.Values{"membershipPasswordAttempt": {"guess"}}
	req := withPrincipal(postForm(t, "/membership-status", form), &types.User{ID: 7})
	w := httptest.NewRecorder()
	h.Attempt(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
}

func TestMembershipAttempt_StoreErrorIs500(t *testing.T) {
	membership := &stubMembership{err: errors.New("db down")}
	h := NewMembershipHandler(membership, nopLogger{})

	form := url.Values{"membershipPasswordAttempt": {"member"}}
	req := withPrincipal(postForm(t, "/membership-status", form), &types.User{ID: 7})
	w := httptest.NewRecorder()
	h.Attempt(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
