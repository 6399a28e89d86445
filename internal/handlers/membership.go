package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/types"
)

// MembershipAttempter runs the passphrase transition. Defined as a subset of
// services.MembershipService.
type MembershipAttempter interface {
	Attempt(ctx context.Context, user types.User, passphrase string) error
}

// MembershipHandler serves the membership prompt and passphrase attempts.
type MembershipHandler struct {
	membership MembershipAttempter
	log        logging.Logger
}

func NewMembershipHandler(membership MembershipAttempter, log logging.Logger) *MembershipHandler {
	return &MembershipHandler{
		membership: membership,
		log:        log,
	}
}

// MembershipRouter registers the membership routes, all behind authentication.
func MembershipRouter(r chi.Router, membership MembershipAttempter, log logging.Logger) {
	handler := NewMembershipHandler(membership, log)

	r.With(RequireAuthenticated).Get("/membership-status", handler.Show)
	r.With(RequireAuthenticated).Post("/membership-status", handler.Attempt)
}

type membershipPage struct {
	Principal *types.User
}

// Show renders the membership prompt for the authenticated principal.
func (h *MembershipHandler) Show(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.log, "membership-status.html", membershipPage{
		Principal: PrincipalFromContext(r.Context()),
	})
}

// Attempt runs the passphrase transition and redirects back to the prompt.
// A wrong passphrase is not an error; the page simply re-prompts.
func (h *MembershipHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	principal := PrincipalFromContext(r.Context())
	attempt := r.PostFormValue("membershipPasswordAttempt")

	if err := h.membership.Attempt(r.Context(), *principal, attempt); err != nil {
		internalError(w, r, h.log, "failed to update membership", err)
		return
	}

	http.Redirect(w, r, "/membership-status", http.StatusFound)
}
