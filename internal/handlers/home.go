package handlers

import (
	"net/http"

	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/types"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	log logging.Logger
}

func NewHomeHandler(log logging.Logger) *HomeHandler {
	return &HomeHandler{log: log}
}

type homePage struct {
	Principal *types.User
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.log, "index.html", homePage{
		Principal: PrincipalFromContext(r.Context()),
	})
}
