package handlers

import (
	"net/http"

	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/internal/views"
)

func renderPage(w http.ResponseWriter, r *http.Request, log logging.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Render(w, name, data); err != nil {
		// The response may be partially written at this point, so only log.
		log.Error(r.Context(), "failed to render page", "page", name, "error", err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, log logging.Logger, msg string, err error) {
	log.Error(r.Context(), msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
