package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/internal/services"
	"github.com/members-only/clubhouse/types"
)

const forbiddenMsg = "You do not have permission to perform this action."

// MessageBoard covers the board use-cases. Defined as a subset of
// services.MessageService.
type MessageBoard interface {
	Create(ctx context.Context, user types.User, title, body string) (types.Message, error)
	List(ctx context.Context) ([]types.MessageWithAuthor, error)
	Delete(ctx context.Context, principal types.User, id int) error
}

// MessageHandler provides the board endpoints.
type MessageHandler struct {
	messages MessageBoard
	log      logging.Logger
}

func NewMessageHandler(messages MessageBoard, log logging.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		log:      log,
	}
}

// MessageRouter registers board routes on the given router. The listing is
// public; posting needs a principal and deletion additionally needs admin.
func MessageRouter(r chi.Router, messages MessageBoard, log logging.Logger) {
	handler := NewMessageHandler(messages, log)

	r.Get("/messages", handler.List)
	r.Get("/new-message", handler.NewForm)
	r.Post("/new-message", handler.Create)
	r.With(RequireAuthenticated).Post("/delete-message/{messageID}", handler.Delete)
}

type messagesPage struct {
	Principal *types.User
	Messages  []types.MessageWithAuthor
}

type newMessagePage struct {
	Principal *types.User
}

// List renders every message with its author, for anyone.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		internalError(w, r, h.log, "failed to list messages", err)
		return
	}

	renderPage(w, r, h.log, "messages.html", messagesPage{
		Principal: PrincipalFromContext(r.Context()),
		Messages:  messages,
	})
}

// NewForm renders the message form; anonymous visitors are sent home.
func (h *MessageHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	renderPage(w, r, h.log, "new-message.html", newMessagePage{Principal: principal})
}

// Create posts a message owned by the principal and redirects to the listing.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("title")
	body := r.PostFormValue("message")

	if _, err := h.messages.Create(r.Context(), *principal, title, body); err != nil {
		internalError(w, r, h.log, "failed to create message", err)
		return
	}

	http.Redirect(w, r, "/messages", http.StatusFound)
}

// Delete removes a message by ID. Non-admin principals get a 403; deleting an
// ID that no longer exists still redirects to the listing.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "messageID"))
	if err != nil {
		http.Error(w, "invalid message id", http.StatusBadRequest)
		return
	}

	if err := h.messages.Delete(r.Context(), *principal, id); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			http.Error(w, forbiddenMsg, http.StatusForbidden)
			return
		}
		internalError(w, r, h.log, "failed to delete message", err)
		return
	}

	http.Redirect(w, r, "/messages", http.StatusFound)
}
