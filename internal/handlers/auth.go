package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/members-only/clubhouse/config"
	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/internal/services"
	"github.com/members-only/clubhouse/internal/store"
	"github.com/members-only/clubhouse/internal/validation"
	"github.com/members-only/clubhouse/types"
	"golang.org/x/crypto/bcrypt"
)

const duplicateUsernameErr = "Username is already registered."

// UserCreator creates accounts. Defined as a subset of services.UserService.
type UserCreator interface {
	Create(ctx context.Context, user types.User) (types.User, error)
}

// Authenticator covers the login/logout session lifecycle. Defined as a
// subset of services.AuthService.
type Authenticator interface {
	Verify(ctx context.Context, username, password string) (types.User, error)
	Login(ctx context.Context, user types.User) (types.Session, error)
	Logout(ctx context.Context, sid string) error
}

// AuthHandler provides the signup, login, and logout endpoints.
type AuthHandler struct {
	users   UserCreator
	auth    Authenticator
	session config.SessionConfig
	log     logging.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users UserCreator, auth Authenticator, session config.SessionConfig, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		auth:    auth,
		session: session,
		log:     log,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, users UserCreator, auth Authenticator, session config.SessionConfig, log logging.Logger) {
	handler := NewAuthHandler(users, auth, session, log)

	r.Get("/sign-up", handler.SignUpForm)
	r.Post("/sign-up", handler.SignUp)
	r.Post("/log-in", handler.LogIn)
	r.Get("/log-out", handler.LogOut)
}

type signUpPage struct {
	Principal *types.User
	Form      validation.SignupForm
	Errors    []string
}

// SignUpForm renders an empty signup form.
func (h *AuthHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.log, "sign-up.html", signUpPage{
		Principal: PrincipalFromContext(r.Context()),
	})
}

// SignUp validates the submitted form, hashes the password, and creates the
// account. Validation failures re-render the form with every violation and
// the submitted values echoed back.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := validation.SignupForm{
		FirstName:            strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:             strings.TrimSpace(r.PostFormValue("lastName")),
		Username:             strings.TrimSpace(r.PostFormValue("username")),
		Password:             r.PostFormValue("password"),
		PasswordConfirmation: r.PostFormValue("passwordConfirmation"),
		Admin:                r.PostFormValue("admin") == "on",
	}

	if errs := validation.ValidateSignup(form); len(errs) > 0 {
		h.renderSignUp(w, r, form, errs)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(w, r, h.log, "failed to hash password", err)
		return
	}

	// A self-declared admin is also a member from the start.
	_, err = h.users.Create(r.Context(), types.User{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Username:     form.Username,
		PasswordHash: string(hashed),
		Member:       form.Admin,
		Admin:        form.Admin,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			h.renderSignUp(w, r, form, []string{duplicateUsernameErr})
			return
		}
		internalError(w, r, h.log, "failed to create user", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) renderSignUp(w http.ResponseWriter, r *http.Request, form validation.SignupForm, errs []string) {
	renderPage(w, r, h.log, "sign-up.html", signUpPage{
		Principal: PrincipalFromContext(r.Context()),
		Form:      form,
		Errors:    errs,
	})
}

// LogIn verifies credentials and opens a session. Success and failure both
// redirect to the home page; a failed attempt is only logged server-side.
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	user, err := h.auth.Verify(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Warn(r.Context(), "login failed", "username", username)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		internalError(w, r, h.log, "failed to verify credentials", err)
		return
	}

	session, err := h.auth.Login(r.Context(), user)
	if err != nil {
		internalError(w, r, h.log, "failed to open session", err)
		return
	}

	h.setSessionCookie(w, session.SID)
	http.Redirect(w, r, "/", http.StatusFound)
}

// LogOut invalidates the session, clears the cookie, and redirects home.
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.session.CookieName); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			internalError(w, r, h.log, "failed to close session", err)
			return
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(h.session.TTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
