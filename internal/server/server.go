package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/members-only/clubhouse/config"
	"github.com/members-only/clubhouse/internal/db"
	"github.com/members-only/clubhouse/internal/handlers"
	"github.com/members-only/clubhouse/internal/logging"
	"github.com/members-only/clubhouse/internal/metrics"
	"github.com/members-only/clubhouse/internal/services"
	"github.com/members-only/clubhouse/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	log        logging.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := logging.NewDefault()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	messageRepo := store.NewMessageRepository(dbConn)
	sessionRepo := store.NewSessionRepository(dbConn)

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.Session.TTL)
	membershipService := services.NewMembershipService(userRepo, cfg.MembershipPassphrase)
	messageService := services.NewMessageService(messageRepo)

	// The session table accumulates expired rows otherwise.
	if pruned, err := authService.PruneExpired(ctx); err != nil {
		log.Warn(ctx, "failed to prune expired sessions", "error", err)
	} else if pruned > 0 {
		log.Info(ctx, "pruned expired sessions", "count", pruned)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		metrics.Middleware,
	)
	router.Get("/healthz", handlers.Healthz)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	homeHandler := handlers.NewHomeHandler(log)
	router.Group(func(r chi.Router) {
		r.Use(handlers.ResolvePrincipal(authService, cfg.Session.CookieName, log))
		r.Get("/", homeHandler.Index)
		handlers.AuthRouter(r, userService, authService, cfg.Session, log)
		handlers.MembershipRouter(r, membershipService, log)
		handlers.MessageRouter(r, messageService, log)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info(context.Background(), "starting server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
