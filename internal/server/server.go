package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mflix-users/apiserver/config"
	"github.com/mflix-users/apiserver/internal/db"
	"github.com/mflix-users/apiserver/internal/handlers"
	"github.com/mflix-users/apiserver/internal/services"
	"github.com/mflix-users/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	conn       *db.Mongo
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	conn, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(conn.Collection(store.UsersCollection))

	// Best effort: the store is schemaless and the read paths work without
	// the index, so a failure here is logged rather than fatal.
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("email index not ensured: %v", err)
	}

	userService := services.NewUserService(userRepo)
	apiKeyMiddleware := handlers.RequireAPIKey(cfg.APIKeys)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/", handlers.Hello)
	router.Route("/mongo", func(r chi.Router) {
		handlers.MongoRouter(r, conn, userService)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, apiKeyMiddleware)
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
		conn:       conn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.conn != nil {
		_ = s.conn.Disconnect(context.Background())
	}
	return s.httpServer.Close()
}
