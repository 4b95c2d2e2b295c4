package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mflix-users/apiserver/internal/db"
	"github.com/mflix-users/apiserver/internal/services"
)

// MongoHandler serves the unauthenticated diagnostic routes. The open users
// listing mirrors the authenticated one; locking it down needs product
// sign-off first.
type MongoHandler struct {
	conn  *db.Mongo
	users *UserHandler
}

// MongoRouter registers the diagnostic routes on the given router.
func MongoRouter(r chi.Router, conn *db.Mongo, userService *services.UserService) {
	handler := &MongoHandler{
		conn:  conn,
		users: NewUserHandler(userService),
	}

	r.Get("/health", handler.Health)
	r.Get("/where", handler.Where)
	r.Get("/users", handler.users.ListUsers)
}

// HealthResponse reports the driver connection state.
type HealthResponse struct {
	Status string `json:"status"`
	Host   string `json:"host"`
	DB     string `json:"db"`
}

// WhereResponse reports where the service is pointed.
type WhereResponse struct {
	Host   string `json:"host"`
	DB     string `json:"db"`
	Status string `json:"status"`
}

func (h *MongoHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: h.conn.State(),
		Host:   h.conn.Host(),
		DB:     h.conn.Name(),
	})
}

func (h *MongoHandler) Where(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WhereResponse{
		Host:   h.conn.Host(),
		DB:     h.conn.Name(),
		Status: h.conn.State(),
	})
}

// Hello is the root route.
func Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"hello": "world"})
}
