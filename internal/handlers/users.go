package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mflix-users/apiserver/internal/services"
	"github.com/mflix-users/apiserver/internal/store"
	"github.com/mflix-users/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Matches the cost the original deployment stored its hashes with.
	bcryptCost = 12

	// bcrypt hashes start with $2a$/$2b$/$2y$; a value that already looks
	// hashed is stored as-is to avoid double hashing. Heuristic, not
	// validation.
	bcryptPrefix = "$2"

	msgUserNotFound   = "User tidak ditemukan"
	msgInvalidUserID  = "Invalid user id"
	msgInvalidEmail   = "Format email tidak valid"
	msgFieldsRequired = "name, email, dan password wajib diisi"
	msgNothingToSet   = "Tidak ada field yang diupdate"
	msgEmailTaken     = "Email sudah terdaftar"
	msgEmailTakenDup  = "Email sudah terdaftar (dup key)"
	msgEmailInUse     = "Email sudah dipakai user lain"
)

// UserHandler provides HTTP handlers for the users collection.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers the authenticated user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUserHandler(userService)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}
	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)
	})
}

// ListUsers returns every user sorted by name, with the password masked
// unless mask=false.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	mask := boolFlag(r, "mask")

	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	data := make([]UserView, 0, len(users))
	for _, user := range users {
		data = append(data, newUserView(user, mask))
	}

	writeJSON(w, http.StatusOK, UserListResponse{Total: len(data), Data: data})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	mask := boolFlag(r, "mask")

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, newUserView(user, mask))
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	// Advisory pre-check; the unique index is the authoritative guard.
	exists, err := h.userService.EmailExists(r.Context(), req.Email, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check email")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, msgEmailTaken)
		return
	}

	password := req.Password
	if boolFlag(r, "hash") && !strings.HasPrefix(password, bcryptPrefix) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		password = string(hashed)
	}

	user, err := h.userService.Create(r.Context(), types.User{
		Name:     &req.Name,
		Email:    &req.Email,
		Password: &password,
	})
	if err != nil {
		// A concurrent create can slip past the pre-check; the unique
		// index rejects the loser.
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, msgEmailTakenDup)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The password is never echoed back, regardless of flags.
	writeJSON(w, http.StatusCreated, newUserSummary(user))
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgNothingToSet)
		return
	}

	if req.Name == nil && req.Email == nil && req.Password == nil {
		writeError(w, http.StatusBadRequest, msgNothingToSet)
		return
	}

	if req.Email != nil && *req.Email != "" {
		if !validEmail(*req.Email) {
			writeError(w, http.StatusBadRequest, msgInvalidEmail)
			return
		}
		exists, err := h.userService.EmailExists(r.Context(), *req.Email, &id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to check email")
			return
		}
		if exists {
			writeError(w, http.StatusConflict, msgEmailInUse)
			return
		}
	}

	if req.Password != nil && *req.Password != "" &&
		boolFlag(r, "hash") && !strings.HasPrefix(*req.Password, bcryptPrefix) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		hashedStr := string(hashed)
		req.Password = &hashedStr
	}

	updated, err := h.userService.Update(r.Context(), id, types.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, msgEmailInUse)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, newUserSummary(updated))
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	deleted, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, newUserSummary(deleted))
}

// UserCreateRequest is the create payload; all fields are mandatory and an
// empty string counts as missing.
type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest is the partial update payload; absent fields stay nil.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserView is a read-path user with the identifier in display-string form.
type UserView struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserSummary is the write-path response shape; it never carries a password.
type UserSummary struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserListResponse is the listing payload.
type UserListResponse struct {
	Total int        `json:"total"`
	Data  []UserView `json:"data"`
}

func newUserView(user types.User, mask bool) UserView {
	return UserView{
		ID:       user.ID.Hex(),
		Name:     user.Name,
		Email:    user.Email,
		Password: maskPassword(user.Password, mask),
	}
}

func newUserSummary(user types.User) UserSummary {
	return UserSummary{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

func parseUserID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
}
