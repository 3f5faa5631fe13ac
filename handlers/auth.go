package handlers

import (
	"errors"
	"net/http"

	"journal-service/models"
	"journal-service/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves POST /api/auth with the login and register actions.
type AuthHandler struct {
	store *store.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

// Authenticate dispatches on the action field of the request body.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := parseJSONBody(r, &req); err != nil {
		logRequest(r, "error", "Invalid request body", zap.Error(err))
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Action {
	case "login":
		h.login(w, r, req)
	case "register":
		h.register(w, r, req)
	default:
		respondError(w, http.StatusBadRequest, `Invalid action. Use "login" or "register"`)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req models.AuthRequest) {
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.store.GetUser(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		logRequest(r, "info", "Login for unknown user", zap.String("username", req.Username))
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to query user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logRequest(r, "info", "Invalid password", zap.String("username", req.Username))
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	logRequest(r, "info", "Login successful", zap.String("username", user.Username))
	respondJSON(w, http.StatusOK, models.AuthResponse{Success: true, Username: user.Username})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, req models.AuthRequest) {
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if len(req.Username) < 3 {
		respondError(w, http.StatusBadRequest, "Username must be at least 3 characters")
		return
	}
	if len(req.Password) < 4 {
		respondError(w, http.StatusBadRequest, "Password must be at least 4 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		logRequest(r, "error", "Password hashing failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, string(hashed))
	if errors.Is(err, store.ErrDuplicate) {
		respondError(w, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to create user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	logRequest(r, "info", "User registered", zap.String("username", user.Username))
	respondJSON(w, http.StatusCreated, models.AuthResponse{Success: true, Username: user.Username})
}
