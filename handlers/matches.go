package handlers

import (
	"errors"
	"net/http"

	"journal-service/models"
	"journal-service/store"

	"go.uber.org/zap"
)

// MatchHandler serves the match lifecycle under /api/matches. Operations are
// dispatched on the action field: list_users, get_requests and get_matches
// on GET, send_request on POST, respond_request on PUT and remove_match on
// DELETE.
type MatchHandler struct {
	store *store.Store
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(st *store.Store) *MatchHandler {
	return &MatchHandler{store: st}
}

// List handles GET /api/matches.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch q.Get("action") {
	case "list_users":
		users, err := h.store.ListUsers(r.Context())
		if err != nil {
			logRequest(r, "error", "Failed to list users", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})

	case "get_requests":
		username := q.Get("username")
		if username == "" {
			respondError(w, http.StatusBadRequest, "username required")
			return
		}
		sent, received, err := h.store.RequestsForUser(r.Context(), username)
		if err != nil {
			logRequest(r, "error", "Failed to list requests", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, models.MatchRequestsResponse{Sent: sent, Received: received})

	case "get_matches":
		username := q.Get("username")
		if username == "" {
			respondError(w, http.StatusBadRequest, "username required")
			return
		}
		partners, err := h.store.ListPartners(r.Context(), username)
		if err != nil {
			logRequest(r, "error", "Failed to list matches", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"matches": partners})

	default:
		respondError(w, http.StatusBadRequest, "Invalid action")
	}
}

// SendRequest handles POST /api/matches with action=send_request.
func (h *MatchHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req models.MatchActionRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Action != "send_request" {
		respondError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if req.Username == "" || req.TargetUsername == "" {
		respondError(w, http.StatusBadRequest, "username and targetUsername required")
		return
	}
	if req.Username == req.TargetUsername {
		respondError(w, http.StatusBadRequest, "Cannot send request to yourself")
		return
	}

	matched, err := h.store.MatchExists(r.Context(), req.Username, req.TargetUsername)
	if err != nil {
		logRequest(r, "error", "Failed to check existing match", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if matched {
		respondError(w, http.StatusConflict, "Already matched")
		return
	}

	request, err := h.store.CreateRequest(r.Context(), req.Username, req.TargetUsername)
	if errors.Is(err, store.ErrDuplicate) {
		respondError(w, http.StatusConflict, "Request already exists")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to create request", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logRequest(r, "info", "Match request sent",
		zap.String("sender", req.Username), zap.String("receiver", req.TargetUsername))
	respondJSON(w, http.StatusCreated, map[string]interface{}{"request": request})
}

// Respond handles PUT /api/matches with action=respond_request. Only the
// receiver of a request may accept or reject it; anyone else gets the same
// 404 as a missing request.
func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.MatchActionRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Action != "respond_request" {
		respondError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if req.RequestID == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "requestId and username required")
		return
	}
	if req.Status != models.RequestAccepted && req.Status != models.RequestRejected {
		respondError(w, http.StatusBadRequest, "status must be accepted or rejected")
		return
	}

	updated, err := h.store.RespondRequest(r.Context(), req.RequestID, req.Username, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Request not found or unauthorized")
		return
	}
	if err != nil {
		logRequest(r, "error", "Failed to respond to request", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logRequest(r, "info", "Match request updated",
		zap.String("request_id", req.RequestID), zap.String("status", req.Status))
	respondJSON(w, http.StatusOK, map[string]interface{}{"request": updated})
}

// Remove handles DELETE /api/matches with action=remove_match. Parameters
// may arrive in the body or the query string; removal is idempotent and the
// username order does not matter.
func (h *MatchHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req models.MatchActionRequest
	_ = parseJSONBody(r, &req)

	q := r.URL.Query()
	if req.Action == "" {
		req.Action = q.Get("action")
	}
	if req.Username == "" {
		req.Username = q.Get("username")
	}
	if req.TargetUsername == "" {
		req.TargetUsername = q.Get("targetUsername")
	}

	if req.Action != "remove_match" {
		respondError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if req.Username == "" || req.TargetUsername == "" {
		respondError(w, http.StatusBadRequest, "username and targetUsername required")
		return
	}

	if err := h.store.RemoveMatch(r.Context(), req.Username, req.TargetUsername); err != nil {
		logRequest(r, "error", "Failed to remove match", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logRequest(r, "info", "Match removed",
		zap.String("username", req.Username), zap.String("target", req.TargetUsername))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
