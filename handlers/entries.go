package handlers

import (
	"net/http"

	"journal-service/models"
	"journal-service/store"

	"go.uber.org/zap"
)

// EntryHandler serves CRUD operations on journal entries under /api/entries.
type EntryHandler struct {
	store *store.Store
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(st *store.Store) *EntryHandler {
	return &EntryHandler{store: st}
}

// List handles GET /api/entries?userId=...&from=...&to=...
// Entries are returned ordered by date, optionally bounded by the inclusive
// from/to range.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	entries, err := h.store.ListEntries(r.Context(), userID, q.Get("from"), q.Get("to"))
	if err != nil {
		logRequest(r, "error", "Failed to list entries", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Upsert handles PUT /api/entries. Writing the same (userId, date_key) twice
// overwrites: last write wins.
func (h *EntryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertEntryRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.DateKey == "" {
		respondError(w, http.StatusBadRequest, "userId and date_key are required")
		return
	}

	entry, err := h.store.UpsertEntry(r.Context(), req)
	if err != nil {
		logRequest(r, "error", "Failed to upsert entry", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	logRequest(r, "info", "Entry saved",
		zap.String("user_id", req.UserID), zap.String("date_key", req.DateKey))
	respondJSON(w, http.StatusOK, map[string]interface{}{"entry": entry})
}

// Delete handles DELETE /api/entries?userId=...&date=...
// Deleting an entry that does not exist still succeeds.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("userId")
	date := q.Get("date")
	if userID == "" || date == "" {
		respondError(w, http.StatusBadRequest, "userId and date are required")
		return
	}

	if err := h.store.DeleteEntry(r.Context(), userID, date); err != nil {
		logRequest(r, "error", "Failed to delete entry", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
