package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"journal-service/models"
	"journal-service/push"
	"journal-service/store"

	"go.uber.org/zap"
)

// PushHandler serves the Web Push endpoints: subscription storage, the VAPID
// public key and the notify-on-entry fan-out.
type PushHandler struct {
	store     *store.Store
	sender    *push.Sender
	publicKey string
}

// NewPushHandler creates a new push handler.
func NewPushHandler(st *store.Store, sender *push.Sender, publicKey string) *PushHandler {
	return &PushHandler{store: st, sender: sender, publicKey: publicKey}
}

// Subscribe handles POST /api/push/subscribe. Subscriptions are keyed by
// endpoint: re-subscribing from the same browser overwrites the stored keys
// and owner.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	sub := req.Subscription
	if req.UserID == "" || sub == nil || sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	err := h.store.UpsertSubscription(r.Context(), req.UserID, sub.Endpoint, sub.Keys.P256dh, sub.Keys.Auth)
	if err != nil {
		logRequest(r, "error", "Failed to store subscription", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Subscribe failed")
		return
	}

	logRequest(r, "info", "Subscription stored", zap.String("user_id", req.UserID))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// PublicKey handles GET /api/push/public-key. The browser needs the VAPID
// public key to create a subscription; an empty string means push is not
// configured.
func (h *PushHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"publicKey": h.publicKey})
}

// NotifyOnEntry handles POST /api/push/notify-on-entry. It fans a
// notification out to every subscription of every matched partner of the
// actor, then drops the subscriptions whose endpoints reported
// permanently-gone. Other failures stay stored; the next entry is the retry.
func (h *PushHandler) NotifyOnEntry(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing actorUserId or date_key")
		return
	}
	if req.ActorUserID == "" || req.DateKey == "" {
		respondError(w, http.StatusBadRequest, "Missing actorUserId or date_key")
		return
	}
	if !h.sender.Configured() {
		logRequest(r, "error", "VAPID keys not configured")
		respondError(w, http.StatusInternalServerError, "Missing VAPID keys")
		return
	}

	partners, err := h.store.ListPartners(r.Context(), req.ActorUserID)
	if err != nil {
		logRequest(r, "error", "Failed to resolve partners", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Notify failed")
		return
	}

	subs, err := h.store.SubscriptionsForUsers(r.Context(), partners)
	if err != nil {
		logRequest(r, "error", "Failed to load subscriptions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Notify failed")
		return
	}

	payload, err := json.Marshal(notificationFor(req))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Notify failed")
		return
	}

	results := h.sender.Broadcast(r.Context(), subs, payload)

	if expired := push.ExpiredEndpoints(results); len(expired) > 0 {
		if err := h.store.DeleteSubscriptionsByEndpoint(r.Context(), expired); err != nil {
			logRequest(r, "error", "Failed to clean up expired subscriptions", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Notify failed")
			return
		}
		logRequest(r, "info", "Expired subscriptions removed", zap.Int("count", len(expired)))
	}

	logRequest(r, "info", "Notifications dispatched",
		zap.String("actor", req.ActorUserID), zap.Int("sent", len(results)))
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "sent": len(results)})
}

// notificationFor builds the payload the service worker renders: the entry
// title if present, otherwise the mood, otherwise a generic prompt, plus a
// deep link to the entry's date.
func notificationFor(req models.NotifyRequest) models.NotificationPayload {
	body := "Open to read"
	if req.Title != "" {
		body = req.Title
	} else if req.Mood != "" {
		body = "Mood: " + req.Mood
	}

	return models.NotificationPayload{
		Title: "New journal from " + req.ActorUserID,
		Body:  body,
		URL:   "/notes.html?date=" + url.QueryEscape(req.DateKey),
	}
}
