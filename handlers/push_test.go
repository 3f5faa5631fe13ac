package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-service/config"
	"journal-service/models"
	"journal-service/push"
	"journal-service/store"
	"journal-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushHandler(t *testing.T, st *store.Store) *PushHandler {
	t.Helper()
	cfg := config.Config{VAPIDSubject: "mailto:admin@example.com"}
	return NewPushHandler(st, push.NewSender(cfg), cfg.VAPIDPublicKey)
}

func subscribeBody(userID, endpoint, p256dh, auth string) models.SubscribeRequest {
	return models.SubscribeRequest{
		UserID: userID,
		Subscription: &models.BrowserSubscription{
			Endpoint: endpoint,
			Keys:     models.SubscriptionKeys{P256dh: p256dh, Auth: auth},
		},
	}
}

func TestSubscribeStoresSubscription(t *testing.T) {
	st := newTestStore(t)
	h := newPushHandler(t, st)

	w := httptest.NewRecorder()
	h.Subscribe(w, testutil.MakeRequest(http.MethodPost, "/api/push/subscribe",
		subscribeBody("u1", "https://push.example/ep1", "key", "secret")))
	require.Equal(t, http.StatusOK, w.Code)

	subs, err := st.SubscriptionsForUsers(context.Background(), []string{"u1"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push.example/ep1", subs[0].Endpoint)
	assert.Equal(t, "key", subs[0].P256dh)
	assert.Equal(t, "secret", subs[0].Auth)
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	st := newTestStore(t)
	h := newPushHandler(t, st)

	for _, userID := range []string{"u1", "u2"} {
		w := httptest.NewRecorder()
		h.Subscribe(w, testutil.MakeRequest(http.MethodPost, "/api/push/subscribe",
			subscribeBody(userID, "https://push.example/shared", "key", "secret")))
		require.Equal(t, http.StatusOK, w.Code)
	}

	// The endpoint moved to the new owner; no second row appeared.
	subs, err := st.SubscriptionsForUsers(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Empty(t, subs)

	subs, err = st.SubscriptionsForUsers(context.Background(), []string{"u2"})
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscribeValidation(t *testing.T) {
	h := newPushHandler(t, newTestStore(t))

	tests := []struct {
		name string
		body models.SubscribeRequest
	}{
		{"missing userId", subscribeBody("", "https://push.example/e", "key", "secret")},
		{"missing subscription", models.SubscribeRequest{UserID: "u1"}},
		{"missing endpoint", subscribeBody("u1", "", "key", "secret")},
		{"missing p256dh", subscribeBody("u1", "https://push.example/e", "", "secret")},
		{"missing auth", subscribeBody("u1", "https://push.example/e", "key", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Subscribe(w, testutil.MakeRequest(http.MethodPost, "/api/push/subscribe", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			testutil.DecodeJSON(t, w, &resp)
			assert.Equal(t, "Invalid payload", resp["error"])
		})
	}
}

func TestPublicKey(t *testing.T) {
	st := newTestStore(t)
	cfg := config.Config{VAPIDPublicKey: "test-public-key", VAPIDSubject: "mailto:admin@example.com"}
	h := NewPushHandler(st, push.NewSender(cfg), cfg.VAPIDPublicKey)

	w := httptest.NewRecorder()
	h.PublicKey(w, testutil.MakeRequest(http.MethodGet, "/api/push/public-key", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "test-public-key", resp["publicKey"])
}

func TestNotificationBodyFallbacks(t *testing.T) {
	tests := []struct {
		name string
		req  models.NotifyRequest
		body string
	}{
		{"title wins", models.NotifyRequest{ActorUserID: "u1", DateKey: "2024-01-01", Title: "Big day", Mood: "happy"}, "Big day"},
		{"mood fallback", models.NotifyRequest{ActorUserID: "u1", DateKey: "2024-01-01", Mood: "happy"}, "Mood: happy"},
		{"generic fallback", models.NotifyRequest{ActorUserID: "u1", DateKey: "2024-01-01"}, "Open to read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := notificationFor(tt.req)
			assert.Equal(t, "New journal from u1", payload.Title)
			assert.Equal(t, tt.body, payload.Body)
			assert.Equal(t, "/notes.html?date=2024-01-01", payload.URL)
		})
	}
}

func TestNotificationURLEscapesDate(t *testing.T) {
	payload := notificationFor(models.NotifyRequest{ActorUserID: "u1", DateKey: "2024-01-01&x=1"})
	assert.Equal(t, "/notes.html?date=2024-01-01%26x%3D1", payload.URL)
}
