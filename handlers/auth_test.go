package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-service/models"
	"journal-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authCall(h *AuthHandler, body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Authenticate(w, testutil.MakeRequest(http.MethodPost, "/api/auth", body))
	return w
}

func TestRegisterThenLogin(t *testing.T) {
	h := NewAuthHandler(newTestStore(t))

	w := authCall(h, models.AuthRequest{Action: "register", Username: "bob", Password: "1234"})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.AuthResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "bob", resp.Username)

	w = authCall(h, models.AuthRequest{Action: "login", Username: "bob", Password: "1234"})
	require.Equal(t, http.StatusOK, w.Code)
	testutil.DecodeJSON(t, w, &resp)
	assert.True(t, resp.Success)

	w = authCall(h, models.AuthRequest{Action: "login", Username: "bob", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterLengthBoundaries(t *testing.T) {
	h := NewAuthHandler(newTestStore(t))

	// Username boundary: 2 characters fails, 3 succeeds.
	w := authCall(h, models.AuthRequest{Action: "register", Username: "ab", Password: "1234"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = authCall(h, models.AuthRequest{Action: "register", Username: "abc", Password: "1234"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Password boundary: 3 characters fails, 4 succeeds.
	w = authCall(h, models.AuthRequest{Action: "register", Username: "carol", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = authCall(h, models.AuthRequest{Action: "register", Username: "carol", Password: "1234"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := NewAuthHandler(newTestStore(t))

	w := authCall(h, models.AuthRequest{Action: "register", Username: "bob", Password: "1234"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = authCall(h, models.AuthRequest{Action: "register", Username: "bob", Password: "5678"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Username already exists", resp["error"])
}

func TestLoginUnknownUser(t *testing.T) {
	h := NewAuthHandler(newTestStore(t))

	w := authCall(h, models.AuthRequest{Action: "login", Username: "ghost", Password: "1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidation(t *testing.T) {
	h := NewAuthHandler(newTestStore(t))

	tests := []struct {
		name string
		body models.AuthRequest
	}{
		{"unknown action", models.AuthRequest{Action: "reset", Username: "bob", Password: "1234"}},
		{"login missing password", models.AuthRequest{Action: "login", Username: "bob"}},
		{"register missing username", models.AuthRequest{Action: "register", Password: "1234"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := authCall(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
