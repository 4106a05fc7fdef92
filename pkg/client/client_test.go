package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/token":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "password", body["grant_type"])
			json.NewEncoder(w).Encode(TokenResponse{
				TokenType:   "Bearer",
				AccessToken: "access-token-123",
			})
		case "/api/slots/myslots":
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]Slot{})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "tutor@pesu.pes.edu", "pw")
	require.NoError(t, err)
	assert.Equal(t, "access-token-123", resp.AccessToken)

	_, err = c.MySlots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token-123", authHeader)
}

func TestSearchSlotsEmptyOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/slots/search", r.URL.Path)
		assert.Equal(t, "NonExistent", r.URL.Query().Get("searchTerm"))
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "not_found",
			"error_description": "No slots found matching your criteria",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	slots, err := c.SearchSlots(context.Background(), "NonExistent", "subject", "")
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestErrorEnvelopeSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "forbidden",
			"error_description": "Not the slot owner",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.UpdateSlot(context.Background(), 1, SlotPayload{Subject: "Algebra"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "forbidden", apiErr.Kind)
	assert.Contains(t, err.Error(), "Not the slot owner")
}
