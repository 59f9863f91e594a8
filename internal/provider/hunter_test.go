package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHunterDomainSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme.example", r.URL.Query().Get("domain"))
		assert.Equal(t, "key-h", r.URL.Query().Get("api_key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"emails": []map[string]string{
					{"value": "ceo@acme.example", "phone_number": "+1-555-0101"},
					{"value": "second@acme.example"},
				},
			},
		})
	}))
	defer srv.Close()

	h := NewHunter("key-h", "test-agent", 0)
	h.endpoint = srv.URL

	res, err := h.DomainSearch(context.Background(), "acme.example")
	require.NoError(t, err)
	assert.Equal(t, "ceo@acme.example", res.Email)
	assert.Equal(t, "+1-555-0101", res.Phone)
}

func TestHunterDomainSearchEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"emails": []any{}}})
	}))
	defer srv.Close()

	h := NewHunter("key-h", "test-agent", 0)
	h.endpoint = srv.URL

	res, err := h.DomainSearch(context.Background(), "empty.example")
	require.NoError(t, err)
	assert.Empty(t, res.Email)
	assert.Empty(t, res.Phone)
}
