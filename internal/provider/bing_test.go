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

func TestBingSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-456", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "acme financing", r.URL.Query().Get("q"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"webPages": map[string]any{
				"value": []map[string]string{
					{"name": "Acme news", "url": "https://news.example/acme", "snippet": "seeking funding"},
				},
			},
		})
	}))
	defer srv.Close()

	b := NewBing("key-456", "test-agent", 0)
	b.endpoint = srv.URL

	hits, err := b.Search(context.Background(), "acme financing")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Acme news", hits[0].Title)
	assert.Equal(t, "https://news.example/acme", hits[0].URL)
	assert.Equal(t, "bing", hits[0].Source)
}

func TestBingSearchMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	b := NewBing("key-456", "test-agent", 0)
	b.endpoint = srv.URL

	_, err := b.Search(context.Background(), "acme")
	assert.Error(t, err)
}
