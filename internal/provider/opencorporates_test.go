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

func openCorporatesFixture() map[string]any {
	return map[string]any{
		"results": map[string]any{
			"companies": []map[string]any{
				{"company": map[string]string{
					"name":              "ACME LOGISTICS LLC",
					"jurisdiction_code": "us_de",
					"registry_url":      "https://icis.corp.delaware.gov/acme",
				}},
				{"company": map[string]string{
					"name":               "ACME HOLDINGS LLC",
					"jurisdiction_code":  "us_ny",
					"opencorporates_url": "https://opencorporates.com/companies/us_ny/2",
				}},
			},
		},
	}
}

func TestOpenCorporatesSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-1", r.URL.Query().Get("api_token"))
		_ = json.NewEncoder(w).Encode(openCorporatesFixture())
	}))
	defer srv.Close()

	o := NewOpenCorporates("tok-1", "test-agent", 0)
	o.endpoint = srv.URL

	hits, err := o.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "ACME LOGISTICS LLC", hits[0].Title)
	assert.Equal(t, "https://icis.corp.delaware.gov/acme", hits[0].URL)
	assert.Equal(t, "us_de", hits[0].Jurisdiction)
	assert.Equal(t, "opencorporates", hits[0].Source)
	// Falls back to the opencorporates page when no registry URL.
	assert.Equal(t, "https://opencorporates.com/companies/us_ny/2", hits[1].URL)
}

func TestOpenCorporatesCompanySearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(openCorporatesFixture())
	}))
	defer srv.Close()

	o := NewOpenCorporates("tok-1", "test-agent", 0)
	o.endpoint = srv.URL

	match, found, err := o.CompanySearch(context.Background(), "acme")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ACME LOGISTICS LLC", match.Name)
	assert.Equal(t, "us_de", match.Jurisdiction)
	assert.Equal(t, "https://icis.corp.delaware.gov/acme", match.CompanyURL)
}

func TestOpenCorporatesCompanySearchNoMatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{"companies": []any{}},
		})
	}))
	defer srv.Close()

	o := NewOpenCorporates("tok-1", "test-agent", 0)
	o.endpoint = srv.URL

	_, found, err := o.CompanySearch(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}
