package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopwave/internal/cache"
	"shopwave/internal/model"
)

// testCache points at a closed port; every lookup behaves as a miss, which is
// exactly the fail-safe path the client promises.
func testCache() *cache.Client {
	return cache.New("127.0.0.1:1", "", 0)
}

func catalogStub(t *testing.T, gotPath *string, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotPath = r.URL.Path
		*gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products/categories":
			json.NewEncoder(w).Encode([]model.Category{{Slug: "beauty", Name: "Beauty"}})
		default:
			json.NewEncoder(w).Encode(model.ProductsResponse{
				Products: []model.Product{{ID: 1, Title: "Essence Mascara", Price: 9.99, Category: "beauty"}},
				Total:    1,
				Limit:    100,
			})
		}
	}))
}

func TestFetchProducts_Routing(t *testing.T) {
	tests := []struct {
		name          string
		query         Query
		expectedPath  string
		expectedQuery string
	}{
		{
			name:          "plain listing",
			query:         Query{Limit: 100, Skip: 0},
			expectedPath:  "/products",
			expectedQuery: "limit=100&skip=0",
		},
		{
			name:          "search takes the search endpoint",
			query:         Query{Limit: 50, Skip: 10, Search: "mascara"},
			expectedPath:  "/products/search",
			expectedQuery: "limit=50&q=mascara&skip=10",
		},
		{
			name:          "category takes the category endpoint",
			query:         Query{Limit: 20, Skip: 0, Category: "beauty"},
			expectedPath:  "/products/category/beauty",
			expectedQuery: "limit=20&skip=0",
		},
		{
			name:          "search wins over category",
			query:         Query{Limit: 20, Skip: 0, Search: "mascara", Category: "beauty"},
			expectedPath:  "/products/search",
			expectedQuery: "limit=20&q=mascara&skip=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			server := catalogStub(t, &gotPath, &gotQuery)
			defer server.Close()

			client := NewHTTPClient(server.URL, testCache())
			resp, err := client.FetchProducts(context.Background(), tt.query)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedPath, gotPath)
			assert.Equal(t, tt.expectedQuery, gotQuery)
			require.Len(t, resp.Products, 1)
			assert.Equal(t, "Essence Mascara", resp.Products[0].Title)
		})
	}
}

func TestFetchCategories(t *testing.T) {
	var gotPath, gotQuery string
	server := catalogStub(t, &gotPath, &gotQuery)
	defer server.Close()

	client := NewHTTPClient(server.URL, testCache())
	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/products/categories", gotPath)
	require.Len(t, categories, 1)
	assert.Equal(t, "beauty", categories[0].Slug)
}

func TestFetchProducts_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, testCache())
	_, err := client.FetchProducts(context.Background(), Query{Limit: 100})
	assert.Error(t, err)
}
