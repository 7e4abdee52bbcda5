package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shopwave/internal/cache"
	"shopwave/internal/model"
)

const (
	productsCacheKeyPrefix = "catalog:products:"
	categoriesCacheKey     = "catalog:categories"

	productsCacheTTL   = 5 * time.Minute
	categoriesCacheTTL = 10 * time.Minute
)

// Query selects a page of products from the upstream catalog. Search takes
// precedence over Category, matching the upstream API's routing.
type Query struct {
	Limit    int
	Skip     int
	Search   string
	Category string
}

// Client is the narrow interface the storefront consumes from the external
// product catalog. The auth core never touches it.
type Client interface {
	FetchProducts(ctx context.Context, q Query) (*model.ProductsResponse, error)
	FetchCategories(ctx context.Context) ([]model.Category, error)
}

// HTTPClient proxies catalog queries to a dummyjson-compatible API, caching
// responses in Redis. Cache failures behave as misses; the upstream is the
// source of truth.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	cache   *cache.Client
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a catalog client for the given upstream base URL.
func NewHTTPClient(baseURL string, cache *cache.Client) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// FetchProducts retrieves a page of products, optionally filtered by search
// term or category.
func (c *HTTPClient) FetchProducts(ctx context.Context, q Query) (*model.ProductsResponse, error) {
	cacheKey := productsCacheKeyPrefix + q.cacheKey()
	if data, err := c.cache.Get(ctx, cacheKey); err == nil && data != nil {
		var cached model.ProductsResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var resp model.ProductsResponse
	if err := c.getJSON(ctx, c.productsURL(q), &resp); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(&resp); err == nil {
		_ = c.cache.Set(ctx, cacheKey, payload, productsCacheTTL)
	}
	return &resp, nil
}

// FetchCategories retrieves the category list.
func (c *HTTPClient) FetchCategories(ctx context.Context) ([]model.Category, error) {
	if data, err := c.cache.Get(ctx, categoriesCacheKey); err == nil && data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	var categories []model.Category
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &categories); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = c.cache.Set(ctx, categoriesCacheKey, payload, categoriesCacheTTL)
	}
	return categories, nil
}

func (c *HTTPClient) productsURL(q Query) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))

	switch {
	case q.Search != "":
		params.Set("q", q.Search)
		return c.baseURL + "/products/search?" + params.Encode()
	case q.Category != "":
		return c.baseURL + "/products/category/" + url.PathEscape(q.Category) + "?" + params.Encode()
	default:
		return c.baseURL + "/products?" + params.Encode()
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog upstream returned %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}

func (q Query) cacheKey() string {
	return fmt.Sprintf("%d:%d:%s:%s", q.Limit, q.Skip, q.Search, q.Category)
}
