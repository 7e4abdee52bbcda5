package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopwave/internal/catalog"
	"shopwave/internal/errors"
)

const (
	defaultProductLimit = 100
	maxProductLimit     = 300
)

// CatalogHandler proxies product and category queries to the upstream
// catalog API.
type CatalogHandler struct {
	catalog catalog.Client
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(client catalog.Client) *CatalogHandler {
	return &CatalogHandler{catalog: client}
}

// ListProducts godoc
// @Summary List products
// @Tags catalog
// @Produce json
// @Param limit query int false "Page size" default(100)
// @Param skip query int false "Page offset" default(0)
// @Param search query string false "Search term"
// @Param category query string false "Category slug"
// @Success 200 {object} model.ProductsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	q := catalog.Query{
		Limit:    queryInt(c, "limit", defaultProductLimit),
		Skip:     queryInt(c, "skip", 0),
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	}
	if q.Limit <= 0 || q.Limit > maxProductLimit {
		q.Limit = defaultProductLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}

	resp, err := h.catalog.FetchProducts(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Failed to fetch products",
			Code:  errors.CodeInternal,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListCategories godoc
// @Summary List product categories
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.FetchCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Failed to fetch categories",
			Code:  errors.CodeInternal,
		})
	}
	return c.JSON(http.StatusOK, categories)
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}
