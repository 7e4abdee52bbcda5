package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopwave/internal/auth"
	"shopwave/internal/errors"
	"shopwave/internal/service"
)

// CheckoutHandler handles simulated order placement.
type CheckoutHandler struct {
	checkout service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CheckoutRequest is the cart submitted for checkout.
type CheckoutRequest struct {
	Items []service.CartItem `json:"items" validate:"required,min=1"`
}

// Checkout godoc
// @Summary Place a simulated order for the current cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Cart items"
// @Success 200 {object} service.OrderConfirmation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Invalid request body",
			Code:  errors.CodeValidation,
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  errors.CodeValidation,
		})
	}

	userID, _ := auth.UserIDFromContext(c)
	confirmation, err := h.checkout.PlaceOrder(c.Request().Context(), userID, req.Items)
	if err != nil {
		if stderrors.Is(err, service.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeValidation,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Checkout failed",
			Code:  errors.CodeInternal,
		})
	}

	return c.JSON(http.StatusOK, confirmation)
}
