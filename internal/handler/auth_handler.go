package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopwave/internal/auth"
	"shopwave/internal/errors"
	"shopwave/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService   service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  *string `json:"lastName"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DeleteAccountRequest carries the re-authentication password.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// MessageResponse is a simple acknowledgment payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
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

	user, session, err := h.authService.Register(c.Request().Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeUserAlreadyExists,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Registration failed",
			Code:  errors.CodeInternal,
		})
	}

	auth.SetSessionCookie(c, session, h.secureCookies)
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
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

	user, session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeInvalidCredentials,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Login failed",
			Code:  errors.CodeInternal,
		})
	}

	auth.SetSessionCookie(c, session, h.secureCookies)
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := auth.TokenFromRequest(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Logout failed",
			Code:  errors.CodeInternal,
		})
	}

	auth.ClearSessionCookie(c, h.secureCookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// CurrentUser godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), auth.TokenFromContext(c))
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrUnauthenticated):
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeUnauthorized,
			})
		case stderrors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeUserNotFound,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "Failed to fetch user",
				Code:  errors.CodeInternal,
			})
		}
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteAccount godoc
// @Summary Delete the authenticated user's account
// @Description Requires the account password as a re-authentication step; a
// @Description session cookie alone is not sufficient.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body DeleteAccountRequest true "Account password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/delete-account [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	var req DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Invalid request body",
			Code:  errors.CodeValidation,
		})
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Password is required",
			Code:  errors.CodePasswordRequired,
		})
	}

	err := h.authService.DeleteAccount(c.Request().Context(), auth.TokenFromContext(c), req.Password)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrUnauthenticated):
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeUnauthorized,
			})
		case stderrors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeUserNotFound,
			})
		case stderrors.Is(err, service.ErrInvalidPassword):
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  errors.CodeInvalidPassword,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "Failed to delete account",
				Code:  errors.CodeInternal,
			})
		}
	}

	auth.ClearSessionCookie(c, h.secureCookies)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
