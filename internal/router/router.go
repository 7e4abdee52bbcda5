package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopwave/internal/auth"
	"shopwave/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessionStore auth.SessionStore,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	checkoutHandler *handler.CheckoutHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Catalog proxy (public, no auth involvement)
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/categories", catalogHandler.ListCategories)

	// Secured routes (require a valid session cookie)
	secured := api.Group("", auth.RequireSession(sessionStore))

	secured.GET("/auth/user", authHandler.CurrentUser)
	secured.DELETE("/auth/delete-account", authHandler.DeleteAccount)
	secured.POST("/checkout", checkoutHandler.Checkout)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
