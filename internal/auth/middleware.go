package auth

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shopwave/internal/errors"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// Context keys for values attached by RequireSession.
const (
	ContextKeyUserID       = "userID"
	ContextKeySessionToken = "sessionToken"
)

// RequireSession gates protected routes: it resolves the session cookie to a
// user id and attaches it to the request context, or short-circuits with 401.
// It performs no business logic and mutates nothing beyond the store's own
// lazy expiry.
func RequireSession(store SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "Unauthorized",
					Code:  errors.CodeUnauthorized,
				})
			}

			userID, err := store.Get(c.Request().Context(), token)
			if err != nil {
				// A store outage is not an invalid session; answering 401
				// here would log clients out whenever Redis blips.
				if !stderrors.Is(err, ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
						Error: "Internal server error",
						Code:  errors.CodeInternal,
					})
				}
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "Unauthorized",
					Code:  errors.CodeUnauthorized,
				})
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeySessionToken, token)

			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token from the request cookie.
func TokenFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// TokenFromContext returns the session token attached by RequireSession.
func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(ContextKeySessionToken).(string)
	return token
}

// UserIDFromContext returns the authenticated user id attached by RequireSession.
func UserIDFromContext(c echo.Context) (uint, bool) {
	userID, ok := c.Get(ContextKeyUserID).(uint)
	return userID, ok
}

// SetSessionCookie hands the session token to the client as an HTTP-only
// cookie expiring with the session.
func SetSessionCookie(c echo.Context, session *Session, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
