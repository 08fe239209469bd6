package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-stock-digest/pkg/common"
	"golang-stock-digest/pkg/logger"
	"golang-stock-digest/pkg/supabase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var errUnauthorized = echo.Map{"error": "Unauthorized"}

// AuthMiddleware rejects requests without a valid session. The access token
// is read from the Authorization bearer header or the session cookie.
func AuthMiddleware(authClient supabase.AuthClient, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := accessToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}

			user, err := authClient.GetUser(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, supabase.ErrUnauthorized) {
					log.Error("Failed to verify session", logger.ErrorField(err))
				}
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}

			c.Set(common.ContextKeyUser, user)
			return next(c)
		}
	}
}

func accessToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(common.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// currentUser returns the user stored by AuthMiddleware.
func currentUser(c echo.Context) *supabase.User {
	user, _ := c.Get(common.ContextKeyUser).(*supabase.User)
	return user
}

// SecurityHeaders sets the browser hardening headers on every response.
func SecurityHeaders() echo.MiddlewareFunc {
	secure := middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := secure(next)
		return func(c echo.Context) error {
			c.Response().Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")
			return h(c)
		}
	}
}
