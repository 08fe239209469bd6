package http

import (
	"net/http"
	"time"

	"golang-stock-digest/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	swagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// Handlers groups every HTTP handler of the digest service.
type Handlers struct {
	Cron     *CronHandler
	Digest   *DigestHandler
	Research *ResearchHandler
	Profile  *ProfileHandler
}

// RouterOptions configures NewRouter. A zero RateLimit disables rate limiting.
type RouterOptions struct {
	RateLimit float64
	Burst     int
}

// NewRouter builds the echo instance with middleware and all routes.
func NewRouter(h Handlers, auth echo.MiddlewareFunc, log *logger.Logger, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(SecurityHeaders())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.Field("latency", v.Latency))
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	api := e.Group("/api")
	if opts.RateLimit > 0 {
		api.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(opts.RateLimit),
				Burst:     opts.Burst,
				ExpiresIn: 3 * time.Minute,
			}),
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "Too many requests"})
			},
		}))
	}

	h.Cron.RegisterRoutes(api.Group("/cron"))
	h.Digest.RegisterRoutes(api.Group("/digest", auth))
	h.Research.RegisterRoutes(api.Group("/research", auth))
	h.Profile.RegisterRoutes(api.Group("/profile", auth))
	h.Profile.RegisterDigestRoutes(api.Group("/digests", auth))

	return e
}
