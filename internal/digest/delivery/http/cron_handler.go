package http

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"time"

	"golang-stock-digest/internal/digest/service"
	"golang-stock-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CronHandler exposes the digest cycle to an external scheduler.
type CronHandler struct {
	digestService service.DigestService
	expected      [sha256.Size]byte
	timeout       time.Duration
	logger        *logger.Logger
	now           func() time.Time
}

// NewCronHandler creates a new CronHandler guarded by secret.
func NewCronHandler(digestService service.DigestService, secret string, timeout time.Duration, logger *logger.Logger) *CronHandler {
	return &CronHandler{
		digestService: digestService,
		expected:      sha256.Sum256([]byte("Bearer " + secret)),
		timeout:       timeout,
		logger:        logger,
		now:           time.Now,
	}
}

// RegisterRoutes registers the cron routes to the Echo group.
func (h *CronHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.RunCycle)
	g.POST("", h.RunCycle)
}

// authorized compares digests of the header and the expected value, so the
// comparison time depends on neither the length nor the matching prefix.
func (h *CronHandler) authorized(header string) bool {
	if header == "" {
		return false
	}
	got := sha256.Sum256([]byte(header))
	return subtle.ConstantTimeCompare(got[:], h.expected[:]) == 1
}

// RunCycle godoc
// @Summary Run a digest cycle
// @Description Sends digests to every user scheduled in the current UTC hour
// @Tags cron
// @Produce  json
// @Param   Authorization  header  string  true  "Bearer <CRON_SECRET>"
// @Success 200 {object} dto.CycleReport
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cron [get]
// @Router /cron [post]
func (h *CronHandler) RunCycle(c echo.Context) error {
	if !h.authorized(c.Request().Header.Get(echo.HeaderAuthorization)) {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}

	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.digestService.RunDigestCycle(ctx, h.now())
	if err != nil {
		h.logger.Error("Cron job error", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal error"})
	}

	h.logger.Info("Cron job finished",
		logger.StringField("message", report.Message),
		logger.IntField("users_processed", report.UsersProcessed))
	return c.JSON(http.StatusOK, report)
}
