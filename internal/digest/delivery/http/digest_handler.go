package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/service"
	"golang-stock-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DigestHandler handles on-demand digest requests.
type DigestHandler struct {
	digestService service.DigestService
	timeout       time.Duration
	logger        *logger.Logger
}

// NewDigestHandler creates a new DigestHandler.
func NewDigestHandler(digestService service.DigestService, timeout time.Duration, logger *logger.Logger) *DigestHandler {
	return &DigestHandler{digestService: digestService, timeout: timeout, logger: logger}
}

// RegisterRoutes registers the digest routes to the Echo group.
func (h *DigestHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/send", h.SendNow)
}

// SendNow godoc
// @Summary Send a digest now
// @Description Researches the caller's watchlist and emails the digest immediately
// @Tags digest
// @Produce  json
// @Success 200 {object} dto.SendDigestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digest/send [post]
func (h *DigestHandler) SendNow(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}

	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	tickers, err := h.digestService.SendNow(ctx, user.ID, user.Email)
	if err != nil {
		if errors.Is(err, service.ErrNoTickers) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No tickers configured"})
		}
		h.logger.Error("Error sending digest", logger.ErrorField(err), logger.StringField("user_id", user.ID))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to send digest"})
	}

	return c.JSON(http.StatusOK, dto.SendDigestResponse{
		Success: true,
		Message: "Digest sent successfully",
		Tickers: tickers,
	})
}
