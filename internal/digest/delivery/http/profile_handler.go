package http

import (
	"errors"
	"net/http"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/service"
	"golang-stock-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests for the caller's profile.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// RegisterRoutes registers the profile routes to the Echo group.
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetProfile)
	g.PUT("/tickers", h.UpdateTickers)
	g.PUT("/schedule", h.UpdateSchedule)
	g.PUT("/pause", h.UpdatePause)
}

// RegisterDigestRoutes registers the digest history routes to the Echo group.
func (h *ProfileHandler) RegisterDigestRoutes(g *echo.Group) {
	g.GET("", h.RecentDigests)
}

func (h *ProfileHandler) fail(c echo.Context, err error, msg string) error {
	if errors.Is(err, service.ErrInvalidTicker) || errors.Is(err, service.ErrInvalidSchedule) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	h.logger.Error(msg, logger.ErrorField(err))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
}

// GetProfile godoc
// @Summary Get profile
// @Description Get the caller's watchlist, schedule and next digest time
// @Tags profile
// @Produce  json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}
	res, err := h.profileService.GetProfile(c.Request().Context(), user.ID, user.Email)
	if err != nil {
		return h.fail(c, err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateTickers godoc
// @Summary Replace watchlist
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   request  body    dto.UpdateTickersRequest  true  "Ordered tickers"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile/tickers [put]
func (h *ProfileHandler) UpdateTickers(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}
	var req dto.UpdateTickersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
	}
	res, err := h.profileService.UpdateTickers(c.Request().Context(), user.ID, user.Email, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update tickers")
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateSchedule godoc
// @Summary Replace delivery schedule
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   request  body    dto.UpdateScheduleRequest  true  "Schedule"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile/schedule [put]
func (h *ProfileHandler) UpdateSchedule(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}
	var req dto.UpdateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
	}
	res, err := h.profileService.UpdateSchedule(c.Request().Context(), user.ID, user.Email, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update schedule")
	}
	return c.JSON(http.StatusOK, res)
}

// UpdatePause godoc
// @Summary Pause or resume emails
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   request  body    dto.UpdatePauseRequest  true  "Pause flag"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile/pause [put]
func (h *ProfileHandler) UpdatePause(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}
	var req dto.UpdatePauseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
	}
	res, err := h.profileService.SetPaused(c.Request().Context(), user.ID, user.Email, req.Paused)
	if err != nil {
		return h.fail(c, err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, res)
}

// RecentDigests godoc
// @Summary Recent digests
// @Description Get the caller's five most recent digests
// @Tags digest
// @Produce  json
// @Success 200 {array} dto.DigestResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /digests [get]
func (h *ProfileHandler) RecentDigests(c echo.Context) error {
	user := currentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errUnauthorized)
	}
	res, err := h.profileService.RecentDigests(c.Request().Context(), user.ID)
	if err != nil {
		return h.fail(c, err, "Failed to load digests")
	}
	return c.JSON(http.StatusOK, res)
}
