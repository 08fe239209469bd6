package http

import (
	"net/http"
	"strings"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/service"
	"golang-stock-digest/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResearchHandler serves single-ticker research for trying out the provider.
type ResearchHandler struct {
	researchService service.ResearchService
	logger          *logger.Logger
}

// NewResearchHandler creates a new ResearchHandler.
func NewResearchHandler(researchService service.ResearchService, logger *logger.Logger) *ResearchHandler {
	return &ResearchHandler{researchService: researchService, logger: logger}
}

// RegisterRoutes registers the research routes to the Echo group.
func (h *ResearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/test", h.TestTicker)
}

// TestTicker godoc
// @Summary Research one ticker
// @Description Runs the research prompt for a single ticker and returns the raw result
// @Tags research
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ResearchTestRequest  true  "Ticker to research"
// @Success 200 {object} dto.StockResearchResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research/test [post]
func (h *ResearchHandler) TestTicker(c echo.Context) error {
	var req dto.ResearchTestRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Ticker) == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
	}

	ticker := service.NormalizeTicker(req.Ticker)
	if !dto.IsValidTicker(ticker) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ticker format"})
	}

	result, err := h.researchService.Research(c.Request().Context(), ticker, nil)
	if err != nil {
		h.logger.Error("Research test error", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to research stock"})
	}
	return c.JSON(http.StatusOK, result)
}
