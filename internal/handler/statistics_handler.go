package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/xtbfolio/xtbfolio/internal/service"
	"go.uber.org/zap"
)

// StatisticsHandler exposes the derived portfolio views.
type StatisticsHandler struct {
	logger            *zap.Logger
	statisticsService *service.StatisticsService
}

func NewStatisticsHandler(logger *zap.Logger, statisticsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		logger:            logger,
		statisticsService: statisticsService,
	}
}

// GetStats returns per-symbol portfolio statistics
// GET /api/statistics?sortBy=symbol&order=DESC&limit=10&offset=0
func (h *StatisticsHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	query := service.StatisticsQuery{
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
		Limit:  cast.ToInt(c.QueryParam("limit")),
		Offset: cast.ToInt(c.QueryParam("offset")),
	}

	page, err := h.statisticsService.GetPortfolioStats(ctx, query)
	if err != nil {
		h.logger.Error("failed to compute portfolio statistics", zap.Error(err))
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// GetTimeline returns the cumulative portfolio value series
// GET /api/statistics/timeline?sma=7
func (h *StatisticsHandler) GetTimeline(c echo.Context) error {
	ctx := c.Request().Context()

	points, err := h.statisticsService.GetPortfolioTimeline(ctx, cast.ToInt(c.QueryParam("sma")))
	if err != nil {
		h.logger.Error("failed to build portfolio timeline", zap.Error(err))
		return err
	}

	return c.JSON(http.StatusOK, points)
}

func (h *StatisticsHandler) RegisterRoutes(g *echo.Group) {
	statistics := g.Group("/statistics")

	statistics.GET("", h.GetStats)
	statistics.GET("/timeline", h.GetTimeline)
}
