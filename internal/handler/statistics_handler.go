package handler

import (
	"net/http"

	"acservice/internal/middleware"
	"acservice/internal/model"
	"acservice/internal/service"
	"acservice/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	auth              *middleware.Authenticator
}

func NewStatisticsHandler(statisticsService service.StatisticsService, auth *middleware.Authenticator) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, auth: auth}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.auth.RequireRole(model.RoleAdmin), h.GetDashboard)
}

// @Summary      Get dashboard counters
// @Description  Users, complaints, active complaints, money collected and outstanding balances
// @Tags         Statistics
// @Produce      json
// @Success      200 {object} response.Response{data=model.DashboardStats}
// @Failure      401 {object} response.Response "Unauthorized"
// @Failure      403 {object} response.Response "Forbidden"
// @Failure      500 {object} response.Response "Internal server error"
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statisticsService.GetDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
