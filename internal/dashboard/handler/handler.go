package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/dashboard"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: log, now: time.Now}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Summary)
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	s, err := h.uc.Summary(c.Request.Context(), h.now())
	if err != nil {
		h.logger.Warn("Dashboard summary aborted", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "dashboard unavailable", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
