package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/sale/dto"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
		now:    time.Now,
	}
}

func (h *SaleHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/sales")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/summary", h.Summary)
	g.GET("/report", h.Report)
	g.DELETE("/:id", h.Delete)
}

// List returns every sale, or only the sales of ?date=YYYY-MM-DD.
func (h *SaleHandler) List(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date", err)
		return
	}

	ctx := c.Request.Context()
	if q.Date == "" {
		c.JSON(http.StatusOK, response.NewList(h.uc.GetAll(ctx)))
		return
	}
	c.JSON(http.StatusOK, response.NewList(h.uc.GetByDate(ctx, q.Day(h.now()))))
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid sale", err)
		return
	}

	s := h.uc.Add(c.Request.Context(), req.ToModel())
	c.JSON(http.StatusCreated, s)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	h.uc.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *SaleHandler) Summary(c *gin.Context) {
	var q dto.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date", err)
		return
	}
	c.JSON(http.StatusOK, h.uc.DailySummary(c.Request.Context(), q.Day(h.now())))
}

func (h *SaleHandler) Report(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid period", err)
		return
	}
	if q.Period == "" {
		q.Period = model.PeriodWeek
	}

	report, err := h.uc.Report(c.Request.Context(), q.Period, h.now())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid period", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
