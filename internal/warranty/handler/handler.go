package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/fekuna/omnipos-repair-service/internal/warranty/dto"
	"github.com/gin-gonic/gin"
)

type WarrantyHandler struct {
	uc     warranty.UseCase
	labels dto.Labeler
	logger logger.ZapLogger
	now    func() time.Time
}

func NewWarrantyHandler(uc warranty.UseCase, labels dto.Labeler, log logger.ZapLogger) *WarrantyHandler {
	return &WarrantyHandler{
		uc:     uc,
		labels: labels,
		logger: log,
		now:    time.Now,
	}
}

func (h *WarrantyHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/warranties")
	g.GET("", h.List)
	g.GET("/expiring", h.ListExpiring)
	g.POST("/:id/claim", h.Claim)
}

// List supports ?status= to filter by derived status.
func (h *WarrantyHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid status filter", err)
		return
	}

	now := h.now()
	all := h.uc.GetAll(c.Request.Context())
	ws := []model.Warranty{}
	for _, w := range all {
		if q.Status == "" || w.Status(now) == model.WarrantyStatus(q.Status) {
			ws = append(ws, w)
		}
	}
	lang := c.GetHeader("Accept-Language")
	c.JSON(http.StatusOK, response.NewList(dto.ToWarrantyResponses(ws, now, h.labels, lang)))
}

func (h *WarrantyHandler) ListExpiring(c *gin.Context) {
	now := h.now()
	ws := h.uc.ListExpiringSoon(c.Request.Context(), now)
	lang := c.GetHeader("Accept-Language")
	c.JSON(http.StatusOK, response.NewList(dto.ToWarrantyResponses(ws, now, h.labels, lang)))
}

func (h *WarrantyHandler) Claim(c *gin.Context) {
	var req dto.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "claim reason is required", err)
		return
	}

	w, err := h.uc.ProcessClaim(c.Request.Context(), c.Param("id"), req.Reason)
	switch {
	case errors.Is(err, warranty.ErrWarrantyNotFound):
		response.Error(c, http.StatusNotFound, "warranty not found", err)
		return
	case errors.Is(err, warranty.ErrAlreadyClaimed):
		response.Error(c, http.StatusConflict, "warranty already claimed", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to process claim", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWarrantyResponse(*w, h.now(), h.labels, c.GetHeader("Accept-Language")))
}
