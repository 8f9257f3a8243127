package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-repair-service/internal/inventory"
	"github.com/fekuna/omnipos-repair-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/inventory")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/low-stock", h.ListLowStock)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/adjust", h.AdjustStock)
}

func (h *InventoryHandler) List(c *gin.Context) {
	items := h.uc.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, response.NewList(dto.ToItemResponses(items)))
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items := h.uc.ListLowStock(c.Request.Context())
	c.JSON(http.StatusOK, response.NewList(dto.ToItemResponses(items)))
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid inventory item", err)
		return
	}

	item := h.uc.Add(c.Request.Context(), req.ToModel())
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid inventory update", err)
		return
	}

	item := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if item == nil {
		response.Error(c, http.StatusNotFound, "inventory item not found", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(*item))
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	h.uc.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid stock adjustment", err)
		return
	}

	item, err := h.uc.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta, req.Reason)
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "inventory item not found", err)
		return
	case errors.Is(err, inventory.ErrInsufficientStock):
		response.Error(c, http.StatusConflict, "insufficient stock", err)
		return
	case err != nil:
		h.logger.Error("Failed to adjust stock", zap.String("id", c.Param("id")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to adjust stock", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(*item))
}
