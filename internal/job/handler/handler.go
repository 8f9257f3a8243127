package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-repair-service/internal/job"
	"github.com/fekuna/omnipos-repair-service/internal/job/dto"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JobHandler struct {
	uc     job.UseCase
	labels dto.Labeler
	logger logger.ZapLogger
}

func NewJobHandler(uc job.UseCase, labels dto.Labeler, log logger.ZapLogger) *JobHandler {
	return &JobHandler{
		uc:     uc,
		labels: labels,
		logger: log,
	}
}

func (h *JobHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/jobs")
	g.GET("", h.List)
	g.POST("", h.Save)
	g.GET("/counts", h.Counts)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Save)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *JobHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid status filter", err)
		return
	}

	jobs := []model.Job{}
	for _, j := range h.uc.GetAll(c.Request.Context()) {
		if q.Status == "" || j.Status == q.Status {
			jobs = append(jobs, j)
		}
	}
	c.JSON(http.StatusOK, response.NewList(dto.ToJobResponses(jobs, h.labels, c.GetHeader("Accept-Language"))))
}

func (h *JobHandler) Get(c *gin.Context) {
	j := h.uc.Get(c.Request.Context(), c.Param("id"))
	if j == nil {
		response.Error(c, http.StatusNotFound, "job not found", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(*j, h.labels, c.GetHeader("Accept-Language")))
}

// Save runs the job form workflow. PUT /jobs/:id takes the id from the path.
func (h *JobHandler) Save(c *gin.Context) {
	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job", err)
		return
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}

	res := h.uc.Save(c.Request.Context(), req.ToInput())
	if len(res.Warnings) > 0 {
		h.logger.Info("Job saved with warnings", zap.String("id", res.Job.ID), zap.Strings("warnings", res.Warnings))
	}

	code := http.StatusOK
	if req.ID == "" {
		code = http.StatusCreated
	}
	c.JSON(code, dto.ToSaveResponse(res, h.labels, c.GetHeader("Accept-Language")))
}

func (h *JobHandler) Update(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid job update", err)
		return
	}

	j := h.uc.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if j == nil {
		response.Error(c, http.StatusNotFound, "job not found", nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(*j, h.labels, c.GetHeader("Accept-Language")))
}

func (h *JobHandler) Delete(c *gin.Context) {
	h.uc.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Counts(c *gin.Context) {
	c.JSON(http.StatusOK, h.uc.Counts(c.Request.Context()))
}
