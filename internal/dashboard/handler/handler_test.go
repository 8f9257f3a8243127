package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/dashboard"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	summary dashboard.Summary
	err     error
	at      time.Time
}

func (f *fakeUseCase) Summary(_ context.Context, now time.Time) (dashboard.Summary, error) {
	f.at = now
	return f.summary, f.err
}

func newRouter(uc dashboard.UseCase, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(uc, logger.NewNop())
	h.now = func() time.Time { return now }
	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r
}

func TestSummary(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{summary: dashboard.Summary{TotalItems: 4, PendingJobs: 2, TodayRevenue: 80}}
	r := newRouter(uc, now)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got dashboard.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uc.summary, got)
	assert.Equal(t, now, uc.at)
}

func TestSummary_Cancelled(t *testing.T) {
	r := newRouter(&fakeUseCase{err: context.Canceled}, time.Now())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
