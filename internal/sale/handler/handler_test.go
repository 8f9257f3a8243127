package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/event"
	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/fekuna/omnipos-repair-service/internal/sale"
	"github.com/fekuna/omnipos-repair-service/internal/sale/usecase"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

func newRouter(t *testing.T) (*gin.Engine, sale.UseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	local := storage.NewLocalRepository(localstore.NewMemoryStore(), sale.Schema, log)
	repo := storage.NewFallbackRepository[model.DailySale, storage.NoPatch](nil, local, log, storage.Config{})
	uc := usecase.NewSaleUseCase(repo, event.NewNopPublisher(), log)

	h := NewSaleHandler(uc, log)
	h.now = func() time.Time { return now }

	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r, uc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaleHandler_CreateValidation(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/sales", `{"type":"repair","description":"x","amount":0,"paymentMethod":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/sales", `{"type":"repair","description":"x","amount":10,"paymentMethod":"bitcoin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/sales", `{"type":"repair","description":"Cambio de batería","amount":10,"paymentMethod":"cash","date":"2024-05-01T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s model.DailySale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.NotEmpty(t, s.ID)
}

func TestSaleHandler_ListByDate(t *testing.T) {
	r, uc := newRouter(t)
	ctx := context.Background()
	uc.Add(ctx, model.DailySale{Date: now, Amount: 10, Type: model.SaleTypeRepair, PaymentMethod: model.PaymentCash})
	uc.Add(ctx, model.DailySale{Date: now.AddDate(0, 0, 1), Amount: 20, Type: model.SaleTypeRepair, PaymentMethod: model.PaymentCash})

	var list response.ListResponse[model.DailySale]
	w := do(r, http.MethodGet, "/api/v1/sales?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	w = do(r, http.MethodGet, "/api/v1/sales", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Total)

	w = do(r, http.MethodGet, "/api/v1/sales?date=01/05/2024", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_SummaryDefaultsToToday(t *testing.T) {
	r, uc := newRouter(t)
	uc.Add(context.Background(), model.DailySale{Date: now, Amount: 10, Type: model.SaleTypeRepair, PaymentMethod: model.PaymentCash})

	w := do(r, http.MethodGet, "/api/v1/sales/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var s model.DailySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "2024-05-01", s.Date)
	assert.Equal(t, 1, s.TotalSales)
}

func TestSaleHandler_Report(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/api/v1/sales/report?period=month", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rep model.SalesReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, model.PeriodMonth, rep.Period)
	assert.Len(t, rep.Daily, 7)

	w = do(r, http.MethodGet, "/api/v1/sales/report?period=decade", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
