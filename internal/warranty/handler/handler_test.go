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
	"github.com/fekuna/omnipos-repair-service/internal/i18n"
	"github.com/fekuna/omnipos-repair-service/internal/localstore"
	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/fekuna/omnipos-repair-service/internal/model"
	"github.com/fekuna/omnipos-repair-service/internal/response"
	"github.com/fekuna/omnipos-repair-service/internal/storage"
	"github.com/fekuna/omnipos-repair-service/internal/warranty"
	"github.com/fekuna/omnipos-repair-service/internal/warranty/dto"
	"github.com/fekuna/omnipos-repair-service/internal/warranty/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRouter(t *testing.T) (*gin.Engine, warranty.UseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	local := storage.NewLocalRepository(localstore.NewMemoryStore(), warranty.Schema, log)
	repo := storage.NewFallbackRepository[model.Warranty, model.WarrantyPatch](nil, local, log, storage.Config{})
	uc := usecase.NewWarrantyUseCase(repo, event.NewNopPublisher(), log)

	tr, err := i18n.New("en")
	require.NoError(t, err)
	h := NewWarrantyHandler(uc, tr, log)
	h.now = func() time.Time { return now }

	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r, uc
}

func do(r http.Handler, method, path, body, lang string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWarrantyHandler_ListWithLabels(t *testing.T) {
	r, uc := newRouter(t)
	uc.Add(context.Background(), model.NewWarrantyForJob(model.Job{ID: "j1", WarrantyDays: 30}, now.AddDate(0, 0, -25)))
	uc.Add(context.Background(), model.NewWarrantyForJob(model.Job{ID: "j2", WarrantyDays: 30}, now))

	w := do(r, http.MethodGet, "/api/v1/warranties", "", "es")
	require.Equal(t, http.StatusOK, w.Code)
	var list response.ListResponse[dto.WarrantyResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 2, list.Total)
	assert.Equal(t, model.WarrantyStatusExpiringSoon, list.Items[0].Status)
	assert.Equal(t, "Por vencer", list.Items[0].StatusLabel)
	assert.Equal(t, 5, list.Items[0].DaysRemaining)
	assert.Equal(t, "Activa", list.Items[1].StatusLabel)

	w = do(r, http.MethodGet, "/api/v1/warranties?status=active", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "j2", list.Items[0].JobID)

	w = do(r, http.MethodGet, "/api/v1/warranties/expiring", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "j1", list.Items[0].JobID)
}

func TestWarrantyHandler_Claim(t *testing.T) {
	r, uc := newRouter(t)
	created := uc.Add(context.Background(), model.NewWarrantyForJob(model.Job{ID: "j1", WarrantyDays: 30}, now))

	w := do(r, http.MethodPost, "/api/v1/warranties/"+created.ID+"/claim", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/warranties/"+created.ID+"/claim", `{"reason":"no enciende"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.WarrantyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.WarrantyStatusClaimed, got.Status)
	assert.False(t, got.IsActive)

	w = do(r, http.MethodPost, "/api/v1/warranties/"+created.ID+"/claim", `{"reason":"again"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/v1/warranties/missing/claim", `{"reason":"x"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
