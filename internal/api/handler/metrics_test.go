package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mvacxx/dash/internal/domain"
	syncmocks "github.com/mvacxx/dash/internal/usecases/metricsync/mocks"
	"github.com/mvacxx/dash/pkg/middleware"
)

func authenticatedRequest(method, target string, userID int) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	claims := &domain.Claims{UserID: userID}
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func TestSyncMetrics_DataViaQueryString(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := syncmocks.NewMockMetricSyncer(ctrl)

	expectedDay := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	service.EXPECT().
		Sync(gomock.Any(), 1, expectedDay).
		Return(&domain.DailyMetric{UserID: 1, Date: expectedDay}, nil)

	req := authenticatedRequest(http.MethodPost, "/v1/metrics/sync?date=2026-08-28", 1)
	rec := httptest.NewRecorder()

	SyncMetrics(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncMetrics_SemDataUsaODiaAtual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := syncmocks.NewMockMetricSyncer(ctrl)

	var syncedDay time.Time
	service.EXPECT().
		Sync(gomock.Any(), 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, day time.Time) (*domain.DailyMetric, error) {
			syncedDay = day
			return &domain.DailyMetric{UserID: 1, Date: day}, nil
		})

	req := authenticatedRequest(http.MethodPost, "/v1/metrics/sync", 1)
	rec := httptest.NewRecorder()

	SyncMetrics(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.WithinDuration(t, time.Now().UTC(), syncedDay, time.Minute)
}

func TestSyncMetrics_DataInvalidaRetornaErroDeFormato(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := syncmocks.NewMockMetricSyncer(ctrl)

	req := authenticatedRequest(http.MethodPost, "/v1/metrics/sync?date=28-08-2026", 1)
	rec := httptest.NewRecorder()

	SyncMetrics(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_003")
}
