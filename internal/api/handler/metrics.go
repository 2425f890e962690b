package handler

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/internal/usecases/metricsync"
	"github.com/mvacxx/dash/pkg/apiErrors"
	"github.com/mvacxx/dash/pkg/middleware"
	"github.com/mvacxx/dash/pkg/utils"
)

// SyncMetrics dispara a sincronização das métricas de um dia para o usuário
// logado. Sem o parâmetro date, sincroniza o dia atual em UTC.
func SyncMetrics(service metricsync.MetricSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		day := time.Now().UTC()

		if rawDate := r.URL.Query().Get("date"); rawDate != "" {
			parsed, err := utils.ParseDate(rawDate)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Use o formato YYYY-MM-DD", nil)
				return
			}
			day = *parsed
		}

		metric, err := service.Sync(r.Context(), userClaims.UserID, day)
		if err != nil {
			handleSyncError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metric)
	}
}

// ListMetrics retorna as métricas do usuário logado no intervalo informado
// via query string (start_date e end_date, formato YYYY-MM-DD)
func ListMetrics(service metricsync.MetricSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		rawStart := r.URL.Query().Get("start_date")
		rawEnd := r.URL.Query().Get("end_date")
		if rawStart == "" || rawEnd == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar start_date e end_date", nil)
			return
		}

		startDate, err := utils.ParseDate(rawStart)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida. Use o formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(rawEnd)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida. Use o formato YYYY-MM-DD", nil)
			return
		}

		if endDate.Before(*startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date deve ser posterior a start_date", nil)
			return
		}

		summary, err := service.List(r.Context(), userClaims.UserID, *startDate, *endDate)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar métricas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// handleSyncError trata erros da sincronização de métricas e retorna a
// resposta apropriada
func handleSyncError(w http.ResponseWriter, err error) {
	var missingField *domain.MissingCredentialFieldError
	if errors.As(err, &missingField) {
		apiErrors.WriteError(w, apiErrors.ErrMissingCredential, missingField.Error(), map[string]any{
			"field": missingField.Field,
			"type":  missingField.Kind,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrProviderAuthorization), errors.Is(err, domain.ErrTokenRefresh):
		apiErrors.WriteError(w, apiErrors.ErrProviderAuth, err.Error(), nil)

	case errors.Is(err, domain.ErrProviderTransport), errors.Is(err, domain.ErrProvider):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar métricas", nil)
	}
}
