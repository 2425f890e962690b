package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/usecases/notifying"
	"github.com/mvacxx/dash/pkg/apiErrors"
	"github.com/mvacxx/dash/pkg/middleware"
)

// ListNotifications retorna as notificações não lidas do usuário logado
func ListNotifications(service notifying.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		notifications, err := service.ListUnread(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar notificações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notifications)
	}
}

// MarkNotificationRead marca uma notificação do usuário logado como lida
func MarkNotificationRead(service notifying.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		rawID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		notificationID, err := strconv.Atoi(rawID)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID de notificação inválido", nil)
			return
		}

		if err := service.MarkRead(notificationID, userClaims.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Notificação não encontrada", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao marcar notificação como lida", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
