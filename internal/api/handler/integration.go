package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/internal/usecases/integrating"
	"github.com/mvacxx/dash/pkg/apiErrors"
	"github.com/mvacxx/dash/pkg/middleware"
)

type IntegrationRequest struct {
	Kind        domain.IntegrationKind `json:"type"`
	Credentials domain.Credentials     `json:"credentials"`
}

// ListIntegrations lista as contas de integração do usuário logado,
// opcionalmente filtradas por provedor via query string
func ListIntegrations(service integrating.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var kind *domain.IntegrationKind
		if rawKind := r.URL.Query().Get("type"); rawKind != "" {
			parsed := domain.IntegrationKind(rawKind)
			kind = &parsed
		}

		accounts, err := service.List(userClaims.UserID, kind)
		if err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

// ConnectIntegration registra uma nova conta de integração para o usuário
// logado
func ConnectIntegration(service integrating.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req IntegrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		account, err := service.Connect(userClaims.UserID, req.Kind, req.Credentials)
		if err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(account)
	}
}

// UpdateIntegration mescla novos campos nas credenciais de uma conta de
// integração do usuário logado
func UpdateIntegration(service integrating.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da integração não fornecido", nil)
			return
		}

		var req IntegrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		account, err := service.Update(userClaims.UserID, accountID, req.Kind, req.Credentials)
		if err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(account)
	}
}

// DisconnectIntegration remove uma conta de integração do usuário logado
func DisconnectIntegration(service integrating.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da integração não fornecido", nil)
			return
		}

		if err := service.Disconnect(userClaims.UserID, accountID); err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleIntegrationError trata erros de integrações e retorna a resposta
// apropriada
func handleIntegrationError(w http.ResponseWriter, err error) {
	var missingField *domain.MissingCredentialFieldError
	if errors.As(err, &missingField) {
		apiErrors.WriteError(w, apiErrors.ErrMissingCredential, missingField.Error(), map[string]any{
			"field": missingField.Field,
			"type":  missingField.Kind,
		})
		return
	}

	switch {
	case errors.Is(err, integrating.ErrIntegrationNotFound):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationNotFound, "Conta de integração não encontrada", nil)

	case errors.Is(err, integrating.ErrKindMismatch):
		apiErrors.WriteError(w, apiErrors.ErrIntegrationMismatch, "O provedor informado não corresponde ao da conta", nil)

	case errors.Is(err, integrating.ErrUnknownKind):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Provedor de integração desconhecido", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar integração", nil)
	}
}
