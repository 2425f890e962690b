package fbclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
)

func testCredentials() *Credentials {
	return &Credentials{
		AccountID:   "123456",
		AccessToken: "fb-token",
		APIVersion:  "v18.0",
	}
}

func newTestClient(serverURL string) Client {
	cfg := &config.Config{
		Facebook: config.Facebook{
			BaseURL: serverURL,
			Version: "v18.0",
		},
	}
	return NewClient(cfg)
}

func TestFacebookClient_FetchDailyMetrics(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      int
		body        string
		wantSpend   float64
		wantRevenue float64
		wantErr     error
	}{
		{
			name:        "Dia sem veiculação retorna contribuição zero",
			status:      http.StatusOK,
			body:        `{"data":[]}`,
			wantSpend:   0,
			wantRevenue: 0,
		},
		{
			name:   "Soma apenas ações de conversão como receita",
			status: http.StatusOK,
			body: `{"data":[{"spend":"50.25","actions":[
				{"action_type":"offsite_conversion","value":"30"},
				{"action_type":"offsite_conversion.purchase","value":"50.75"},
				{"action_type":"link_click","value":"999"}
			]}]}`,
			wantSpend:   50.25,
			wantRevenue: 80.75,
		},
		{
			name:   "Múltiplas linhas são agregadas",
			status: http.StatusOK,
			body: `{"data":[
				{"spend":"10","actions":[{"action_type":"offsite_conversion","value":"5"}]},
				{"spend":"20","actions":[{"action_type":"offsite_conversion.purchase","value":"15"}]}
			]}`,
			wantSpend:   30,
			wantRevenue: 20,
		},
		{
			name:        "Linha sem ações contribui só com gasto",
			status:      http.StatusOK,
			body:        `{"data":[{"spend":"12.50"}]}`,
			wantSpend:   12.5,
			wantRevenue: 0,
		},
		{
			name:    "Código 190 é classificado como erro de autorização",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"fbtrace_id":"abc"}}`,
			wantErr: domain.ErrProviderAuthorization,
		},
		{
			name:    "Status 401 sem corpo estruturado é erro de autorização",
			status:  http.StatusUnauthorized,
			body:    `unauthorized`,
			wantErr: domain.ErrProviderAuthorization,
		},
		{
			name:    "Erro genérico da API é erro de provedor",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"Unsupported request","type":"GraphMethodException","code":100,"fbtrace_id":"def"}}`,
			wantErr: domain.ErrProvider,
		},
		{
			name:    "Status 500 é erro de provedor",
			status:  http.StatusInternalServerError,
			body:    `boom`,
			wantErr: domain.ErrProvider,
		},
		{
			name:    "Valor numérico inválido é erro de provedor",
			status:  http.StatusOK,
			body:    `{"data":[{"spend":"abc"}]}`,
			wantErr: domain.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v18.0/act_123456/insights", r.URL.Path)
				assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
				assert.Equal(t, "spend,actions", r.URL.Query().Get("fields"))
				assert.Equal(t, "fb-token", r.URL.Query().Get("access_token"))
				assert.Contains(t, r.URL.Query().Get("time_range"), "2026-08-28")

				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			result, err := client.FetchDailyMetrics(context.Background(), testCredentials(), day)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.wantSpend, result.Spend, 1e-9)
			assert.InDelta(t, tt.wantRevenue, result.Revenue, 1e-9)
		})
	}
}

func TestFacebookClient_FetchDailyMetrics_BusinessID(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		businessID string
	}{
		{
			name:       "Conta vinculada a um negócio envia business_id",
			businessID: "biz-789",
		},
		{
			name:       "Conta sem negócio omite o parâmetro business_id",
			businessID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.businessID != "" {
					assert.Equal(t, tt.businessID, r.URL.Query().Get("business_id"))
				} else {
					assert.False(t, r.URL.Query().Has("business_id"))
				}

				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"data":[]}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			creds := testCredentials()
			creds.BusinessID = tt.businessID

			_, err := client.FetchDailyMetrics(context.Background(), creds, day)
			assert.NoError(t, err)
		})
	}
}

func TestCredentialsFromAccount(t *testing.T) {
	tests := []struct {
		name        string
		credentials domain.Credentials
		wantVersion string
		wantField   string
	}{
		{
			name: "Credenciais completas",
			credentials: domain.Credentials{
				"access_token": "tok",
				"account_id":   "123",
				"api_version":  "v19.0",
			},
			wantVersion: "v19.0",
		},
		{
			name: "Versão ausente usa o padrão configurado",
			credentials: domain.Credentials{
				"access_token": "tok",
				"account_id":   "123",
			},
			wantVersion: "v18.0",
		},
		{
			name: "Token ausente é credencial obrigatória faltando",
			credentials: domain.Credentials{
				"account_id": "123",
			},
			wantField: "access_token",
		},
		{
			name: "ID da conta ausente é credencial obrigatória faltando",
			credentials: domain.Credentials{
				"access_token": "tok",
			},
			wantField: "account_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &domain.IntegrationAccount{
				ID:          "fb0001",
				UserID:      1,
				Kind:        domain.IntegrationKindFacebookAds,
				Credentials: tt.credentials,
			}

			creds, err := CredentialsFromAccount(account, "v18.0")

			if tt.wantField != "" {
				var missing *domain.MissingCredentialFieldError
				assert.ErrorAs(t, err, &missing)
				assert.Equal(t, tt.wantField, missing.Field)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantVersion, creds.APIVersion)
		})
	}
}
