package adsenseclient

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

func newTestClient(serverURL string) Client {
	cfg := &config.Config{
		AdSense: config.AdSense{
			BaseURL:                     serverURL,
			DefaultTokenLifetimeSeconds: 3600,
		},
	}
	return NewClient(cfg)
}

func TestAdSenseClient_FetchDailyEarnings(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr error
	}{
		{
			name:   "Relatório com valor retorna a receita do dia",
			status: http.StatusOK,
			body:   `{"rows":[{"cells":[{"value":"37.42"}]}]}`,
			want:   37.42,
		},
		{
			name:   "Relatório sem linhas retorna zero",
			status: http.StatusOK,
			body:   `{"rows":[]}`,
			want:   0,
		},
		{
			name:   "Linha sem células retorna zero",
			status: http.StatusOK,
			body:   `{"rows":[{"cells":[]}]}`,
			want:   0,
		},
		{
			name:    "Status 401 é erro de autorização",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"code":401,"status":"UNAUTHENTICATED"}}`,
			wantErr: domain.ErrProviderAuthorization,
		},
		{
			name:    "Status 403 é erro de autorização",
			status:  http.StatusForbidden,
			body:    `{"error":{"code":403,"status":"PERMISSION_DENIED"}}`,
			wantErr: domain.ErrProviderAuthorization,
		},
		{
			name:    "Status 500 é erro de provedor",
			status:  http.StatusInternalServerError,
			body:    `boom`,
			wantErr: domain.ErrProvider,
		},
		{
			name:    "Valor de receita inválido é erro de provedor",
			status:  http.StatusOK,
			body:    `{"rows":[{"cells":[{"value":"abc"}]}]}`,
			wantErr: domain.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/pub-0001/reports:generate", r.URL.Path)
				assert.Equal(t, "Bearer ads-token", r.Header.Get("Authorization"))
				assert.Equal(t, "ESTIMATED_EARNINGS", r.URL.Query().Get("metrics"))
				assert.Equal(t, "2026", r.URL.Query().Get("startDate.year"))
				assert.Equal(t, "8", r.URL.Query().Get("startDate.month"))
				assert.Equal(t, "28", r.URL.Query().Get("startDate.day"))

				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			creds := testCredentials(time.Now().Add(time.Hour))
			creds.AccessToken = "ads-token"

			got, err := client.FetchDailyEarnings(context.Background(), creds, day)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCredentialsFromAccount_CamposObrigatorios(t *testing.T) {
	complete := domain.Credentials{
		"account_id":    "pub-0001",
		"access_token":  "tok",
		"refresh_token": "refresh",
		"client_id":     "client",
		"client_secret": "secret",
		"token_expiry":  "2026-08-28T10:00:00Z",
	}

	t.Run("Credenciais completas extraem todos os campos", func(t *testing.T) {
		account := &domain.IntegrationAccount{
			Kind:        domain.IntegrationKindGoogleAdSense,
			Credentials: complete,
		}

		creds, err := CredentialsFromAccount(account)

		assert.NoError(t, err)
		assert.Equal(t, "pub-0001", creds.AccountID)
		assert.Equal(t, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC), creds.TokenExpiry)
	})

	t.Run("Expiração ausente fica zerada", func(t *testing.T) {
		credentials := domain.Credentials{}
		for k, v := range complete {
			credentials[k] = v
		}
		delete(credentials, "token_expiry")

		account := &domain.IntegrationAccount{
			Kind:        domain.IntegrationKindGoogleAdSense,
			Credentials: credentials,
		}

		creds, err := CredentialsFromAccount(account)

		assert.NoError(t, err)
		assert.True(t, creds.TokenExpiry.IsZero())
	})

	for _, field := range []string{"account_id", "access_token", "refresh_token", "client_id", "client_secret"} {
		t.Run("Campo obrigatório ausente: "+field, func(t *testing.T) {
			credentials := domain.Credentials{}
			for k, v := range complete {
				credentials[k] = v
			}
			delete(credentials, field)

			account := &domain.IntegrationAccount{
				Kind:        domain.IntegrationKindGoogleAdSense,
				Credentials: credentials,
			}

			_, err := CredentialsFromAccount(account)

			var missing *domain.MissingCredentialFieldError
			assert.ErrorAs(t, err, &missing)
			assert.Equal(t, field, missing.Field)
		})
	}
}
