package adsenseclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/mvacxx/dash/infrastructure/repository/mocks"
	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
)

func testCredentials(expiry time.Time) *Credentials {
	return &Credentials{
		AccountID:    "pub-0001",
		AccessToken:  "old-token",
		RefreshToken: "refresh-token",
		ClientID:     "client",
		ClientSecret: "secret",
		TokenExpiry:  expiry,
	}
}

func newTestTokenManager(tokenURL string, persister TokenPersister) TokenManager {
	cfg := &config.Config{
		AdSense: config.AdSense{
			TokenURL:                    tokenURL,
			DefaultTokenLifetimeSeconds: 3600,
		},
	}
	return NewTokenManager(cfg, persister)
}

func TestTokenManager_EnsureValidToken(t *testing.T) {
	tests := []struct {
		name        string
		expiry      time.Time
		wantRefresh bool
	}{
		{
			name:        "Token com folga não é renovado",
			expiry:      time.Now().Add(time.Hour),
			wantRefresh: false,
		},
		{
			name:        "Token dentro da margem de expiração é renovado",
			expiry:      time.Now().Add(2 * time.Minute),
			wantRefresh: true,
		},
		{
			name:        "Token já expirado é renovado",
			expiry:      time.Now().Add(-time.Minute),
			wantRefresh: true,
		},
		{
			name:        "Expiração desconhecida é tratada como expirado",
			expiry:      time.Time{},
			wantRefresh: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var calls int
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
				assert.Equal(t, "refresh-token", r.PostForm.Get("refresh_token"))
				assert.Equal(t, "client", r.PostForm.Get("client_id"))
				assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"access_token":"new-token","token_type":"Bearer","expires_in":3600}`))
			}))
			defer server.Close()

			persister := repomocks.NewMockIntegrationRepository(ctrl)
			if tt.wantRefresh {
				persister.EXPECT().
					MergeCredentialFields("pub-0001", gomock.Any()).
					DoAndReturn(func(id string, fields map[string]any) error {
						assert.Equal(t, "new-token", fields["access_token"])
						assert.NotEmpty(t, fields["token_expiry"])
						return nil
					})
			}

			tm := newTestTokenManager(server.URL, persister)
			creds := testCredentials(tt.expiry)

			refreshed, err := tm.EnsureValidToken(context.Background(), "pub-0001", creds)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRefresh, refreshed)

			if tt.wantRefresh {
				assert.Equal(t, 1, calls)
				assert.Equal(t, "new-token", creds.AccessToken)
				assert.WithinDuration(t, time.Now().Add(time.Hour), creds.TokenExpiry, 5*time.Second)
			} else {
				assert.Equal(t, 0, calls)
				assert.Equal(t, "old-token", creds.AccessToken)
			}
		})
	}
}

func TestTokenManager_RespostaSemExpiresInUsaVidaUtilPadrao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-token","token_type":"Bearer"}`))
	}))
	defer server.Close()

	persister := repomocks.NewMockIntegrationRepository(ctrl)
	persister.EXPECT().
		MergeCredentialFields("pub-0001", gomock.Any()).
		Return(nil)

	tm := newTestTokenManager(server.URL, persister)
	creds := testCredentials(time.Time{})

	refreshed, err := tm.EnsureValidToken(context.Background(), "pub-0001", creds)

	assert.NoError(t, err)
	assert.True(t, refreshed)
	// Vida útil padrão configurada: 3600 segundos
	assert.WithinDuration(t, time.Now().Add(time.Hour), creds.TokenExpiry, 5*time.Second)
}

func TestTokenManager_FalhaNoEndpointDeToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	persister := repomocks.NewMockIntegrationRepository(ctrl)

	tm := newTestTokenManager(server.URL, persister)
	creds := testCredentials(time.Time{})

	refreshed, err := tm.EnsureValidToken(context.Background(), "pub-0001", creds)

	assert.False(t, refreshed)
	assert.True(t, errors.Is(err, domain.ErrTokenRefresh))
	assert.Equal(t, "old-token", creds.AccessToken)
}

func TestTokenManager_ForceRefreshRenovaSempre(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"forced-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	persister := repomocks.NewMockIntegrationRepository(ctrl)
	persister.EXPECT().
		MergeCredentialFields("pub-0001", gomock.Any()).
		Return(nil)

	tm := newTestTokenManager(server.URL, persister)

	// Token ainda dentro da validade: ForceRefresh renova mesmo assim
	creds := testCredentials(time.Now().Add(time.Hour))

	err := tm.ForceRefresh(context.Background(), "pub-0001", creds)

	assert.NoError(t, err)
	assert.Equal(t, "forced-token", creds.AccessToken)
}

func TestTokenManager_FalhaAoPersistirPropagaErro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-token","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	persister := repomocks.NewMockIntegrationRepository(ctrl)
	persister.EXPECT().
		MergeCredentialFields("pub-0001", gomock.Any()).
		Return(errors.New("conexão perdida"))

	tm := newTestTokenManager(server.URL, persister)
	creds := testCredentials(time.Time{})

	_, err := tm.EnsureValidToken(context.Background(), "pub-0001", creds)

	assert.Error(t, err)
}
