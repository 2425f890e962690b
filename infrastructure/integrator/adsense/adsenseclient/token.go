package adsenseclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/domain"
)

// TokenResponse representa a resposta do Google ao trocar um refresh token
// por um novo access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeRefreshToken troca um refresh token por um novo access token no
// endpoint de token do Google
func ExchangeRefreshToken(ctx context.Context, tokenURL string, creds *Credentials) (*TokenResponse, error) {
	if creds.RefreshToken == "" {
		return nil, errors.Wrap(domain.ErrTokenRefresh, "refresh token não pode ser vazio")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("refresh_token", creds.RefreshToken)
	form.Add("client_id", creds.ClientID)
	form.Add("client_secret", creds.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		logrus.Errorf("Erro renovando token do AdSense. Status: %d, Resposta: %s", resp.StatusCode, string(body))
		return nil, errors.Wrapf(domain.ErrTokenRefresh, "status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, errors.Wrap(domain.ErrTokenRefresh, err.Error())
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.Wrap(domain.ErrTokenRefresh, "token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// CalculateTokenExpiration calcula a data de expiração do token. Quando o
// provedor omite expires_in usamos a vida útil padrão configurada.
func CalculateTokenExpiration(now time.Time, expiresIn, defaultLifetimeSeconds int64) time.Time {
	if expiresIn <= 0 {
		expiresIn = defaultLifetimeSeconds
	}
	return now.UTC().Add(time.Duration(expiresIn) * time.Second)
}
