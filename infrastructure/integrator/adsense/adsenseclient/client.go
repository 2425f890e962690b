package adsenseclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 30 * time.Second

// Credentials são as credenciais OAuth de uma conta do Google AdSense
// extraídas do documento jsonb da integração
type Credentials struct {
	AccountID    string
	AccessToken  string
	RefreshToken string
	ClientID     string
	ClientSecret string
	TokenExpiry  time.Time
}

// CredentialsFromAccount valida e extrai as credenciais de uma conta de
// integração. A data de expiração é opcional; ausente significa expirado.
func CredentialsFromAccount(account *domain.IntegrationAccount) (*Credentials, error) {
	creds := &Credentials{}

	var err error
	if creds.AccountID, err = account.Credentials.RequireString(account.Kind, "account_id"); err != nil {
		return nil, err
	}
	if creds.AccessToken, err = account.Credentials.RequireString(account.Kind, "access_token"); err != nil {
		return nil, err
	}
	if creds.RefreshToken, err = account.Credentials.RequireString(account.Kind, "refresh_token"); err != nil {
		return nil, err
	}
	if creds.ClientID, err = account.Credentials.RequireString(account.Kind, "client_id"); err != nil {
		return nil, err
	}
	if creds.ClientSecret, err = account.Credentials.RequireString(account.Kind, "client_secret"); err != nil {
		return nil, err
	}

	creds.TokenExpiry, _ = account.Credentials.Time("token_expiry")

	return creds, nil
}

// TokenFields retorna os campos de token a persistir no documento da
// integração após uma renovação
func (c *Credentials) TokenFields() map[string]any {
	return map[string]any{
		"access_token": c.AccessToken,
		"token_expiry": c.TokenExpiry.UTC().Format(time.RFC3339),
	}
}

type Client interface {
	FetchDailyEarnings(ctx context.Context, creds *Credentials, day time.Time) (float64, error)
}

type AdSenseClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &AdSenseClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}
