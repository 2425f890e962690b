package fbclient

import (
	"context"
	"net/http"
	"time"

	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
	fbdomain "github.com/mvacxx/dash/infrastructure/integrator/facebook/domain"
)

const requestTimeout = 30 * time.Second

// Credentials são as credenciais de uma conta do Facebook Ads extraídas do
// documento jsonb da integração
type Credentials struct {
	AccountID   string
	AccessToken string
	APIVersion  string
	BusinessID  string
}

// CredentialsFromAccount valida e extrai as credenciais de uma conta de
// integração. A versão da API cai no padrão configurado quando ausente.
func CredentialsFromAccount(account *domain.IntegrationAccount, defaultVersion string) (*Credentials, error) {
	accessToken, err := account.Credentials.RequireString(account.Kind, "access_token")
	if err != nil {
		return nil, err
	}

	accountID, err := account.Credentials.RequireString(account.Kind, "account_id")
	if err != nil {
		return nil, err
	}

	version, ok := account.Credentials.String("api_version")
	if !ok {
		version = defaultVersion
	}

	businessID, _ := account.Credentials.String("business_id")

	return &Credentials{
		AccountID:   accountID,
		AccessToken: accessToken,
		APIVersion:  version,
		BusinessID:  businessID,
	}, nil
}

type Client interface {
	FetchDailyMetrics(ctx context.Context, creds *Credentials, day time.Time) (*fbdomain.DailySpendRevenue, error)
}

type FacebookClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &FacebookClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}
