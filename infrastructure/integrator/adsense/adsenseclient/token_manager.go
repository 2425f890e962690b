package adsenseclient

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/config"
)

// tokenExpiryMargin é a antecedência mínima exigida da expiração: um token
// que expira dentro dessa janela é tratado como expirado
const tokenExpiryMargin = 5 * time.Minute

// TokenPersister grava os campos de token renovados de volta no documento de
// credenciais da integração, sem tocar nos demais campos
type TokenPersister interface {
	MergeCredentialFields(id string, fields map[string]any) error
}

// TokenManager gerencia tokens de acesso das contas do AdSense
type TokenManager interface {
	EnsureValidToken(ctx context.Context, accountID string, creds *Credentials) (bool, error)
	ForceRefresh(ctx context.Context, accountID string, creds *Credentials) error
}

type tokenManager struct {
	cfg               *config.Config
	persister         TokenPersister
	tokenRefreshMutex sync.Mutex
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, persister TokenPersister) TokenManager {
	return &tokenManager{
		cfg:       cfg,
		persister: persister,
	}
}

// EnsureValidToken renova o access token quando ele expirou ou está dentro
// da margem de expiração. Retorna true quando houve renovação.
func (tm *tokenManager) EnsureValidToken(ctx context.Context, accountID string, creds *Credentials) (bool, error) {
	if !tm.isExpired(creds) {
		return false, nil
	}

	logrus.WithField("integration_account_id", accountID).
		Info("Token do AdSense expirado ou próximo da expiração. Renovando...")

	if err := tm.refresh(ctx, accountID, creds); err != nil {
		return false, err
	}

	return true, nil
}

// ForceRefresh renova o token incondicionalmente. Usado quando o provedor
// rejeitou um token que ainda parecia válido.
func (tm *tokenManager) ForceRefresh(ctx context.Context, accountID string, creds *Credentials) error {
	logrus.WithField("integration_account_id", accountID).
		Warn("Provedor rejeitou o token do AdSense. Forçando renovação...")

	return tm.refresh(ctx, accountID, creds)
}

// isExpired trata expiração ausente ou zerada como expirado
func (tm *tokenManager) isExpired(creds *Credentials) bool {
	if creds.TokenExpiry.IsZero() {
		return true
	}
	return time.Until(creds.TokenExpiry) < tokenExpiryMargin
}

func (tm *tokenManager) refresh(ctx context.Context, accountID string, creds *Credentials) error {
	tm.tokenRefreshMutex.Lock()
	defer tm.tokenRefreshMutex.Unlock()

	tokenResp, err := ExchangeRefreshToken(ctx, tm.cfg.AdSense.TokenURL, creds)
	if err != nil {
		logrus.WithError(err).WithField("integration_account_id", accountID).
			Error("Falha ao renovar token do AdSense")
		return err
	}

	creds.AccessToken = tokenResp.AccessToken
	creds.TokenExpiry = CalculateTokenExpiration(time.Now(), tokenResp.ExpiresIn, int64(tm.cfg.AdSense.DefaultTokenLifetimeSeconds))

	if err := tm.persister.MergeCredentialFields(accountID, creds.TokenFields()); err != nil {
		logrus.WithError(err).WithField("integration_account_id", accountID).
			Error("Falha ao persistir token renovado do AdSense")
		return err
	}

	logrus.WithField("integration_account_id", accountID).
		Infof("Token do AdSense renovado com sucesso. Expira em: %s", creds.TokenExpiry.Format(time.RFC3339))

	return nil
}
