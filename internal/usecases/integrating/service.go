package integrating

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/infrastructure/repository"
	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/pkg/utils"
)

// requiredCredentialFields lista as chaves obrigatórias por provedor
var requiredCredentialFields = map[domain.IntegrationKind][]string{
	domain.IntegrationKindFacebookAds: {
		"access_token",
		"account_id",
	},
	domain.IntegrationKindGoogleAdSense: {
		"account_id",
		"access_token",
		"refresh_token",
		"client_id",
		"client_secret",
	},
}

// Integrator gerencia as contas de plataformas de anúncios conectadas pelos
// usuários
type Integrator interface {
	Connect(userID int, kind domain.IntegrationKind, credentials domain.Credentials) (*domain.IntegrationAccount, error)
	List(userID int, kind *domain.IntegrationKind) ([]*domain.IntegrationAccount, error)
	Update(userID int, accountID string, kind domain.IntegrationKind, credentials domain.Credentials) (*domain.IntegrationAccount, error)
	Disconnect(userID int, accountID string) error
}

type Service struct {
	cfg                   *config.Config
	integrationRepository repository.IntegrationRepository
}

// NewService cria uma nova instância do serviço de integrações
func NewService(cfg *config.Config, integrationRepo repository.IntegrationRepository) Integrator {
	return &Service{
		cfg:                   cfg,
		integrationRepository: integrationRepo,
	}
}

// Connect valida as credenciais e registra uma nova conta de integração
func (s *Service) Connect(userID int, kind domain.IntegrationKind, credentials domain.Credentials) (*domain.IntegrationAccount, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	if credentials == nil {
		credentials = domain.Credentials{}
	}

	for _, field := range requiredCredentialFields[kind] {
		if _, err := credentials.RequireString(kind, field); err != nil {
			return nil, err
		}
	}

	normalizeCredentials(kind, credentials, s.cfg)

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	account := &domain.IntegrationAccount{
		ID:          id,
		UserID:      userID,
		Kind:        kind,
		Credentials: credentials,
	}

	if err := s.integrationRepository.Create(account); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":                userID,
		"integration_account_id": account.ID,
		"type":                   kind,
	}).Info("Conta de integração conectada")

	return account, nil
}

// normalizeCredentials preenche padrões e converte campos derivados antes da
// persistência
func normalizeCredentials(kind domain.IntegrationKind, credentials domain.Credentials, cfg *config.Config) {
	switch kind {
	case domain.IntegrationKindFacebookAds:
		if _, ok := credentials.String("api_version"); !ok {
			credentials["api_version"] = cfg.Facebook.Version
		}
	case domain.IntegrationKindGoogleAdSense:
		// O cliente OAuth envia expires_in em segundos; guardamos a data
		// absoluta de expiração
		if seconds, ok := numberField(credentials, "expires_in"); ok {
			expiry := time.Now().UTC().Add(time.Duration(seconds) * time.Second)
			credentials["token_expiry"] = expiry.Format(time.RFC3339)
			delete(credentials, "expires_in")
		}
	}
}

func numberField(credentials domain.Credentials, key string) (int64, bool) {
	switch value := credentials[key].(type) {
	case float64:
		return int64(value), true
	case int:
		return int64(value), true
	case int64:
		return value, true
	}
	return 0, false
}

// List retorna as contas de integração do usuário, opcionalmente filtradas
// por provedor
func (s *Service) List(userID int, kind *domain.IntegrationKind) ([]*domain.IntegrationAccount, error) {
	if kind != nil && !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.integrationRepository.ListByUser(userID, kind)
}

// Update mescla os campos informados nas credenciais existentes da conta. O
// provedor da conta é imutável.
func (s *Service) Update(userID int, accountID string, kind domain.IntegrationKind, credentials domain.Credentials) (*domain.IntegrationAccount, error) {
	account, err := s.integrationRepository.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if account == nil || account.UserID != userID {
		return nil, ErrIntegrationNotFound
	}

	if kind != "" && kind != account.Kind {
		return nil, ErrKindMismatch
	}

	for key, value := range credentials {
		account.Credentials[key] = value
	}

	normalizeCredentials(account.Kind, account.Credentials, s.cfg)

	if err := s.integrationRepository.UpdateCredentials(account.ID, account.Credentials); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":                userID,
		"integration_account_id": account.ID,
	}).Info("Credenciais da conta de integração atualizadas")

	return account, nil
}

// Disconnect remove uma conta de integração do usuário
func (s *Service) Disconnect(userID int, accountID string) error {
	err := s.integrationRepository.Delete(accountID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrIntegrationNotFound
	}
	return err
}
