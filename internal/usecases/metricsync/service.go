package metricsync

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/infrastructure/integrator/adsense/adsenseclient"
	"github.com/mvacxx/dash/infrastructure/integrator/facebook/fbclient"
	"github.com/mvacxx/dash/infrastructure/repository"
	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/pkg/utils"
)

// MetricSyncer sincroniza as métricas diárias de um usuário com as
// plataformas de anúncios conectadas
type MetricSyncer interface {
	Sync(ctx context.Context, userID int, day time.Time) (*domain.DailyMetric, error)
	List(ctx context.Context, userID int, startDate, endDate time.Time) (*domain.MetricsSummary, error)
}

type Service struct {
	cfg                   *config.Config
	integrationRepository repository.IntegrationRepository
	metricRepository      repository.DailyMetricRepository
	facebookClient        fbclient.Client
	adsenseClient         adsenseclient.Client
	tokenManager          adsenseclient.TokenManager
}

// NewService cria uma nova instância do serviço de sincronização de métricas
func NewService(
	cfg *config.Config,
	integrationRepo repository.IntegrationRepository,
	metricRepo repository.DailyMetricRepository,
	facebookClient fbclient.Client,
	adsenseClient adsenseclient.Client,
	tokenManager adsenseclient.TokenManager,
) MetricSyncer {
	return &Service{
		cfg:                   cfg,
		integrationRepository: integrationRepo,
		metricRepository:      metricRepo,
		facebookClient:        facebookClient,
		adsenseClient:         adsenseClient,
		tokenManager:          tokenManager,
	}
}

// accountContribution é o resultado de uma conta: gasto e receita do dia
type accountContribution struct {
	spend   float64
	revenue float64
}

// Sync busca as métricas do dia em todas as contas conectadas do usuário,
// agrega gasto e receita, calcula o ROI e grava a linha do dia. A gravação
// só acontece depois de todas as contas responderem com sucesso.
func (s *Service) Sync(ctx context.Context, userID int, day time.Time) (*domain.DailyMetric, error) {
	day = day.UTC().Truncate(24 * time.Hour)

	accounts, err := s.integrationRepository.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"date":     day.Format(time.DateOnly),
		"accounts": len(accounts),
	}).Info("Iniciando sincronização de métricas do dia")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		totals   accountContribution
		firstErr error
	)

	for _, account := range accounts {
		wg.Add(1)
		go func(account *domain.IntegrationAccount) {
			defer wg.Done()

			contribution, err := s.fetchAccount(ctx, account, day)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if contribution != nil {
				totals.spend += contribution.spend
				totals.revenue += contribution.revenue
			}
		}(account)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	spend := utils.RoundWithTwoDecimalPlace(totals.spend)
	revenue := utils.RoundWithTwoDecimalPlace(totals.revenue)

	metric := &domain.DailyMetric{
		UserID:  userID,
		Date:    day,
		Spend:   spend,
		Revenue: revenue,
		ROI:     domain.CalculateROI(spend, revenue),
	}

	if err := s.metricRepository.Upsert(metric); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    day.Format(time.DateOnly),
		"spend":   metric.Spend,
		"revenue": metric.Revenue,
		"roi":     metric.ROI,
	}).Info("Métricas do dia sincronizadas com sucesso")

	return metric, nil
}

// fetchAccount despacha a busca conforme o provedor da conta. Contas de
// provedor desconhecido são ignoradas com aviso.
func (s *Service) fetchAccount(ctx context.Context, account *domain.IntegrationAccount, day time.Time) (*accountContribution, error) {
	switch account.Kind {
	case domain.IntegrationKindFacebookAds:
		return s.fetchFacebook(ctx, account, day)
	case domain.IntegrationKindGoogleAdSense:
		return s.fetchAdSense(ctx, account, day)
	default:
		logrus.WithFields(logrus.Fields{
			"integration_account_id": account.ID,
			"type":                   account.Kind,
		}).Warn("Tipo de integração desconhecido. Conta ignorada na sincronização")
		return nil, nil
	}
}

func (s *Service) fetchFacebook(ctx context.Context, account *domain.IntegrationAccount, day time.Time) (*accountContribution, error) {
	creds, err := fbclient.CredentialsFromAccount(account, s.cfg.Facebook.Version)
	if err != nil {
		return nil, err
	}

	result, err := s.facebookClient.FetchDailyMetrics(ctx, creds, day)
	if err != nil {
		return nil, errors.Wrapf(err, "conta %s (facebook_ads)", account.ID)
	}

	return &accountContribution{spend: result.Spend, revenue: result.Revenue}, nil
}

// fetchAdSense garante um access token válido antes da busca e, se o
// provedor ainda assim rejeitar o token, força uma renovação e tenta de novo
// uma única vez
func (s *Service) fetchAdSense(ctx context.Context, account *domain.IntegrationAccount, day time.Time) (*accountContribution, error) {
	creds, err := adsenseclient.CredentialsFromAccount(account)
	if err != nil {
		return nil, err
	}

	if _, err := s.tokenManager.EnsureValidToken(ctx, account.ID, creds); err != nil {
		return nil, errors.Wrapf(err, "conta %s (google_adsense)", account.ID)
	}

	earnings, err := s.adsenseClient.FetchDailyEarnings(ctx, creds, day)
	if err != nil {
		if !errors.Is(err, domain.ErrProviderAuthorization) {
			return nil, errors.Wrapf(err, "conta %s (google_adsense)", account.ID)
		}

		if err := s.tokenManager.ForceRefresh(ctx, account.ID, creds); err != nil {
			return nil, errors.Wrapf(err, "conta %s (google_adsense)", account.ID)
		}

		earnings, err = s.adsenseClient.FetchDailyEarnings(ctx, creds, day)
		if err != nil {
			return nil, errors.Wrapf(err, "conta %s (google_adsense)", account.ID)
		}
	}

	return &accountContribution{revenue: earnings}, nil
}

// List retorna as métricas do intervalo com os totais e o ROI médio
func (s *Service) List(ctx context.Context, userID int, startDate, endDate time.Time) (*domain.MetricsSummary, error) {
	metrics, err := s.metricRepository.GetByDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := &domain.MetricsSummary{Metrics: metrics}
	for _, metric := range metrics {
		summary.TotalSpend += metric.Spend
		summary.TotalRevenue += metric.Revenue
		summary.AverageROI += metric.ROI
	}

	if len(metrics) > 0 {
		summary.AverageROI /= float64(len(metrics))
	}

	return summary, nil
}
