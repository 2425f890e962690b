package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/infrastructure/repository"
	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/internal/usecases/metricsync"
	"github.com/mvacxx/dash/internal/usecases/notifying"
)

// DailyMetricsSyncConfig representa a configuração do agendador de
// sincronização diária de métricas
type DailyMetricsSyncConfig struct {
	CronSchedule       string
	MaxConcurrentUsers int
	SyncEnabled        bool
}

// DailyMetricsSyncService gerencia o agendamento e execução da sincronização
// diária de métricas de todos os usuários
type DailyMetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyMetricsSyncConfig
	userRepo            repository.UserRepository
	syncService         metricsync.MetricSyncer
	notifier            notifying.Notifier
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDailyMetricsSyncService cria uma nova instância do serviço de
// sincronização diária de métricas
func NewDailyMetricsSyncService(
	userRepo repository.UserRepository,
	syncService metricsync.MetricSyncer,
	notifier notifying.Notifier,
	appConfig *config.Config,
) *DailyMetricsSyncService {
	syncConfig := DailyMetricsSyncConfig{
		CronSchedule:       fmt.Sprintf("%d %d * * *", appConfig.DailySync.MinuteUTC, appConfig.DailySync.HourUTC),
		MaxConcurrentUsers: appConfig.DailySync.MaxConcurrentUsers,
		SyncEnabled:        appConfig.DailySync.Enabled,
	}

	// O horário do job e a data sincronizada são sempre em UTC
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":        syncConfig.CronSchedule,
		"max_concurrent_users": syncConfig.MaxConcurrentUsers,
		"sync_enabled":         syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização diária de métricas carregada")

	return &DailyMetricsSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		userRepo:    userRepo,
		syncService: syncService,
		notifier:    notifier,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *DailyMetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização diária de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização diária de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllUsers(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização diária de métricas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização diária de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllUsers sincroniza as métricas do dia de todos os usuários. A falha
// de um usuário gera uma notificação e não interrompe os demais.
func (s *DailyMetricsSyncService) syncAllUsers(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização diária de métricas já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.syncRunning = true
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	// A data sincronizada é a data UTC do disparo do job
	day := time.Now().UTC().Truncate(24 * time.Hour)

	logrus.WithField("date", day.Format(time.DateOnly)).
		Info("Iniciando sincronização diária de métricas para todos os usuários")

	userIDs, err := s.userRepo.ListUserIDs()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de usuários para sincronização diária de métricas")
		return
	}

	if len(userIDs) == 0 {
		logrus.Info("Nenhum usuário encontrado para sincronização diária de métricas")
		return
	}

	var failures int
	var failuresMutex sync.Mutex

	// Canal para controlar o número de workers concorrentes
	semaphore := make(chan struct{}, s.config.MaxConcurrentUsers)
	var wg sync.WaitGroup

	for _, userID := range userIDs {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(userID int) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			if err := s.syncUser(ctx, userID, day); err != nil {
				failuresMutex.Lock()
				failures++
				failuresMutex.Unlock()
			}
		}(userID)
	}

	wg.Wait()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"users":    len(userIDs),
		"failures": failures,
		"date":     day.Format(time.DateOnly),
	}).Info("Sincronização diária de métricas concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// syncUser sincroniza um único usuário, registrando a falha como
// notificação para ele
func (s *DailyMetricsSyncService) syncUser(ctx context.Context, userID int, day time.Time) error {
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    day.Format(time.DateOnly),
	}).Info("Sincronizando métricas do usuário")

	_, err := s.syncService.Sync(ctx, userID, day)
	if err == nil {
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    day.Format(time.DateOnly),
		"error":   err.Error(),
	}).Error("Erro na sincronização diária de métricas do usuário")

	message := fmt.Sprintf("Falha na sincronização de métricas de %s: %s", day.Format(time.DateOnly), err.Error())
	if _, notifyErr := s.notifier.Notify(userID, domain.NotificationLevelError, message); notifyErr != nil {
		logrus.WithError(notifyErr).WithField("user_id", userID).
			Error("Erro ao registrar notificação de falha de sincronização")
	}

	return err
}

// TriggerManualSync inicia manualmente uma sincronização diária de métricas
func (s *DailyMetricsSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização diária de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de métricas")
	go s.syncAllUsers(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DailyMetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentUsers,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
