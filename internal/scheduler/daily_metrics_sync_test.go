package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/mvacxx/dash/infrastructure/repository/mocks"
	"github.com/mvacxx/dash/internal/domain"
	syncmocks "github.com/mvacxx/dash/internal/usecases/metricsync/mocks"
	notifymocks "github.com/mvacxx/dash/internal/usecases/notifying/mocks"
)

func newTestSyncService(
	userRepo *repomocks.MockUserRepository,
	syncService *syncmocks.MockMetricSyncer,
	notifier *notifymocks.MockNotifier,
) *DailyMetricsSyncService {
	return &DailyMetricsSyncService{
		config: DailyMetricsSyncConfig{
			CronSchedule:       "0 3 * * *",
			MaxConcurrentUsers: 2,
			SyncEnabled:        true,
		},
		userRepo:    userRepo,
		syncService: syncService,
		notifier:    notifier,
	}
}

func TestDailyMetricsSyncService_FalhaDeUmUsuarioNaoInterrompeOsDemais(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockSyncService := syncmocks.NewMockMetricSyncer(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	service := newTestSyncService(mockUserRepo, mockSyncService, mockNotifier)

	mockUserRepo.EXPECT().
		ListUserIDs().
		Return([]int{1, 2, 3}, nil)

	// Usuários 1 e 3 sincronizam com sucesso
	mockSyncService.EXPECT().
		Sync(gomock.Any(), 1, gomock.Any()).
		Return(&domain.DailyMetric{UserID: 1}, nil)

	mockSyncService.EXPECT().
		Sync(gomock.Any(), 3, gomock.Any()).
		Return(&domain.DailyMetric{UserID: 3}, nil)

	// Usuário 2 falha e gera exatamente uma notificação de erro
	mockSyncService.EXPECT().
		Sync(gomock.Any(), 2, gomock.Any()).
		Return(nil, errors.New("token expirado"))

	mockNotifier.EXPECT().
		Notify(2, domain.NotificationLevelError, gomock.Any()).
		DoAndReturn(func(userID int, level domain.NotificationLevel, message string) (*domain.SyncNotification, error) {
			assert.Contains(t, message, "token expirado")
			assert.Contains(t, message, "Falha na sincronização de métricas")
			return &domain.SyncNotification{ID: 1, UserID: userID, Level: level, Message: message}, nil
		}).
		Times(1)

	service.syncAllUsers(context.Background())

	assert.False(t, service.syncRunning)
	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestDailyMetricsSyncService_DataSincronizadaEhODiaUTC(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockSyncService := syncmocks.NewMockMetricSyncer(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	service := newTestSyncService(mockUserRepo, mockSyncService, mockNotifier)

	mockUserRepo.EXPECT().
		ListUserIDs().
		Return([]int{1}, nil)

	mockSyncService.EXPECT().
		Sync(gomock.Any(), 1, gomock.Any()).
		DoAndReturn(func(ctx context.Context, userID int, day time.Time) (*domain.DailyMetric, error) {
			expected := time.Now().UTC().Truncate(24 * time.Hour)
			assert.Equal(t, expected, day)
			assert.Equal(t, time.UTC, day.Location())
			return &domain.DailyMetric{UserID: userID, Date: day}, nil
		})

	service.syncAllUsers(context.Background())
}

func TestDailyMetricsSyncService_ExecucaoConcorrenteIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockSyncService := syncmocks.NewMockMetricSyncer(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	service := newTestSyncService(mockUserRepo, mockSyncService, mockNotifier)

	// Simula uma execução já em andamento
	service.syncRunning = true

	// Nenhuma chamada aos repositórios ou serviços deve acontecer
	service.syncAllUsers(context.Background())

	assert.True(t, service.syncRunning)
}

func TestDailyMetricsSyncService_ErroAoListarUsuariosAbortaExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockSyncService := syncmocks.NewMockMetricSyncer(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	service := newTestSyncService(mockUserRepo, mockSyncService, mockNotifier)

	mockUserRepo.EXPECT().
		ListUserIDs().
		Return(nil, errors.New("conexão perdida"))

	service.syncAllUsers(context.Background())

	assert.False(t, service.syncRunning)
}

func TestDailyMetricsSyncService_GetStatusDuranteExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockSyncService := syncmocks.NewMockMetricSyncer(ctrl)
	mockNotifier := notifymocks.NewMockNotifier(ctrl)

	service := newTestSyncService(mockUserRepo, mockSyncService, mockNotifier)

	mockUserRepo.EXPECT().
		ListUserIDs().
		Return([]int{1}, nil)

	release := make(chan struct{})
	mockSyncService.EXPECT().
		Sync(gomock.Any(), 1, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID int, _ time.Time) (*domain.DailyMetric, error) {
			<-release
			return &domain.DailyMetric{UserID: userID}, nil
		})

	done := make(chan struct{})
	go func() {
		service.syncAllUsers(context.Background())
		close(done)
	}()

	// Consulta o status enquanto a sincronização está em andamento
	deadline := time.After(2 * time.Second)
	for {
		status := service.GetStatus()
		if started, ok := status["last_sync_started_at"].(time.Time); ok && !started.IsZero() {
			break
		}
		select {
		case <-deadline:
			t.Fatal("sincronização não iniciou a tempo")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(release)
	<-done

	status := service.GetStatus()
	completedAt, ok := status["last_sync_completed_at"].(time.Time)
	assert.True(t, ok)
	assert.False(t, completedAt.IsZero())
	assert.False(t, service.syncRunning)
}
