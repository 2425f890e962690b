package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/infrastructure/database/postgres"
	"github.com/mvacxx/dash/infrastructure/integrator/adsense/adsenseclient"
	"github.com/mvacxx/dash/infrastructure/integrator/facebook/fbclient"
	"github.com/mvacxx/dash/infrastructure/repository"
	"github.com/mvacxx/dash/internal/api"
	"github.com/mvacxx/dash/internal/config"
	"github.com/mvacxx/dash/internal/scheduler"
	"github.com/mvacxx/dash/internal/usecases/authenticating"
	"github.com/mvacxx/dash/internal/usecases/integrating"
	"github.com/mvacxx/dash/internal/usecases/metricsync"
	"github.com/mvacxx/dash/internal/usecases/notifying"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	integrationRepo := repository.NewIntegrationRepository(pgConn)
	metricRepo := repository.NewDailyMetricRepository(pgConn)
	notificationRepo := repository.NewNotificationRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	facebookClient := fbclient.NewClient(cfg)
	adsenseClient := adsenseclient.NewClient(cfg)
	tokenManager := adsenseclient.NewTokenManager(cfg, integrationRepo)

	integrationService := integrating.NewService(cfg, integrationRepo)
	notifier := notifying.NewService(notificationRepo)

	syncService := metricsync.NewService(
		cfg,
		integrationRepo,
		metricRepo,
		facebookClient,
		adsenseClient,
		tokenManager,
	)

	// Inicializa o agendador de sincronização diária de métricas
	dailyMetricsSyncService := scheduler.NewDailyMetricsSyncService(
		userRepo,
		syncService,
		notifier,
		cfg,
	)

	if err := dailyMetricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização diária de métricas")
	} else {
		logrus.Info("Agendador de sincronização diária de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		integrationService,
		syncService,
		notifier,
		dailyMetricsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
