package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/mvacxx/dash/internal/api/handler/router"
	"github.com/mvacxx/dash/internal/usecases/authenticating"
	"github.com/mvacxx/dash/internal/usecases/integrating"
	"github.com/mvacxx/dash/internal/usecases/metricsync"
	"github.com/mvacxx/dash/internal/usecases/notifying"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

// Integrations retorna as rotas de gerenciamento de contas de plataformas de
// anúncios conectadas
func Integrations(service integrating.Integrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/integrations",
			Method:  http.MethodGet,
			Handler: ListIntegrations(service),
		},
		{
			Path:    "/v1/integrations",
			Method:  http.MethodPost,
			Handler: ConnectIntegration(service),
		},
		{
			Path:    "/v1/integrations/:id",
			Method:  http.MethodPut,
			Handler: UpdateIntegration(service),
		},
		{
			Path:    "/v1/integrations/:id",
			Method:  http.MethodDelete,
			Handler: DisconnectIntegration(service),
		},
	}
}

// Metrics retorna as rotas de sincronização e consulta de métricas diárias
func Metrics(service metricsync.MetricSyncer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics",
			Method:  http.MethodGet,
			Handler: ListMetrics(service),
		},
		{
			Path:    "/v1/metrics/sync",
			Method:  http.MethodPost,
			Handler: SyncMetrics(service),
		},
	}
}

// Notifications retorna as rotas de notificações de sincronização
func Notifications(service notifying.Notifier) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/notifications",
			Method:  http.MethodGet,
			Handler: ListNotifications(service),
		},
		{
			Path:    "/v1/notifications/:id/read",
			Method:  http.MethodPost,
			Handler: MarkNotificationRead(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
