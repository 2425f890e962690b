package notifying

import (
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/infrastructure/repository"
	"github.com/mvacxx/dash/internal/domain"
)

// Notifier registra e consulta notificações de sincronização dos usuários
type Notifier interface {
	Notify(userID int, level domain.NotificationLevel, message string) (*domain.SyncNotification, error)
	ListUnread(userID int) ([]*domain.SyncNotification, error)
	MarkRead(id int, userID int) error
}

type Service struct {
	notificationRepository repository.NotificationRepository
}

// NewService cria uma nova instância do serviço de notificações
func NewService(notificationRepo repository.NotificationRepository) Notifier {
	return &Service{
		notificationRepository: notificationRepo,
	}
}

// Notify grava uma notificação para o usuário. Mensagens acima do limite são
// truncadas antes da gravação.
func (s *Service) Notify(userID int, level domain.NotificationLevel, message string) (*domain.SyncNotification, error) {
	notification := &domain.SyncNotification{
		UserID:  userID,
		Level:   level,
		Message: domain.TruncateNotificationMessage(message),
	}

	if err := s.notificationRepository.Create(notification); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao gravar notificação")
		return nil, err
	}

	return notification, nil
}

// ListUnread retorna as notificações não lidas do usuário, mais recentes
// primeiro
func (s *Service) ListUnread(userID int) ([]*domain.SyncNotification, error) {
	return s.notificationRepository.ListUnreadByUser(userID)
}

// MarkRead marca uma notificação do usuário como lida
func (s *Service) MarkRead(id int, userID int) error {
	return s.notificationRepository.MarkRead(id, userID)
}
