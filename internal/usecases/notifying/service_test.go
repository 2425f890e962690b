package notifying

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/mvacxx/dash/infrastructure/repository/mocks"
	"github.com/mvacxx/dash/internal/domain"
)

func TestService_Notify_TruncaMensagensLongas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockNotificationRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(notification *domain.SyncNotification) error {
			runes := []rune(notification.Message)
			assert.Len(t, runes, domain.MaxNotificationMessageLength)
			assert.Equal(t, '…', runes[len(runes)-1])
			return nil
		})

	service := NewService(repo)

	longMessage := strings.Repeat("x", domain.MaxNotificationMessageLength+200)
	notification, err := service.Notify(1, domain.NotificationLevelError, longMessage)

	assert.NoError(t, err)
	assert.Equal(t, 1, notification.UserID)
	assert.Equal(t, domain.NotificationLevelError, notification.Level)
}

func TestService_Notify_MensagemCurtaPermaneceIntacta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockNotificationRepository(ctrl)
	repo.EXPECT().Create(gomock.Any()).Return(nil)

	service := NewService(repo)

	notification, err := service.Notify(1, domain.NotificationLevelInfo, "Sincronização concluída")

	assert.NoError(t, err)
	assert.Equal(t, "Sincronização concluída", notification.Message)
}

func TestService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repomocks.NewMockNotificationRepository(ctrl)
	repo.EXPECT().MarkRead(10, 1).Return(nil)

	service := NewService(repo)

	assert.NoError(t, service.MarkRead(10, 1))
}
