package domain

import "time"

// NotificationLevel indica a severidade de uma notificação de sincronização
type NotificationLevel string

const (
	NotificationLevelInfo    NotificationLevel = "info"
	NotificationLevelWarning NotificationLevel = "warning"
	NotificationLevelError   NotificationLevel = "error"
)

// MaxNotificationMessageLength é o tamanho máximo da mensagem persistida
const MaxNotificationMessageLength = 512

// SyncNotification registra um evento de sincronização relevante para o
// usuário, tipicamente uma falha do job diário
type SyncNotification struct {
	ID        int               `json:"id"`
	UserID    int               `json:"user_id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	Read      bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
}

// TruncateNotificationMessage limita a mensagem ao tamanho persistível,
// marcando o corte com reticências
func TruncateNotificationMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxNotificationMessageLength {
		return message
	}
	return string(runes[:MaxNotificationMessageLength-1]) + "…"
}
