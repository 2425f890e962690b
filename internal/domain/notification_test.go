package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateNotificationMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "Mensagem curta permanece intacta",
			message: "Falha na sincronização",
			want:    "Falha na sincronização",
		},
		{
			name:    "Mensagem no limite exato permanece intacta",
			message: strings.Repeat("a", MaxNotificationMessageLength),
			want:    strings.Repeat("a", MaxNotificationMessageLength),
		},
		{
			name:    "Mensagem acima do limite é truncada com reticências",
			message: strings.Repeat("a", MaxNotificationMessageLength+100),
			want:    strings.Repeat("a", MaxNotificationMessageLength-1) + "…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateNotificationMessage(tt.message)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), MaxNotificationMessageLength)
		})
	}
}
