package domain

import (
	"fmt"
	"time"
)

// IntegrationKind identifica o provedor de anúncios de uma conta conectada
type IntegrationKind string

const (
	IntegrationKindFacebookAds   IntegrationKind = "facebook_ads"
	IntegrationKindGoogleAdSense IntegrationKind = "google_adsense"
)

// Valid verifica se o tipo de integração é conhecido
func (k IntegrationKind) Valid() bool {
	switch k {
	case IntegrationKindFacebookAds, IntegrationKindGoogleAdSense:
		return true
	}
	return false
}

// Credentials é o conjunto de credenciais de uma integração. O formato
// depende do provedor, por isso fica como um mapa livre persistido em jsonb.
type Credentials map[string]any

// String retorna o valor de uma chave como string
func (c Credentials) String(key string) (string, bool) {
	raw, ok := c[key]
	if !ok {
		return "", false
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// RequireString retorna o valor de uma chave obrigatória ou
// MissingCredentialFieldError quando ausente
func (c Credentials) RequireString(kind IntegrationKind, key string) (string, error) {
	value, ok := c.String(key)
	if !ok {
		return "", &MissingCredentialFieldError{Kind: kind, Field: key}
	}
	return value, nil
}

// Time retorna o valor de uma chave como time.Time (RFC3339). O segundo
// retorno é falso quando a chave não existe ou o valor não é parseável.
func (c Credentials) Time(key string) (time.Time, bool) {
	value, ok := c.String(key)
	if !ok {
		return time.Time{}, false
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}

	return parsed.UTC(), true
}

// IntegrationAccount representa uma conta de plataforma de anúncios
// conectada por um usuário
type IntegrationAccount struct {
	ID          string          `json:"id"`
	UserID      int             `json:"user_id"`
	Kind        IntegrationKind `json:"type"`
	Credentials Credentials     `json:"credentials"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MissingCredentialFieldError indica que o conjunto de credenciais de uma
// integração não contém uma chave obrigatória para o seu provedor
type MissingCredentialFieldError struct {
	Kind  IntegrationKind
	Field string
}

func (e *MissingCredentialFieldError) Error() string {
	return fmt.Sprintf("credencial obrigatória ausente para %s: %s", e.Kind, e.Field)
}
