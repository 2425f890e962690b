package integrating

import "errors"

var (
	// ErrIntegrationNotFound indica que a conta de integração não existe ou
	// não pertence ao usuário
	ErrIntegrationNotFound = errors.New("conta de integração não encontrada")

	// ErrKindMismatch indica tentativa de atualizar uma conta informando um
	// provedor diferente do registrado
	ErrKindMismatch = errors.New("o provedor informado não corresponde ao da conta")

	// ErrUnknownKind indica um provedor de integração não suportado
	ErrUnknownKind = errors.New("provedor de integração desconhecido")
)
