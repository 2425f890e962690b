package domain

import "errors"

// Categorias de falha ao conversar com provedores de anúncios. Os clientes
// de integração embrulham seus erros em uma destas sentinelas para que o
// chamador consiga distinguir o que é recuperável.
var (
	// ErrProviderTransport indica falha de rede ou timeout na chamada HTTP
	ErrProviderTransport = errors.New("falha de transporte ao consultar o provedor")

	// ErrProvider indica uma resposta de erro do provedor que não é de autorização
	ErrProvider = errors.New("o provedor retornou um erro")

	// ErrProviderAuthorization indica rejeição do token de acesso (401/403).
	// É a única falha recuperada automaticamente, via refresh seguido de uma
	// única nova tentativa.
	ErrProviderAuthorization = errors.New("o provedor rejeitou o token de acesso")

	// ErrTokenRefresh indica que o endpoint de token do provedor rejeitou o refresh
	ErrTokenRefresh = errors.New("falha ao renovar o token de acesso")
)
