package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mvacxx/dash/infrastructure/database/postgres"
	"github.com/mvacxx/dash/internal/domain"
)

const (
	integrationAccountsTable = "integration_accounts"
)

type IntegrationRepository interface {
	Create(account *domain.IntegrationAccount) error
	GetByID(id string) (*domain.IntegrationAccount, error)
	ListByUser(userID int, kind *domain.IntegrationKind) ([]*domain.IntegrationAccount, error)
	UpdateCredentials(id string, credentials domain.Credentials) error
	MergeCredentialFields(id string, fields map[string]any) error
	Delete(id string, userID int) error
}

type integrationRepository struct {
	conn *postgres.Connection
}

func NewIntegrationRepository(conn *postgres.Connection) IntegrationRepository {
	return &integrationRepository{
		conn: conn,
	}
}

func (r *integrationRepository) Create(account *domain.IntegrationAccount) error {
	credentialsJSON, err := json.Marshal(account.Credentials)
	if err != nil {
		return fmt.Errorf("erro ao serializar credenciais para JSON: %w", err)
	}

	query := squirrel.
		Insert(integrationAccountsTable).
		Columns("id", "user_id", "type", "credentials").
		Values(account.ID, account.UserID, string(account.Kind), credentialsJSON).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar)

	insertSQL, insertArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(insertSQL, insertArgs...).Scan(&account.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *integrationRepository) GetByID(id string) (*domain.IntegrationAccount, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "type", "credentials", "created_at").
		From(integrationAccountsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	account, err := r.scanAccount(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear integração: %w", err)
	}

	return account, nil
}

func (r *integrationRepository) ListByUser(userID int, kind *domain.IntegrationKind) ([]*domain.IntegrationAccount, error) {
	queryBuilder := squirrel.
		Select("id", "user_id", "type", "credentials", "created_at").
		From(integrationAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if kind != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"type": string(*kind)})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.IntegrationAccount, 0)
	for rows.Next() {
		account, err := r.scanAccountRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear integrações: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

func (r *integrationRepository) UpdateCredentials(id string, credentials domain.Credentials) error {
	credentialsJSON, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("erro ao serializar credenciais para JSON: %w", err)
	}

	query, args, err := squirrel.
		Update(integrationAccountsTable).
		Set("credentials", credentialsJSON).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// MergeCredentialFields sobrescreve apenas as chaves informadas do jsonb de
// credenciais, preservando as demais. É o caminho usado pelo refresh de token,
// que não pode sobrepor edições concorrentes de outros campos.
func (r *integrationRepository) MergeCredentialFields(id string, fields map[string]any) error {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("erro ao serializar campos de credencial para JSON: %w", err)
	}

	query, args, err := squirrel.
		Update(integrationAccountsTable).
		Set("credentials", squirrel.Expr("credentials || ?::jsonb", string(fieldsJSON))).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *integrationRepository) Delete(id string, userID int) error {
	query, args, err := squirrel.
		Delete(integrationAccountsTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *integrationRepository) scanAccount(row *sql.Row) (*domain.IntegrationAccount, error) {
	account := &domain.IntegrationAccount{}
	var kind string
	var credentialsJSON []byte

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&kind,
		&credentialsJSON,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Kind = domain.IntegrationKind(kind)

	if credentialsJSON != nil {
		credentials := domain.Credentials{}
		if err := json.Unmarshal(credentialsJSON, &credentials); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de credenciais: %w", err)
		}
		account.Credentials = credentials
	}

	return account, nil
}

func (r *integrationRepository) scanAccountRows(rows *sql.Rows) (*domain.IntegrationAccount, error) {
	account := &domain.IntegrationAccount{}
	var kind string
	var credentialsJSON []byte

	err := rows.Scan(
		&account.ID,
		&account.UserID,
		&kind,
		&credentialsJSON,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Kind = domain.IntegrationKind(kind)

	if credentialsJSON != nil {
		credentials := domain.Credentials{}
		if err := json.Unmarshal(credentialsJSON, &credentials); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de credenciais: %w", err)
		}
		account.Credentials = credentials
	}

	return account, nil
}
