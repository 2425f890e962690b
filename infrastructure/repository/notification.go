package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mvacxx/dash/infrastructure/database/postgres"
	"github.com/mvacxx/dash/internal/domain"
)

const (
	syncNotificationsTable = "sync_notifications"
)

type NotificationRepository interface {
	Create(notification *domain.SyncNotification) error
	ListUnreadByUser(userID int) ([]*domain.SyncNotification, error)
	MarkRead(id int, userID int) error
}

type notificationRepository struct {
	conn *postgres.Connection
}

func NewNotificationRepository(conn *postgres.Connection) NotificationRepository {
	return &notificationRepository{
		conn: conn,
	}
}

func (r *notificationRepository) Create(notification *domain.SyncNotification) error {
	query := squirrel.
		Insert(syncNotificationsTable).
		Columns("user_id", "level", "message", "is_read").
		Values(
			notification.UserID,
			string(notification.Level),
			notification.Message,
			notification.Read,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	insertSQL, insertArgs, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(insertSQL, insertArgs...).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListUnreadByUser(userID int) ([]*domain.SyncNotification, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "level", "message", "is_read", "created_at").
		From(syncNotificationsTable).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	notifications := make([]*domain.SyncNotification, 0)
	for rows.Next() {
		notification := &domain.SyncNotification{}
		var level string
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&level,
			&notification.Message,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear notificações: %w", err)
		}
		notification.Level = domain.NotificationLevel(level)
		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(id int, userID int) error {
	query, args, err := squirrel.
		Update(syncNotificationsTable).
		Set("is_read", true).
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
