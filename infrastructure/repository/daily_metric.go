package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mvacxx/dash/infrastructure/database/postgres"
	"github.com/mvacxx/dash/internal/domain"
)

const (
	dailyMetricsTable = "daily_metrics"
)

type DailyMetricRepository interface {
	GetByUserAndDate(userID int, date time.Time) (*domain.DailyMetric, error)
	Upsert(metric *domain.DailyMetric) error
	GetByDateRange(userID int, startDate, endDate time.Time) ([]*domain.DailyMetric, error)
}

type dailyMetricRepository struct {
	conn *postgres.Connection
}

func NewDailyMetricRepository(conn *postgres.Connection) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

func (r *dailyMetricRepository) GetByUserAndDate(userID int, date time.Time) (*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "metric_date", "spend", "revenue", "roi", "created_at", "updated_at").
		From(dailyMetricsTable).
		Where(squirrel.Eq{"user_id": userID, "metric_date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	metric := &domain.DailyMetric{}
	err = r.conn.QueryRow(query, args...).Scan(
		&metric.ID,
		&metric.UserID,
		&metric.Date,
		&metric.Spend,
		&metric.Revenue,
		&metric.ROI,
		&metric.CreatedAt,
		&metric.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
	}

	return metric, nil
}

// Upsert grava a métrica agregada do dia. A unicidade de (user_id, metric_date)
// é garantida pela constraint da tabela; uma segunda sincronização do mesmo dia
// sobrescreve os valores em vez de duplicar a linha.
func (r *dailyMetricRepository) Upsert(metric *domain.DailyMetric) error {
	query := squirrel.StatementBuilder.
		Insert(dailyMetricsTable).
		Columns("user_id", "metric_date", "spend", "revenue", "roi").
		Values(
			metric.UserID,
			metric.Date.Format(time.DateOnly),
			metric.Spend,
			metric.Revenue,
			metric.ROI,
		).
		Suffix(`
			ON CONFLICT (user_id, metric_date) DO UPDATE SET
				spend = EXCLUDED.spend,
				revenue = EXCLUDED.revenue,
				roi = EXCLUDED.roi,
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(sqlQuery, args...).Scan(&metric.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *dailyMetricRepository) GetByDateRange(userID int, startDate, endDate time.Time) ([]*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "metric_date", "spend", "revenue", "roi", "created_at", "updated_at").
		From(dailyMetricsTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"metric_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"metric_date": endDate.Format(time.DateOnly)}).
		OrderBy("metric_date ASC").
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

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric := &domain.DailyMetric{}
		err := rows.Scan(
			&metric.ID,
			&metric.UserID,
			&metric.Date,
			&metric.Spend,
			&metric.Revenue,
			&metric.ROI,
			&metric.CreatedAt,
			&metric.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
