package domain

import "time"

// DailyMetric é o resultado financeiro agregado de um usuário em um dia.
// Existe no máximo uma linha por (user_id, date).
type DailyMetric struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Date      time.Time `json:"date"`
	Spend     float64   `json:"spend"`
	Revenue   float64   `json:"revenue"`
	ROI       float64   `json:"roi"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MetricsSummary é a resposta de uma consulta por período: a série diária
// ordenada por data crescente mais os agregados do período
type MetricsSummary struct {
	Metrics      []*DailyMetric `json:"metrics"`
	TotalSpend   float64        `json:"total_spend"`
	TotalRevenue float64        `json:"total_revenue"`
	AverageROI   float64        `json:"average_roi"`
}

// CalculateROI calcula o retorno sobre o investimento. Gasto zero resulta em
// ROI zero, nunca em erro de divisão.
func CalculateROI(spend, revenue float64) float64 {
	if spend == 0 {
		return 0
	}
	return (revenue - spend) / spend
}
