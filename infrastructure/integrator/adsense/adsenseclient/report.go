package adsenseclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mvacxx/dash/internal/domain"
)

// reportResponse é o envelope de resposta do endpoint reports:generate
type reportResponse struct {
	Rows []reportRow `json:"rows"`
}

type reportRow struct {
	Cells []reportCell `json:"cells"`
}

type reportCell struct {
	Value string `json:"value"`
}

// FetchDailyEarnings busca a receita estimada de um único dia para uma conta
// do AdSense. Dias sem linhas no relatório retornam zero.
func (c *AdSenseClient) FetchDailyEarnings(ctx context.Context, creds *Credentials, day time.Time) (float64, error) {
	date := day.UTC()

	params := url.Values{}
	params.Add("dateRange", "CUSTOM")
	params.Add("startDate.year", strconv.Itoa(date.Year()))
	params.Add("startDate.month", strconv.Itoa(int(date.Month())))
	params.Add("startDate.day", strconv.Itoa(date.Day()))
	params.Add("endDate.year", strconv.Itoa(date.Year()))
	params.Add("endDate.month", strconv.Itoa(int(date.Month())))
	params.Add("endDate.day", strconv.Itoa(date.Day()))
	params.Add("metrics", "ESTIMATED_EARNINGS")

	requestURL := fmt.Sprintf("%s/%s/reports:generate?%s", c.Cfg.AdSense.BaseURL, creds.AccountID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição de relatório")
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return 0, errors.Wrapf(domain.ErrProviderAuthorization, "status %d: %s", resp.StatusCode, string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Wrapf(domain.ErrProvider, "status %d: %s", resp.StatusCode, string(body))
	}

	var report reportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON do relatório")
		return 0, errors.Wrap(domain.ErrProvider, err.Error())
	}

	// Conta sem receita no dia: contribuição zero, não é erro
	if len(report.Rows) == 0 || len(report.Rows[0].Cells) == 0 {
		return 0, nil
	}

	raw := report.Rows[0].Cells[0].Value
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrProvider, "valor de receita inválido %q", raw)
	}

	return value, nil
}
