package fbclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	fbdomain "github.com/mvacxx/dash/infrastructure/integrator/facebook/domain"
	"github.com/mvacxx/dash/internal/domain"
	"github.com/mvacxx/dash/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FetchDailyMetrics busca o gasto e a receita de conversão de um único dia
// para uma conta de anúncios. Dias sem veiculação retornam zero.
func (c *FacebookClient) FetchDailyMetrics(ctx context.Context, creds *Credentials, day time.Time) (*fbdomain.DailySpendRevenue, error) {
	date := day.UTC().Format(time.DateOnly)

	baseURL := fmt.Sprintf("%s/%s/act_%s/insights", c.Cfg.Facebook.BaseURL, creds.APIVersion, creds.AccountID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", date, date)

	params := url.Values{}
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("fields", "spend,actions")
	params.Add("access_token", creds.AccessToken)

	// Contas vinculadas a um gerenciador de negócios consultam com o contexto
	// do negócio
	if creds.BusinessID != "" {
		params.Add("business_id", creds.BusinessID)
	}

	requestURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição de insights")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(domain.ErrProviderTransport, err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp.StatusCode, body)
	}

	logrus.Debugf("Resposta de insights da conta %s: %s", creds.AccountID, utils.PrettyJson(body))

	var response fbdomain.InsightsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON de insights")
		return nil, errors.Wrap(domain.ErrProvider, err.Error())
	}

	result := &fbdomain.DailySpendRevenue{}
	if len(response.Data) == 0 {
		// Conta sem veiculação no dia: contribuição zero, não é erro
		return result, nil
	}

	for _, row := range response.Data {
		spend, err := parseAmount(row.Spend)
		if err != nil {
			return nil, err
		}
		result.Spend += spend

		for _, action := range row.Actions {
			if _, ok := fbdomain.ConversionActionTypes[action.ActionType]; !ok {
				continue
			}
			value, err := parseAmount(action.Value)
			if err != nil {
				return nil, err
			}
			result.Revenue += value
		}
	}

	return result, nil
}

// classifyError traduz uma resposta de erro da Graph API para os erros de
// domínio, distinguindo falhas de autorização das demais
func classifyError(statusCode int, body []byte) error {
	var apiErr fbdomain.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		if apiErr.IsAuthorizationError() {
			return errors.Wrap(domain.ErrProviderAuthorization, apiErr.Error.Message)
		}
		return errors.Wrapf(domain.ErrProvider, "status %d: %s", statusCode, apiErr.Error.Message)
	}

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return errors.Wrapf(domain.ErrProviderAuthorization, "status %d", statusCode)
	}

	return errors.Wrapf(domain.ErrProvider, "status %d: %s", statusCode, string(body))
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrProvider, "valor numérico inválido %q", raw)
	}

	return value, nil
}
