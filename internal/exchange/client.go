package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/logger"
	"gitlab.com/mthiha/goaltrack/internal/models"
)

// DefaultAPIBaseURL is the exchangerate-api.com v6 endpoint.
const DefaultAPIBaseURL = "https://v6.exchangerate-api.com/v6"

var errRateMissing = errors.New("quote currency missing in response")

// APIClient fetches the latest USD->INR rate from exchangerate-api.com.
type APIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type rateResponse struct {
	ConversionRates    map[string]json.Number `json:"conversion_rates"`
	TimeLastUpdateUnix int64                  `json:"time_last_update_unix"`
}

// NewAPIClient creates a rate source client for the given credential.
func NewAPIClient(baseURL, apiKey string, timeout time.Duration) *APIClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &APIClient{
		baseURL: trimmed,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRate retrieves the latest rate basket for the base currency and
// extracts the quote-currency rate. LastUpdated is stamped with the local
// fetch time; the server's own update timestamp is logged but not trusted.
func (c *APIClient) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	endpoint := fmt.Sprintf("%s/%s/latest/%s",
		c.baseURL,
		url.PathEscape(c.apiKey),
		models.BaseCurrency,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("failed to create rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("failed to request exchange rate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.ExchangeRate{}, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload rateResponse
	if err := decoder.Decode(&payload); err != nil {
		return models.ExchangeRate{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rateStr, ok := payload.ConversionRates[string(models.QuoteCurrency)]
	if !ok {
		return models.ExchangeRate{}, errRateMissing
	}

	rate, err := decimal.NewFromString(rateStr.String())
	if err != nil {
		return models.ExchangeRate{}, fmt.Errorf("failed to parse exchange rate: %w", err)
	}
	if !rate.IsPositive() {
		return models.ExchangeRate{}, errors.New("exchange rate must be positive")
	}

	fetchedAt := time.Now()
	logger.Log.Debug().
		Str("rate", rate.String()).
		Time("server_last_update", time.Unix(payload.TimeLastUpdateUnix, 0)).
		Time("fetched_at", fetchedAt).
		Msg("Fetched exchange rate from API")

	return models.ExchangeRate{
		Rate:        rate,
		LastUpdated: fetchedAt,
		From:        models.BaseCurrency,
		To:          models.QuoteCurrency,
	}, nil
}
