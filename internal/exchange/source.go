// Package exchange obtains and caches the USD->INR exchange rate. A Source
// produces fresh snapshots; RateCache decides when a fresh retrieval is
// needed versus serving the stored one.
package exchange

import (
	"context"
	"time"

	"gitlab.com/mthiha/goaltrack/internal/models"
)

// Source retrieves a fresh exchange-rate snapshot.
type Source interface {
	FetchRate(ctx context.Context) (models.ExchangeRate, error)
}

// OfflineSource serves the fixed fallback rate. It is the supported
// configuration when no API credential is present, not an error path.
type OfflineSource struct{}

// FetchRate returns the fallback USD->INR rate stamped with the current time.
func (OfflineSource) FetchRate(context.Context) (models.ExchangeRate, error) {
	return models.ExchangeRate{
		Rate:        models.FallbackRate,
		LastUpdated: time.Now(),
		From:        models.BaseCurrency,
		To:          models.QuoteCurrency,
	}, nil
}
