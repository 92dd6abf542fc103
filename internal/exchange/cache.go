package exchange

import (
	"context"
	"errors"
	"sync"
	"time"

	"gitlab.com/mthiha/goaltrack/internal/logger"
	"gitlab.com/mthiha/goaltrack/internal/models"
	"gitlab.com/mthiha/goaltrack/internal/storage"
)

type inFlightFetch struct {
	done   chan struct{}
	result models.ExchangeRate
	err    error
}

// RateCache serves the stored exchange rate while it is fresh and refreshes
// it from the Source otherwise. The snapshot and its fetch timestamp are two
// independent store records; both must be present for the cache to count as
// valid. Overlapping refreshes share a single upstream call.
type RateCache struct {
	store  storage.Store
	source Source
	ttl    time.Duration

	mu       sync.Mutex
	inFlight *inFlightFetch
}

// NewRateCache creates a cache over the given store and rate source.
func NewRateCache(store storage.Store, source Source, ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = models.RateCacheDuration
	}
	return &RateCache{store: store, source: source, ttl: ttl}
}

// Cached returns the stored snapshot regardless of freshness, or nil when no
// rate has ever been fetched. Used by aggregation when a refresh is failing.
func (c *RateCache) Cached() *models.ExchangeRate {
	var snap models.ExchangeRate
	ok, err := c.store.Get(storage.KeyExchangeRate, &snap)
	if err != nil || !ok {
		return nil
	}
	return &snap
}

// GetRate returns the cached rate when it is fresh, otherwise performs a
// fresh retrieval. forceRefresh bypasses the freshness check entirely. On
// retrieval failure the prior cached records are left intact and the error
// is surfaced to the caller.
func (c *RateCache) GetRate(ctx context.Context, forceRefresh bool) (models.ExchangeRate, error) {
	if c.source == nil {
		return models.ExchangeRate{}, errors.New("rate source is required")
	}

	if !forceRefresh {
		if snap, ok := c.fresh(); ok {
			logger.Log.Debug().
				Str("rate", snap.Rate.String()).
				Time("last_updated", snap.LastUpdated).
				Msg("Serving cached exchange rate")
			return snap, nil
		}
	} else {
		logger.Log.Debug().Msg("Force refresh requested, fetching exchange rate")
	}

	c.mu.Lock()
	if call := c.inFlight; call != nil {
		c.mu.Unlock()
		return waitForFetch(ctx, call)
	}
	call := &inFlightFetch{done: make(chan struct{})}
	c.inFlight = call
	c.mu.Unlock()

	// Detach the actual fetch from any single caller's deadline so one
	// short-lived caller cannot fail every waiter sharing this refresh.
	go c.fetchAndBroadcast(context.WithoutCancel(ctx), call)
	return waitForFetch(ctx, call)
}

// fresh reports the stored snapshot when both cache records exist and the
// last fetch is within the staleness threshold.
func (c *RateCache) fresh() (models.ExchangeRate, bool) {
	var snap models.ExchangeRate
	ok, err := c.store.Get(storage.KeyExchangeRate, &snap)
	if err != nil || !ok {
		return models.ExchangeRate{}, false
	}

	var lastFetch time.Time
	ok, err = c.store.Get(storage.KeyLastRateFetch, &lastFetch)
	if err != nil || !ok {
		return models.ExchangeRate{}, false
	}

	if time.Since(lastFetch) > c.ttl {
		return models.ExchangeRate{}, false
	}
	return snap, true
}

func (c *RateCache) fetchAndBroadcast(ctx context.Context, call *inFlightFetch) {
	snap, err := c.source.FetchRate(ctx)
	if err == nil {
		if !c.store.Set(storage.KeyExchangeRate, snap) ||
			!c.store.Set(storage.KeyLastRateFetch, snap.LastUpdated) {
			logger.Log.Warn().Msg("Failed to persist exchange rate, cache will stay cold")
		}
	} else {
		logger.Log.Error().Err(err).Msg("Exchange rate retrieval failed, keeping prior cache")
	}

	c.mu.Lock()
	call.result = snap
	call.err = err
	c.inFlight = nil
	close(call.done)
	c.mu.Unlock()
}

func waitForFetch(ctx context.Context, call *inFlightFetch) (models.ExchangeRate, error) {
	select {
	case <-ctx.Done():
		return models.ExchangeRate{}, ctx.Err()
	case <-call.done:
		if call.err != nil {
			return models.ExchangeRate{}, call.err
		}
		return call.result, nil
	}
}
