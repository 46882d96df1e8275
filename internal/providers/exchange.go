package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/logger"
	"github.com/ulugdev/yordamchi/internal/storage"
)

const (
	defaultExchangeBaseURL = "https://api.exchangerate-api.com"

	// rateCacheTTL bounds how long a fetched snapshot is reused.
	rateCacheTTL = time.Hour
)

const exchangeFailMsg = "⚠️ Valyuta kurslarini olishda xatolik yuz berdi!"

// ExchangeClient fetches the full rate table against the base currency.
type ExchangeClient struct {
	http    *http.Client
	baseURL string
}

// NewExchangeClient builds an exchange-rate client; baseURL may be empty to
// use the public endpoint.
func NewExchangeClient(baseURL string) *ExchangeClient {
	if baseURL == "" {
		baseURL = defaultExchangeBaseURL
	}
	return &ExchangeClient{http: newHTTPClient(), baseURL: baseURL}
}

type exchangeResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Fetch retrieves a fresh snapshot of rates versus the base currency.
func (c *ExchangeClient) Fetch(ctx context.Context) (map[string]float64, error) {
	var resp exchangeResponse
	start := time.Now()
	err := getJSON(ctx, c.http, c.baseURL+"/v4/latest/"+catalog.BaseCurrency, &resp)
	logger.PROV.Debug("exchange fetch",
		slog.String("event", "exchange.fetch"),
		slog.String("status", logger.Status(err)),
		slog.Duration("duration", logger.Took(start)),
		logger.RID(ctx),
	)
	if err != nil {
		return nil, fail(exchangeFailMsg, err)
	}
	if len(resp.Rates) == 0 {
		return nil, fail(exchangeFailMsg, fmt.Errorf("empty rates table"))
	}
	return resp.Rates, nil
}

// RateFetcher is the upstream contract consumed by RateService.
type RateFetcher interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// RateService serves exchange rates through the persisted one-hour cache.
// A fetch failure is a hard failure even when a stale snapshot exists.
type RateService struct {
	fetcher RateFetcher
	cache   storage.RateCacheStore
	now     func() time.Time
}

// NewRateService wires the fetcher with the persisted cache.
func NewRateService(fetcher RateFetcher, cache storage.RateCacheStore) *RateService {
	return &RateService{fetcher: fetcher, cache: cache, now: time.Now}
}

// Rates returns the current rate table, reusing the cached snapshot when it is
// younger than one hour.
func (s *RateService) Rates(ctx context.Context) (map[string]float64, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		logger.PROV.Warn("rate cache read failed",
			slog.String("event", "exchange.cache"),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
	} else if len(cached.Rates) > 0 && s.now().Sub(cached.FetchedAt) < rateCacheTTL {
		logger.PROV.Debug("rate cache hit",
			slog.String("event", "exchange.cache"),
			slog.String("cache", "hit"),
			logger.RID(ctx),
		)
		return cached.Rates, nil
	}

	rates, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, rates); err != nil {
		// Serving the fresh table matters more than persisting it.
		logger.PROV.Warn("rate cache write failed",
			slog.String("event", "exchange.cache"),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
	}
	return rates, nil
}

// Convert computes amount in from-currency expressed in to-currency using the
// base-relative rate table.
func Convert(amount float64, from, to string, rates map[string]float64) (float64, error) {
	fromRate, okFrom := rates[from]
	toRate, okTo := rates[to]
	if !okFrom || !okTo || fromRate == 0 {
		return 0, fail(exchangeFailMsg, fmt.Errorf("unknown currency pair %s/%s", from, to))
	}
	return amount / fromRate * toRate, nil
}
