package marketdata

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/patrickmn/go-cache"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/apperrors"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/yahoo"
)

// maxConcurrentFetches bounds the per-symbol fan-out inside one panel fetch.
const maxConcurrentFetches = 4

// Source is the price source adapter. It batches all symbols for a window
// into one FetchClosingPrices call, memoizes parsed charts in the supplied
// cache, and surfaces per-symbol absence as sparse gaps in the panel rather
// than failures. The cache is caller-supplied so tests can isolate runs.
type Source struct {
	client yahoo.Client
	cache  *cache.Cache
}

// NewSource creates a price source adapter around a Yahoo client and a
// memoization cache. The cache may be nil to disable memoization.
func NewSource(client yahoo.Client, memo *cache.Cache) *Source {
	return &Source{
		client: client,
		cache:  memo,
	}
}

// FetchClosingPrices retrieves one closing price per (trading day, symbol)
// in [start, end], both inclusive. Symbols are normalized and deduplicated
// first. Symbols with no data contribute nothing to the panel; the call
// fails with ErrDataUnavailable only when the entire panel comes back empty.
func (s *Source) FetchClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (PricePanel, error) {
	normalized := NormalizeSymbols(symbols)
	if len(normalized) == 0 {
		return PricePanel{}, apperrors.ErrNoSymbols
	}

	panel := NewPricePanel()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, symbol := range normalized {
		symbol := symbol
		g.Go(func() error {
			chart, err := s.fetchChart(gctx, symbol, start, end)
			if err != nil {
				// Partial coverage is tolerated: the gap is detected
				// downstream against the exact dates that need prices.
				log.Printf("price fetch for %s returned no data: %v", symbol, err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			for _, ind := range chart.Indicators {
				if ind.Date.Before(Date(start)) || ind.Date.After(Date(end)) {
					continue
				}
				panel.Set(symbol, ind.Date, ind.PriceClose)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PricePanel{}, err
	}

	if panel.IsEmpty() {
		return PricePanel{}, fmt.Errorf("%w: %v between %s and %s",
			apperrors.ErrDataUnavailable, normalized,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return panel, nil
}

// FetchClosingPriceSingle looks up the closing price of one symbol at a
// specific date, with a one-day lookahead buffer to absorb feed latency.
// It returns the latest close available in the narrow window.
func (s *Source) FetchClosingPriceSingle(ctx context.Context, symbol string, date time.Time) (float64, error) {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return 0, apperrors.ErrNoSymbols
	}

	day := Date(date)
	chart, err := s.fetchChart(ctx, normalized, day, day.Add(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("%w: %s at %s", apperrors.ErrDataUnavailable, normalized, day.Format("2006-01-02"))
	}

	var close float64
	for _, ind := range chart.Indicators {
		if ind.PriceClose > 0 && !ind.Date.After(day.Add(24*time.Hour)) {
			close = ind.PriceClose
		}
	}
	if close <= 0 {
		return 0, fmt.Errorf("%w: %s at %s", apperrors.ErrDataUnavailable, normalized, day.Format("2006-01-02"))
	}
	return close, nil
}

// fetchChart queries one symbol's daily chart for a window, consulting the
// memoization cache first.
func (s *Source) fetchChart(ctx context.Context, symbol string, start, end time.Time) (yahoo.PriceChart, error) {
	key := fmt.Sprintf("%s|%s|%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))

	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.(yahoo.PriceChart), nil
		}
	}

	resp, err := s.client.QueryDailyRange(ctx, symbol, start, end)
	if err != nil {
		return yahoo.PriceChart{}, err
	}
	chart, err := s.client.ParseChart(resp)
	if err != nil {
		return yahoo.PriceChart{}, err
	}

	if s.cache != nil {
		s.cache.Set(key, chart, cache.DefaultExpiration)
	}
	return chart, nil
}
